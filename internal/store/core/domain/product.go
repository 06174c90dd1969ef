package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                 int64
	Name               string
	Description        string
	Price              decimal.Decimal
	Category           CategoryName
	Image              string
	AddedByAdmin       bool
	DiscountPercentage int
	AverageRating      decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsDiscounted reports whether a non-zero discount applies.
func (p Product) IsDiscounted() bool {
	return p.DiscountPercentage > 0
}

// DiscountedPrice is the unit price after the product's current discount.
func (p Product) DiscountedPrice() decimal.Decimal {
	return DiscountedPrice(p.Price, p.DiscountPercentage)
}

// Validate checks the writable fields of a product.
func (p Product) Validate() error {
	v := NewValidationError()
	if p.Name == "" {
		v.Add("name", "is required")
	}
	if p.Price.IsNegative() {
		v.Add("price", "must not be negative")
	}
	if !p.Price.Equal(p.Price.Round(CurrencyPlaces)) {
		v.Add("price", "must have at most 2 decimal places")
	}
	if !p.Category.Valid() {
		v.Add("category", "must be one of suits, shirts, neckwear, shoes")
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		v.Add("discount_percentage", "must be between 0 and 100")
	}
	return v.OrNil()
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category       CategoryName
	Query          string
	DiscountedOnly bool
	ExcludeID      int64
	Limit          int
}
