package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxItemQuantity caps the quantity of a single cart line.
const MaxItemQuantity = 1000

type Cart struct {
	ID         string
	CustomerID int64
	Items      []CartItem
	CreatedAt  time.Time
}

// CartItem is one product line of a cart. Subtotal is quantity * price at the
// time of the last update and is not discount adjusted.
type CartItem struct {
	CartID    string
	ProductID int64
	Product   Product
	Quantity  int
	Subtotal  decimal.Decimal
	UpdatedAt time.Time
}

// Reprice recomputes the subtotal from the current quantity and unit price.
func (i *CartItem) Reprice(price decimal.Decimal) {
	i.Subtotal = RoundCurrency(LineTotal(price, i.Quantity))
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums the undiscounted subtotals of the cart lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
