package domain

import "fmt"

// CategoryName is one of the fixed catalog sections.
type CategoryName string

const (
	CategorySuits    CategoryName = "suits"
	CategoryShirts   CategoryName = "shirts"
	CategoryNeckwear CategoryName = "neckwear"
	CategoryShoes    CategoryName = "shoes"
)

var categoryDisplay = map[CategoryName]string{
	CategorySuits:    "Suits",
	CategoryShirts:   "Shirts",
	CategoryNeckwear: "Neckwear & Accessories",
	CategoryShoes:    "Shoes",
}

// Categories returns the closed set of category names in display order.
func Categories() []CategoryName {
	return []CategoryName{CategorySuits, CategoryShirts, CategoryNeckwear, CategoryShoes}
}

func (c CategoryName) Valid() bool {
	_, ok := categoryDisplay[c]
	return ok
}

func (c CategoryName) Display() string {
	if d, ok := categoryDisplay[c]; ok {
		return d
	}
	return string(c)
}

// ParseCategory validates a raw category name.
func ParseCategory(raw string) (CategoryName, error) {
	c := CategoryName(raw)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q: %w", raw, ErrInvalidCategory)
	}
	return c, nil
}

type Category struct {
	ID   int64
	Name CategoryName
}
