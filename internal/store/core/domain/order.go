package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID         string
	CustomerID int64
	Items      []OrderItem
	IsOrdered  bool
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem carries a subtotal frozen at checkout from the discounted price.
type OrderItem struct {
	ID        int64
	OrderID   string
	ProductID int64
	Product   Product
	Quantity  int
	Subtotal  decimal.Decimal
}

// NewOrderItem prices a cart line at the product's discount right now.
func NewOrderItem(orderID string, item CartItem) OrderItem {
	return OrderItem{
		OrderID:   orderID,
		ProductID: item.ProductID,
		Product:   item.Product,
		Quantity:  item.Quantity,
		Subtotal:  RoundCurrency(LineTotal(item.Product.DiscountedPrice(), item.Quantity)),
	}
}

// Total recomputes the order value against each product's current price and
// discount, not against the frozen item subtotals. Items must carry their
// Product loaded from the catalog.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		unit := it.Product.Price
		if it.Product.IsDiscounted() {
			unit = it.Product.DiscountedPrice()
		}
		total = total.Add(LineTotal(unit, it.Quantity))
	}
	return RoundCurrency(total)
}

// FrozenTotal sums the subtotals recorded at checkout.
func (o Order) FrozenTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}
