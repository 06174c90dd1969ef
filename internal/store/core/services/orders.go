package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

// OrderEngine reads orders and moves them through their status lifecycle.
// Orders are created only by CartEngine.Checkout.
type OrderEngine struct {
	store ports.UnitOfWork
}

func NewOrderEngine(store ports.UnitOfWork) *OrderEngine {
	return &OrderEngine{store: store}
}

// Get returns the order if it belongs to customerID.
func (e *OrderEngine) Get(ctx context.Context, customerID int64, orderID string) (*domain.Order, error) {
	order, err := e.store.Orders().GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrOrderNotFound)
	}
	return order, nil
}

func (e *OrderEngine) List(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return e.store.Orders().ListOrders(ctx, customerID)
}

// GetTotal prices the order against each product's current discount. See
// domain.Order.Total; the frozen subtotals are available as FrozenTotal.
func (e *OrderEngine) GetTotal(order *domain.Order) decimal.Decimal {
	return order.Total()
}

// Confirm marks a paid order as ordered.
func (e *OrderEngine) Confirm(ctx context.Context, orderID string) error {
	return e.store.Orders().UpdateOrderStatus(ctx, orderID, domain.OrderConfirmed, true)
}

func (e *OrderEngine) Cancel(ctx context.Context, orderID string) error {
	return e.store.Orders().UpdateOrderStatus(ctx, orderID, domain.OrderCancelled, false)
}
