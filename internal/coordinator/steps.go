package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
)

// CartCheckout turns a cart into an order and can put it back.
type CartCheckout interface {
	Checkout(ctx context.Context, customerID int64) (*domain.Order, error)
	Restore(ctx context.Context, orderID string) error
}

type CardCharger interface {
	ChargeCard(ctx context.Context, customerID int64, in services.CardChargeInput) (*domain.CardCharge, error)
}

type OrderConfirmer interface {
	Confirm(ctx context.Context, orderID string) error
	GetTotal(order *domain.Order) decimal.Decimal
}

// Purchase is the state shared by the steps of one purchase saga.
type Purchase struct {
	CustomerID int64
	CardToken  string
	Currency   string

	Order  *domain.Order
	Charge *domain.CardCharge
}

var errNoOrder = errors.New("purchase has no order")

// --- CheckoutStep ---

type CheckoutStep struct {
	carts    CartCheckout
	purchase *Purchase
}

func NewCheckoutStep(carts CartCheckout, purchase *Purchase) *CheckoutStep {
	return &CheckoutStep{carts: carts, purchase: purchase}
}

func (s *CheckoutStep) Name() string { return "Checkout_Step" }

func (s *CheckoutStep) Execute(ctx context.Context) error {
	order, err := s.carts.Checkout(ctx, s.purchase.CustomerID)
	if err != nil {
		return fmt.Errorf("checkout cart: %w", err)
	}
	s.purchase.Order = order
	return nil
}

// Compensate puts the items back in the cart and cancels the order.
func (s *CheckoutStep) Compensate(ctx context.Context) error {
	if s.purchase.Order == nil {
		return errNoOrder
	}
	return s.carts.Restore(ctx, s.purchase.Order.ID)
}

// --- CardChargeStep ---

type CardChargeStep struct {
	payments CardCharger
	orders   OrderConfirmer
	purchase *Purchase
}

func NewCardChargeStep(payments CardCharger, orders OrderConfirmer, purchase *Purchase) *CardChargeStep {
	return &CardChargeStep{payments: payments, orders: orders, purchase: purchase}
}

func (s *CardChargeStep) Name() string { return "Card_Charge_Step" }

func (s *CardChargeStep) Execute(ctx context.Context) error {
	order := s.purchase.Order
	if order == nil {
		return errNoOrder
	}
	charge, err := s.payments.ChargeCard(ctx, s.purchase.CustomerID, services.CardChargeInput{
		Token:       s.purchase.CardToken,
		Amount:      s.orders.GetTotal(order),
		Currency:    s.purchase.Currency,
		Description: "order " + order.ID,
		OrderID:     order.ID,
	})
	s.purchase.Charge = charge
	if err != nil {
		return fmt.Errorf("charge order %s: %w", order.ID, err)
	}
	return nil
}

// Compensate is a no-op: refunds are handled outside the store.
func (s *CardChargeStep) Compensate(ctx context.Context) error {
	return nil
}

// --- ConfirmOrderStep ---

type ConfirmOrderStep struct {
	orders   OrderConfirmer
	purchase *Purchase
}

func NewConfirmOrderStep(orders OrderConfirmer, purchase *Purchase) *ConfirmOrderStep {
	return &ConfirmOrderStep{orders: orders, purchase: purchase}
}

func (s *ConfirmOrderStep) Name() string { return "Confirm_Order_Step" }

func (s *ConfirmOrderStep) Execute(ctx context.Context) error {
	if s.purchase.Order == nil {
		return errNoOrder
	}
	if err := s.orders.Confirm(ctx, s.purchase.Order.ID); err != nil {
		return fmt.Errorf("confirm order %s: %w", s.purchase.Order.ID, err)
	}
	s.purchase.Order.Status = domain.OrderConfirmed
	s.purchase.Order.IsOrdered = true
	return nil
}

func (s *ConfirmOrderStep) Compensate(ctx context.Context) error {
	// Last step, nothing to undo.
	return nil
}
