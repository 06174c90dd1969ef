package coordinator

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jcmexdev/menswear-store/internal/coordinator/sagalog"
)

var tracer = otel.Tracer("coordinator")

// Purchaser runs the purchase saga: checkout, card charge, order
// confirmation. A failed charge restores the cart and cancels the order.
type Purchaser struct {
	carts    CartCheckout
	payments CardCharger
	orders   OrderConfirmer
	log      sagalog.Reader
}

func NewPurchaser(carts CartCheckout, payments CardCharger, orders OrderConfirmer, log sagalog.Reader) *Purchaser {
	return &Purchaser{carts: carts, payments: payments, orders: orders, log: log}
}

type purchasePayload struct {
	CustomerID int64  `json:"customer_id"`
	Currency   string `json:"currency,omitempty"`
}

// Purchase runs one saga and returns its id together with the shared state,
// also when a step failed.
func (p *Purchaser) Purchase(ctx context.Context, customerID int64, cardToken, currency string) (string, *Purchase, error) {
	sagaID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "Purchase")
	defer span.End()
	span.SetAttributes(attribute.String("saga.id", sagaID), attribute.Int64("customer.id", customerID))

	state := &Purchase{CustomerID: customerID, CardToken: cardToken, Currency: currency}
	steps := []Step{
		NewCheckoutStep(p.carts, state),
		NewCardChargeStep(p.payments, p.orders, state),
		NewConfirmOrderStep(p.orders, state),
	}

	payload, _ := json.Marshal(purchasePayload{CustomerID: customerID, Currency: currency})
	err := NewOrchestrator(sagaID, steps, p.log).Start(ctx, string(payload))
	if err != nil {
		span.RecordError(err)
	}
	return sagaID, state, err
}

// History returns the logged transitions of a saga, oldest first.
func (p *Purchaser) History(ctx context.Context, sagaID string) ([]sagalog.SagaLog, error) {
	if p.log == nil {
		return nil, sagalog.ErrSagaNotFound
	}
	return p.log.List(ctx, sagaID)
}
