// Package services holds the store's application logic: the cart and order
// engines, the catalog, rating aggregation, customers and payments. Storage
// and third-party rails are reached only through the ports package.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

var tracer = otel.Tracer("github.com/jcmexdev/menswear-store/internal/store/core/services")

// newID is replaced in tests that need deterministic identifiers.
var newID = uuid.NewString

// ensureCart returns the customer's cart, creating it on first use.
func ensureCart(ctx context.Context, repos ports.Repositories, customerID int64) (*domain.Cart, error) {
	cart, err := repos.Carts().GetCartByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return nil, err
	}
	cart = &domain.Cart{ID: newID(), CustomerID: customerID}
	if err := repos.Carts().CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
