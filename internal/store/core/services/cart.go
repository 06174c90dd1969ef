package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

// CartEngine owns the mapping from a customer to the pending line items and
// the transition from cart to order. Every mutation runs in one transaction.
type CartEngine struct {
	store ports.UnitOfWork
}

func NewCartEngine(store ports.UnitOfWork) *CartEngine {
	return &CartEngine{store: store}
}

// CreateCart returns the customer's cart, creating an empty one if needed.
func (e *CartEngine) CreateCart(ctx context.Context, customerID int64) (*domain.Cart, error) {
	var cart *domain.Cart
	err := e.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		if cart, err = ensureCart(ctx, repos, customerID); err != nil {
			return err
		}
		cart.Items, err = repos.Carts().ListItems(ctx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (e *CartEngine) GetCart(ctx context.Context, customerID int64) (*domain.Cart, error) {
	cart, err := e.store.Carts().GetCartByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart.Items, err = e.store.Carts().ListItems(ctx, cart.ID); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddProduct adds quantity units of a product to the customer's cart. A
// quantity of zero means one. Repeated additions of the same product merge
// into one line whose quantity is the sum of the additions.
func (e *CartEngine) AddProduct(ctx context.Context, customerID, productID int64, quantity int) (*domain.CartItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		v := domain.NewValidationError()
		v.Add("quantity", "must be at least 1")
		return nil, v
	}
	if quantity > domain.MaxItemQuantity {
		return nil, quantityTooLarge()
	}

	var item *domain.CartItem
	err := e.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		product, err := repos.Products().GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		cart, err := ensureCart(ctx, repos, customerID)
		if err != nil {
			return err
		}
		total, err := repos.Carts().IncrementItem(ctx, cart.ID, productID, quantity)
		if err != nil {
			return err
		}
		if total > domain.MaxItemQuantity {
			return quantityTooLarge()
		}
		item = &domain.CartItem{CartID: cart.ID, ProductID: productID, Product: *product, Quantity: total}
		item.Reprice(product.Price)
		return repos.Carts().SetItemSubtotal(ctx, cart.ID, productID, item.Subtotal)
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "cart item added",
		"customer_id", customerID, "product_id", productID, "quantity", item.Quantity)
	return item, nil
}

// RemoveProduct drops the product's line from the cart. Removing a product
// that is not in the cart, or from a customer without a cart, is a no-op.
func (e *CartEngine) RemoveProduct(ctx context.Context, customerID, productID int64) error {
	return e.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		cart, err := repos.Carts().GetCartByCustomer(ctx, customerID)
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return repos.Carts().DeleteItem(ctx, cart.ID, productID)
	})
}

// Checkout turns the cart into a pending order: one order item per cart line,
// priced at the product's discount at this instant, and leaves the cart empty.
// An empty cart yields domain.ErrEmptyCart and no order.
func (e *CartEngine) Checkout(ctx context.Context, customerID int64) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "CartEngine.Checkout")
	defer span.End()
	span.SetAttributes(attribute.Int64("customer.id", customerID))

	var order *domain.Order
	err := e.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		cart, err := repos.Carts().GetCartByCustomer(ctx, customerID)
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.ErrEmptyCart
		}
		if err != nil {
			return err
		}
		items, err := repos.Carts().ListItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		order = &domain.Order{ID: newID(), CustomerID: customerID, Status: domain.OrderPending}
		if err := repos.Orders().CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, it := range items {
			oi := domain.NewOrderItem(order.ID, it)
			if err := repos.Orders().AddOrderItem(ctx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}
		return repos.Carts().ClearItems(ctx, cart.ID)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyCart) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "checkout failed")
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int("order.items", len(order.Items)))
	slog.InfoContext(ctx, "cart checked out", "customer_id", customerID, "order_id", order.ID, "items", len(order.Items))
	return order, nil
}

// Restore undoes a checkout whose payment did not go through: the order's
// lines go back into the customer's cart and the order is cancelled. Orders
// that are no longer pending are left untouched.
func (e *CartEngine) Restore(ctx context.Context, orderID string) error {
	return e.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		order, err := repos.Orders().GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderPending {
			return nil
		}
		cart, err := ensureCart(ctx, repos, order.CustomerID)
		if err != nil {
			return err
		}
		for _, it := range order.Items {
			total, err := repos.Carts().IncrementItem(ctx, cart.ID, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			line := domain.CartItem{Quantity: total}
			line.Reprice(it.Product.Price)
			if err := repos.Carts().SetItemSubtotal(ctx, cart.ID, it.ProductID, line.Subtotal); err != nil {
				return err
			}
		}
		return repos.Orders().UpdateOrderStatus(ctx, order.ID, domain.OrderCancelled, false)
	})
}

func quantityTooLarge() error {
	v := domain.NewValidationError()
	v.Add("quantity", fmt.Sprintf("must be at most %d", domain.MaxItemQuantity))
	return v
}
