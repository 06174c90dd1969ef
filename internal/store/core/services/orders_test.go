package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
)

func TestOrderEngineGetIsCustomerScoped(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	ada := newCustomer(t, store, "ada")
	bob := newCustomer(t, store, "bob")
	suit := newProduct(t, store, "Suit", "250.00", domain.CategorySuits, 10)
	carts := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)

	_, err := carts.AddProduct(ctx, ada.ID, suit.ID, 1)
	require.NoError(t, err)
	order, err := carts.Checkout(ctx, ada.ID)
	require.NoError(t, err)

	got, err := orders.Get(ctx, ada.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "225.00", orders.GetTotal(got).StringFixed(2))

	_, err = orders.Get(ctx, bob.ID, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = orders.Get(ctx, ada.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderTotalFollowsLiveDiscount(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	ada := newCustomer(t, store, "ada")
	shirt := newProduct(t, store, "Shirt", "100.00", domain.CategoryShirts, 20)
	carts := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)
	catalog := services.NewCatalog(store, nil, 0)

	_, err := carts.AddProduct(ctx, ada.ID, shirt.ID, 3)
	require.NoError(t, err)
	order, err := carts.Checkout(ctx, ada.ID)
	require.NoError(t, err)

	shirt.DiscountPercentage = 50
	require.NoError(t, catalog.UpdateProduct(ctx, shirt))

	got, err := orders.Get(ctx, ada.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.00", orders.GetTotal(got).StringFixed(2))
	assert.Equal(t, "240.00", got.FrozenTotal().StringFixed(2))
}

func TestOrderConfirmAndCancel(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	ada := newCustomer(t, store, "ada")
	tie := newProduct(t, store, "Tie", "15.00", domain.CategoryNeckwear, 0)
	carts := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)

	_, err := carts.AddProduct(ctx, ada.ID, tie.ID, 1)
	require.NoError(t, err)
	order, err := carts.Checkout(ctx, ada.ID)
	require.NoError(t, err)

	require.NoError(t, orders.Confirm(ctx, order.ID))
	got, err := orders.Get(ctx, ada.ID, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOrdered)
	assert.Equal(t, domain.OrderConfirmed, got.Status)

	assert.ErrorIs(t, orders.Cancel(ctx, "missing"), domain.ErrOrderNotFound)
}
