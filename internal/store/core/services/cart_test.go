package services_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
)

func TestAddProductMergesQuantities(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	shirt := newProduct(t, store, "Oxford shirt", "45.50", domain.CategoryShirts, 0)
	engine := services.NewCartEngine(store)

	var item *domain.CartItem
	var err error
	for _, q := range []int{1, 2, 4} {
		item, err = engine.AddProduct(ctx, c.ID, shirt.ID, q)
		require.NoError(t, err)
	}
	assert.Equal(t, 7, item.Quantity)
	assert.Equal(t, "318.50", item.Subtotal.StringFixed(2))

	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "one line per product")
	assert.Equal(t, 7, cart.Items[0].Quantity)
	assert.Equal(t, "318.50", cart.Items[0].Subtotal.StringFixed(2))
}

func TestAddProductDefaultsAndValidation(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	tie := newProduct(t, store, "Silk tie", "20.00", domain.CategoryNeckwear, 50)
	engine := services.NewCartEngine(store)

	item, err := engine.AddProduct(ctx, c.ID, tie.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "20.00", item.Subtotal.StringFixed(2), "cart subtotal ignores discount")

	_, err = engine.AddProduct(ctx, c.ID, tie.ID, -2)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = engine.AddProduct(ctx, c.ID, 9999, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddProductCapsQuantity(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	tie := newProduct(t, store, "Silk tie", "20.00", domain.CategoryNeckwear, 0)
	engine := services.NewCartEngine(store)

	_, err := engine.AddProduct(ctx, c.ID, tie.ID, math.MaxInt)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")

	_, err = engine.AddProduct(ctx, c.ID, tie.ID, domain.MaxItemQuantity)
	require.NoError(t, err)

	_, err = engine.AddProduct(ctx, c.ID, tie.ID, 1)
	require.ErrorAs(t, err, &verr, "accumulated quantity is capped too")

	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, domain.MaxItemQuantity, cart.Items[0].Quantity)
}

func TestAddProductCreatesCartLazily(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	shoe := newProduct(t, store, "Brogue", "120.00", domain.CategoryShoes, 0)
	engine := services.NewCartEngine(store)

	_, err := engine.GetCart(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)

	_, err = engine.AddProduct(ctx, c.ID, shoe.ID, 1)
	require.NoError(t, err)

	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)

	again, err := engine.CreateCart(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID, "CreateCart is idempotent")
	assert.Len(t, again.Items, 1)
}

func TestRemoveProductIsIdempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	shirt := newProduct(t, store, "Shirt", "30.00", domain.CategoryShirts, 0)
	suit := newProduct(t, store, "Suit", "300.00", domain.CategorySuits, 0)
	engine := services.NewCartEngine(store)

	// no cart yet
	require.NoError(t, engine.RemoveProduct(ctx, c.ID, shirt.ID))

	_, err := engine.AddProduct(ctx, c.ID, suit.ID, 1)
	require.NoError(t, err)

	// product not in cart
	require.NoError(t, engine.RemoveProduct(ctx, c.ID, shirt.ID))
	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	require.NoError(t, engine.RemoveProduct(ctx, c.ID, suit.ID))
	require.NoError(t, engine.RemoveProduct(ctx, c.ID, suit.ID))
	cart, err = engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutCreatesOrderAndEmptiesCart(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	shirt := newProduct(t, store, "Shirt", "100.00", domain.CategoryShirts, 20)
	tie := newProduct(t, store, "Tie", "25.50", domain.CategoryNeckwear, 0)
	engine := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)

	_, err := engine.AddProduct(ctx, c.ID, shirt.ID, 2)
	require.NoError(t, err)
	_, err = engine.AddProduct(ctx, c.ID, shirt.ID, 1)
	require.NoError(t, err)
	_, err = engine.AddProduct(ctx, c.ID, tie.ID, 2)
	require.NoError(t, err)

	order, err := engine.Checkout(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, domain.OrderPending, order.Status)

	bySubtotal := map[int64]string{}
	for _, it := range order.Items {
		bySubtotal[it.ProductID] = it.Subtotal.StringFixed(2)
	}
	assert.Equal(t, "240.00", bySubtotal[shirt.ID])
	assert.Equal(t, "51.00", bySubtotal[tie.ID])

	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "cart is emptied, not deleted")

	list, err := orders.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "291.00", orders.GetTotal(&list[0]).StringFixed(2))
}

func TestCheckoutEmptyCartCreatesNoOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	engine := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)

	_, err := engine.Checkout(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart, "no cart at all")

	_, err = engine.CreateCart(ctx, c.ID)
	require.NoError(t, err)
	_, err = engine.Checkout(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	list, err := orders.List(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCheckoutRollsBackOnFailure(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	shirt := newProduct(t, store, "Shirt", "10.00", domain.CategoryShirts, 0)
	engine := services.NewCartEngine(store)

	_, err := engine.AddProduct(ctx, c.ID, shirt.ID, 3)
	require.NoError(t, err)

	// Break order item inserts so the transaction fails after the order row.
	_, err = store.DB().Exec(`CREATE TRIGGER fail_items BEFORE INSERT ON order_items
		BEGIN SELECT RAISE(ABORT, 'boom'); END`)
	require.NoError(t, err)

	_, err = engine.Checkout(ctx, c.ID)
	require.Error(t, err)

	var n int
	require.NoError(t, store.DB().QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n))
	assert.Zero(t, n, "no partial order")

	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestConcurrentAddProductComposes(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	shirt := newProduct(t, store, "Shirt", "12.00", domain.CategoryShirts, 0)
	engine := services.NewCartEngine(store)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.AddProduct(ctx, c.ID, shirt.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, n, cart.Items[0].Quantity)
	assert.Equal(t, "300.00", cart.Items[0].Subtotal.StringFixed(2))
}

func TestRestoreReturnsItemsAndCancelsOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	c := newCustomer(t, store, "ada")
	shirt := newProduct(t, store, "Shirt", "40.00", domain.CategoryShirts, 25)
	engine := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)

	_, err := engine.AddProduct(ctx, c.ID, shirt.ID, 2)
	require.NoError(t, err)
	order, err := engine.Checkout(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, engine.Restore(ctx, order.ID))

	cart, err := engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "80.00", cart.Items[0].Subtotal.StringFixed(2))

	got, err := orders.Get(ctx, c.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, got.Status)

	// a second restore must not duplicate items
	require.NoError(t, engine.Restore(ctx, order.ID))
	cart, err = engine.GetCart(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}
