package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
)

func TestRatingsMaintainAverage(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	shoe := newProduct(t, store, "Loafer", "90.00", domain.CategoryShoes, 0)
	a := newCustomer(t, store, "a")
	b := newCustomer(t, store, "b")
	c := newCustomer(t, store, "c")
	catalog := services.NewCatalog(store, nil, 0)
	ratings := services.NewRatings(store, catalog)

	for _, r := range []struct {
		customer int64
		score    int
	}{{a.ID, 4}, {b.ID, 5}, {c.ID, 3}} {
		_, err := ratings.Rate(ctx, r.customer, shoe.ID, r.score)
		require.NoError(t, err)
	}

	p, err := catalog.GetProduct(ctx, shoe.ID)
	require.NoError(t, err)
	assert.Equal(t, "4.00", p.AverageRating.StringFixed(2))

	avg, err := ratings.Unrate(ctx, c.ID, shoe.ID)
	require.NoError(t, err)
	assert.Equal(t, "4.50", avg.StringFixed(2))

	p, err = catalog.GetProduct(ctx, shoe.ID)
	require.NoError(t, err)
	assert.Equal(t, "4.50", p.AverageRating.StringFixed(2))
}

func TestRateAgainReplacesScore(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	shoe := newProduct(t, store, "Loafer", "90.00", domain.CategoryShoes, 0)
	a := newCustomer(t, store, "a")
	ratings := services.NewRatings(store, services.NewCatalog(store, nil, 0))

	_, err := ratings.Rate(ctx, a.ID, shoe.ID, 2)
	require.NoError(t, err)
	avg, err := ratings.Rate(ctx, a.ID, shoe.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "5.00", avg.StringFixed(2))

	avg, err = ratings.Unrate(ctx, a.ID, shoe.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", avg.StringFixed(2), "no ratings left")
}

func TestRateValidation(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	a := newCustomer(t, store, "a")
	ratings := services.NewRatings(store, services.NewCatalog(store, nil, 0))

	_, err := ratings.Rate(ctx, a.ID, 1, 6)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = ratings.Rate(ctx, a.ID, 404, 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
