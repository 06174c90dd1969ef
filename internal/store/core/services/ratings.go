package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

// Ratings records customer scores and keeps each product's average_rating in
// step with them. The average is recomputed in the same transaction as the
// rating change.
type Ratings struct {
	store   ports.UnitOfWork
	catalog *Catalog
}

func NewRatings(store ports.UnitOfWork, catalog *Catalog) *Ratings {
	return &Ratings{store: store, catalog: catalog}
}

// Rate records or replaces the customer's score for a product and returns the
// new average.
func (r *Ratings) Rate(ctx context.Context, customerID, productID int64, score int) (decimal.Decimal, error) {
	if err := domain.ValidateScore(score); err != nil {
		return decimal.Zero, err
	}
	var avg decimal.Decimal
	err := r.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Products().GetProduct(ctx, productID); err != nil {
			return err
		}
		rt := &domain.Rating{ProductID: productID, CustomerID: customerID, Score: score}
		if err := repos.Ratings().UpsertRating(ctx, rt); err != nil {
			return err
		}
		var err error
		avg, err = recomputeAverage(ctx, repos, productID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	r.catalog.Invalidate(ctx, productID)
	return avg, nil
}

// Unrate removes the customer's score; removing a missing rating still
// returns the current average.
func (r *Ratings) Unrate(ctx context.Context, customerID, productID int64) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := r.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Products().GetProduct(ctx, productID); err != nil {
			return err
		}
		if _, err := repos.Ratings().DeleteRating(ctx, productID, customerID); err != nil {
			return err
		}
		var err error
		avg, err = recomputeAverage(ctx, repos, productID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	r.catalog.Invalidate(ctx, productID)
	return avg, nil
}

func recomputeAverage(ctx context.Context, repos ports.Repositories, productID int64) (decimal.Decimal, error) {
	scores, err := repos.Ratings().ListScores(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	avg := domain.AverageRating(scores)
	if err := repos.Products().SetAverageRating(ctx, productID, avg); err != nil {
		return decimal.Zero, err
	}
	return avg, nil
}
