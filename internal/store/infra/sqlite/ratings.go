package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type ratingRepo struct {
	q querier
}

// UpsertRating stores one rating per (product, customer); rating again
// replaces the score.
func (r ratingRepo) UpsertRating(ctx context.Context, rt *domain.Rating) error {
	if rt.CreatedAt.IsZero() {
		rt.CreatedAt = time.Now().UTC()
	}
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO ratings (product_id, customer_id, score, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (product_id, customer_id) DO UPDATE SET score = excluded.score
		RETURNING id`,
		rt.ProductID, rt.CustomerID, rt.Score, FormatTime(rt.CreatedAt),
	).Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("sqlite: rate product %d: %w", rt.ProductID, err)
	}
	return nil
}

func (r ratingRepo) DeleteRating(ctx context.Context, productID, customerID int64) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM ratings WHERE product_id = ? AND customer_id = ?`, productID, customerID)
	if err != nil {
		return false, fmt.Errorf("sqlite: delete rating of product %d: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r ratingRepo) ListScores(ctx context.Context, productID int64) ([]int, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT score FROM ratings WHERE product_id = ?`, productID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list scores of product %d: %w", productID, err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
