package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valid score range for a rating.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

type Rating struct {
	ID         int64
	ProductID  int64
	CustomerID int64
	Score      int
	CreatedAt  time.Time
}

func ValidateScore(score int) error {
	if score < MinRatingScore || score > MaxRatingScore {
		v := NewValidationError()
		v.Add("score", "must be between 1 and 5")
		return v
	}
	return nil
}

// AverageRating is the mean of scores rounded half-up to two places, or zero
// when there are no scores.
func AverageRating(scores []int) decimal.Decimal {
	if len(scores) == 0 {
		return decimal.Zero
	}
	var sum int64
	for _, s := range scores {
		sum += int64(s)
	}
	return decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(len(scores)))).
		Round(2)
}
