package sqlite

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

// TimeLayout is fixed width so that TEXT ordering matches time ordering.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t as UTC TEXT in TimeLayout. SQLite has no native
// datetime type.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp. It accepts any RFC3339 form, including
// rows written before the layout was fixed width.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}

// Currency is stored as fixed-point TEXT with two fractional digits.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(domain.CurrencyPlaces)
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sqlite: parse amount %q: %w", s, err)
	}
	return d, nil
}

func domainCategories() []domain.CategoryName {
	return domain.Categories()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
