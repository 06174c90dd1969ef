package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CurrencyPlaces is the number of fractional digits kept for stored amounts.
const CurrencyPlaces = 2

// DiscountedPrice computes price * (100 - pct) / 100 exactly. The result may
// carry up to four fractional digits; callers round when persisting.
func DiscountedPrice(price decimal.Decimal, pct int) decimal.Decimal {
	if pct <= 0 {
		return price
	}
	if pct >= 100 {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(100 - pct))).Div(hundred)
}

// LineTotal multiplies a unit price by a quantity.
func LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// RoundCurrency rounds half-up (away from zero) to CurrencyPlaces.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// MinorUnits converts an amount to the integer cents payment rails expect.
func MinorUnits(d decimal.Decimal) int64 {
	return RoundCurrency(d).Shift(CurrencyPlaces).IntPart()
}
