// Package money centralizes cart arithmetic and display formatting.
// All amounts are shopspring decimals so half-price units of odd prices
// do not lose tiyn precision.
package money

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Zero is the canonical empty amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// FromInt builds an amount from a whole sum.
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// PercentOff reduces amount by the given percent (0-100).
// Out-of-range percents are clamped rather than rejected.
func PercentOff(amount, percent decimal.Decimal) decimal.Decimal {
	if percent.IsNegative() {
		return amount
	}
	if percent.GreaterThan(hundred) {
		percent = hundred
	}
	return amount.Sub(amount.Mul(percent).Div(hundred))
}

// Half returns the amount at half price.
func Half(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(2))
}

var display = accounting.Accounting{Symbol: "", Precision: 0, Thousand: " ", Decimal: ","}

// Format renders an amount as a grouped-digit display string ("1 250 000").
func Format(amount decimal.Decimal) string {
	return display.FormatMoney(amount)
}

var tenge = accounting.Accounting{Symbol: "₸", Precision: 0, Thousand: " ", Decimal: ",", Format: "%v %s"}

// FormatTenge renders an amount with the currency sign ("1 250 000 ₸").
func FormatTenge(amount decimal.Decimal) string {
	return tenge.FormatMoney(amount)
}
