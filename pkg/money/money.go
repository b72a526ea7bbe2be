package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is the monetary type used across the catalog and quote pipeline.
// Prices are whole Chilean pesos, so amounts carry no decimal places.
type Amount = decimal.Decimal

// Zero is the additive identity for totals.
var Zero = decimal.Zero

// FromInt builds an Amount from a whole-peso value.
func FromInt(value int64) Amount {
	return decimal.NewFromInt(value)
}

// Mul multiplies a unit price by a quantity.
func Mul(price Amount, qty int) Amount {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// Format renders an amount with dot thousands separators and no decimals,
// e.g. 2600 -> "2.600". This is the grouping customers see in quote messages.
func Format(amount Amount) string {
	negative := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ".")
	if negative {
		return "-" + out
	}
	return out
}

// FormatCurrency prefixes the grouped amount with the peso sign.
func FormatCurrency(amount Amount) string {
	return "$" + Format(amount)
}
