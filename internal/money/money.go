// Package money converts between integer cents (the stored representation)
// and decimal strings shown to the operator.
package money

import (
	"github.com/shopspring/decimal"
)

// FormatCents renders cents as a plain decimal string, e.g. 4995 -> "49.95".
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// ParseCents parses a decimal amount such as "9.99" into cents.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
