package supplier

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a price-list amount into cents. Vendors send both
// European ("1.234,56") and plain ("1234.56") formats.
func parseAmount(s string) (int64, error) {
	clean := s
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
