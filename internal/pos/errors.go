package pos

import (
	"errors"
	"fmt"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// InsufficientStockError carries the available count so the caller can
// tell the operator how many units can still be sold.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, only %d available",
		e.ProductID, e.Requested, e.Available)
}
