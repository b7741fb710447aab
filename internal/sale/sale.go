package sale

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("sale not found")

// Sale is one completed sale. TotalPrice is the price snapshot taken at
// sale time (quantity x selling price then) and is never recomputed.
// ProductName and Category are display fields joined from the catalog;
// they are empty when the product has since been deleted.
type Sale struct {
	ID          int64
	ProductID   int64
	Quantity    int64
	TotalPrice  int64
	SaleDate    time.Time
	UserID      int64
	ProductName string
	Category    string
}
