package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tilly/internal/money"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrEmptyName      = errors.New("product name cannot be empty")
	ErrNegativeAmount = errors.New("prices and quantity cannot be negative")
)

// Product is an inventory record. Prices are stored in cents; Quantity is
// the units on hand and never goes negative through the sale flow.
type Product struct {
	ID           int64
	Name         string
	Description  string
	CostPrice    int64
	SellingPrice int64
	Quantity     int64
	Category     string
	Supplier     string
	ExpiryDate   *time.Time
}

// Snapshot renders the fields that matter for the audit trail.
func (p *Product) Snapshot() string {
	return fmt.Sprintf("name=%s category=%s cost=%s price=%s qty=%d",
		p.Name, p.Category,
		money.FormatCents(p.CostPrice), money.FormatCents(p.SellingPrice),
		p.Quantity)
}
