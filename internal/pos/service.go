// Package pos coordinates sale recording and reversal so that the sale
// ledger and product stock stay consistent.
package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/money"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
	"github.com/MrJamesThe3rd/tilly/internal/session"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=pos
type Repository interface {
	BeginSale(ctx context.Context) (SaleTx, error)
}

// SaleTx is one storage transaction over the ledger and the catalog.
// Nothing is visible to other readers until Commit.
type SaleTx interface {
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
	InsertSale(ctx context.Context, sl *sale.Sale) error

	// AdjustStock adds delta to the product's quantity, refusing to go
	// negative. It reports false when no row changed, either because the
	// product is gone or because the decrement would oversell.
	AdjustStock(ctx context.Context, productID, delta int64) (bool, error)

	GetSale(ctx context.Context, id int64) (*sale.Sale, error)
	DeleteSale(ctx context.Context, id int64) error

	Commit() error
	Rollback() error
}

// Auditor records the trail entry after the transaction commits. The
// append is best-effort and never fails the sale.
type Auditor interface {
	Record(ctx context.Context, actor session.Actor, action, entityType string, entityID int64, oldValue, newValue *string)
}

type Service struct {
	repo    Repository
	auditor Auditor
}

func NewService(repo Repository, auditor Auditor) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// RecordSale sells quantity units of the product on behalf of actor.
// The total is snapshotted from the product's current selling price; the
// ledger insert and the stock decrement happen in one transaction, so a
// failure of either leaves both untouched.
func (s *Service) RecordSale(ctx context.Context, actor session.Actor, productID, quantity int64) (*sale.Sale, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx, err := s.repo.BeginSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning sale: %w", err)
	}
	defer tx.Rollback()

	p, err := tx.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if quantity > p.Quantity {
		return nil, &InsufficientStockError{ProductID: productID, Requested: quantity, Available: p.Quantity}
	}

	sl := &sale.Sale{
		ProductID:   productID,
		Quantity:    quantity,
		TotalPrice:  quantity * p.SellingPrice,
		SaleDate:    time.Now(),
		UserID:      actor.ID,
		ProductName: p.Name,
		Category:    p.Category,
	}
	if err := tx.InsertSale(ctx, sl); err != nil {
		return nil, fmt.Errorf("inserting sale: %w", err)
	}

	// The conditional decrement re-checks quantity inside the transaction,
	// so a concurrent sale of the same product cannot oversell.
	ok, err := tx.AdjustStock(ctx, productID, -quantity)
	if err != nil {
		return nil, fmt.Errorf("decrementing stock: %w", err)
	}

	if !ok {
		return nil, &InsufficientStockError{ProductID: productID, Requested: quantity, Available: p.Quantity}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing sale: %w", err)
	}

	s.auditor.Record(ctx, actor, audit.ActionCreate, audit.EntityTypeSale, sl.ID, nil, new(saleSummary(sl)))

	return sl, nil
}

// DeleteSale reverses a recorded sale: stock is restored and the ledger
// row removed in one transaction. Restoration is skipped silently when
// the product no longer exists. Returns sale.ErrNotFound for an unknown
// sale id.
func (s *Service) DeleteSale(ctx context.Context, actor session.Actor, saleID int64) error {
	tx, err := s.repo.BeginSale(ctx)
	if err != nil {
		return fmt.Errorf("beginning sale deletion: %w", err)
	}
	defer tx.Rollback()

	sl, err := tx.GetSale(ctx, saleID)
	if err != nil {
		return err
	}

	// Restore before delete: if restoration fails, the sale row survives
	// as the recoverable reference.
	if _, err := tx.AdjustStock(ctx, sl.ProductID, sl.Quantity); err != nil {
		return fmt.Errorf("restoring stock: %w", err)
	}

	if err := tx.DeleteSale(ctx, saleID); err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sale deletion: %w", err)
	}

	s.auditor.Record(ctx, actor, audit.ActionDelete, audit.EntityTypeSale, saleID, new(saleSummary(sl)), nil)

	return nil
}

func saleSummary(sl *sale.Sale) string {
	name := sl.ProductName
	if name == "" {
		name = "Unknown"
	}

	return fmt.Sprintf("product=%s (id %d) qty=%d total=%s",
		name, sl.ProductID, sl.Quantity, money.FormatCents(sl.TotalPrice))
}
