package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
	"github.com/MrJamesThe3rd/tilly/internal/session"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// Auditor records mutating actions; implementations must be best-effort
// and never fail the caller.
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

type CreateParams struct {
	Name         string
	Description  string
	CostPrice    int64
	SellingPrice int64
	Quantity     int64
	Category     string
	Supplier     string
	ExpiryDate   *time.Time
}

func (params CreateParams) validate() error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrEmptyName
	}

	if params.CostPrice < 0 || params.SellingPrice < 0 || params.Quantity < 0 {
		return ErrNegativeAmount
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// LowStock returns products whose quantity is at or below the threshold.
func (s *Service) LowStock(ctx context.Context, threshold int64) ([]*Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]*Product, 0, len(products))

	for _, p := range products {
		if p.Quantity <= threshold {
			low = append(low, p)
		}
	}

	return low, nil
}

func (s *Service) Create(ctx context.Context, actor session.Actor, params CreateParams) (*Product, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	p := &Product{
		Name:         params.Name,
		Description:  params.Description,
		CostPrice:    params.CostPrice,
		SellingPrice: params.SellingPrice,
		Quantity:     params.Quantity,
		Category:     params.Category,
		Supplier:     params.Supplier,
		ExpiryDate:   params.ExpiryDate,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, actor, audit.ActionCreate, audit.EntityTypeProduct, p.ID, nil, new(p.Snapshot()))

	return p, nil
}

// Update replaces the product by id and records old/new snapshots.
func (s *Service) Update(ctx context.Context, actor session.Actor, p *Product) error {
	if err := (CreateParams{
		Name:         p.Name,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Quantity:     p.Quantity,
	}).validate(); err != nil {
		return err
	}

	old, err := s.repo.GetProduct(ctx, p.ID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return err
	}

	s.auditor.Record(ctx, actor, audit.ActionUpdate, audit.EntityTypeProduct, p.ID, new(old.Snapshot()), new(p.Snapshot()))

	return nil
}

// Delete removes the product unconditionally. Historical sales keep their
// reference and fall back to an unknown product on display.
func (s *Service) Delete(ctx context.Context, actor session.Actor, id int64) error {
	old, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, actor, audit.ActionDelete, audit.EntityTypeProduct, id, new(old.Snapshot()), nil)

	return nil
}
