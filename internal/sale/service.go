package sale

import (
	"context"
	"time"
)

// The ledger's read surface. Sales are only ever written and removed
// through the pos coordinator's transaction, so no mutating operations
// are exposed here.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	ListSales(ctx context.Context) ([]*Sale, error)
	ListSalesBetween(ctx context.Context, start, end time.Time) ([]*Sale, error)
	GetSale(ctx context.Context, id int64) (*Sale, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Sale, error) {
	return s.repo.ListSales(ctx)
}

// ListBetween returns sales with start <= sale_date <= end, both ends
// inclusive.
func (s *Service) ListBetween(ctx context.Context, start, end time.Time) ([]*Sale, error) {
	return s.repo.ListSalesBetween(ctx, start, end)
}

func (s *Service) Get(ctx context.Context, id int64) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}
