// Package analytics derives dashboard figures from the sale ledger.
// Everything is computed from the stored sale rows on each request;
// totals sum the snapshotted total_price, never current product prices.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/MrJamesThe3rd/tilly/internal/sale"
)

//go:generate mockgen -source=service.go -destination=ledger_mock.go -package=analytics
type Ledger interface {
	List(ctx context.Context) ([]*sale.Sale, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]*sale.Sale, error)
}

type Service struct {
	ledger Ledger
}

func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

type Totals struct {
	Count   int
	Units   int64
	Revenue int64
}

type ProductUnits struct {
	ProductID int64
	Name      string
	Units     int64
}

type CategoryShare struct {
	Category string
	Units    int64
	Percent  float64
}

func (s *Service) Totals(ctx context.Context) (Totals, error) {
	sales, err := s.ledger.List(ctx)
	if err != nil {
		return Totals{}, err
	}

	return sumTotals(sales), nil
}

func (s *Service) TotalsBetween(ctx context.Context, start, end time.Time) (Totals, error) {
	sales, err := s.ledger.ListBetween(ctx, start, end)
	if err != nil {
		return Totals{}, err
	}

	return sumTotals(sales), nil
}

// Today returns the local-time window for the current day, midnight
// through 23:59:59.
func Today() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	return start, end
}

// TopProducts ranks products by total units sold, descending, limited to
// n. Sales whose product has been deleted are grouped under "Unknown".
func (s *Service) TopProducts(ctx context.Context, n int) ([]ProductUnits, error) {
	sales, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	units := make(map[int64]int64)
	names := make(map[int64]string)

	for _, sl := range sales {
		units[sl.ProductID] += sl.Quantity
		if _, ok := names[sl.ProductID]; !ok {
			names[sl.ProductID] = sl.ProductName
		}
	}

	ranked := make([]ProductUnits, 0, len(units))

	for id, u := range units {
		name := names[id]
		if name == "" {
			name = "Unknown"
		}

		ranked = append(ranked, ProductUnits{ProductID: id, Name: name, Units: u})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Units != ranked[j].Units {
			return ranked[i].Units > ranked[j].Units
		}

		return ranked[i].Name < ranked[j].Name
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked, nil
}

// CategoryShares reports each category's share of all units sold.
// Sales without a category (deleted product) are left out.
func (s *Service) CategoryShares(ctx context.Context) ([]CategoryShare, error) {
	sales, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	units := make(map[string]int64)

	var total int64

	for _, sl := range sales {
		if sl.Category == "" {
			continue
		}

		units[sl.Category] += sl.Quantity
		total += sl.Quantity
	}

	if total == 0 {
		return nil, nil
	}

	shares := make([]CategoryShare, 0, len(units))

	for category, u := range units {
		shares = append(shares, CategoryShare{
			Category: category,
			Units:    u,
			Percent:  float64(u) * 100.0 / float64(total),
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Units != shares[j].Units {
			return shares[i].Units > shares[j].Units
		}

		return shares[i].Category < shares[j].Category
	})

	return shares, nil
}

func sumTotals(sales []*sale.Sale) Totals {
	t := Totals{Count: len(sales)}

	for _, sl := range sales {
		t.Units += sl.Quantity
		t.Revenue += sl.TotalPrice
	}

	return t
}
