package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tilly/internal/sale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanSale reads a sale row joined with its product's display fields.
// The join is tolerant: a deleted product leaves name/category empty.
func scanSale(s scanner) (*sale.Sale, error) {
	var sl sale.Sale

	var name, category sql.NullString

	if err := s.Scan(
		&sl.ID, &sl.ProductID, &sl.Quantity, &sl.TotalPrice, &sl.SaleDate, &sl.UserID,
		&name, &category,
	); err != nil {
		return nil, err
	}

	sl.ProductName = name.String
	sl.Category = category.String

	return &sl, nil
}

const selectSaleColumns = `
	s.id, s.product_id, s.quantity, s.total_price, s.sale_date, s.user_id,
	p.name AS product_name, p.category
`

func (s *Store) ListSales(ctx context.Context) ([]*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + `
		FROM sales s
		LEFT JOIN products p ON s.product_id = p.id
		ORDER BY s.sale_date DESC, s.id DESC`

	return s.querySales(ctx, query)
}

func (s *Store) ListSalesBetween(ctx context.Context, start, end time.Time) ([]*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + `
		FROM sales s
		LEFT JOIN products p ON s.product_id = p.id
		WHERE s.sale_date >= ? AND s.sale_date <= ?
		ORDER BY s.sale_date DESC, s.id DESC`

	return s.querySales(ctx, query, start, end)
}

func (s *Store) GetSale(ctx context.Context, id int64) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + `
		FROM sales s
		LEFT JOIN products p ON s.product_id = p.id
		WHERE s.id = ?`

	sl, err := scanSale(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	return sl, nil
}

func (s *Store) querySales(ctx context.Context, query string, args ...any) ([]*sale.Sale, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale

	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, sl)
	}

	return sales, rows.Err()
}
