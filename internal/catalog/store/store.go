package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*catalog.Product, error) {
	var p catalog.Product

	var expiry sql.NullTime

	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.CostPrice, &p.SellingPrice,
		&p.Quantity, &p.Category, &p.Supplier, &expiry,
	); err != nil {
		return nil, err
	}

	if expiry.Valid {
		p.ExpiryDate = &expiry.Time
	}

	return &p, nil
}

const selectProductColumns = `id, name, description, cost_price, selling_price, quantity, category, supplier, expiry_date`

func (s *Store) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		INSERT INTO products (name, description, cost_price, selling_price, quantity, category, supplier, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.Description,
		p.CostPrice,
		p.SellingPrice,
		p.Quantity,
		p.Category,
		p.Supplier,
		p.ExpiryDate,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, cost_price = ?, selling_price = ?,
			quantity = ?, category = ?, supplier = ?, expiry_date = ?
		WHERE id = ?
	`

	_, err := s.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		p.CostPrice,
		p.SellingPrice,
		p.Quantity,
		p.Category,
		p.Supplier,
		p.ExpiryDate,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = ?`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}
