package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/pos"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) BeginSale(ctx context.Context) (pos.SaleTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning sale tx: %w", err)
	}

	return &saleTx{tx: dbTx}, nil
}

type saleTx struct {
	tx *sql.Tx
}

func (t *saleTx) Commit() error   { return t.tx.Commit() }
func (t *saleTx) Rollback() error { return t.tx.Rollback() }

func (t *saleTx) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	query := `SELECT id, name, category, selling_price, quantity FROM products WHERE id = ?`

	var p catalog.Product

	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.SellingPrice, &p.Quantity,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return &p, nil
}

func (t *saleTx) InsertSale(ctx context.Context, sl *sale.Sale) error {
	query := `
		INSERT INTO sales (product_id, quantity, total_price, sale_date, user_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	err := t.tx.QueryRowContext(ctx, query,
		sl.ProductID,
		sl.Quantity,
		sl.TotalPrice,
		sl.SaleDate,
		sl.UserID,
	).Scan(&sl.ID)
	if err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	return nil
}

func (t *saleTx) AdjustStock(ctx context.Context, productID, delta int64) (bool, error) {
	query := `
		UPDATE products
		SET quantity = quantity + ?
		WHERE id = ? AND quantity + ? >= 0
	`

	res, err := t.tx.ExecContext(ctx, query, delta, productID, delta)
	if err != nil {
		return false, fmt.Errorf("adjusting stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	return affected > 0, nil
}

func (t *saleTx) GetSale(ctx context.Context, id int64) (*sale.Sale, error) {
	query := `
		SELECT s.id, s.product_id, s.quantity, s.total_price, s.sale_date, s.user_id,
			p.name AS product_name, p.category
		FROM sales s
		LEFT JOIN products p ON s.product_id = p.id
		WHERE s.id = ?
	`

	var sl sale.Sale

	var name, category sql.NullString

	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&sl.ID, &sl.ProductID, &sl.Quantity, &sl.TotalPrice, &sl.SaleDate, &sl.UserID,
		&name, &category,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	sl.ProductName = name.String
	sl.Category = category.String

	return &sl, nil
}

func (t *saleTx) DeleteSale(ctx context.Context, id int64) error {
	query := `DELETE FROM sales WHERE id = ?`

	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	return nil
}
