package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
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

func scanEntry(s scanner) (*audit.Entry, error) {
	var e audit.Entry

	var oldValue, newValue sql.NullString

	if err := s.Scan(
		&e.ID, &e.UserID, &e.Username, &e.Action, &e.EntityType, &e.EntityID,
		&oldValue, &newValue, &e.Timestamp,
	); err != nil {
		return nil, err
	}

	if oldValue.Valid {
		e.OldValue = &oldValue.String
	}

	if newValue.Valid {
		e.NewValue = &newValue.String
	}

	return &e, nil
}

const selectEntryColumns = `id, user_id, username, action, entity_type, entity_id, old_value, new_value, timestamp`

func (s *Store) AppendEntry(ctx context.Context, e *audit.Entry) error {
	query := `
		INSERT INTO audit_logs (user_id, username, action, entity_type, entity_id, old_value, new_value, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.Username,
		e.Action,
		e.EntityType,
		e.EntityID,
		e.OldValue,
		e.NewValue,
		e.Timestamp,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context) ([]*audit.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM audit_logs ORDER BY timestamp DESC, id DESC`

	return s.queryEntries(ctx, query)
}

func (s *Store) ListEntriesByEntityType(ctx context.Context, entityType string) ([]*audit.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM audit_logs
		WHERE entity_type = ? ORDER BY timestamp DESC, id DESC`

	return s.queryEntries(ctx, query, entityType)
}

func (s *Store) ListEntriesByEntity(ctx context.Context, entityType string, entityID int64) ([]*audit.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM audit_logs
		WHERE entity_type = ? AND entity_id = ? ORDER BY timestamp DESC, id DESC`

	return s.queryEntries(ctx, query, entityType, entityID)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]*audit.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
