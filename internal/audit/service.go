package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/tilly/internal/session"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=audit
type Repository interface {
	AppendEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context) ([]*Entry, error)
	ListEntriesByEntityType(ctx context.Context, entityType string) ([]*Entry, error)
	ListEntriesByEntity(ctx context.Context, entityType string, entityID int64) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an audit entry. It never returns an error: the trail is
// best-effort and must not abort the business operation it describes, so
// storage failures are only reported to the operational log.
func (s *Service) Record(ctx context.Context, actor session.Actor, action, entityType string, entityID int64, oldValue, newValue *string) {
	e := &Entry{
		UserID:     actor.ID,
		Username:   actor.Username,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   oldValue,
		NewValue:   newValue,
		Timestamp:  time.Now(),
	}
	if e.Username == "" {
		e.Username = session.System.Username
	}

	if err := s.repo.AppendEntry(ctx, e); err != nil {
		slog.Error("failed to record audit entry",
			"action", action, "entity_type", entityType, "entity_id", entityID, "error", err)
	}
}

func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.repo.ListEntries(ctx)
}

func (s *Service) ListByEntityType(ctx context.Context, entityType string) ([]*Entry, error) {
	return s.repo.ListEntriesByEntityType(ctx, entityType)
}

func (s *Service) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]*Entry, error) {
	return s.repo.ListEntriesByEntity(ctx, entityType, entityID)
}
