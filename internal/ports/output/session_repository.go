package output

import (
	"context"

	"talkpro/internal/domain"

	"github.com/google/uuid"
)

// SessionRepository interface - Output port
// Durable archive of completed interview sessions.
type SessionRepository interface {
	SaveSession(ctx context.Context, record *domain.SessionRecord) error
	ListSessions(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error)
	// GetSession returns domain.ErrNotFound when no record exists
	GetSession(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}
