package input

import (
	"context"

	"talkpro/internal/domain"

	"github.com/google/uuid"
)

// HistoryService interface - Input port (use case)
// Read and delete archived sessions of the calling user.
type HistoryService interface {
	ListHistory(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error)
	GetHistory(ctx context.Context, userID string, id uuid.UUID) (*domain.SessionRecord, error)
	DeleteHistory(ctx context.Context, userID string, id uuid.UUID) error
	Healthy(ctx context.Context) error
}
