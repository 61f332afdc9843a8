package application

import (
	"context"
	"fmt"

	"talkpro/internal/domain"
	"talkpro/internal/ports/input"
	"talkpro/internal/ports/output"

	"github.com/google/uuid"
)

// Compile-time check to ensure HistoryService implements the input port
var _ input.HistoryService = (*HistoryService)(nil)

// HistoryService struct - Application service for archived sessions
type HistoryService struct {
	repo output.SessionRepository
}

// NewHistoryService func - Creates new history service. A nil repository disables history.
func NewHistoryService(repo output.SessionRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// ListHistory func
func (s *HistoryService) ListHistory(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
	if s.repo == nil {
		return nil, domain.ErrHistoryDisabled
	}
	if query.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	return s.repo.ListSessions(ctx, query)
}

// GetHistory func - Loads one archived session of the user
func (s *HistoryService) GetHistory(ctx context.Context, userID string, id uuid.UUID) (*domain.SessionRecord, error) {
	if s.repo == nil {
		return nil, domain.ErrHistoryDisabled
	}
	record, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, fmt.Errorf("%w: session %s", domain.ErrForbidden, id)
	}
	return record, nil
}

// DeleteHistory func - Deletes one archived session of the user
func (s *HistoryService) DeleteHistory(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.GetHistory(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, id)
}

// Healthy func - Pings the history store when one is configured
func (s *HistoryService) Healthy(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Ping(ctx)
}
