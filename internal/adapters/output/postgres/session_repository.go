package postgres

import (
	"context"
	"errors"
	"fmt"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure SessionRepository implements the output port
var _ output.SessionRepository = (*SessionRepository)(nil)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SessionRepository struct - Secondary/Driven adapter archiving interview sessions through gorm.
// Works on PostgreSQL and SQLite connections alike.
type SessionRepository struct {
	dbGorm *gorm.DB
}

// NewSessionRepository func - Creates the repository and migrates the history schema
func NewSessionRepository(dbGorm *gorm.DB) *SessionRepository {
	logrus.Info("Migrate database ...")
	if err := domain.MigrateDatabase(dbGorm); err != nil {
		logrus.Errorln(err)
	}
	return &SessionRepository{
		dbGorm: dbGorm,
	}
}

// SaveSession func - Inserts the record, or replaces it when the id already exists
func (p *SessionRepository) SaveSession(ctx context.Context, record *domain.SessionRecord) error {
	err := p.dbGorm.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(record).Error
	if err != nil {
		logrus.Errorln(err)
		return fmt.Errorf("save session %s: %w", record.ID, err)
	}
	return nil
}

// ListSessions func - One page of the user's sessions, newest first
func (p *SessionRepository) ListSessions(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
	var (
		records []domain.SessionRecord
		total   int64
	)

	tx := p.dbGorm.WithContext(ctx).Model(&domain.SessionRecord{}).Where(p.condition(query))
	if err := tx.Count(&total).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := query.Skip
	if offset < 0 {
		offset = 0
	}

	err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	return &domain.HistoryPage{Records: records, Total: total}, nil
}

func (p *SessionRepository) condition(query domain.HistoryQuery) map[string]interface{} {
	expression := map[string]interface{}{
		"user_id": query.UserID,
	}
	if query.Kind != nil {
		expression["type"] = string(*query.Kind)
	}
	return expression
}

// GetSession func - Loads one archived session
func (p *SessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error) {
	var record domain.SessionRecord
	err := p.dbGorm.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return &record, nil
}

// DeleteSession func - Removes one archived session
func (p *SessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tx := p.dbGorm.WithContext(ctx).Where("id = ?", id).Delete(&domain.SessionRecord{})
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return nil
}

// Ping func - Checks the database connection
func (p *SessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
