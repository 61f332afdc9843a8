package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionRecord is an archived interview session
type SessionRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"type:varchar(128);not null;index" json:"user_id"`
	Type       InterviewKind  `gorm:"type:varchar(32);not null;index" json:"type"`
	QuestionID *string        `gorm:"type:varchar(128)" json:"question_id,omitempty"`
	ScenarioID *string        `gorm:"type:varchar(128)" json:"scenario_id,omitempty"`
	Messages   datatypes.JSON `gorm:"type:jsonb" json:"messages"`
	Score      datatypes.JSON `gorm:"type:jsonb" json:"score,omitempty"`
	Feedback   string         `gorm:"type:text" json:"feedback,omitempty"`
	Status     SessionStatus  `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	EndedAt    *time.Time     `json:"ended_at,omitempty"`
}

// TableName func
func (SessionRecord) TableName() string {
	return "interview_sessions"
}

// BeforeCreate hook - assigns an id when the record has none
func (r *SessionRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewSessionRecord converts a live session into its archived form
func NewSessionRecord(s *InterviewSession) (*SessionRecord, error) {
	messages, err := json.Marshal(s.Transcript)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	record := &SessionRecord{
		ID:        s.ID,
		UserID:    s.UserID,
		Type:      s.Kind,
		Messages:  datatypes.JSON(messages),
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		EndedAt:   s.CompletedAt,
	}
	seed := s.SeedID
	if s.Kind == KindAlgorithm {
		record.QuestionID = &seed
	} else {
		record.ScenarioID = &seed
	}
	if s.Report != nil {
		score, err := json.Marshal(s.Report)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		record.Score = datatypes.JSON(score)
		record.Feedback = s.Report.Feedback
	}
	return record, nil
}

// HistoryQuery filters archived sessions of one user
type HistoryQuery struct {
	UserID string
	Kind   *InterviewKind
	Skip   int
	Limit  int
}

// HistoryPage is one page of archived sessions, newest first
type HistoryPage struct {
	Records []SessionRecord
	Total   int64
}

// MigrateDatabase func - Auto-migrate the history schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: no database connection")
	}
	return db.AutoMigrate(&SessionRecord{})
}
