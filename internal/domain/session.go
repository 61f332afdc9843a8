package domain

import (
	"time"

	"github.com/google/uuid"
)

// InterviewSession is the live state of one interview
type InterviewSession struct {
	ID             uuid.UUID
	Kind           InterviewKind
	SeedID         string // question, scenario or persona id
	UserID         string
	Transcript     Transcript
	Status         SessionStatus
	Report         *EvaluationReport
	CreatedAt      time.Time
	CompletedAt    *time.Time
	LastAccessTime time.Time // For idle expiry in the registry
}

// NewInterviewSession creates a SEEDED session whose transcript holds the opening turn
func NewInterviewSession(kind InterviewKind, seedID, userID, opening string) *InterviewSession {
	now := time.Now()
	return &InterviewSession{
		ID:             uuid.New(),
		Kind:           kind,
		SeedID:         seedID,
		UserID:         userID,
		Transcript:     NewTranscript(opening),
		Status:         StatusSeeded,
		CreatedAt:      now,
		LastAccessTime: now,
	}
}

// IsExpired reports whether the session sat idle longer than timeout.
// A non-positive timeout never expires.
func (s *InterviewSession) IsExpired(timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}
	return time.Since(s.LastAccessTime) > timeout
}

// IsCompleted reports whether the session reached its terminal state
func (s *InterviewSession) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// OwnedBy reports whether userID may act on the session
func (s *InterviewSession) OwnedBy(userID string) bool {
	return s.UserID == userID
}

// RecordExchange appends the user turn then the assistant turn and moves the session to IN_PROGRESS.
// A completed session is left untouched and false is returned.
func (s *InterviewSession) RecordExchange(userTurn, assistantTurn string) bool {
	if s.IsCompleted() {
		return false
	}
	s.Transcript.Append(ChatMessageRoleUser, userTurn)
	s.Transcript.Append(ChatMessageRoleAssistant, assistantTurn)
	s.Status = StatusInProgress
	return true
}

// Complete stores the report and marks the session terminal
func (s *InterviewSession) Complete(report *EvaluationReport) {
	now := time.Now()
	s.Report = report
	s.Status = StatusCompleted
	s.CompletedAt = &now
}

// Snapshot returns a copy safe to hand to callers
func (s *InterviewSession) Snapshot() InterviewSession {
	cp := *s
	cp.Transcript = Transcript{turns: s.Transcript.Turns()}
	if s.Report != nil {
		r := s.Report.Clone()
		cp.Report = &r
	}
	return cp
}
