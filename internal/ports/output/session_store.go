package output

import "talkpro/internal/domain"

// SessionStore interface - Output port
// Registry of live interview sessions keyed by session id.
// Implementations must be safe for concurrent access.
type SessionStore interface {
	// GetSession returns the session, or nil when it does not exist or was evicted.
	// Returns an error only on a storage access failure.
	GetSession(id string) (*domain.InterviewSession, error)

	// PutSession creates or replaces the session under its id.
	PutSession(session *domain.InterviewSession) error

	// RemoveSession deletes the session. Removing an unknown id is not an error.
	RemoveSession(id string) error
}
