package memory

import (
	"sync"
	"time"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter keeping live interview sessions in process memory.
// Sessions are lost on restart. With a zero idle timeout nothing is ever evicted.
type MemorySessionStore struct {
	sessions sync.Map
	timeout  time.Duration
}

// NewMemorySessionStore creates a session registry.
// timeout: idle duration after which a session is dropped on its next lookup; 0 disables eviction
func NewMemorySessionStore(timeout time.Duration) *MemorySessionStore {
	return &MemorySessionStore{timeout: timeout}
}

// GetSession returns the live session, or nil when unknown or idle past the timeout.
// Expired sessions are deleted on lookup (lazy cleanup) and LastAccessTime is refreshed for valid ones.
func (m *MemorySessionStore) GetSession(id string) (*domain.InterviewSession, error) {
	value, exists := m.sessions.Load(id)
	if !exists {
		return nil, nil
	}

	session, ok := value.(*domain.InterviewSession)
	if !ok {
		m.sessions.Delete(id)
		return nil, nil
	}

	if session.IsExpired(m.timeout) {
		logrus.Infof("Evicting idle interview session %s", id)
		m.sessions.Delete(id)
		return nil, nil
	}

	session.LastAccessTime = time.Now()
	return session, nil
}

// PutSession stores the session under its id
func (m *MemorySessionStore) PutSession(session *domain.InterviewSession) error {
	session.LastAccessTime = time.Now()
	m.sessions.Store(session.ID.String(), session)
	return nil
}

// RemoveSession deletes a session. This operation is idempotent.
func (m *MemorySessionStore) RemoveSession(id string) error {
	m.sessions.Delete(id)
	return nil
}

// Len counts stored sessions, expired ones included
func (m *MemorySessionStore) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
