package input

import (
	"context"

	"talkpro/internal/domain"
)

// InterviewChannel interface - Input port (use case)
// Frame protocol of a live interview connection, independent of the socket library.
type InterviewChannel interface {
	// Open validates the session before any frame is read; false means close the connection
	Open(ctx context.Context, sessionID, userID string, emit domain.EmitFunc) bool

	// Handle processes one client frame and reports whether the connection must be closed
	Handle(ctx context.Context, sessionID, userID string, frame domain.ClientFrame, emit domain.EmitFunc) (bool, error)
}
