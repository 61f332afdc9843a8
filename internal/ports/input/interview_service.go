package input

import (
	"context"

	"talkpro/internal/domain"
)

// InterviewService interface - Input port (use case)
// Drives interview sessions through start, advance and evaluate.
type InterviewService interface {
	// StartInterview seeds a new session from the catalog entry chosen by selector
	// (a difficulty for algorithm, an id otherwise) and returns it with its opening text.
	StartInterview(ctx context.Context, kind domain.InterviewKind, selector, userID string) (*domain.InterviewSession, string, error)

	// SubmitAnswer runs one exchange. onFragment, when not nil, receives reply fragments as they stream in.
	SubmitAnswer(ctx context.Context, sessionID, userID string, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error)

	// EndInterview evaluates the session and archives it. Evaluating twice returns the stored report.
	EndInterview(ctx context.Context, sessionID, userID string) (*domain.EvaluationReport, error)

	// GetSession returns a snapshot of a live session
	GetSession(ctx context.Context, sessionID, userID string) (*domain.InterviewSession, error)
}
