package http

import (
	"context"

	"talkpro/internal/domain"

	"github.com/google/uuid"
)

// MockInterviewService implements input.InterviewService for testing
type MockInterviewService struct {
	StartInterviewFunc func(ctx context.Context, kind domain.InterviewKind, selector, userID string) (*domain.InterviewSession, string, error)
	SubmitAnswerFunc   func(ctx context.Context, sessionID, userID string, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error)
	EndInterviewFunc   func(ctx context.Context, sessionID, userID string) (*domain.EvaluationReport, error)
	GetSessionFunc     func(ctx context.Context, sessionID, userID string) (*domain.InterviewSession, error)

	// Captured values for assertions
	LastKind     domain.InterviewKind
	LastSelector string
	LastUserID   string
	LastAnswer   *domain.Answer
}

func (m *MockInterviewService) StartInterview(ctx context.Context, kind domain.InterviewKind, selector, userID string) (*domain.InterviewSession, string, error) {
	m.LastKind = kind
	m.LastSelector = selector
	m.LastUserID = userID
	if m.StartInterviewFunc != nil {
		return m.StartInterviewFunc(ctx, kind, selector, userID)
	}
	return domain.NewInterviewSession(kind, selector, userID, "opening"), "opening", nil
}

func (m *MockInterviewService) SubmitAnswer(ctx context.Context, sessionID, userID string, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error) {
	m.LastUserID = userID
	m.LastAnswer = &answer
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, sessionID, userID, answer, onFragment)
	}
	return &domain.AdvanceResult{Reply: "AI response"}, nil
}

func (m *MockInterviewService) EndInterview(ctx context.Context, sessionID, userID string) (*domain.EvaluationReport, error) {
	m.LastUserID = userID
	if m.EndInterviewFunc != nil {
		return m.EndInterviewFunc(ctx, sessionID, userID)
	}
	return domain.UniformReport(domain.KindAlgorithm, 7), nil
}

func (m *MockInterviewService) GetSession(ctx context.Context, sessionID, userID string) (*domain.InterviewSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID, userID)
	}
	return nil, domain.ErrNotFound
}

// sessionOf returns a GetSessionFunc serving one session with ownership checks
func sessionOf(session *domain.InterviewSession) func(ctx context.Context, sessionID, userID string) (*domain.InterviewSession, error) {
	return func(ctx context.Context, sessionID, userID string) (*domain.InterviewSession, error) {
		if sessionID != session.ID.String() {
			return nil, domain.ErrNotFound
		}
		if !session.OwnedBy(userID) {
			return nil, domain.ErrForbidden
		}
		return session, nil
	}
}

// MockHistoryService implements input.HistoryService for testing
type MockHistoryService struct {
	ListHistoryFunc   func(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error)
	GetHistoryFunc    func(ctx context.Context, userID string, id uuid.UUID) (*domain.SessionRecord, error)
	DeleteHistoryFunc func(ctx context.Context, userID string, id uuid.UUID) error
	HealthyFunc       func(ctx context.Context) error

	// Captured values for assertions
	LastQuery *domain.HistoryQuery
}

func (m *MockHistoryService) ListHistory(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
	m.LastQuery = &query
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(ctx, query)
	}
	return &domain.HistoryPage{}, nil
}

func (m *MockHistoryService) GetHistory(ctx context.Context, userID string, id uuid.UUID) (*domain.SessionRecord, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockHistoryService) DeleteHistory(ctx context.Context, userID string, id uuid.UUID) error {
	if m.DeleteHistoryFunc != nil {
		return m.DeleteHistoryFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockHistoryService) Healthy(ctx context.Context) error {
	if m.HealthyFunc != nil {
		return m.HealthyFunc(ctx)
	}
	return nil
}

// MockCatalogService implements input.CatalogService for testing
type MockCatalogService struct {
	Questions []domain.Question
	Scenarios []domain.Scenario
	Personas  []domain.Persona

	// Captured values for assertions
	LastDifficulty string
	LastQuery      string
}

func (m *MockCatalogService) ListQuestions(difficulty, query string) []domain.Question {
	m.LastDifficulty = difficulty
	m.LastQuery = query
	return m.Questions
}

func (m *MockCatalogService) ListScenarios(query string) []domain.Scenario {
	m.LastQuery = query
	return m.Scenarios
}

func (m *MockCatalogService) ListPersonas() []domain.Persona {
	return m.Personas
}

func (m *MockCatalogService) GetScenario(id string) (*domain.Scenario, error) {
	for _, s := range m.Scenarios {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCatalogService) GetPersona(id string) (*domain.Persona, error) {
	for _, p := range m.Personas {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockInterviewChannel implements input.InterviewChannel for testing
type MockInterviewChannel struct{}

func (m *MockInterviewChannel) Open(ctx context.Context, sessionID, userID string, emit domain.EmitFunc) bool {
	return false
}

func (m *MockInterviewChannel) Handle(ctx context.Context, sessionID, userID string, frame domain.ClientFrame, emit domain.EmitFunc) (bool, error) {
	return true, nil
}

// MockLineWebhookService implements input.LineWebhookService for testing
type MockLineWebhookService struct {
	HandleWebhookFunc func(ctx context.Context, request domain.LineWebhookRequest) error

	// Captured values for assertions
	LastRequest *domain.LineWebhookRequest
}

func (m *MockLineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	m.LastRequest = &request
	if m.HandleWebhookFunc != nil {
		return m.HandleWebhookFunc(ctx, request)
	}
	return nil
}
