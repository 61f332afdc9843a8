package application

import (
	"context"
	"strings"
	"sync"

	"talkpro/internal/domain"

	"github.com/google/uuid"
)

// Mock implementations for testing

// MockLLMClient implements output.LLMClient for testing
type MockLLMClient struct {
	ChatCompletionFunc       func(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error)
	ChatCompletionStreamFunc func(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error)

	// Captured values for assertions
	mu                sync.Mutex
	ChatRequests      []domain.ChatCompletionRequest
	StreamRequests    []domain.ChatCompletionRequest
	LastChatRequest   *domain.ChatCompletionRequest
	LastStreamRequest *domain.ChatCompletionRequest
}

func (m *MockLLMClient) ChatCompletion(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error) {
	m.mu.Lock()
	m.ChatRequests = append(m.ChatRequests, request)
	m.LastChatRequest = &request
	m.mu.Unlock()
	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(ctx, request)
	}
	return &domain.ChatCompletionResponse{Content: "AI response"}, nil
}

func (m *MockLLMClient) ChatCompletionStream(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
	m.mu.Lock()
	m.StreamRequests = append(m.StreamRequests, request)
	m.LastStreamRequest = &request
	m.mu.Unlock()
	if m.ChatCompletionStreamFunc != nil {
		return m.ChatCompletionStreamFunc(ctx, request)
	}
	return streamOf("AI response"), nil
}

// streamOf returns a closed channel holding the fragments followed by a Done chunk
func streamOf(fragments ...string) <-chan domain.ChatCompletionChunk {
	ch := make(chan domain.ChatCompletionChunk, len(fragments)+1)
	for _, f := range fragments {
		ch <- domain.ChatCompletionChunk{Content: f}
	}
	ch <- domain.ChatCompletionChunk{Done: true}
	close(ch)
	return ch
}

// brokenStreamOf returns fragments followed by a failing final chunk
func brokenStreamOf(err error, fragments ...string) <-chan domain.ChatCompletionChunk {
	ch := make(chan domain.ChatCompletionChunk, len(fragments)+1)
	for _, f := range fragments {
		ch <- domain.ChatCompletionChunk{Content: f}
	}
	ch <- domain.ChatCompletionChunk{Done: true, Error: err}
	close(ch)
	return ch
}

// replyingStream answers every streaming call with reply cut in two fragments
func replyingStream(reply string) func(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
	return func(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
		runes := []rune(reply)
		half := len(runes) / 2
		return streamOf(string(runes[:half]), string(runes[half:])), nil
	}
}

// MockSessionStore implements output.SessionStore for testing
type MockSessionStore struct {
	GetSessionFunc func(id string) (*domain.InterviewSession, error)
	PutSessionFunc func(session *domain.InterviewSession) error

	mu       sync.Mutex
	sessions map[string]*domain.InterviewSession

	// Captured values for assertions
	PutCalls    int
	RemoveCalls []string
}

func (m *MockSessionStore) GetSession(id string) (*domain.InterviewSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id], nil
}

func (m *MockSessionStore) PutSession(session *domain.InterviewSession) error {
	m.mu.Lock()
	m.PutCalls++
	if m.sessions == nil {
		m.sessions = make(map[string]*domain.InterviewSession)
	}
	m.sessions[session.ID.String()] = session
	m.mu.Unlock()
	if m.PutSessionFunc != nil {
		return m.PutSessionFunc(session)
	}
	return nil
}

func (m *MockSessionStore) RemoveSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, id)
	delete(m.sessions, id)
	return nil
}

// MockSessionRepository implements output.SessionRepository for testing
type MockSessionRepository struct {
	SaveSessionFunc   func(ctx context.Context, record *domain.SessionRecord) error
	ListSessionsFunc  func(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error)
	GetSessionFunc    func(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error)
	DeleteSessionFunc func(ctx context.Context, id uuid.UUID) error
	PingFunc          func(ctx context.Context) error

	// Captured values for assertions
	mu          sync.Mutex
	Saved       []*domain.SessionRecord
	DeleteCalls []uuid.UUID
	LastQuery   *domain.HistoryQuery
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, record *domain.SessionRecord) error {
	m.mu.Lock()
	m.Saved = append(m.Saved, record)
	m.mu.Unlock()
	if m.SaveSessionFunc != nil {
		return m.SaveSessionFunc(ctx, record)
	}
	return nil
}

func (m *MockSessionRepository) ListSessions(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
	m.LastQuery = &query
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx, query)
	}
	return &domain.HistoryPage{}, nil
}

func (m *MockSessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, id)
	}
	return nil
}

func (m *MockSessionRepository) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc func(request domain.LineReplyMessageRequest) error
	PushMessageFunc  func(request domain.LinePushMessageRequest) error

	// Captured values for assertions
	LastReplyRequest *domain.LineReplyMessageRequest
	LastPushRequest  *domain.LinePushMessageRequest
	ReplyRequests    []domain.LineReplyMessageRequest
}

func (m *MockLineClient) ReplyMessage(request domain.LineReplyMessageRequest) error {
	m.LastReplyRequest = &request
	m.ReplyRequests = append(m.ReplyRequests, request)
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(request)
	}
	return nil
}

func (m *MockLineClient) PushMessage(request domain.LinePushMessageRequest) error {
	m.LastPushRequest = &request
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(request)
	}
	return nil
}

// testCatalog implements output.Catalog over fixed entries
type testCatalog struct {
	questions []domain.Question
	scenarios []domain.Scenario
	personas  []domain.Persona
}

func (c *testCatalog) Questions() []domain.Question { return c.questions }
func (c *testCatalog) Scenarios() []domain.Scenario { return c.scenarios }
func (c *testCatalog) Personas() []domain.Persona   { return c.personas }

func (c *testCatalog) QuestionsByDifficulty(difficulty string) []domain.Question {
	var out []domain.Question
	for _, q := range c.questions {
		if strings.EqualFold(q.Difficulty, difficulty) {
			out = append(out, q)
		}
	}
	return out
}

func (c *testCatalog) Scenario(id string) (domain.Scenario, bool) {
	for _, s := range c.scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

func (c *testCatalog) Persona(id string) (domain.Persona, bool) {
	for _, p := range c.personas {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Persona{}, false
}

func newTestCatalog() *testCatalog {
	return &testCatalog{
		questions: []domain.Question{
			{
				ID:         "two-sum",
				Title:      "Two Sum",
				Difficulty: "easy",
				Content:    "Find two numbers adding up to target.",
				Examples: []domain.Example{
					{Input: "[2,7,11,15], 9", Output: "[0,1]", Explanation: "2 + 7 = 9"},
					{Input: "[3,3], 6", Output: "[0,1]"},
				},
			},
			{ID: "lru-cache", Title: "LRU Cache", Difficulty: "Medium", Content: "Design an LRU cache."},
			{ID: "word-ladder", Title: "Word Ladder", Difficulty: "medium", Content: "Shortest transformation."},
		},
		scenarios: []domain.Scenario{
			{ID: "url-shortener", Title: "URL Shortener", Description: "Shorten links.", Requirements: "Create and resolve.", Constraints: "100M per day"},
			{ID: "news-feed", Title: "News Feed", Description: "Timeline.", Requirements: "Post and follow.", Constraints: "300M DAU"},
		},
		personas: []domain.Persona{
			{
				ID:          "incident_review",
				Name:        "故障复盘会",
				Description: "Post-mortem",
				Role:        "故障调查组组长",
				Persona:     "You lead the incident review.",
				Context:     "The service ran out of memory.",
				Dimensions:  []string{"技术深度", "业务理解", "沟通表达", "逻辑思维"},
			},
		},
	}
}
