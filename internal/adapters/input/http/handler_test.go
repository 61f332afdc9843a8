package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"talkpro/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	interviews *MockInterviewService
	history    *MockHistoryService
	catalog    *MockCatalogService
}

func newTestApp() (*fiber.App, *testDeps) {
	deps := &testDeps{
		interviews: &MockInterviewService{},
		history:    &MockHistoryService{},
		catalog: &MockCatalogService{
			Questions: []domain.Question{{ID: "two-sum", Title: "Two Sum", Difficulty: "easy", Content: "..."}},
			Scenarios: []domain.Scenario{{ID: "url-shortener", Title: "URL Shortener", Description: "Shorten links.", Requirements: "Create and resolve."}},
			Personas:  []domain.Persona{{ID: "incident_review", Name: "故障复盘会", Description: "Post-mortem", Role: "故障调查组组长", Dimensions: []string{"技术深度"}}},
		},
	}
	app := fiber.New()
	RegisterRoutes(app, New(deps.interviews, deps.history, deps.catalog, &MockInterviewChannel{}))
	return app, deps
}

// do sends a request as user-1 unless userID is empty, and decodes the envelope
func do(t *testing.T, app *fiber.App, method, path, body, userID string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &envelope), string(data))
	}
	return resp.StatusCode, envelope
}

func dataOf(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "expected an object in data, got %v", envelope["data"])
	return data
}

func TestHealthCheck(t *testing.T) {
	app, deps := newTestApp()

	status, _ := do(t, app, fiber.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusOK, status)

	deps.history.HealthyFunc = func(ctx context.Context) error { return errors.New("db down") }
	status, _ = do(t, app, fiber.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestCatalogRoutes(t *testing.T) {
	app, deps := newTestApp()

	status, envelope := do(t, app, fiber.MethodGet, "/v1/api/catalog/questions?difficulty=EASY&q=sum", "", "")
	require.Equal(t, fiber.StatusOK, status)
	questions := envelope["data"].([]interface{})
	require.Len(t, questions, 1)
	assert.Equal(t, "two-sum", questions[0].(map[string]interface{})["id"])
	assert.Equal(t, "easy", deps.catalog.LastDifficulty)
	assert.Equal(t, "sum", deps.catalog.LastQuery)

	status, _ = do(t, app, fiber.MethodGet, "/v1/api/catalog/questions?difficulty=expert", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, envelope = do(t, app, fiber.MethodGet, "/v1/api/catalog/scenarios", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, envelope["data"], 1)

	status, envelope = do(t, app, fiber.MethodGet, "/v1/api/catalog/personas", "", "")
	require.Equal(t, fiber.StatusOK, status)
	persona := envelope["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "故障调查组组长", persona["role"])
}

func TestInterviewRoutesRequireUser(t *testing.T) {
	app, _ := newTestApp()

	status, _ := do(t, app, fiber.MethodPost, "/v1/api/algorithm/start", `{"difficulty":"easy"}`, "")

	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestStartAlgorithm(t *testing.T) {
	app, deps := newTestApp()

	status, envelope := do(t, app, fiber.MethodPost, "/v1/api/algorithm/start", `{"difficulty":"Medium"}`, "user-1")

	require.Equal(t, fiber.StatusOK, status)
	data := dataOf(t, envelope)
	assert.NotEmpty(t, data["sessionId"])
	assert.Equal(t, "opening", data["question"])
	assert.Equal(t, "medium", data["difficulty"])
	assert.Equal(t, domain.KindAlgorithm, deps.interviews.LastKind)
	assert.Equal(t, "medium", deps.interviews.LastSelector)
	assert.Equal(t, "user-1", deps.interviews.LastUserID)
}

func TestStartAlgorithmValidation(t *testing.T) {
	app, _ := newTestApp()

	for _, body := range []string{`{"difficulty":"expert"}`, `{}`, `not json`} {
		status, _ := do(t, app, fiber.MethodPost, "/v1/api/algorithm/start", body, "user-1")
		assert.Equal(t, fiber.StatusBadRequest, status, body)
	}
}

func TestAnswerAlgorithm(t *testing.T) {
	// Arrange
	app, deps := newTestApp()
	session := domain.NewInterviewSession(domain.KindAlgorithm, "two-sum", "user-1", "opening")
	deps.interviews.GetSessionFunc = sessionOf(session)
	deps.interviews.SubmitAnswerFunc = func(ctx context.Context, sessionID, userID string, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error) {
		return &domain.AdvanceResult{Reply: "Nice. INTERVIEW_COMPLETE", Signal: domain.Signal{Completed: true}}, nil
	}
	path := "/v1/api/algorithm/" + session.ID.String() + "/answer"

	// Act
	status, envelope := do(t, app, fiber.MethodPost, path, `{"content":"hash map","code":"return nil"}`, "user-1")

	// Assert
	require.Equal(t, fiber.StatusOK, status)
	data := dataOf(t, envelope)
	assert.Equal(t, "Nice. INTERVIEW_COMPLETE", data["reply"])
	assert.Equal(t, true, data["completed"])
	assert.Equal(t, domain.Answer{Text: "hash map", Code: "return nil"}, *deps.interviews.LastAnswer)
}

func TestAnswerErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"completed session", domain.ErrInvalidState, fiber.StatusConflict},
		{"gateway failure", domain.ErrGateway, fiber.StatusBadGateway},
		{"unexpected", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApp()
			session := domain.NewInterviewSession(domain.KindAlgorithm, "two-sum", "user-1", "opening")
			deps.interviews.GetSessionFunc = sessionOf(session)
			deps.interviews.SubmitAnswerFunc = func(ctx context.Context, sessionID, userID string, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error) {
				return nil, tt.err
			}

			status, envelope := do(t, app, fiber.MethodPost, "/v1/api/algorithm/"+session.ID.String()+"/answer", `{"content":"hi"}`, "user-1")

			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, envelope["status"])
		})
	}
}

func TestSessionScopedRoutesOwnership(t *testing.T) {
	app, deps := newTestApp()
	session := domain.NewInterviewSession(domain.KindAlgorithm, "two-sum", "owner", "opening")
	deps.interviews.GetSessionFunc = sessionOf(session)
	id := session.ID.String()

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{fiber.MethodPost, "/v1/api/algorithm/" + id + "/answer", `{"content":"hi"}`},
		{fiber.MethodPost, "/v1/api/algorithm/" + id + "/end", ""},
		{fiber.MethodGet, "/v1/api/sessions/" + id, ""},
	}

	for _, route := range routes {
		status, _ := do(t, app, route.method, route.path, route.body, "intruder")
		assert.Equal(t, fiber.StatusForbidden, status, route.path)
	}

	status, _ := do(t, app, fiber.MethodGet, "/v1/api/sessions/"+uuid.NewString(), "", "owner")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRouteKindMismatchIsNotFound(t *testing.T) {
	app, deps := newTestApp()
	session := domain.NewInterviewSession(domain.KindWorkplace, "incident_review", "user-1", "opening")
	deps.interviews.GetSessionFunc = sessionOf(session)

	status, _ := do(t, app, fiber.MethodPost, "/v1/api/algorithm/"+session.ID.String()+"/end", "", "user-1")

	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestStartSystemDesignAndDiscuss(t *testing.T) {
	app, deps := newTestApp()
	var started *domain.InterviewSession
	deps.interviews.StartInterviewFunc = func(ctx context.Context, kind domain.InterviewKind, selector, userID string) (*domain.InterviewSession, string, error) {
		started = domain.NewInterviewSession(kind, selector, userID, "## URL Shortener")
		return started, "## URL Shortener", nil
	}

	status, envelope := do(t, app, fiber.MethodPost, "/v1/api/system-design/start", `{"scenarioId":"url-shortener"}`, "user-1")
	require.Equal(t, fiber.StatusOK, status)
	data := dataOf(t, envelope)
	assert.Equal(t, "Create and resolve.", data["requirements"])
	assert.Equal(t, "URL Shortener", data["scenario"].(map[string]interface{})["title"])

	deps.interviews.GetSessionFunc = sessionOf(started)
	deps.interviews.SubmitAnswerFunc = func(ctx context.Context, sessionID, userID string, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error) {
		return &domain.AdvanceResult{Reply: "QPS?", Signal: domain.Signal{Stage: domain.StageRequirements}}, nil
	}
	status, envelope = do(t, app, fiber.MethodPost, "/v1/api/system-design/"+started.ID.String()+"/discuss", `{"content":"let's go","code":"ignored"}`, "user-1")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "requirements", dataOf(t, envelope)["stage"])
	assert.Empty(t, deps.interviews.LastAnswer.Code)
}

func TestStartSystemDesignUnknownScenario(t *testing.T) {
	app, deps := newTestApp()
	deps.interviews.StartInterviewFunc = func(ctx context.Context, kind domain.InterviewKind, selector, userID string) (*domain.InterviewSession, string, error) {
		return nil, "", domain.ErrNotFound
	}

	status, _ := do(t, app, fiber.MethodPost, "/v1/api/system-design/start", `{"scenarioId":"nope"}`, "user-1")

	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestStartWorkplace(t *testing.T) {
	app, _ := newTestApp()

	status, envelope := do(t, app, fiber.MethodPost, "/v1/api/workplace/start", `{"scenario":"incident_review"}`, "user-1")

	require.Equal(t, fiber.StatusOK, status)
	data := dataOf(t, envelope)
	assert.Equal(t, "incident_review", data["scenario"])
	assert.Equal(t, "故障复盘会", data["scenarioName"])
	assert.Equal(t, "故障调查组组长", data["role"])
	assert.Equal(t, "opening", data["question"])
	assert.Equal(t, []interface{}{"技术深度"}, data["dimensions"])
}

func TestEndWorkplaceReturnsFlatReport(t *testing.T) {
	app, deps := newTestApp()
	session := domain.NewInterviewSession(domain.KindWorkplace, "incident_review", "user-1", "opening")
	deps.interviews.GetSessionFunc = sessionOf(session)
	deps.interviews.EndInterviewFunc = func(ctx context.Context, sessionID, userID string) (*domain.EvaluationReport, error) {
		return domain.UniformReport(domain.KindWorkplace, 6), nil
	}

	status, envelope := do(t, app, fiber.MethodPost, "/v1/api/workplace/"+session.ID.String()+"/end", "", "user-1")

	require.Equal(t, fiber.StatusOK, status)
	data := dataOf(t, envelope)
	assert.Equal(t, float64(6), data["technical_depth"])
	assert.Equal(t, float64(6), data["overall"])
	assert.Contains(t, data, "strengths")
}

func TestGetSessionSnapshot(t *testing.T) {
	app, deps := newTestApp()
	session := domain.NewInterviewSession(domain.KindAlgorithm, "two-sum", "user-1", "opening")
	session.RecordExchange("answer", "reply")
	deps.interviews.GetSessionFunc = sessionOf(session)

	status, envelope := do(t, app, fiber.MethodGet, "/v1/api/sessions/"+session.ID.String(), "", "user-1")

	require.Equal(t, fiber.StatusOK, status)
	data := dataOf(t, envelope)
	assert.Equal(t, "in_progress", data["status"])
	assert.Len(t, data["messages"], 3)
}

func TestHistoryRoutes(t *testing.T) {
	app, deps := newTestApp()
	id := uuid.New()
	deps.history.ListHistoryFunc = func(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
		return &domain.HistoryPage{Records: []domain.SessionRecord{{ID: id, UserID: query.UserID, Type: domain.KindAlgorithm}}, Total: 1}, nil
	}

	status, envelope := do(t, app, fiber.MethodGet, "/v1/api/history?type=system-design&skip=5", "", "user-1")

	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, envelope["data"], 1)
	assert.Equal(t, float64(1), envelope["total_item"])
	require.NotNil(t, deps.history.LastQuery.Kind)
	assert.Equal(t, domain.KindSystemDesign, *deps.history.LastQuery.Kind)
	assert.Equal(t, 5, deps.history.LastQuery.Skip)
	assert.Equal(t, defaultHistoryLimit, deps.history.LastQuery.Limit)
	assert.Equal(t, "user-1", deps.history.LastQuery.UserID)

	status, _ = do(t, app, fiber.MethodGet, "/v1/api/history?limit=500", "", "user-1")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, fiber.MethodGet, "/v1/api/history/not-a-uuid", "", "user-1")
	assert.Equal(t, fiber.StatusBadRequest, status)

	deps.history.DeleteHistoryFunc = func(ctx context.Context, userID string, got uuid.UUID) error {
		return domain.ErrForbidden
	}
	status, _ = do(t, app, fiber.MethodDelete, "/v1/api/history/"+id.String(), "", "user-1")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestHistoryDisabled(t *testing.T) {
	app, deps := newTestApp()
	deps.history.ListHistoryFunc = func(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
		return nil, domain.ErrHistoryDisabled
	}

	status, _ := do(t, app, fiber.MethodGet, "/v1/api/history", "", "user-1")

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp()

	status, _ := do(t, app, fiber.MethodGet, "/ws/algorithm/"+uuid.NewString(), "", "user-1")

	assert.Equal(t, fiber.StatusUpgradeRequired, status)
}
