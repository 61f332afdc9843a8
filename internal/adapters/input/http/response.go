package http

import (
	"net/http"
	"time"

	"talkpro/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// Unauthorized response
	Unauthorized = Status{Code: http.StatusUnauthorized, Message: []string{"Sorry, We are not able to identify the caller. Please send the X-User-ID header"}}
	// Forbidden response
	Forbidden = Status{Code: http.StatusForbidden, Message: []string{"Sorry, Permission denied"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Resource not found"}}
	// ConFlict response
	ConFlict = Status{Code: http.StatusConflict, Message: []string{"Sorry, Session is already completed"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, The interviewer is not available right now"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Sorry, History is disabled"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`

	Skip      *int   `json:"skip,omitempty"`
	Limit     *int   `json:"limit,omitempty"`
	TotalItem *int64 `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// QuestionResponse struct - catalog question summary
	QuestionResponse struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		Difficulty string `json:"difficulty"`
	}

	// ScenarioResponse struct - system design scenario
	ScenarioResponse struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Requirements string `json:"requirements,omitempty"`
		Constraints  string `json:"constraints,omitempty"`
	}

	// PersonaResponse struct - workplace scenario summary
	PersonaResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Role        string `json:"role"`
	}
)

type (
	// AlgorithmStartResponse struct
	AlgorithmStartResponse struct {
		SessionID  string `json:"sessionId"`
		Question   string `json:"question"`
		Difficulty string `json:"difficulty"`
	}

	// AlgorithmAnswerResponse struct
	AlgorithmAnswerResponse struct {
		Reply     string `json:"reply"`
		Completed bool   `json:"completed"`
	}

	// SystemDesignStartResponse struct
	SystemDesignStartResponse struct {
		SessionID    string           `json:"sessionId"`
		Scenario     ScenarioResponse `json:"scenario"`
		Requirements string           `json:"requirements"`
		Opening      string           `json:"opening"`
	}

	// SystemDesignDiscussResponse struct
	SystemDesignDiscussResponse struct {
		Reply string `json:"reply"`
		Stage string `json:"stage"`
	}

	// WorkplaceStartResponse struct
	WorkplaceStartResponse struct {
		SessionID    string   `json:"sessionId"`
		Scenario     string   `json:"scenario"`
		ScenarioName string   `json:"scenarioName"`
		Role         string   `json:"role"`
		Description  string   `json:"description"`
		Question     string   `json:"question"`
		Dimensions   []string `json:"dimensions"`
	}
)

type (
	// SessionResponse struct - snapshot of a live session
	SessionResponse struct {
		ID          uuid.UUID                `json:"id"`
		Type        domain.InterviewKind     `json:"type"`
		SeedID      string                   `json:"seed_id"`
		Status      domain.SessionStatus     `json:"status"`
		Messages    []domain.Turn            `json:"messages"`
		Evaluation  *domain.EvaluationReport `json:"evaluation,omitempty"`
		CreatedAt   time.Time                `json:"created_at"`
		CompletedAt *time.Time               `json:"completed_at,omitempty"`
	}

	// HistoryItemResponse struct - archived session without its transcript
	HistoryItemResponse struct {
		ID         uuid.UUID            `json:"id"`
		Type       domain.InterviewKind `json:"type"`
		QuestionID *string              `json:"question_id,omitempty"`
		ScenarioID *string              `json:"scenario_id,omitempty"`
		Score      datatypes.JSON       `json:"score,omitempty"`
		Status     domain.SessionStatus `json:"status"`
		CreatedAt  time.Time            `json:"created_at"`
		EndedAt    *time.Time           `json:"ended_at,omitempty"`
	}
)

func newSessionResponse(session *domain.InterviewSession) SessionResponse {
	return SessionResponse{
		ID:          session.ID,
		Type:        session.Kind,
		SeedID:      session.SeedID,
		Status:      session.Status,
		Messages:    session.Transcript.Turns(),
		Evaluation:  session.Report,
		CreatedAt:   session.CreatedAt,
		CompletedAt: session.CompletedAt,
	}
}

func newHistoryItemResponse(record domain.SessionRecord) HistoryItemResponse {
	return HistoryItemResponse{
		ID:         record.ID,
		Type:       record.Type,
		QuestionID: record.QuestionID,
		ScenarioID: record.ScenarioID,
		Score:      record.Score,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt,
		EndedAt:    record.EndedAt,
	}
}
