package application

import (
	"context"
	"errors"
	"strings"

	"talkpro/internal/domain"
	"talkpro/internal/ports/input"

	"github.com/sirupsen/logrus"
)

// Messages sent in error frames
const (
	msgSessionNotFound = "Session not found"
	msgForbidden       = "Session belongs to another user"
	msgSessionClosed   = "Session already completed"
	msgEmptyContent    = "Message content is required"
	msgUnknownFrame    = "Unknown message type"
	msgGatewayFailure  = "The interviewer is not available right now, please try again"
)

// Compile-time check to ensure InterviewChannel implements the input port
var _ input.InterviewChannel = (*InterviewChannel)(nil)

// InterviewChannel struct - Runs the frame protocol of a live interview connection
type InterviewChannel struct {
	interviews input.InterviewService
	catalog    input.CatalogService
}

// NewInterviewChannel func - Creates new interview channel
func NewInterviewChannel(interviews input.InterviewService, catalog input.CatalogService) *InterviewChannel {
	return &InterviewChannel{
		interviews: interviews,
		catalog:    catalog,
	}
}

// Open checks that the session exists for the user before frames are read.
// It emits an error frame and reports false when the connection must be closed.
func (ch *InterviewChannel) Open(ctx context.Context, sessionID, userID string, emit domain.EmitFunc) bool {
	if _, err := ch.interviews.GetSession(ctx, sessionID, userID); err != nil {
		ch.emitError(emit, err)
		return false
	}
	return true
}

// Handle processes one client frame. It reports true when the connection must be closed.
func (ch *InterviewChannel) Handle(ctx context.Context, sessionID, userID string, frame domain.ClientFrame, emit domain.EmitFunc) (bool, error) {
	session, err := ch.interviews.GetSession(ctx, sessionID, userID)
	if err != nil {
		return true, ch.emitError(emit, err)
	}

	switch frame.Type {
	case domain.ChannelMessage, "":
		return ch.handleMessage(ctx, session, userID, frame, emit)
	case domain.ChannelEnd:
		return ch.handleEnd(ctx, session, userID, emit)
	default:
		return false, emit(domain.ServerFrame{Type: domain.EventError, Message: msgUnknownFrame})
	}
}

func (ch *InterviewChannel) handleMessage(ctx context.Context, session *domain.InterviewSession, userID string, frame domain.ClientFrame, emit domain.EmitFunc) (bool, error) {
	if session.IsCompleted() {
		return true, emit(domain.ServerFrame{Type: domain.EventError, Message: msgSessionClosed})
	}
	if strings.TrimSpace(frame.Content) == "" && strings.TrimSpace(frame.Code) == "" {
		return false, emit(domain.ServerFrame{Type: domain.EventError, Message: msgEmptyContent})
	}

	role := ch.speaker(session)
	if err := emit(domain.ServerFrame{Type: domain.EventMessageStart, Role: role}); err != nil {
		return true, err
	}

	// Workplace replies are re-sent in fixed-width pieces once complete,
	// the other kinds forward gateway fragments as they arrive.
	var emitErr error
	var onFragment domain.FragmentFunc
	if session.Kind != domain.KindWorkplace {
		onFragment = func(fragment string) {
			if emitErr == nil {
				emitErr = emit(domain.ServerFrame{Type: domain.EventMessageChunk, Content: fragment})
			}
		}
	}

	answer := domain.Answer{Text: frame.Content, Code: frame.Code}
	result, err := ch.interviews.SubmitAnswer(ctx, session.ID.String(), userID, answer, onFragment)
	if err != nil {
		return ch.closeOn(err), ch.emitError(emit, err)
	}
	if emitErr != nil {
		return true, emitErr
	}

	complete := domain.ServerFrame{Type: domain.EventMessageComplete, Content: result.Reply, Role: role}
	switch session.Kind {
	case domain.KindWorkplace:
		for _, piece := range domain.SplitRunes(result.Reply, domain.ChunkWidth) {
			if err := emit(domain.ServerFrame{Type: domain.EventMessageChunk, Content: piece}); err != nil {
				return true, err
			}
		}
		completed := false
		complete.Completed = &completed
	case domain.KindAlgorithm:
		completed := result.Signal.Completed
		complete.Completed = &completed
	case domain.KindSystemDesign:
		complete.Stage = result.Signal.Stage
	}
	return false, emit(complete)
}

func (ch *InterviewChannel) handleEnd(ctx context.Context, session *domain.InterviewSession, userID string, emit domain.EmitFunc) (bool, error) {
	if err := emit(domain.ServerFrame{Type: domain.EventEvaluating}); err != nil {
		return true, err
	}
	report, err := ch.interviews.EndInterview(ctx, session.ID.String(), userID)
	if err != nil {
		return true, ch.emitError(emit, err)
	}
	return true, emit(domain.ServerFrame{Type: domain.EventSessionComplete, Evaluation: report})
}

// speaker is the role announced in message_start frames
func (ch *InterviewChannel) speaker(session *domain.InterviewSession) string {
	if session.Kind == domain.KindWorkplace && ch.catalog != nil {
		if persona, err := ch.catalog.GetPersona(session.SeedID); err == nil {
			return persona.Role
		}
	}
	return string(domain.ChatMessageRoleAssistant)
}

// closeOn reports whether err ends the connection; gateway failures leave it open for a retry
func (ch *InterviewChannel) closeOn(err error) bool {
	return !errors.Is(err, domain.ErrGateway)
}

func (ch *InterviewChannel) emitError(emit domain.EmitFunc, err error) error {
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		message = msgSessionNotFound
	case errors.Is(err, domain.ErrForbidden):
		message = msgForbidden
	case errors.Is(err, domain.ErrInvalidState):
		message = msgSessionClosed
	case errors.Is(err, domain.ErrGateway):
		message = msgGatewayFailure
	}
	logrus.Warnf("Interview channel error: %v", err)
	return emit(domain.ServerFrame{Type: domain.EventError, Message: message})
}
