package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talkpro/internal/domain"
	"talkpro/internal/ports/input"
	"talkpro/internal/ports/output"

	"github.com/sirupsen/logrus"
)

const archiveTimeout = 10 * time.Second

// Compile-time check to ensure InterviewService implements the input port
var _ input.InterviewService = (*InterviewService)(nil)

// InterviewService struct - Application service implementing the interview use cases
type InterviewService struct {
	protocol *Protocol
	store    output.SessionStore
	history  output.SessionRepository

	archiving sync.WaitGroup
}

// NewInterviewService func - Creates new interview service.
// history may be nil, completed sessions are then not archived.
func NewInterviewService(protocol *Protocol, store output.SessionStore, history output.SessionRepository) *InterviewService {
	return &InterviewService{
		protocol: protocol,
		store:    store,
		history:  history,
	}
}

// StartInterview func - Use case: seed a session and register it
func (s *InterviewService) StartInterview(ctx context.Context, kind domain.InterviewKind, selector, userID string) (*domain.InterviewSession, string, error) {
	session, opening, err := s.protocol.Start(ctx, kind, selector, userID)
	if err != nil {
		return nil, "", err
	}
	if err := s.store.PutSession(session); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}
	snapshot := session.Snapshot()
	return &snapshot, opening, nil
}

// SubmitAnswer func - Use case: one exchange on a live session
func (s *InterviewService) SubmitAnswer(ctx context.Context, sessionID, userID string, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error) {
	session, err := s.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.protocol.Advance(ctx, session, answer, onFragment)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutSession(session); err != nil {
		logrus.Errorf("Failed to store session %s: %v", sessionID, err)
	}
	return result, nil
}

// EndInterview func - Use case: evaluate the session and archive it in the background
func (s *InterviewService) EndInterview(ctx context.Context, sessionID, userID string) (*domain.EvaluationReport, error) {
	session, err := s.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	alreadyCompleted := session.IsCompleted()
	report := s.protocol.Evaluate(ctx, session)
	if err := s.store.PutSession(session); err != nil {
		logrus.Errorf("Failed to store session %s: %v", sessionID, err)
	}

	if !alreadyCompleted {
		s.archive(session.Snapshot())
	}
	return report, nil
}

// GetSession func - Use case: snapshot of a live session
func (s *InterviewService) GetSession(ctx context.Context, sessionID, userID string) (*domain.InterviewSession, error) {
	session, err := s.load(sessionID, userID)
	if err != nil {
		return nil, err
	}
	snapshot := session.Snapshot()
	return &snapshot, nil
}

// Wait blocks until pending archive writes finished
func (s *InterviewService) Wait() {
	s.archiving.Wait()
}

func (s *InterviewService) load(sessionID, userID string) (*domain.InterviewSession, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
	}
	if !session.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: session %s", domain.ErrForbidden, sessionID)
	}
	return session, nil
}

// archive writes the completed session to the history store; failures are only logged
func (s *InterviewService) archive(session domain.InterviewSession) {
	if s.history == nil {
		return
	}

	s.archiving.Add(1)
	go func() {
		defer s.archiving.Done()

		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		record, err := domain.NewSessionRecord(&session)
		if err != nil {
			logrus.Errorf("Failed to archive session %s: %v", session.ID, err)
			return
		}
		if err := s.history.SaveSession(ctx, record); err != nil {
			logrus.Errorf("Failed to archive session %s: %v", session.ID, err)
			return
		}
		logrus.Infof("Archived session %s", session.ID)
	}()
}
