package application

import (
	"context"
	"fmt"
	"time"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Protocol drives interview sessions through start, advance and evaluate.
// Kind-specific behavior lives in one strategy per interview kind.
type Protocol struct {
	gateway    *gateway
	strategies map[domain.InterviewKind]strategy
}

// NewProtocol func - Creates the protocol engine.
// timeout bounds every LLM call; 0 disables the bound.
func NewProtocol(client output.LLMClient, catalog output.Catalog, timeout time.Duration) *Protocol {
	gw := newGateway(client, timeout)
	p := &Protocol{
		gateway:    gw,
		strategies: make(map[domain.InterviewKind]strategy),
	}
	for _, s := range []strategy{
		&algorithmStrategy{catalog: catalog},
		&systemDesignStrategy{catalog: catalog},
		&workplaceStrategy{catalog: catalog, gateway: gw},
	} {
		p.strategies[s.kind()] = s
	}
	return p
}

func (p *Protocol) strategy(kind domain.InterviewKind) (strategy, error) {
	s, ok := p.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown interview kind %q", domain.ErrInvalidRequest, kind)
	}
	return s, nil
}

// Start creates a SEEDED session whose transcript holds the opening turn
func (p *Protocol) Start(ctx context.Context, kind domain.InterviewKind, selector, userID string) (*domain.InterviewSession, string, error) {
	s, err := p.strategy(kind)
	if err != nil {
		return nil, "", err
	}

	seedID, opening, err := s.seed(ctx, selector)
	if err != nil {
		return nil, "", err
	}

	session := domain.NewInterviewSession(kind, seedID, userID, opening)
	logrus.Infof("Started %s interview %s (seed=%s, user=%s)", kind, session.ID, seedID, userID)
	return session, opening, nil
}

// Advance runs one exchange. The transcript only changes when the gateway call succeeded.
func (p *Protocol) Advance(ctx context.Context, session *domain.InterviewSession, answer domain.Answer, onFragment domain.FragmentFunc) (*domain.AdvanceResult, error) {
	if session.IsCompleted() {
		return nil, fmt.Errorf("%w: session %s is completed", domain.ErrInvalidState, session.ID)
	}
	s, err := p.strategy(session.Kind)
	if err != nil {
		return nil, err
	}

	userTurn := answer.UserTurn()
	messages := []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: s.instruction(session)},
		{Role: domain.ChatMessageRoleUser, Content: exchangePrompt(session.Transcript, userTurn)},
	}

	reply, err := p.gateway.stream(ctx, messages, onFragment)
	if err != nil {
		logrus.Errorf("Advance of session %s failed: %v", session.ID, err)
		return nil, err
	}

	// the session may have been evaluated while the reply was streaming
	if !session.RecordExchange(userTurn, reply) {
		return nil, fmt.Errorf("%w: session %s completed during the exchange", domain.ErrInvalidState, session.ID)
	}
	return &domain.AdvanceResult{Reply: reply, Signal: s.signal(session, reply)}, nil
}

// Evaluate scores the session and completes it. It never fails: a broken model
// answer or a failed call yields a default report. A completed session returns its stored report.
func (p *Protocol) Evaluate(ctx context.Context, session *domain.InterviewSession) *domain.EvaluationReport {
	if session.IsCompleted() && session.Report != nil {
		stored := session.Report.Clone()
		return &stored
	}

	report := p.evaluate(ctx, session)
	session.Complete(report)
	logrus.Infof("Completed %s interview %s with overall %d", session.Kind, session.ID, report.Overall)

	out := report.Clone()
	return &out
}

func (p *Protocol) evaluate(ctx context.Context, session *domain.InterviewSession) (report *domain.EvaluationReport) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Evaluation of session %s panicked: %v", session.ID, r)
			report = errorReport(session.Kind)
		}
	}()

	s, err := p.strategy(session.Kind)
	if err != nil {
		logrus.Errorln(err)
		return errorReport(session.Kind)
	}

	system, prompt := s.evaluation(session)
	raw, err := p.gateway.complete(ctx, []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: system},
		{Role: domain.ChatMessageRoleUser, Content: prompt},
	})
	if err != nil {
		logrus.Errorf("Evaluation of session %s failed: %v", session.ID, err)
		return errorReport(session.Kind)
	}
	logrus.Debugf("Evaluation answer for session %s: %s", session.ID, compactJSON(raw))

	report, err = parseEvaluation(session.Kind, raw, s.defaults())
	if err != nil {
		logrus.Warnf("Evaluation of session %s: %v, using fallback report", session.ID, err)
		return parseFallbackReport(session.Kind, raw, s.defaults())
	}
	return report
}
