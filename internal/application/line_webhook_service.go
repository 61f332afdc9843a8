package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"talkpro/internal/domain"
	"talkpro/internal/ports/input"
	"talkpro/internal/ports/output"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// LINE platform limits
const (
	maxLineMessageLength = 5000
	maxLineMessages      = 5
)

const (
	lineFriendlyError = "Sorry, I'm having trouble processing your request right now. Please try again later."
	lineHelpText      = "TalkPro interview practice\n\n" +
		"/algorithm <easy|medium|hard> - Start a coding interview\n" +
		"/design <scenario-id> - Start a system design interview\n" +
		"/workplace <scenario-id> - Start a workplace role-play\n" +
		"/scenarios - List scenario ids\n" +
		"/end - Finish and get your evaluation\n" +
		"/help - Show this message\n\n" +
		"Any other text is sent as your answer."
	lineWelcomeText  = "Welcome to TalkPro! Practice coding, system design and workplace interviews right here.\n\nType /help to see available commands."
	lineNoActiveText = "You have no interview in progress. Type /help to start one."
)

// Compile-time check to ensure LineWebhookService implements the input port
var _ input.LineWebhookService = (*LineWebhookService)(nil)

// LineWebhookService struct - Application service running interviews over LINE chat
type LineWebhookService struct {
	lineClient output.LineClient
	interviews input.InterviewService
	catalog    input.CatalogService

	// LINE user id -> active session id
	activeSessions sync.Map
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient, interviews input.InterviewService, catalog input.CatalogService) *LineWebhookService {
	return &LineWebhookService{
		lineClient: lineClient,
		interviews: interviews,
		catalog:    catalog,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, userID=%s", event.Type, event.UserID)

		var err error
		switch event.Type {
		case domain.LineEventTypeMessage:
			err = s.handleMessageEvent(ctx, event)
		case domain.LineEventTypeFollow:
			err = s.handleFollowEvent(event)
		case domain.LineEventTypeUnfollow:
			s.activeSessions.Delete(event.UserID)
		default:
			logrus.Infof("Unhandled event type: %s", event.Type)
		}
		if err != nil {
			logrus.Errorf("Failed to handle %s event: %v", event.Type, err)
			return err
		}
	}
	return nil
}

// ActiveSession returns the session id the user is answering, if any
func (s *LineWebhookService) ActiveSession(userID string) (string, bool) {
	value, ok := s.activeSessions.Load(userID)
	if !ok {
		return "", false
	}
	return value.(string), true
}

func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if event.Message == nil {
		return nil
	}
	if event.Message.Type != domain.LineMessageTypeText {
		logrus.Infof("Ignoring non-text message: type=%s", event.Message.Type)
		return nil
	}

	text := strings.TrimSpace(event.Message.Text)
	if text == "" {
		return nil
	}

	var replies []string
	if strings.HasPrefix(text, "/") {
		replies = s.handleCommand(ctx, text, event.UserID)
	} else {
		replies = s.handleAnswer(ctx, text, event.UserID)
	}

	if len(replies) == 0 || event.ReplyToken == "" {
		return nil
	}
	if err := s.lineClient.ReplyMessage(domain.LineReplyMessageRequest{
		ReplyToken: event.ReplyToken,
		Messages:   domain.TextMessages(splitReplies(replies)...),
	}); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// handleFollowEvent greets a user who added the bot
func (s *LineWebhookService) handleFollowEvent(event domain.LineWebhookEvent) error {
	if event.UserID == "" {
		return nil
	}
	if err := s.lineClient.PushMessage(domain.LinePushMessageRequest{
		To:       event.UserID,
		Messages: domain.TextMessages(lineWelcomeText),
	}); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}
	return nil
}

func (s *LineWebhookService) handleCommand(ctx context.Context, text, userID string) []string {
	parts := strings.Fields(text)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = strings.Join(parts[1:], " ")
	}

	switch command {
	case "/help":
		return []string{lineHelpText}
	case "/scenarios":
		return []string{s.scenarioList()}
	case "/algorithm":
		if arg == "" {
			arg = "easy"
		}
		return s.start(ctx, domain.KindAlgorithm, arg, userID)
	case "/design":
		if arg == "" {
			return []string{"Usage: /design <scenario-id>\n\n" + s.scenarioList()}
		}
		return s.start(ctx, domain.KindSystemDesign, arg, userID)
	case "/workplace":
		if arg == "" {
			return []string{"Usage: /workplace <scenario-id>\n\n" + s.scenarioList()}
		}
		return s.start(ctx, domain.KindWorkplace, arg, userID)
	case "/end":
		return s.end(ctx, userID)
	default:
		return []string{fmt.Sprintf("Unknown command: %s\nType /help for available commands", command)}
	}
}

func (s *LineWebhookService) start(ctx context.Context, kind domain.InterviewKind, selector, userID string) []string {
	session, opening, err := s.interviews.StartInterview(ctx, kind, selector, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return []string{fmt.Sprintf("Nothing found for %q. Type /scenarios to see what is available.", selector)}
	}
	if err != nil {
		logrus.Errorf("Failed to start %s interview for %s: %v", kind, userID, err)
		return []string{lineFriendlyError}
	}

	s.activeSessions.Store(userID, session.ID.String())
	return []string{opening}
}

func (s *LineWebhookService) handleAnswer(ctx context.Context, text, userID string) []string {
	sessionID, ok := s.ActiveSession(userID)
	if !ok {
		return []string{lineNoActiveText}
	}

	result, err := s.interviews.SubmitAnswer(ctx, sessionID, userID, domain.Answer{Text: text}, nil)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
		s.activeSessions.Delete(userID)
		return []string{lineNoActiveText}
	}
	if err != nil {
		logrus.Errorf("Failed to advance session %s: %v", sessionID, err)
		return []string{lineFriendlyError}
	}

	replies := []string{result.Reply}
	if result.Signal.Completed {
		replies = append(replies, "The interviewer is satisfied. Type /end to get your evaluation.")
	}
	return replies
}

func (s *LineWebhookService) end(ctx context.Context, userID string) []string {
	sessionID, ok := s.ActiveSession(userID)
	if !ok {
		return []string{lineNoActiveText}
	}

	report, err := s.interviews.EndInterview(ctx, sessionID, userID)
	s.activeSessions.Delete(userID)
	if err != nil {
		logrus.Errorf("Failed to end session %s: %v", sessionID, err)
		return []string{lineFriendlyError}
	}
	return []string{formatReport(report)}
}

func (s *LineWebhookService) scenarioList() string {
	var b strings.Builder
	b.WriteString("System design (/design):\n")
	for _, sc := range s.catalog.ListScenarios("") {
		fmt.Fprintf(&b, "- %s: %s\n", sc.ID, sc.Title)
	}
	b.WriteString("\nWorkplace (/workplace):\n")
	for _, p := range s.catalog.ListPersonas() {
		fmt.Fprintf(&b, "- %s: %s\n", p.ID, p.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatReport(report *domain.EvaluationReport) string {
	var b strings.Builder
	b.WriteString("Evaluation\n\n")
	for _, dim := range domain.Dimensions(report.Kind) {
		fmt.Fprintf(&b, "%s: %d/10\n", dim, report.Scores[dim])
	}
	fmt.Fprintf(&b, "overall: %d/10\n", report.Overall)
	if report.Feedback != "" {
		b.WriteString("\n" + report.Feedback + "\n")
	}
	if len(report.Strengths) > 0 {
		b.WriteString("\nStrengths:\n- " + strings.Join(report.Strengths, "\n- ") + "\n")
	}
	if len(report.Improvements) > 0 {
		b.WriteString("\nImprovements:\n- " + strings.Join(report.Improvements, "\n- ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// splitReplies cuts every reply to the LINE length limit and keeps at most maxLineMessages pieces
func splitReplies(replies []string) []string {
	pieces := lo.FlatMap(replies, func(text string, _ int) []string {
		return splitMessage(text, maxLineMessageLength)
	})
	if len(pieces) > maxLineMessages {
		logrus.Warnf("Reply needs %d messages, sending the first %d", len(pieces), maxLineMessages)
		pieces = pieces[:maxLineMessages]
	}
	return pieces
}

// splitMessage cuts text into pieces of at most limit characters,
// preferring to cut after a sentence end or line break in the second half of a piece.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var pieces []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i >= limit/2; i-- {
			if isSentenceEnd(runes[i]) {
				cut = i + 1
				break
			}
		}
		pieces = append(pieces, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}
	return pieces
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '\n', '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}
