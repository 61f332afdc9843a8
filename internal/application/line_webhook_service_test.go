package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"talkpro/internal/domain"
)

// Helper function to create a text message event
func createTextMessageEvent(userID, replyToken, text string) domain.LineWebhookEvent {
	return domain.LineWebhookEvent{
		Type:       domain.LineEventTypeMessage,
		UserID:     userID,
		ReplyToken: replyToken,
		Message: &domain.LineMessage{
			ID:   "msg-id",
			Type: domain.LineMessageTypeText,
			Text: text,
		},
	}
}

func newTestLineService(llm *MockLLMClient, lineClient *MockLineClient) *LineWebhookService {
	catalog := newTestCatalog()
	interviews := NewInterviewService(NewProtocol(llm, catalog, time.Second), &MockSessionStore{}, nil)
	return NewLineWebhookService(lineClient, interviews, NewCatalogService(catalog))
}

func sendText(t *testing.T, service *LineWebhookService, text string) {
	t.Helper()
	request := domain.LineWebhookRequest{Events: []domain.LineWebhookEvent{createTextMessageEvent("user-123", "reply-token", text)}}
	if err := service.HandleWebhook(context.Background(), request); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func lastReplyText(t *testing.T, lineClient *MockLineClient) string {
	t.Helper()
	if lineClient.LastReplyRequest == nil {
		t.Fatal("Expected a reply to be sent")
	}
	texts := make([]string, 0, len(lineClient.LastReplyRequest.Messages))
	for _, m := range lineClient.LastReplyRequest.Messages {
		texts = append(texts, m.Text)
	}
	return strings.Join(texts, "\n---\n")
}

func TestLineWebhookService_HelpCommand(t *testing.T) {
	// Arrange
	lineClient := &MockLineClient{}
	service := newTestLineService(&MockLLMClient{}, lineClient)

	// Act
	sendText(t, service, "/help")

	// Assert
	if lineClient.LastReplyRequest.ReplyToken != "reply-token" {
		t.Errorf("Expected reply token 'reply-token', got '%s'", lineClient.LastReplyRequest.ReplyToken)
	}
	if lastReplyText(t, lineClient) != lineHelpText {
		t.Errorf("Expected help text, got '%s'", lastReplyText(t, lineClient))
	}
}

func TestLineWebhookService_FullInterview(t *testing.T) {
	// Arrange
	llm := &MockLLMClient{
		ChatCompletionStreamFunc: replyingStream("What is the complexity? INTERVIEW_COMPLETE"),
		ChatCompletionFunc: func(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error) {
			return &domain.ChatCompletionResponse{Content: `{"algorithm": 8, "code_quality": 8, "complexity": 8, "edge_cases": 8, "communication": 8, "feedback": "Well done"}`}, nil
		},
	}
	lineClient := &MockLineClient{}
	service := newTestLineService(llm, lineClient)

	// Act & Assert: start
	sendText(t, service, "/algorithm")
	if !strings.Contains(lastReplyText(t, lineClient), "## Two Sum") {
		t.Errorf("Expected the question as reply, got '%s'", lastReplyText(t, lineClient))
	}
	if _, ok := service.ActiveSession("user-123"); !ok {
		t.Fatal("Expected an active session")
	}

	// answer
	sendText(t, service, "Use a hash map")
	if len(lineClient.LastReplyRequest.Messages) != 2 {
		t.Fatalf("Expected the reply plus a completion hint, got %d messages", len(lineClient.LastReplyRequest.Messages))
	}
	if lineClient.LastReplyRequest.Messages[0].Text != "What is the complexity? INTERVIEW_COMPLETE" {
		t.Errorf("Unexpected reply: '%s'", lineClient.LastReplyRequest.Messages[0].Text)
	}
	if len(llm.StreamRequests) != 1 {
		t.Errorf("Expected one exchange, got %d", len(llm.StreamRequests))
	}

	// end
	sendText(t, service, "/end")
	report := lastReplyText(t, lineClient)
	for _, want := range []string{"algorithm: 8/10", "overall: 8/10", "Well done"} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, report)
		}
	}
	if _, ok := service.ActiveSession("user-123"); ok {
		t.Error("Expected the active session to be cleared")
	}
}

func TestLineWebhookService_AnswerWithoutSession(t *testing.T) {
	lineClient := &MockLineClient{}
	llm := &MockLLMClient{}
	service := newTestLineService(llm, lineClient)

	sendText(t, service, "hello")

	if lastReplyText(t, lineClient) != lineNoActiveText {
		t.Errorf("Expected no-session text, got '%s'", lastReplyText(t, lineClient))
	}
	if len(llm.StreamRequests) != 0 {
		t.Error("Expected no LLM call")
	}
}

func TestLineWebhookService_StartCommands(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantActive bool
		wantReply  string
	}{
		{"design scenario", "/design url-shortener", true, "## URL Shortener"},
		{"design without id", "/design", false, "Usage: /design <scenario-id>"},
		{"unknown scenario", "/design nope", false, `Nothing found for "nope"`},
		{"workplace persona", "/workplace incident_review", true, "AI response"},
		{"workplace without id", "/workplace", false, "- incident_review: 故障复盘会"},
		{"unknown difficulty", "/algorithm expert", false, `Nothing found for "expert"`},
		{"unknown command", "/dance", false, "Unknown command: /dance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lineClient := &MockLineClient{}
			service := newTestLineService(&MockLLMClient{}, lineClient)

			sendText(t, service, tt.text)

			if !strings.Contains(lastReplyText(t, lineClient), tt.wantReply) {
				t.Errorf("Expected reply to contain %q, got '%s'", tt.wantReply, lastReplyText(t, lineClient))
			}
			if _, ok := service.ActiveSession("user-123"); ok != tt.wantActive {
				t.Errorf("Expected active=%v, got %v", tt.wantActive, ok)
			}
		})
	}
}

func TestLineWebhookService_GatewayFailure(t *testing.T) {
	llm := &MockLLMClient{
		ChatCompletionStreamFunc: func(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
			return nil, domain.ErrLLMUnavailable
		},
	}
	lineClient := &MockLineClient{}
	service := newTestLineService(llm, lineClient)
	sendText(t, service, "/algorithm easy")

	sendText(t, service, "my answer")

	if lastReplyText(t, lineClient) != lineFriendlyError {
		t.Errorf("Expected friendly error, got '%s'", lastReplyText(t, lineClient))
	}
	if _, ok := service.ActiveSession("user-123"); !ok {
		t.Error("Expected the session to stay active for a retry")
	}
}

func TestLineWebhookService_IgnoresNonText(t *testing.T) {
	lineClient := &MockLineClient{}
	service := newTestLineService(&MockLLMClient{}, lineClient)
	event := domain.LineWebhookEvent{
		Type:       domain.LineEventTypeMessage,
		UserID:     "user-123",
		ReplyToken: "reply-token",
		Message:    &domain.LineMessage{Type: domain.LineMessageTypeSticker},
	}

	err := service.HandleWebhook(context.Background(), domain.LineWebhookRequest{Events: []domain.LineWebhookEvent{event}})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lineClient.LastReplyRequest != nil {
		t.Error("Expected no reply for a sticker")
	}
}

func TestLineWebhookService_FollowAndUnfollow(t *testing.T) {
	// Arrange
	lineClient := &MockLineClient{}
	service := newTestLineService(&MockLLMClient{}, lineClient)
	sendText(t, service, "/algorithm easy")

	// Act
	err := service.HandleWebhook(context.Background(), domain.LineWebhookRequest{Events: []domain.LineWebhookEvent{
		{Type: domain.LineEventTypeFollow, UserID: "user-123"},
		{Type: domain.LineEventTypeUnfollow, UserID: "user-123"},
	}})

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lineClient.LastPushRequest == nil || lineClient.LastPushRequest.To != "user-123" {
		t.Fatal("Expected a welcome push to the user")
	}
	if lineClient.LastPushRequest.Messages[0].Text != lineWelcomeText {
		t.Errorf("Expected welcome text, got '%s'", lineClient.LastPushRequest.Messages[0].Text)
	}
	if _, ok := service.ActiveSession("user-123"); ok {
		t.Error("Expected unfollow to drop the active session")
	}
}

func TestLineWebhookService_ReplyError(t *testing.T) {
	lineClient := &MockLineClient{
		ReplyMessageFunc: func(request domain.LineReplyMessageRequest) error {
			return errors.New("LINE API error")
		},
	}
	service := newTestLineService(&MockLLMClient{}, lineClient)

	err := service.HandleWebhook(context.Background(), domain.LineWebhookRequest{
		Events: []domain.LineWebhookEvent{createTextMessageEvent("user-123", "reply-token", "/help")},
	})

	if err == nil {
		t.Error("Expected error when the reply fails")
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"short", "hello", 10, []string{"hello"}},
		{"exact", "0123456789", 10, []string{"0123456789"}},
		{"cut at sentence end", "Hello. World is big", 10, []string{"Hello.", " World is ", "big"}},
		{"hard cut", "abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
		{"multibyte", "你好。世界你好世界", 4, []string{"你好。", "世界你好", "世界"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMessage(tt.text, tt.limit)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitRepliesCapsMessageCount(t *testing.T) {
	replies := []string{strings.Repeat("a", maxLineMessageLength*4), "tail", "more"}

	got := splitReplies(replies)

	if len(got) != maxLineMessages {
		t.Fatalf("Expected %d messages, got %d", maxLineMessages, len(got))
	}
	if got[4] != "tail" {
		t.Errorf("Expected the fifth message to be 'tail', got %d characters", len(got[4]))
	}
}
