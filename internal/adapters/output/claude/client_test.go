package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talkpro/configs"
	"talkpro/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(configs.LLM{APIKey: "sk-ant-test", BaseURL: server.URL, Model: "claude-test", MaxRetries: 1})
	require.NoError(t, err)
	return client
}

func request() domain.ChatCompletionRequest {
	return domain.ChatCompletionRequest{Messages: []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: "You are an interviewer."},
		{Role: domain.ChatMessageRoleUser, Content: "hello"},
	}}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(configs.LLM{})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestChatCompletionSendsSystemSeparately(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body["model"])
		system := body["system"].([]any)
		assert.Equal(t, "You are an interviewer.", system[0].(map[string]any)["text"])
		assert.Len(t, body["messages"], 1)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"text","text":"Hello, "},{"type":"text","text":"candidate"}],
			"stop_reason":"end_turn","usage":{"input_tokens":7,"output_tokens":3}}`)
	})

	resp, err := client.ChatCompletion(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "Hello, candidate", resp.Content)
	assert.Equal(t, 10, resp.TotalTokens)
}

func TestChatCompletionBadRequest(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`)
	})

	_, err := client.ChatCompletion(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestChatCompletionStreamRelaysTextDeltas(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, piece := range []string{"What is ", "the QPS?"} {
			fmt.Fprintf(w, "event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"index\":0,\"delta\":{\"type\":\"text_delta\",\"text\":%q}}\n\n", piece)
		}
		fmt.Fprint(w, "event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n")
	})

	chunks, err := client.ChatCompletionStream(context.Background(), request())
	require.NoError(t, err)

	var sb strings.Builder
	var last domain.ChatCompletionChunk
	for chunk := range chunks {
		sb.WriteString(chunk.Content)
		last = chunk
	}
	assert.True(t, last.Done)
	assert.NoError(t, last.Error)
	assert.Equal(t, "What is the QPS?", sb.String())
}

func TestToMessagesDropsNothingButSystem(t *testing.T) {
	req := domain.ChatCompletionRequest{Messages: []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: "s"},
		{Role: domain.ChatMessageRoleUser, Content: "u"},
		{Role: domain.ChatMessageRoleAssistant, Content: "a"},
	}}

	out := toMessages(req.Conversation())
	require.Len(t, out, 2)
	assert.Equal(t, "user", string(out[0].Role))
	assert.Equal(t, "assistant", string(out[1].Role))
}
