package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"talkpro/configs"
	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure Client implements LLMClient interface
var _ output.LLMClient = (*Client)(nil)

const defaultMaxTokens = 4096

// Client struct - Output adapter for the Anthropic Messages API
type Client struct {
	client      *anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature *float64
}

// NewClient func - Creates a new Anthropic adapter
func NewClient(cfg configs.LLM) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic provider needs llm.api_key", domain.ErrInvalidRequest)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	client := anthropic.NewClient(opts...)

	model := anthropic.ModelClaude4Sonnet20250514
	if cfg.Model != "" {
		model = anthropic.Model(cfg.Model)
	}
	maxTokens := int64(defaultMaxTokens)
	if cfg.MaxTokens > 0 {
		maxTokens = int64(cfg.MaxTokens)
	}

	c := &Client{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}
	if cfg.Temperature > 0 {
		t := cfg.Temperature
		c.temperature = &t
	}
	return c, nil
}

// ChatCompletion func - Sends a Messages request and joins the text blocks of the reply
func (c *Client) ChatCompletion(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error) {
	message, err := c.client.Messages.New(ctx, c.buildParams(request))
	if err != nil {
		return nil, mapError(ctx, err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			sb.WriteString(block.Text)
		}
	}

	return &domain.ChatCompletionResponse{
		Content:          sb.String(),
		Model:            string(message.Model),
		PromptTokens:     int(message.Usage.InputTokens),
		CompletionTokens: int(message.Usage.OutputTokens),
		TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
	}, nil
}

// ChatCompletionStream func - Relays text deltas of a streaming Messages request
func (c *Client) ChatCompletionStream(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
	stream := c.client.Messages.NewStreaming(ctx, c.buildParams(request))

	chunks := make(chan domain.ChatCompletionChunk)
	go func() {
		defer close(chunks)
		defer stream.Close()

		for stream.Next() {
			event := stream.Current()
			switch ev := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				delta, ok := ev.Delta.AsAny().(anthropic.TextDelta)
				if !ok || delta.Text == "" {
					continue
				}
				select {
				case chunks <- domain.ChatCompletionChunk{Content: delta.Text}:
				case <-ctx.Done():
					return
				}
			}
		}

		final := domain.ChatCompletionChunk{Done: true}
		if err := stream.Err(); err != nil {
			logrus.Errorf("Anthropic stream failed: %v", err)
			final.Error = mapError(ctx, err)
		}
		select {
		case chunks <- final:
		case <-ctx.Done():
		}
	}()

	return chunks, nil
}

func (c *Client) buildParams(request domain.ChatCompletionRequest) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  toMessages(request.Conversation()),
	}
	if request.Model != nil && *request.Model != "" {
		params.Model = anthropic.Model(*request.Model)
	}
	if request.MaxTokens > 0 {
		params.MaxTokens = int64(request.MaxTokens)
	}
	if system := request.SystemPrompt(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	switch {
	case request.Temperature != nil:
		params.Temperature = anthropic.Float(*request.Temperature)
	case c.temperature != nil:
		params.Temperature = anthropic.Float(*c.temperature)
	}
	return params
}

// toMessages converts user and assistant messages; system text travels in params.System
func toMessages(messages []domain.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == domain.ChatMessageRoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
			continue
		}
		out = append(out, anthropic.NewUserMessage(block))
	}
	return out
}

func mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", domain.ErrLLMTimeout, err)
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
}
