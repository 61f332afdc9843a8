package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"talkpro/configs"
	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure Client implements LLMClient interface
var _ output.LLMClient = (*Client)(nil)

const defaultModel = "gpt-4o-mini"

// Client struct - Output adapter for the OpenAI chat completion API
type Client struct {
	client      *goopenai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewClient func - Creates a new OpenAI adapter. base_url switches to any compatible endpoint.
func NewClient(cfg configs.LLM) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai provider needs llm.api_key", domain.ErrInvalidRequest)
	}

	config := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		client:      goopenai.NewClientWithConfig(config),
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}, nil
}

// ChatCompletion func - Sends a non-streaming completion request
func (c *Client) ChatCompletion(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(request, false))
	if err != nil {
		return nil, mapError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices in response", domain.ErrLLMUnavailable)
	}

	return &domain.ChatCompletionResponse{
		Content:          resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// ChatCompletionStream func - Sends a streaming completion request and relays deltas on a channel
func (c *Client) ChatCompletionStream(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.buildRequest(request, true))
	if err != nil {
		return nil, mapError(ctx, err)
	}

	chunks := make(chan domain.ChatCompletionChunk)
	go func() {
		defer close(chunks)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				send(ctx, chunks, domain.ChatCompletionChunk{Done: true})
				return
			}
			if err != nil {
				logrus.Errorf("OpenAI stream failed: %v", err)
				send(ctx, chunks, domain.ChatCompletionChunk{Done: true, Error: mapError(ctx, err)})
				return
			}
			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			if !send(ctx, chunks, domain.ChatCompletionChunk{Content: resp.Choices[0].Delta.Content}) {
				return
			}
		}
	}()

	return chunks, nil
}

func (c *Client) buildRequest(request domain.ChatCompletionRequest, stream bool) goopenai.ChatCompletionRequest {
	model := c.model
	if request.Model != nil && *request.Model != "" {
		model = *request.Model
	}
	maxTokens := c.maxTokens
	if request.MaxTokens > 0 {
		maxTokens = request.MaxTokens
	}
	temperature := c.temperature
	if request.Temperature != nil {
		temperature = float32(*request.Temperature)
	}

	return goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    toMessages(request.Messages),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      stream,
	}
}

func toMessages(messages []domain.ChatMessage) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := goopenai.ChatMessageRoleUser
		switch msg.Role {
		case domain.ChatMessageRoleSystem:
			role = goopenai.ChatMessageRoleSystem
		case domain.ChatMessageRoleAssistant:
			role = goopenai.ChatMessageRoleAssistant
		}
		out = append(out, goopenai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return out
}

// mapError translates SDK errors into the gateway sentinels
func mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", domain.ErrLLMTimeout, err)
	}
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= http.StatusBadRequest && apiErr.HTTPStatusCode < http.StatusInternalServerError {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
}

func send(ctx context.Context, chunks chan<- domain.ChatCompletionChunk, chunk domain.ChatCompletionChunk) bool {
	select {
	case chunks <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
