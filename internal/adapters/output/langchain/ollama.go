package langchain

import (
	"context"
	"errors"
	"fmt"

	"talkpro/configs"
	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Compile-time check to ensure OllamaClient implements LLMClient interface
var _ output.LLMClient = (*OllamaClient)(nil)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.1"
)

// OllamaClient struct - Output adapter for a local Ollama server through langchaingo
type OllamaClient struct {
	llm         llms.Model
	maxTokens   int
	temperature float64
}

// NewOllamaClient func - Creates a new Ollama adapter
func NewOllamaClient(cfg configs.LLM) (*OllamaClient, error) {
	serverURL := cfg.BaseURL
	if serverURL == "" {
		serverURL = defaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}

	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaClient{
		llm:         llm,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// ChatCompletion func - Runs one generation and returns the first choice
func (c *OllamaClient) ChatCompletion(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error) {
	resp, err := c.llm.GenerateContent(ctx, toMessageContent(request.Messages), c.callOptions(request)...)
	if err != nil {
		return nil, mapError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices in response", domain.ErrLLMUnavailable)
	}
	return &domain.ChatCompletionResponse{Content: resp.Choices[0].Content}, nil
}

// ChatCompletionStream func - Runs one generation, relaying streamed chunks on a channel
func (c *OllamaClient) ChatCompletionStream(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
	chunks := make(chan domain.ChatCompletionChunk)

	opts := append(c.callOptions(request), llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
		if len(chunk) == 0 {
			return nil
		}
		select {
		case chunks <- domain.ChatCompletionChunk{Content: string(chunk)}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}))

	go func() {
		defer close(chunks)

		final := domain.ChatCompletionChunk{Done: true}
		if _, err := c.llm.GenerateContent(ctx, toMessageContent(request.Messages), opts...); err != nil {
			logrus.Errorf("Ollama stream failed: %v", err)
			final.Error = mapError(ctx, err)
		}
		select {
		case chunks <- final:
		case <-ctx.Done():
		}
	}()

	return chunks, nil
}

func (c *OllamaClient) callOptions(request domain.ChatCompletionRequest) []llms.CallOption {
	var opts []llms.CallOption
	maxTokens := c.maxTokens
	if request.MaxTokens > 0 {
		maxTokens = request.MaxTokens
	}
	if maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(maxTokens))
	}
	temperature := c.temperature
	if request.Temperature != nil {
		temperature = *request.Temperature
	}
	if temperature > 0 {
		opts = append(opts, llms.WithTemperature(temperature))
	}
	if request.Model != nil && *request.Model != "" {
		opts = append(opts, llms.WithModel(*request.Model))
	}
	return opts
}

func toMessageContent(messages []domain.ChatMessage) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case domain.ChatMessageRoleSystem:
			msgType = llms.ChatMessageTypeSystem
		case domain.ChatMessageRoleAssistant:
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}
		out = append(out, llms.TextParts(msgType, msg.Content))
	}
	return out
}

func mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrLLMTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
}
