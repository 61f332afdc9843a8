package output

import (
	"context"

	"talkpro/internal/domain"
)

// LLMClient interface - Output port
// Defines what the application needs from a chat completion provider
// (LM Studio, OpenAI, Anthropic or Ollama).
type LLMClient interface {
	// ChatCompletion sends a non-streaming completion request and returns the full reply.
	ChatCompletion(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error)

	// ChatCompletionStream sends a streaming completion request.
	// The returned channel emits fragments in order and is closed when the stream ends.
	// A failure after streaming began is delivered as a final chunk with Error set and Done=true.
	// Returns an error if the request fails before streaming begins.
	ChatCompletionStream(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error)
}
