package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"
)

// gateway wraps an LLM client with the per-call timeout and collapses
// every provider failure into domain.ErrGateway.
type gateway struct {
	client  output.LLMClient
	timeout time.Duration
}

func newGateway(client output.LLMClient, timeout time.Duration) *gateway {
	return &gateway{client: client, timeout: timeout}
}

func (g *gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// complete returns the full reply of one non-streaming call
func (g *gateway) complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.client.ChatCompletion(ctx, domain.ChatCompletionRequest{Messages: messages})
	if err != nil {
		return "", gatewayError(err)
	}
	if resp == nil {
		return "", gatewayError(errors.New("empty response"))
	}
	return resp.Content, nil
}

// stream accumulates a streamed reply, handing every fragment to onFragment as it arrives
func (g *gateway) stream(ctx context.Context, messages []domain.ChatMessage, onFragment domain.FragmentFunc) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	chunks, err := g.client.ChatCompletionStream(ctx, domain.ChatCompletionRequest{Messages: messages, Stream: true})
	if err != nil {
		return "", gatewayError(err)
	}
	if chunks == nil {
		return "", gatewayError(errors.New("no stream returned"))
	}

	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", gatewayError(ctx.Err())
		case chunk, ok := <-chunks:
			if !ok {
				if ctx.Err() != nil {
					return "", gatewayError(ctx.Err())
				}
				return sb.String(), nil
			}
			if chunk.Error != nil {
				return "", gatewayError(chunk.Error)
			}
			if chunk.Content != "" {
				sb.WriteString(chunk.Content)
				if onFragment != nil {
					onFragment(chunk.Content)
				}
			}
			if chunk.Done {
				return sb.String(), nil
			}
		}
	}
}

func gatewayError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrGateway, err)
}
