package lmstudio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"talkpro/internal/domain"

	"github.com/sirupsen/logrus"
)

const streamBufferSize = 100

// ChatCompletionStream sends a streaming request and relays SSE deltas on the returned channel
func (c *Client) ChatCompletionStream(ctx context.Context, request domain.ChatCompletionRequest) (<-chan domain.ChatCompletionChunk, error) {
	payload, model, err := c.buildRequest(ctx, request, true)
	if err != nil {
		return nil, err
	}

	req, err := c.newCompletionRequest(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create streaming request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// No retry here: a half-consumed stream cannot be replayed.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		detail := drain(resp)
		if resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, detail)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrLLMUnavailable, detail)
	}

	chunks := make(chan domain.ChatCompletionChunk, streamBufferSize)
	go relaySSE(ctx, resp, chunks)

	logrus.Debugf("Started streaming chat completion with model: %s", model)
	return chunks, nil
}

// relaySSE parses the event stream and always finishes with a Done chunk before closing the channel
func relaySSE(ctx context.Context, resp *http.Response, chunks chan<- domain.ChatCompletionChunk) {
	defer func() {
		resp.Body.Close()
		close(chunks)
	}()

	emit := func(chunk domain.ChatCompletionChunk) bool {
		select {
		case chunks <- chunk:
			return true
		case <-ctx.Done():
			return false
		}
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		content, done, err := parseSSELine(scanner.Text())
		if err != nil {
			logrus.Warnf("Skipping malformed SSE line: %v", err)
			continue
		}
		if done {
			emit(domain.ChatCompletionChunk{Done: true})
			return
		}
		if content != "" && !emit(domain.ChatCompletionChunk{Content: content}) {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		emit(domain.ChatCompletionChunk{Done: true, Error: fmt.Errorf("failed to read streaming response: %w", err)})
		return
	}
	// EOF without [DONE] counts as a normal end
	emit(domain.ChatCompletionChunk{Done: true})
}

// parseSSELine returns the delta text of a "data:" line, or done=true on [DONE].
// Other SSE fields (event:, id:, comments) yield nothing.
func parseSSELine(line string) (string, bool, error) {
	if !strings.HasPrefix(line, "data:") {
		return "", false, nil
	}
	data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if data == "[DONE]" {
		return "", true, nil
	}

	var event chatCompletionStreamResponse
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return "", false, fmt.Errorf("failed to parse SSE JSON: %w", err)
	}
	if len(event.Choices) == 0 {
		return "", false, nil
	}
	return event.Choices[0].Delta.Content, false, nil
}
