package lmstudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"talkpro/internal/domain"

	"github.com/sirupsen/logrus"
)

// retryPolicy retries transient failures with exponential backoff
type retryPolicy struct {
	attempts   int
	delay      time.Duration
	maxDelay   time.Duration
	multiplier int
}

// do runs send until it returns a 2xx response, a non-transient failure, or attempts run out.
// 4xx answers are never retried and map to domain.ErrInvalidRequest.
func (p retryPolicy) do(ctx context.Context, send func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	delay := p.delay

	for attempt := 1; attempt <= p.attempts; attempt++ {
		resp, err := send()
		switch {
		case err != nil:
			if !isTransient(err) {
				return nil, err
			}
			lastErr = err
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, drain(resp))
		default:
			lastErr = fmt.Errorf("server error: %s", drain(resp))
		}

		if attempt == p.attempts {
			break
		}
		logrus.Warnf("LLM request attempt %d/%d failed: %v, retrying in %v", attempt, p.attempts, lastErr, delay)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrLLMTimeout, ctx.Err())
		case <-time.After(delay):
		}
		delay *= time.Duration(p.multiplier)
		if delay > p.maxDelay {
			delay = p.maxDelay
		}
	}

	return nil, fmt.Errorf("%w: %v after %d attempts", domain.ErrLLMUnavailable, lastErr, p.attempts)
}

// drain reads and closes the body, returning "status N - body"
func drain(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return fmt.Sprintf("status %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// isTransient reports network level failures worth retrying
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection refused", "connection reset", "no such host", "network is unreachable", "i/o timeout", "eof"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
