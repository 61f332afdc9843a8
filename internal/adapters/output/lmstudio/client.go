package lmstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"talkpro/configs"
	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/sirupsen/logrus"
)

var _ output.LLMClient = (*Client)(nil)

const (
	defaultBaseURL    = "http://localhost:1234"
	defaultTimeout    = 120 * time.Second
	defaultMaxRetries = 3
)

// Client struct - Output adapter for OpenAI-compatible chat completion servers
// (LM Studio, vLLM, llama.cpp server)
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	configModel string
	maxTokens   int
	temperature *float64
	retry       retryPolicy

	cachedModel string
	modelMu     sync.RWMutex
}

// NewClient func - Creates the adapter from the llm config section
func NewClient(cfg configs.LLM) (*Client, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = defaultTimeout
	}

	attempts := cfg.MaxRetries
	if attempts <= 0 {
		attempts = defaultMaxRetries
	}

	c := &Client{
		httpClient: &http.Client{
			// Streams can outlive a single request timeout; the caller's context bounds them.
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   100,
				IdleConnTimeout:       90 * time.Second,
				ResponseHeaderTimeout: timeout,
			},
		},
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		configModel: cfg.Model,
		maxTokens:   cfg.MaxTokens,
		retry: retryPolicy{
			attempts:   attempts,
			delay:      time.Second,
			maxDelay:   30 * time.Second,
			multiplier: 2,
		},
	}
	if cfg.Temperature > 0 {
		t := cfg.Temperature
		c.temperature = &t
	}

	logrus.Infof("OpenAI-compatible client initialized with base URL: %s, response timeout: %v", baseURL, timeout)
	return c, nil
}

// ListModels queries /v1/models
func (c *Client) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	resp, err := c.retry.do(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer resp.Body.Close()

	var body modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse models response: %w", err)
	}

	models := make([]domain.ModelInfo, 0, len(body.Data))
	for _, m := range body.Data {
		models = append(models, domain.ModelInfo{ID: m.ID, Object: m.Object, OwnedBy: m.OwnedBy})
	}
	return models, nil
}

// resolveModel picks the request model, else the configured one, else the first served model
func (c *Client) resolveModel(ctx context.Context, requested *string) (string, error) {
	if requested != nil && *requested != "" {
		return *requested, nil
	}

	c.modelMu.RLock()
	model := c.cachedModel
	c.modelMu.RUnlock()
	if model != "" {
		return model, nil
	}

	c.modelMu.Lock()
	defer c.modelMu.Unlock()
	if c.cachedModel != "" {
		return c.cachedModel, nil
	}

	if c.configModel != "" {
		c.cachedModel = c.configModel
		return c.cachedModel, nil
	}

	models, err := c.ListModels(ctx)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", fmt.Errorf("%w: server lists no models", domain.ErrLLMUnavailable)
	}
	c.cachedModel = models[0].ID
	logrus.Infof("Selected first available model: %s", c.cachedModel)
	return c.cachedModel, nil
}

func (c *Client) buildRequest(ctx context.Context, request domain.ChatCompletionRequest, stream bool) ([]byte, string, error) {
	model, err := c.resolveModel(ctx, request.Model)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get model: %w", err)
	}

	body := chatCompletionAPIRequest{
		Model:       model,
		Messages:    make([]chatMessageAPI, 0, len(request.Messages)),
		Stream:      stream,
		Temperature: c.temperature,
	}
	for _, msg := range request.Messages {
		body.Messages = append(body.Messages, chatMessageAPI{Role: string(msg.Role), Content: msg.Content})
	}
	if request.Temperature != nil {
		body.Temperature = request.Temperature
	}
	body.MaxTokens = c.maxTokens
	if request.MaxTokens > 0 {
		body.MaxTokens = request.MaxTokens
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request: %w", err)
	}
	return payload, model, nil
}

func (c *Client) newCompletionRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// ChatCompletion sends a non-streaming chat completion request
func (c *Client) ChatCompletion(ctx context.Context, request domain.ChatCompletionRequest) (*domain.ChatCompletionResponse, error) {
	payload, _, err := c.buildRequest(ctx, request, false)
	if err != nil {
		return nil, err
	}

	resp, err := c.retry.do(ctx, func() (*http.Response, error) {
		req, err := c.newCompletionRequest(ctx, payload)
		if err != nil {
			return nil, err
		}
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send chat completion request: %w", err)
	}
	defer resp.Body.Close()

	var apiResp chatCompletionAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse chat completion response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	logrus.Debugf("Chat completion done, model: %s, tokens: %d", apiResp.Model, apiResp.Usage.TotalTokens)

	return &domain.ChatCompletionResponse{
		Content:          apiResp.Choices[0].Message.Content,
		Model:            apiResp.Model,
		PromptTokens:     apiResp.Usage.PromptTokens,
		CompletionTokens: apiResp.Usage.CompletionTokens,
		TotalTokens:      apiResp.Usage.TotalTokens,
	}, nil
}

// API request/response structures of the OpenAI-compatible protocol

type chatMessageAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionAPIRequest struct {
	Model       string           `json:"model"`
	Messages    []chatMessageAPI `json:"messages"`
	Stream      bool             `json:"stream"`
	Temperature *float64         `json:"temperature,omitempty"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

type chatCompletionAPIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessageAPI `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type chatCompletionStreamResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content,omitempty"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason,omitempty"`
	} `json:"choices"`
}

type modelsResponse struct {
	Data []struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}
