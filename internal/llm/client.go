// internal/llm/client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"boardpulse/internal/common/config"
	"boardpulse/internal/common/httpclient"
	"boardpulse/internal/common/logger"
	"boardpulse/internal/common/metrics"
)

var (
	// ErrNotConfigured means no API key was supplied; callers degrade, they
	// do not crash.
	ErrNotConfigured = errors.New("llm: api key not configured")
	// ErrUnavailable covers rate limiting, exhausted quota and rejected
	// credentials.
	ErrUnavailable = errors.New("llm: service unavailable")
)

// Client issues chat-completion requests against an OpenAI-compatible API.
// One request per call, fully awaited, no retries.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *httpclient.Client
	logger      logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  httpclient.New(config.GetDuration(cfg.Timeout)),
		logger:      log.WithFields(map[string]interface{}{"component": "llm"}),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends one system+user exchange and returns the trimmed assistant
// content. The operation label is only used for metrics and logs.
func (c *Client) Complete(ctx context.Context, operation, system, user string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.LLMCallsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.LLMCallsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.LLMCallsTotal.WithLabelValues(operation, "error").Inc()
		if isUnavailableStatus(resp.StatusCode) || mentionsQuota(body) {
			c.logger.Warn("llm unavailable", map[string]interface{}{
				"operation": operation,
				"status":    resp.StatusCode,
			})
			return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		return "", fmt.Errorf("llm: status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		metrics.LLMCallsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if chatResp.Error != nil {
		metrics.LLMCallsTotal.WithLabelValues(operation, "error").Inc()
		if mentionsQuota([]byte(chatResp.Error.Message + chatResp.Error.Code)) {
			return "", fmt.Errorf("%w: %s", ErrUnavailable, chatResp.Error.Message)
		}
		return "", fmt.Errorf("llm: api error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		metrics.LLMCallsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("llm: empty response")
	}

	metrics.LLMCallsTotal.WithLabelValues(operation, "ok").Inc()
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func isUnavailableStatus(status int) bool {
	return status == http.StatusTooManyRequests ||
		status == http.StatusUnauthorized ||
		status == http.StatusForbidden
}

func mentionsQuota(body []byte) bool {
	s := strings.ToLower(string(body))
	return strings.Contains(s, "insufficient_quota") || strings.Contains(s, "rate")
}
