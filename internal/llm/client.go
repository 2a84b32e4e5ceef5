// Package llm isolates the language-model collaborator behind a narrow
// prompt-in/text-out contract so the rest of the pipeline stays deterministic
// and testable.
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
	"time"

	"golang.org/x/time/rate"
)

// ErrEmptyCompletion is returned when the provider answers without any
// choices or content.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Client produces a completion for a prompt. Implementations are expected to
// be unreliable; callers must handle malformed output and transport errors.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HTTPConfig configures the chat-completions client.
type HTTPConfig struct {
	BaseURL           string
	APIKey            string
	Model             string
	Temperature       float64
	RequestsPerMinute int
	Timeout           time.Duration
}

// HTTPClient talks to an OpenAI-compatible chat-completions endpoint. An
// outbound rate limiter keeps the service under provider quotas instead of
// surfacing constant 429 responses to users.
type HTTPClient struct {
	cfg     HTTPConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPClient wires an HTTP-backed client from the given configuration.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	return &HTTPClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
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
	} `json:"error"`
}

// Complete sends the prompt as a single user message and returns the first
// choice's content. The call blocks until the rate limiter grants a token or
// the context is cancelled.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm: rate limit wait: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: provider returned status %d: %s", resp.StatusCode, snippet(payload))
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("llm: provider error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
