// Package ollama breaks tasks down into micro-steps with a local Ollama model.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/taskflow/pkg/domain"
)

const (
	DefaultBaseURL     = "http://localhost:11434"
	DefaultModel       = "gemma:2b"
	DefaultTemperature = 0.2

	defaultMaxAttempts  = 2
	defaultInitialDelay = 500 * time.Millisecond
)

// Client implements ports.Breakdowner over the Ollama /api/chat endpoint.
type Client struct {
	baseURL      string
	model        string
	temperature  float64
	client       *http.Client
	maxAttempts  int
	initialDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the server URL, e.g. http://localhost:11434.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// WithTimeout bounds one HTTP exchange. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithRetry sets the number of attempts and the first backoff delay.
// Only transport failures and 5xx responses are retried.
func WithRetry(attempts int, initialDelay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
		c.initialDelay = initialDelay
	}
}

// New creates a client with defaults for a local server.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		model:        DefaultModel,
		temperature:  DefaultTemperature,
		client:       &http.Client{},
		maxAttempts:  defaultMaxAttempts,
		initialDelay: defaultInitialDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// Prompt returns the instruction sent for description.
func Prompt(description string) string {
	return "Break down the following task into 3 to 5 concise, actionable steps. " +
		"Estimate the time in minutes for each step. " +
		"Return ONLY a valid JSON list of dictionaries. " +
		`Use exactly this format: [{"step": "Action description", "estimated_minutes": 15}]. ` +
		"Task: " + description
}

// Breakdown asks the model for 3 to 5 micro-steps of description.
func (c *Client) Breakdown(ctx context.Context, description string) ([]domain.MicroStep, error) {
	content, err := c.chat(ctx, Prompt(description))
	if err != nil {
		return nil, err
	}
	return ParseSteps(content)
}

func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Format:   "json",
		Options:  map[string]any{"temperature": c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * c.initialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = fmt.Errorf("ollama request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("ollama error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
			if resp.StatusCode >= 500 {
				continue
			}
			return "", lastErr
		}

		var chat chatResponse
		if err := json.Unmarshal(respBody, &chat); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		if chat.Error != "" {
			return "", fmt.Errorf("ollama error: %s", chat.Error)
		}
		return chat.Message.Content, nil
	}

	return "", fmt.Errorf("max attempts (%d) exceeded: %w", c.maxAttempts, lastErr)
}
