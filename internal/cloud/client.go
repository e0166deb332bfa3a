// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	OpenRouterURL = "https://openrouter.ai/api/v1"
	GroqURL       = "https://api.groq.com/openai/v1"

	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3

	// MaxResponseSize caps how much of a reply body is read.
	MaxResponseSize = 10 << 20

	backoffBase = 500 * time.Millisecond
	backoffMax  = 10 * time.Second

	userAgent = "llmopt/1.0"
	appTitle  = "llmopt"
)

// BaseURLFor resolves "openrouter" or "groq" to a base URL. Any other value
// is taken as the URL itself.
func BaseURLFor(backend string) string {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "openrouter":
		return OpenRouterURL
	case "groq":
		return GroqURL
	}
	return strings.TrimSuffix(backend, "/")
}

// Client calls one OpenAI-compatible /chat/completions endpoint. Configure
// it with the With methods before sharing it between goroutines.
type Client struct {
	key     string
	baseURL string
	http    *http.Client
	tries   int
	logger  *log.Logger
}

// NewClient returns a client for key aimed at OpenRouter. An empty key is
// accepted; every call then fails with ErrNotConfigured.
func NewClient(key string) *Client {
	return &Client{
		key:     strings.TrimSpace(key),
		baseURL: OpenRouterURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		tries:   DefaultMaxRetries,
	}
}

func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

func (c *Client) WithTimeout(d time.Duration) *Client {
	c.http.Timeout = d
	return c
}

// WithMaxRetries sets the total number of attempts, at least one.
func (c *Client) WithMaxRetries(n int) *Client {
	c.tries = max(n, 1)
	return c
}

// WithLogger logs each request's model, status and duration to l. The key
// only ever appears as its fingerprint.
func (c *Client) WithLogger(l *log.Logger) *Client {
	c.logger = l
	return c
}

// IsConfigured reports whether a key is set.
func (c *Client) IsConfigured() bool { return c.key != "" }

// KeyFingerprint identifies the key in logs without revealing it: the first
// four bytes of its SHA-256, in hex.
func (c *Client) KeyFingerprint() string {
	if c.key == "" {
		return "none"
	}
	sum := sha256.Sum256([]byte(c.key))
	return hex.EncodeToString(sum[:4])
}

// Complete asks model one question and returns the answer text.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	resp, err := c.Chat(ctx, ChatRequest{
		Model:     model,
		Messages:  []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}
	answer := resp.Content()
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}

// Chat sends req, retrying rate limits and 5xx replies with exponential
// backoff until the attempts run out or ctx ends.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	req.Stream = false
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := range c.tries {
		if attempt > 0 {
			timer := time.NewTimer(backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
		resp, err := c.post(ctx, req.Model, body)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", c.tries, lastErr)
}

// backoff is the wait before attempt n: base doubled n times, capped.
func backoff(n int) time.Duration {
	return min(backoffBase<<n, backoffMax)
}

func (c *Client) post(ctx context.Context, model string, body []byte) (*ChatResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Title", appTitle)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logf("cloud: POST %s model=%s key=%s status=%d in %v",
		req.URL.Path, model, c.KeyFingerprint(), resp.StatusCode, time.Since(start).Round(time.Millisecond))

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response larger than %d bytes", MaxResponseSize)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}

	var out ChatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &out, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
