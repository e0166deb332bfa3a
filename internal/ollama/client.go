// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Defaults applied by New to zero Config fields. The IPv4 address avoids
// localhost resolving to ::1 where Ollama does not listen.
const (
	DefaultBaseURL = "http://127.0.0.1:11434"
	DefaultTimeout = 30 * time.Second
	DefaultModel   = "llama3.2:3b"
)

// Config configures a Client.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	DefaultModel string // used when a call passes an empty model
}

// Client talks to one Ollama server. It is safe for concurrent use.
type Client struct {
	base  string
	model string
	http  *http.Client
}

// New creates a Client, filling zero fields of cfg with the defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	return &Client{
		base:  strings.TrimSuffix(cfg.BaseURL, "/"),
		model: cfg.DefaultModel,
		http:  &http.Client{Timeout: cfg.Timeout},
	}
}

// DefaultModel returns the model used when none is given.
func (c *Client) DefaultModel() string { return c.model }

// Ping succeeds when the server answers its root endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/", nil, nil)
}

// Models lists the installed models.
func (c *Client) Models(ctx context.Context) ([]Model, error) {
	var tags tagsResponse
	if err := c.do(ctx, "tags", http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags.Models, nil
}

// Chat sends a non-streaming chat request.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	req.Stream = false
	var resp ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Generate asks model one question and returns the answer text. maxTokens
// <= 0 keeps the server's limit.
func (c *Client) Generate(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	req := ChatRequest{Model: model, Messages: []Message{UserMessage(prompt)}}
	if maxTokens > 0 {
		req.Options = &Options{NumPredict: maxTokens}
	}
	resp, err := c.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// do sends in as JSON (when non-nil) and decodes a 200 reply into out
// (when non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindBadResponse, Op: op, Msg: "encode request", Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &Error{Kind: KindUnknown, Op: op, Msg: "build request", Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound && op == "chat":
		return &Error{Kind: KindModelNotFound, Op: op, Msg: ErrModelNotFound.Msg}
	case resp.StatusCode != http.StatusOK:
		var eb errorBody
		if json.NewDecoder(resp.Body).Decode(&eb) == nil && eb.Error != "" {
			return &Error{Kind: KindBadResponse, Op: op, Msg: eb.Error}
		}
		return &Error{Kind: KindBadResponse, Op: op, Msg: fmt.Sprintf("unexpected status %s", resp.Status)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindBadResponse, Op: op, Msg: "decode response", Err: err}
	}
	return nil
}

func transportError(op string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: KindTimeout, Op: op, Msg: ErrTimeout.Msg, Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCanceled, Op: op, Msg: "request canceled", Err: err}
	default:
		return &Error{Kind: KindNotRunning, Op: op, Msg: ErrNotRunning.Msg, Err: err}
	}
}
