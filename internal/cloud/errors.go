// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotConfigured       = errors.New("API key not configured")
	ErrAuthFailed          = errors.New("authentication failed")
	ErrRateLimited         = errors.New("rate limited")
	ErrModelNotFound       = errors.New("model not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrEmptyResponse       = errors.New("empty response")
)

// statusErrors maps HTTP statuses onto sentinels. Other non-200 statuses
// become *APIError.
var statusErrors = map[int]error{
	http.StatusUnauthorized:    ErrAuthFailed,
	http.StatusForbidden:       ErrAuthFailed,
	http.StatusPaymentRequired: ErrInsufficientCredits,
	http.StatusNotFound:        ErrModelNotFound,
	http.StatusTooManyRequests: ErrRateLimited,
}

// APIError is an error response with no matching sentinel.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// errorEnvelope is the OpenAI error body. code is a string on some
// services and a number on others.
type errorEnvelope struct {
	Error struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
	} `json:"error"`
}

// statusError turns a non-200 reply into an error.
func statusError(status int, body []byte) error {
	msg, code := strings.TrimSpace(string(body)), ""
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && env.Error.Message != "" {
		msg = env.Error.Message
		code = strings.Trim(string(env.Error.Code), `"`)
	}
	if sentinel, ok := statusErrors[status]; ok {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
	return &APIError{Status: status, Code: code, Message: msg}
}

// retryable reports whether another attempt might succeed: rate limits and
// 5xx replies, never a canceled or expired context.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}
