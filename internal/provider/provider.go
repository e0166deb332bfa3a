// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider generates answers for a question on a given tier.
//
// A Provider hides the backend: a deterministic placeholder, a local Ollama
// model, or an OpenAI-compatible cloud API. Tiered dispatches per tier and
// Guarded adds a per-call timeout and rate limiting around any Provider.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nishchalpr4/llmopt/internal/router"
)

// Provider produces an answer for question using the backend behind tier.
// Implementations must be safe for concurrent use and honor ctx.
type Provider interface {
	Generate(ctx context.Context, question string, tier router.Tier) (string, error)
}

// Func adapts an ordinary function to the Provider interface.
type Func func(ctx context.Context, question string, tier router.Tier) (string, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, question string, tier router.Tier) (string, error) {
	return f(ctx, question, tier)
}

// Sentinel errors.
var (
	// ErrNoBackend indicates no backend is configured for a tier.
	ErrNoBackend = errors.New("no backend configured for tier")

	// ErrTimeout indicates the provider did not answer within its deadline.
	ErrTimeout = errors.New("provider timed out")

	// ErrNoModel indicates a backend has no model mapped for a tier.
	ErrNoModel = errors.New("no model configured for tier")
)

// Error describes a failed generation attempt.
type Error struct {
	Provider string
	Tier     router.Tier
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s provider (%s tier): %v", e.Provider, e.Tier, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap attaches provider and tier context unless err already carries it.
func wrap(name string, tier router.Tier, err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	return &Error{Provider: name, Tier: tier, Err: err}
}
