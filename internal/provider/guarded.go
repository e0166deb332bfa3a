// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/Nishchalpr4/llmopt/internal/router"
)

// Guarded bounds every call to the wrapped Provider with a timeout and an
// optional token-bucket rate limit.
type Guarded struct {
	next    Provider
	timeout time.Duration
	limiter *rate.Limiter
}

// GuardOption configures a Guarded provider.
type GuardOption func(*Guarded)

// WithTimeout bounds each call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) GuardOption {
	return func(g *Guarded) {
		g.timeout = d
	}
}

// WithRateLimit allows perSecond calls per second with the given burst.
// perSecond <= 0 disables limiting.
func WithRateLimit(perSecond float64, burst int) GuardOption {
	return func(g *Guarded) {
		if perSecond <= 0 {
			g.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewGuarded wraps next.
func NewGuarded(next Provider, opts ...GuardOption) *Guarded {
	g := &Guarded{next: next}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type generation struct {
	answer string
	err    error
}

// Generate implements Provider. The deadline is enforced even when the
// wrapped provider ignores ctx.
func (g *Guarded) Generate(ctx context.Context, question string, tier router.Tier) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", &Error{Provider: "guard", Tier: tier, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	if g.timeout <= 0 {
		return g.next.Generate(ctx, question, tier)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan generation, 1)
	go func() {
		answer, err := g.next.Generate(ctx, question, tier)
		done <- generation{answer: answer, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &Error{Provider: "guard", Tier: tier, Err: fmt.Errorf("%w after %v: %v", ErrTimeout, g.timeout, res.err)}
		}
		return res.answer, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &Error{Provider: "guard", Tier: tier, Err: fmt.Errorf("%w after %v", ErrTimeout, g.timeout)}
		}
		return "", &Error{Provider: "guard", Tier: tier, Err: ctx.Err()}
	}
}
