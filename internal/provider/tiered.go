// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"

	"github.com/Nishchalpr4/llmopt/internal/router"
)

// Tiered routes each tier to its own backend, for example a local model for
// the small tier and a cloud API for the large tier.
type Tiered struct {
	backends map[router.Tier]Provider
	fallback Provider
}

// NewTiered creates a Tiered provider. fallback serves tiers without an
// explicit backend and may be nil.
func NewTiered(backends map[router.Tier]Provider, fallback Provider) *Tiered {
	b := make(map[router.Tier]Provider, len(backends))
	for tier, p := range backends {
		if p != nil {
			b[tier] = p
		}
	}
	return &Tiered{backends: b, fallback: fallback}
}

// Generate implements Provider.
func (t *Tiered) Generate(ctx context.Context, question string, tier router.Tier) (string, error) {
	if p, ok := t.backends[tier]; ok {
		return p.Generate(ctx, question, tier)
	}
	if t.fallback != nil {
		return t.fallback.Generate(ctx, question, tier)
	}
	return "", &Error{Provider: "tiered", Tier: tier, Err: ErrNoBackend}
}
