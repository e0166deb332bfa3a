// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"errors"
	"fmt"
)

// ErrIncompleteRegistry is returned when a tier table does not cover every tier.
var ErrIncompleteRegistry = errors.New("tier registry is incomplete")

// Registry is the read-only tier table. It is built once at startup and is
// safe for concurrent reads without locking.
type Registry struct {
	configs [tierCount]TierConfig
}

// NewRegistry validates configs and builds a Registry.
// Every known tier must appear exactly once.
func NewRegistry(configs []TierConfig) (*Registry, error) {
	var (
		r    Registry
		seen [tierCount]bool
	)

	for _, c := range configs {
		if !c.Tier.IsValid() {
			return nil, fmt.Errorf("tier config %q: unknown tier %d", c.Model, int(c.Tier))
		}
		if seen[c.Tier] {
			return nil, fmt.Errorf("tier %s: configured more than once", c.Tier)
		}
		if err := validateTierConfig(c); err != nil {
			return nil, err
		}
		seen[c.Tier] = true
		r.configs[c.Tier] = c
	}

	for _, t := range AllTiers() {
		if !seen[t] {
			return nil, fmt.Errorf("%w: missing tier %s", ErrIncompleteRegistry, t)
		}
	}

	// Escalation walks up the tier order, so cost must not decrease along it.
	for t := TierSmall + 1; t < tierCount; t++ {
		if r.configs[t].CostPer1K < r.configs[t-1].CostPer1K {
			return nil, fmt.Errorf("tier %s: cost_per_1k_tokens %g is below tier %s (%g)",
				t, r.configs[t].CostPer1K, t-1, r.configs[t-1].CostPer1K)
		}
	}

	return &r, nil
}

func validateTierConfig(c TierConfig) error {
	switch {
	case c.Model == "":
		return fmt.Errorf("tier %s: model name is required", c.Tier)
	case c.CostPer1K < 0:
		return fmt.Errorf("tier %s: cost_per_1k_tokens must be >= 0, got %g", c.Tier, c.CostPer1K)
	case c.AvgLatencyMs <= 0:
		return fmt.Errorf("tier %s: avg_latency_ms must be > 0, got %g", c.Tier, c.AvgLatencyMs)
	case c.MaxTokens <= 0:
		return fmt.Errorf("tier %s: max_tokens must be > 0, got %d", c.Tier, c.MaxTokens)
	case c.QualityThreshold < 0 || c.QualityThreshold > 1:
		return fmt.Errorf("tier %s: quality_threshold must be in [0,1], got %g", c.Tier, c.QualityThreshold)
	}
	return nil
}

// DefaultRegistry returns a Registry holding DefaultTierConfigs.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultTierConfigs())
	if err != nil {
		// The built-in table is covered by tests; failing here is a programming error.
		panic(fmt.Sprintf("router: invalid default tier table: %v", err))
	}
	return r
}

// Get returns the configuration for t.
// Unknown tiers fail closed to the cheapest tier.
func (r *Registry) Get(t Tier) TierConfig {
	if !t.IsValid() {
		return r.configs[r.Cheapest()]
	}
	return r.configs[t]
}

// Lookup returns the configuration for a tier name, failing closed to the
// cheapest tier when the name is not recognized.
func (r *Registry) Lookup(name string) TierConfig {
	t, ok := ParseTier(name)
	if !ok {
		return r.configs[r.Cheapest()]
	}
	return r.configs[t]
}

// Cheapest returns the lowest-cost tier.
func (r *Registry) Cheapest() Tier {
	return TierSmall
}

// MostCapable returns the highest tier.
func (r *Registry) MostCapable() Tier {
	return tierCount - 1
}

// Configs returns a copy of the tier table, cheapest first.
func (r *Registry) Configs() []TierConfig {
	out := make([]TierConfig, len(r.configs))
	copy(out, r.configs[:])
	return out
}
