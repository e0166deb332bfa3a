// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"fmt"
	"strings"
)

// ============================================================================
// TIER TYPE
// ============================================================================

// Tier identifies a backend tier for routing decisions.
// Ordered by cost/capability: Small < Large
type Tier int

const (
	// TierSmall is the cheap, fast tier used for simple questions.
	TierSmall Tier = iota
	// TierLarge is the capable, expensive tier.
	TierLarge

	tierCount
)

// AllTiers returns every known tier, cheapest first.
func AllTiers() []Tier {
	tiers := make([]Tier, 0, int(tierCount))
	for t := TierSmall; t < tierCount; t++ {
		tiers = append(tiers, t)
	}
	return tiers
}

// String returns the wire name of the tier as used in logs and config.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierLarge:
		return "large"
	default:
		return fmt.Sprintf("Tier(%d)", t)
	}
}

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	return t >= TierSmall && t < tierCount
}

// Order returns the numeric order of the tier for comparison.
// Lower values mean cheaper/faster tiers.
func (t Tier) Order() int {
	return int(t)
}

// Next returns the tier directly above t.
// Returns nil when t is already the most capable tier.
func (t Tier) Next() *Tier {
	if !t.IsValid() || t+1 >= tierCount {
		return nil
	}
	next := t + 1
	return &next
}

// ParseTier converts a tier name ("small", "large") to a Tier.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return TierSmall, true
	case "large":
		return TierLarge, true
	default:
		return TierSmall, false
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize by name.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, ok := ParseTier(string(text))
	if !ok {
		return fmt.Errorf("unknown tier %q", string(text))
	}
	*t = parsed
	return nil
}

// ============================================================================
// TIER CONFIG
// ============================================================================

// TierConfig describes one backend tier.
type TierConfig struct {
	Tier Tier `json:"tier"`

	// Model is the display name of the backing model.
	Model string `json:"model"`

	// CostPer1K is the price in USD per 1000 generated tokens.
	CostPer1K float64 `json:"cost_per_1k_tokens"`

	// AvgLatencyMs is the typical response time in milliseconds.
	AvgLatencyMs float64 `json:"avg_latency_ms"`

	// MaxTokens caps the length of a generated answer.
	MaxTokens int `json:"max_tokens"`

	// QualityThreshold is the minimum acceptable quality score for answers
	// from this tier. Anything below it triggers escalation.
	QualityThreshold float64 `json:"quality_threshold"`
}

// DefaultTierConfigs returns the built-in tier table.
func DefaultTierConfigs() []TierConfig {
	return []TierConfig{
		{
			Tier:             TierSmall,
			Model:            "GPT-3.5-mini",
			CostPer1K:        0.0005,
			AvgLatencyMs:     500,
			MaxTokens:        2048,
			QualityThreshold: 0.7,
		},
		{
			Tier:             TierLarge,
			Model:            "GPT-4",
			CostPer1K:        0.015,
			AvgLatencyMs:     2000,
			MaxTokens:        4096,
			QualityThreshold: 0.95,
		},
	}
}
