// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"fmt"
)

// ============================================================================
// TIER SELECTION
// ============================================================================

// DefaultSmallTierCeiling is the difficulty at which questions leave the
// small tier.
const DefaultSmallTierCeiling = 0.5

// Rule routes questions with difficulty strictly below Below to Tier.
type Rule struct {
	Below float64 `json:"below"`
	Tier  Tier    `json:"tier"`
}

// Policy is an ordered list of rules evaluated cheapest first.
// Questions matching no rule go to the most capable tier.
type Policy struct {
	rules []Rule
}

// NewPolicy validates rules and builds a Policy.
// Bounds must be strictly increasing and tiers must never get cheaper, which
// keeps selection monotonic in difficulty.
func NewPolicy(rules []Rule) (Policy, error) {
	for i, r := range rules {
		if !r.Tier.IsValid() {
			return Policy{}, fmt.Errorf("rule %d: unknown tier %d", i, int(r.Tier))
		}
		if r.Below <= 0 || r.Below > 1 {
			return Policy{}, fmt.Errorf("rule %d: bound must be in (0,1], got %g", i, r.Below)
		}
		if i == 0 {
			continue
		}
		prev := rules[i-1]
		if r.Below <= prev.Below {
			return Policy{}, fmt.Errorf("rule %d: bound %g must be greater than %g", i, r.Below, prev.Below)
		}
		if r.Tier.Order() < prev.Tier.Order() {
			return Policy{}, fmt.Errorf("rule %d: tier %s is cheaper than preceding tier %s", i, r.Tier, prev.Tier)
		}
	}

	out := make([]Rule, len(rules))
	copy(out, rules)
	return Policy{rules: out}, nil
}

// DefaultPolicy sends difficulty below 0.5 to the small tier and everything
// else to the large tier.
func DefaultPolicy() Policy {
	return Policy{rules: []Rule{{Below: DefaultSmallTierCeiling, Tier: TierSmall}}}
}

// Select returns the tier for a difficulty score.
func (p Policy) Select(difficulty float64) Tier {
	for _, r := range p.rules {
		if difficulty < r.Below {
			return r.Tier
		}
	}
	return tierCount - 1
}

// Rules returns a copy of the policy's rules.
func (p Policy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// SelectTier applies the default binary policy.
func SelectTier(difficulty float64) Tier {
	return DefaultPolicy().Select(difficulty)
}
