// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"testing"
)

// TestSelectTier checks the default binary threshold.
func TestSelectTier(t *testing.T) {
	tests := []struct {
		difficulty float64
		want       Tier
	}{
		{0.0, TierSmall},
		{0.1, TierSmall},
		{0.4999, TierSmall},
		{0.5, TierLarge},
		{0.9, TierLarge},
		{1.0, TierLarge},
	}
	for _, tt := range tests {
		if got := SelectTier(tt.difficulty); got != tt.want {
			t.Errorf("SelectTier(%v) = %s, want %s", tt.difficulty, got, tt.want)
		}
	}
}

// TestSelectTier_Scenarios routes the reference questions end to end.
func TestSelectTier_Scenarios(t *testing.T) {
	if got := SelectTier(EstimateDifficulty("What is Python?")); got != TierSmall {
		t.Errorf("simple question routed to %s", got)
	}
	if got := SelectTier(EstimateDifficulty(capQuestion)); got != TierLarge {
		t.Errorf("complex question routed to %s", got)
	}
}

// TestSelectTier_Monotonic never picks a cheaper tier for a harder question.
func TestSelectTier_Monotonic(t *testing.T) {
	prev := SelectTier(0)
	for i := 1; i <= 1000; i++ {
		d := float64(i) / 1000
		got := SelectTier(d)
		if got.Order() < prev.Order() {
			t.Fatalf("difficulty %v selected %s after %s", d, got, prev)
		}
		prev = got
	}
}

func TestPolicy_FallsThroughToMostCapable(t *testing.T) {
	p, err := NewPolicy(nil)
	if err != nil {
		t.Fatalf("NewPolicy(nil): %v", err)
	}
	if got := p.Select(0); got != TierLarge {
		t.Errorf("empty policy selected %s, want %s", got, TierLarge)
	}
}

func TestPolicy_CustomBound(t *testing.T) {
	p, err := NewPolicy([]Rule{{Below: 0.8, Tier: TierSmall}})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	if got := p.Select(0.7); got != TierSmall {
		t.Errorf("Select(0.7) = %s, want small", got)
	}
	if got := p.Select(0.8); got != TierLarge {
		t.Errorf("Select(0.8) = %s, want large", got)
	}
}

func TestNewPolicy_Validation(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"unknown_tier", []Rule{{Below: 0.5, Tier: Tier(42)}}},
		{"zero_bound", []Rule{{Below: 0, Tier: TierSmall}}},
		{"bound_above_one", []Rule{{Below: 1.5, Tier: TierSmall}}},
		{"not_increasing", []Rule{{Below: 0.5, Tier: TierSmall}, {Below: 0.4, Tier: TierLarge}}},
		{"tier_downgrade", []Rule{{Below: 0.3, Tier: TierLarge}, {Below: 0.6, Tier: TierSmall}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPolicy(tt.rules); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPolicy_RulesIsCopy(t *testing.T) {
	p := DefaultPolicy()
	rules := p.Rules()
	rules[0].Below = 0.99
	if p.Rules()[0].Below != DefaultSmallTierCeiling {
		t.Error("mutating Rules() result changed the policy")
	}
}
