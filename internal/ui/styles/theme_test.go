// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestTierColor(t *testing.T) {
	if TierColor(0) != Cyan {
		t.Errorf("TierColor(0) = %v, want Cyan", TierColor(0))
	}
	if TierColor(1) != Purple {
		t.Errorf("TierColor(1) = %v, want Purple", TierColor(1))
	}
	// Out of range indexes clamp.
	if TierColor(7) != Purple {
		t.Errorf("TierColor(7) = %v, want Purple", TierColor(7))
	}
	if TierColor(-1) != Cyan {
		t.Errorf("TierColor(-1) = %v, want Cyan", TierColor(-1))
	}
}

func TestQualityColor(t *testing.T) {
	tests := []struct {
		score, threshold float64
		want             interface{}
	}{
		{0.95, 0.95, Emerald},
		{0.80, 0.70, Emerald},
		{0.65, 0.70, Amber},
		{0.40, 0.70, Rose},
	}
	for _, tt := range tests {
		if got := QualityColor(tt.score, tt.threshold); got != tt.want {
			t.Errorf("QualityColor(%.2f, %.2f) = %v, want %v", tt.score, tt.threshold, got, tt.want)
		}
	}
}

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	if got := theme.Tier("small", 0); !strings.Contains(got, "small") {
		t.Errorf("Tier() = %q, want it to contain the tier name", got)
	}
	if got := theme.Quality("0.82", 0.82, 0.7); !strings.Contains(got, "0.82") {
		t.Errorf("Quality() = %q, want it to contain the score", got)
	}
	if got := theme.Shortcut("enter", "ask"); !strings.Contains(got, "enter") || !strings.Contains(got, "ask") {
		t.Errorf("Shortcut() = %q", got)
	}
}
