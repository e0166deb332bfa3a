// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - Primary accent, answers, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, questions, the small tier
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states, answers that met their threshold
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, degraded answers
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Escalations, answers below threshold
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// SurfaceDim - Header and footer background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, metrics
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// TIER COLORS
// =============================================================================

// tierColors is indexed by tier position, cheapest first. Tiers past the
// end reuse the last color.
var tierColors = []lipgloss.AdaptiveColor{Cyan, Purple}

// TierColor returns the accent color for the tier at index.
func TierColor(index int) lipgloss.AdaptiveColor {
	if index < 0 {
		index = 0
	}
	if index >= len(tierColors) {
		index = len(tierColors) - 1
	}
	return tierColors[index]
}

// QualityColor picks a color for a quality score relative to its threshold.
func QualityColor(score, threshold float64) lipgloss.AdaptiveColor {
	switch {
	case score >= threshold:
		return Emerald
	case score >= threshold-0.1:
		return Amber
	default:
		return Rose
	}
}
