// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for llmopt commands. Colors come from the TUI
// palette so both surfaces agree on what a tier or a score looks like.

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle heads each command's output.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan).MarginBottom(1)

	// SectionStyle heads a block within a command.
	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimary).MarginTop(1)

	// LabelStyle pads row labels to a common width.
	LabelStyle = lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(20)

	ValueStyle     = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	SuccessStyle   = lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	ErrorStyle     = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	WarningStyle   = lipgloss.NewStyle().Foreground(styles.Amber)
	DimStyle       = lipgloss.NewStyle().Foreground(styles.TextMuted)
	SeparatorStyle = lipgloss.NewStyle().Foreground(styles.Overlay)
	HighlightStyle = lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	InfoStyle      = lipgloss.NewStyle().Foreground(styles.Cyan)
)

// RenderSeparator draws a rule of width cells.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = wrapWidth()
	}
	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// RenderTier colors a tier name by its routing order.
func RenderTier(t router.Tier) string {
	return lipgloss.NewStyle().Foreground(styles.TierColor(t.Order())).Bold(true).Render(t.String())
}

// RenderQuality colors a score against its threshold.
func RenderQuality(score, threshold float64) string {
	return lipgloss.NewStyle().Foreground(styles.QualityColor(score, threshold)).Render(fmt.Sprintf("%.2f", score))
}

// RenderRow prints "label:  value" with the shared label width.
func RenderRow(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}
