// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderTier  lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	Question  lipgloss.Style
	Answer    lipgloss.Style
	Routing   lipgloss.Style
	Escalated lipgloss.Style
	Degraded  lipgloss.Style
	Error     lipgloss.Style
	Metrics   lipgloss.Style

	// ==========================================================================
	// INPUT AND FOOTER STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Spinner        lipgloss.Style
	Footer         lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// PANEL STYLES
	// ==========================================================================

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.EnvColorProfile(),
	}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.HeaderTier = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Question = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.Answer = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)
	t.Routing = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)
	t.Escalated = lipgloss.NewStyle().
		Foreground(Amber).
		PaddingLeft(2)
	t.Degraded = lipgloss.NewStyle().
		Foreground(Rose).
		Italic(true).
		PaddingLeft(2)
	t.Error = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		PaddingLeft(2)
	t.Metrics = lipgloss.NewStyle().
		Foreground(TextMuted).
		PaddingLeft(2)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)
	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(16)
	t.Value = lipgloss.NewStyle().
		Foreground(TextPrimary)

	return t
}

// Tier renders a tier name in its accent color.
func (t *Theme) Tier(name string, index int) string {
	return lipgloss.NewStyle().Foreground(TierColor(index)).Bold(true).Render(name)
}

// Quality renders a score colored against threshold.
func (t *Theme) Quality(text string, score, threshold float64) string {
	return lipgloss.NewStyle().Foreground(QualityColor(score, threshold)).Render(text)
}

// Shortcut renders a "key desc" pair for the footer.
func (t *Theme) Shortcut(key, desc string) string {
	return t.ShortcutKey.Render(key) + " " + t.ShortcutDesc.Render(desc)
}
