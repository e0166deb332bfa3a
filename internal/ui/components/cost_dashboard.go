// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
	"github.com/Nishchalpr4/llmopt/internal/ui/styles"
)

// =============================================================================
// COST DASHBOARD
// =============================================================================

// CostDashboard displays cost and escalation totals for the current session
// and for the whole decision log.
type CostDashboard struct {
	theme   *styles.Theme
	session telemetry.Summary
	log     telemetry.Summary
	view    DashboardView
	width   int
}

// DashboardView determines what the dashboard displays.
type DashboardView int

const (
	ViewSession DashboardView = iota
	ViewLog
)

// String returns the view title.
func (v DashboardView) String() string {
	if v == ViewLog {
		return "Decision Log"
	}
	return "This Session"
}

// NewCostDashboard creates a new cost dashboard.
func NewCostDashboard(theme *styles.Theme) *CostDashboard {
	return &CostDashboard{
		theme:   theme,
		session: telemetry.Summary{Status: telemetry.StatusNoData},
		log:     telemetry.Summary{Status: telemetry.StatusNoData},
		width:   40,
	}
}

// SetSession replaces the session summary.
func (cd *CostDashboard) SetSession(s telemetry.Summary) {
	cd.session = s
}

// SetLog replaces the decision log summary.
func (cd *CostDashboard) SetLog(s telemetry.Summary) {
	cd.log = s
}

// SetView changes the dashboard view.
func (cd *CostDashboard) SetView(view DashboardView) {
	cd.view = view
}

// Toggle switches between the session and log views.
func (cd *CostDashboard) Toggle() {
	if cd.view == ViewSession {
		cd.view = ViewLog
	} else {
		cd.view = ViewSession
	}
}

// CurrentView returns the view being shown.
func (cd *CostDashboard) CurrentView() DashboardView {
	return cd.view
}

// SetWidth updates the dashboard width.
func (cd *CostDashboard) SetWidth(width int) {
	if width < 24 {
		width = 24
	}
	cd.width = width
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the dashboard based on the current view mode.
func (cd *CostDashboard) View() string {
	sum := cd.session
	if cd.view == ViewLog {
		sum = cd.log
	}

	var b strings.Builder
	b.WriteString(cd.theme.PanelTitle.Render("Cost Dashboard - " + cd.view.String()))
	b.WriteString("\n\n")

	switch sum.Status {
	case telemetry.StatusNoData:
		b.WriteString(cd.theme.Metrics.Render("No queries yet."))
	case telemetry.StatusUnavailable:
		b.WriteString(cd.theme.Error.Render("Unavailable: " + sum.Error))
	default:
		b.WriteString(cd.renderTotals(sum))
		b.WriteString("\n")
		b.WriteString(cd.renderTierUsage(sum))
	}

	return cd.theme.Panel.Width(cd.width - 2).Render(b.String())
}

func (cd *CostDashboard) row(label, value string) string {
	return cd.theme.Label.Render(label) + cd.theme.Value.Render(value) + "\n"
}

// renderTotals renders the cost, latency and quality section.
func (cd *CostDashboard) renderTotals(sum telemetry.Summary) string {
	var b strings.Builder
	b.WriteString(cd.row("Queries", fmt.Sprintf("%d", sum.TotalQueries)))
	b.WriteString(cd.row("Total cost", fmt.Sprintf("$%.6f", sum.TotalCostUSD)))
	b.WriteString(cd.row("Avg cost", fmt.Sprintf("$%.6f", sum.AvgCostUSD)))
	b.WriteString(cd.row("Avg latency", fmt.Sprintf("%.0f ms", sum.AvgLatencyMs)))
	b.WriteString(cd.row("Avg quality", fmt.Sprintf("%.2f", sum.AvgQuality)))
	b.WriteString(cd.row("Escalations", fmt.Sprintf("%d (%.1f%%)", sum.EscalatedCount, sum.EscalationRate)))
	return b.String()
}

// renderTierUsage draws one bar per final tier.
func (cd *CostDashboard) renderTierUsage(sum telemetry.Summary) string {
	if len(sum.TierUsage) == 0 || sum.TotalQueries == 0 {
		return ""
	}

	barWidth := cd.width - 28
	if barWidth < 5 {
		barWidth = 5
	}

	var b strings.Builder
	for _, tier := range sum.SortedTiers() {
		count := sum.TierUsage[tier]
		share := float64(count) / float64(sum.TotalQueries)
		filled := int(share*float64(barWidth) + 0.5)
		bar := lipgloss.NewStyle().Foreground(tierColor(tier)).Render(strings.Repeat("█", filled)) +
			cd.theme.Metrics.UnsetPaddingLeft().Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(fmt.Sprintf("%-8s %s %3.0f%%\n", tier, bar, share*100))
	}
	return b.String()
}

// tierColor colors a logged tier name by its routing order.
func tierColor(name string) lipgloss.AdaptiveColor {
	if tier, ok := router.ParseTier(name); ok {
		return styles.TierColor(tier.Order())
	}
	return styles.TextMuted
}
