// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nishchalpr4/llmopt/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting llmopt..."
	}

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.showStats:
		body = m.dashboard.View()
	default:
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(m.viewport.Height).Render(body),
		m.renderStatus(),
		m.theme.InputContainer.Width(max(m.width-2, 10)).Render(m.input.View()),
		m.renderFooter(),
	)
}

// renderHeader shows the brand and the tier ladder.
func (m Model) renderHeader() string {
	parts := make([]string, 0, len(m.cfg.Tiers))
	for _, tc := range m.cfg.Tiers {
		parts = append(parts, fmt.Sprintf("%s %s $%.4f/1K",
			m.theme.Tier(tc.Tier.String(), tc.Tier.Order()), tc.Model, tc.CostPer1K))
	}
	title := m.theme.HeaderTitle.Render("llmopt")
	tiers := m.theme.HeaderTier.Render(strings.Join(parts, "  |  "))
	return m.theme.Header.Width(max(m.width, 10)).Render(title + "  " + tiers)
}

// renderStatus shows the spinner while a question is in flight.
func (m Model) renderStatus() string {
	if m.state != StateThinking {
		sum := m.SessionSummary()
		if sum.TotalQueries == 0 {
			return m.theme.Metrics.Render("Ready")
		}
		return m.theme.Metrics.Render(fmt.Sprintf("%d asked | $%.6f spent | %d escalated",
			sum.TotalQueries, sum.TotalCostUSD, sum.EscalatedCount))
	}
	elapsed := time.Since(m.started).Round(100 * time.Millisecond)
	return fmt.Sprintf("  %s %s", m.spinner.View(),
		m.theme.Metrics.UnsetPaddingLeft().Render(fmt.Sprintf("Routing and answering... %s (esc to cancel)", elapsed)))
}

func (m Model) renderFooter() string {
	shortcuts := []string{
		m.theme.Shortcut("enter", "ask"),
		m.theme.Shortcut("ctrl+s", "stats"),
		m.theme.Shortcut("ctrl+l", "clear"),
		m.theme.Shortcut("?", "help"),
		m.theme.Shortcut("ctrl+c", "quit"),
	}
	if m.showStats {
		shortcuts = append([]string{m.theme.Shortcut("tab", "session/log")}, shortcuts...)
	}
	return m.theme.Footer.Render(strings.Join(shortcuts, "  "))
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"enter", "Send the question to the cheapest adequate tier"},
		{"esc", "Cancel the question in flight, close panels"},
		{"ctrl+s, /stats", "Cost dashboard (tab switches session/log)"},
		{"ctrl+l, /clear", "Clear the transcript"},
		{"pgup, pgdown", "Scroll the transcript"},
		{"ctrl+c, /quit", "Quit"},
	}
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Help"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(m.theme.ShortcutKey.Width(18).Render(r[0]))
		b.WriteString(m.theme.ShortcutDesc.Render(r[1]))
		b.WriteString("\n")
	}
	return m.theme.Panel.Render(b.String())
}

// renderTranscript renders every question with its routing and answer.
func (m Model) renderTranscript() string {
	if len(m.entries) == 0 {
		return m.theme.Metrics.Render("Ask anything. Simple questions go to the cheap tier; weak answers escalate.")
	}

	wrap := max(m.width-4, 20)
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.theme.Question.Render("? " + util.TruncateWidth(e.question, wrap)))
		b.WriteString("\n")

		switch {
		case e.canceled:
			b.WriteString(m.theme.Metrics.Render("Canceled."))
			b.WriteString("\n")
			continue
		case e.err != nil:
			b.WriteString(m.theme.Error.Render("Error: " + e.err.Error()))
			b.WriteString("\n")
			continue
		case e.result == nil:
			b.WriteString(m.theme.Metrics.Render("..."))
			b.WriteString("\n")
			continue
		}

		res := e.result
		b.WriteString(m.theme.Routing.Render(fmt.Sprintf("difficulty %.2f -> %s",
			res.Difficulty, m.theme.Tier(res.InitialTier.String(), res.InitialTier.Order()))))
		b.WriteString("\n")
		if res.Escalated {
			b.WriteString(m.theme.Escalated.Render(fmt.Sprintf("escalated %s -> %s after %d cycle(s)",
				res.InitialTier, res.FinalTier, res.Cycles())))
			b.WriteString("\n")
		}

		b.WriteString(m.theme.Answer.Width(wrap).Render(res.Answer))
		b.WriteString("\n")

		quality := m.theme.Quality(fmt.Sprintf("%.2f", res.QualityScore), res.QualityScore, res.QualityThreshold)
		b.WriteString(m.theme.Metrics.Render(fmt.Sprintf("%s | quality %s/%.2f | $%.6f | %.0f ms",
			res.Model, quality, res.QualityThreshold, res.EstimatedCostUSD, res.LatencyMs)))
		b.WriteString("\n")
		if res.Degraded {
			b.WriteString(m.theme.Degraded.Render("No backend produced an answer."))
			b.WriteString("\n")
		}
	}
	return b.String()
}
