// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResultMsg carries the outcome of one question.
type ResultMsg struct {
	Question string
	Result   *orchestrator.Result
	Err      error
}

// StatsMsg carries a decision log summary.
type StatsMsg struct {
	Summary telemetry.Summary
}

// AskCmd runs ask off the UI goroutine.
func AskCmd(ctx context.Context, ask AskFunc, question string) tea.Cmd {
	return func() tea.Msg {
		res, err := ask(ctx, question)
		return ResultMsg{Question: question, Result: res, Err: err}
	}
}

// StatsCmd loads the decision log summary.
func StatsCmd(ctx context.Context, stats StatsFunc) tea.Cmd {
	if stats == nil {
		return nil
	}
	return func() tea.Msg {
		return StatsMsg{Summary: stats(ctx)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// layout reserves the header, the status line, the input box and the footer.
const chromeHeight = 6

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.input.Width = max(msg.Width-8, 10)
		m.dashboard.SetWidth(min(msg.Width, 72))
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if m.state != StateThinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ResultMsg:
		return m.handleResult(msg)

	case StatsMsg:
		m.dashboard.SetLog(msg.Summary)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.stop()
		return m, tea.Quit

	case "esc":
		switch {
		case m.state == StateThinking:
			m.stop()
		case m.showStats || m.showHelp:
			m.showStats = false
			m.showHelp = false
		}
		return m, nil

	case "ctrl+s":
		return m.toggleStats()

	case "tab":
		if m.showStats {
			m.dashboard.Toggle()
			return m, nil
		}

	case "ctrl+l":
		m.entries = nil
		m.refresh()
		return m, nil

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles slash commands or sends the input to the optimizer.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state == StateThinking {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	switch strings.ToLower(text) {
	case "":
		return m, nil
	case "/quit", "/exit", "exit", "quit":
		return m, tea.Quit
	case "/stats":
		return m.toggleStats()
	case "/clear":
		m.entries = nil
		m.refresh()
		return m, nil
	case "/help", "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.state = StateThinking
	m.started = time.Now()
	m.showStats = false
	m.showHelp = false
	m.entries = append(m.entries, entry{question: text})
	m.refresh()

	return m, tea.Batch(AskCmd(ctx, m.cfg.Ask, text), m.spinner.Tick)
}

func (m Model) handleResult(msg ResultMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	e := entry{question: msg.Question, result: msg.Result, err: msg.Err}
	if errors.Is(msg.Err, context.Canceled) {
		e.canceled = true
	}
	if n := len(m.entries); n > 0 && m.entries[n-1].result == nil && m.entries[n-1].err == nil {
		m.entries[n-1] = e
	} else {
		m.entries = append(m.entries, e)
	}

	if msg.Result != nil {
		_ = m.session.Append(context.Background(), msg.Result.DecisionRecord(m.cfg.PreviewChars))
		m.dashboard.SetSession(m.SessionSummary())
	}
	m.refresh()
	return m, nil
}

func (m Model) toggleStats() (tea.Model, tea.Cmd) {
	m.showStats = !m.showStats
	m.showHelp = false
	if m.showStats {
		return m, StatsCmd(m.ctx, m.cfg.Stats)
	}
	return m, nil
}

// stop cancels the question in flight, if any.
func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
