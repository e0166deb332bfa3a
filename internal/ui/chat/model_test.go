// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
)

func fakeResult(question string) *orchestrator.Result {
	return &orchestrator.Result{
		ID:               "q-1",
		Question:         question,
		Answer:           "Python is a programming language.",
		Difficulty:       0.1,
		InitialTier:      router.TierSmall,
		FinalTier:        router.TierSmall,
		Model:            "GPT-3.5-mini",
		QualityScore:     0.82,
		QualityThreshold: 0.7,
		EstimatedCostUSD: 0.000002,
		LatencyMs:        500,
		Timestamp:        time.Now(),
	}
}

func newTestModel(ask AskFunc) Model {
	m := New(context.Background(), Config{
		Ask:   ask,
		Stats: func(context.Context) telemetry.Summary { return telemetry.Summary{Status: telemetry.StatusNoData} },
		Tiers: router.DefaultTierConfigs(),
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

// typeAndSubmit enters text and presses enter.
func typeAndSubmit(m Model, text string) (Model, tea.Cmd) {
	m.input.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

// askMsg runs the ask command inside the batch returned on submit.
func askMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		return batch[0]()
	}
	return msg
}

func TestModel_AskFlow(t *testing.T) {
	var asked string
	m := newTestModel(func(ctx context.Context, q string) (*orchestrator.Result, error) {
		asked = q
		return fakeResult(q), nil
	})

	m, cmd := typeAndSubmit(m, "  What is Python?  ")
	if m.State() != StateThinking {
		t.Fatalf("State() = %v, want StateThinking", m.State())
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	msg := askMsg(t, cmd)
	if asked != "What is Python?" {
		t.Errorf("asked %q, want trimmed question", asked)
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)

	if m.State() != StateReady {
		t.Errorf("State() = %v, want StateReady", m.State())
	}
	if m.Entries() != 1 {
		t.Errorf("Entries() = %d, want 1", m.Entries())
	}
	if sum := m.SessionSummary(); sum.TotalQueries != 1 {
		t.Errorf("session TotalQueries = %d, want 1", sum.TotalQueries)
	}

	view := m.View()
	for _, want := range []string{"What is Python?", "Python is a programming language.", "GPT-3.5-mini", "1 asked"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_EmptyInputIgnored(t *testing.T) {
	m := newTestModel(func(ctx context.Context, q string) (*orchestrator.Result, error) {
		t.Fatal("ask should not be called")
		return nil, nil
	})

	m, cmd := typeAndSubmit(m, "   ")
	if cmd != nil {
		t.Error("empty input should not produce a command")
	}
	if m.State() != StateReady || m.Entries() != 0 {
		t.Errorf("state = %v, entries = %d", m.State(), m.Entries())
	}
}

func TestModel_ErrorShown(t *testing.T) {
	m := newTestModel(func(ctx context.Context, q string) (*orchestrator.Result, error) {
		return nil, errors.New("backend exploded")
	})

	m, cmd := typeAndSubmit(m, "What is Go?")
	updated, _ := m.Update(askMsg(t, cmd))
	m = updated.(Model)

	if !strings.Contains(m.renderTranscript(), "backend exploded") {
		t.Error("transcript should show the error")
	}
	if m.SessionSummary().Status != telemetry.StatusNoData {
		t.Error("failed questions should not be tallied")
	}
}

func TestModel_EscCancels(t *testing.T) {
	m := newTestModel(func(ctx context.Context, q string) (*orchestrator.Result, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	m, cmd := typeAndSubmit(m, "Explain the CAP theorem")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	updated, _ = m.Update(askMsg(t, cmd))
	m = updated.(Model)

	if m.State() != StateReady {
		t.Errorf("State() = %v, want StateReady", m.State())
	}
	if !strings.Contains(m.renderTranscript(), "Canceled.") {
		t.Error("transcript should mark the question canceled")
	}
}

func TestModel_SlashCommands(t *testing.T) {
	m := newTestModel(func(ctx context.Context, q string) (*orchestrator.Result, error) {
		return fakeResult(q), nil
	})

	m, cmd := typeAndSubmit(m, "What is Python?")
	updated, _ := m.Update(askMsg(t, cmd))
	m = updated.(Model)

	m, cmd = typeAndSubmit(m, "/stats")
	if !m.showStats {
		t.Fatal("/stats should open the dashboard")
	}
	if cmd == nil {
		t.Fatal("/stats should load the log summary")
	}
	if _, ok := cmd().(StatsMsg); !ok {
		t.Error("/stats command should produce a StatsMsg")
	}
	if !strings.Contains(m.View(), "Cost Dashboard") {
		t.Error("View() should show the dashboard")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.showStats {
		t.Error("esc should close the dashboard")
	}

	m, _ = typeAndSubmit(m, "/clear")
	if m.Entries() != 0 {
		t.Errorf("Entries() = %d after /clear, want 0", m.Entries())
	}
	if m.SessionSummary().TotalQueries != 1 {
		t.Error("/clear should keep the session tally")
	}

	_, cmd = typeAndSubmit(m, "/quit")
	if cmd == nil {
		t.Fatal("/quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("/quit should quit")
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(context.Background(), Config{})
	if got := m.View(); got != "Starting llmopt..." {
		t.Errorf("View() = %q", got)
	}
}
