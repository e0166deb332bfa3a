// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
	"github.com/Nishchalpr4/llmopt/internal/ui/components"
	"github.com/Nishchalpr4/llmopt/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady    State = iota // Ready for input
	StateThinking              // Waiting for the optimizer
)

// AskFunc answers one question. It is normally Optimizer.ProcessQuestion.
type AskFunc func(ctx context.Context, question string) (*orchestrator.Result, error)

// StatsFunc summarizes the decision log. It is normally Optimizer.Stats.
type StatsFunc func(ctx context.Context) telemetry.Summary

// Config wires the model to an optimizer.
type Config struct {
	Ask          AskFunc
	Stats        StatsFunc
	Tiers        []router.TierConfig
	PreviewChars int
}

// entry is one question and its outcome.
type entry struct {
	question string
	result   *orchestrator.Result
	err      error
	canceled bool
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the question/answer view.
type Model struct {
	// State
	state State
	ready bool

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Components
	input     textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	dashboard *components.CostDashboard
	showStats bool
	showHelp  bool

	// Transcript
	entries []entry
	session *telemetry.MemoryStore

	// Wiring
	cfg     Config
	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time
}

// New creates a chat model. ctx bounds every question asked through it.
func New(ctx context.Context, cfg Config) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Prompt = theme.InputPrompt.Render("> ")
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.Spinner

	return Model{
		state:     StateReady,
		theme:     theme,
		input:     input,
		spinner:   sp,
		viewport:  viewport.New(80, 20),
		dashboard: components.NewCostDashboard(theme),
		session:   telemetry.NewMemoryStore(),
		cfg:       cfg,
		ctx:       ctx,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

// Entries returns how many questions have been asked.
func (m Model) Entries() int {
	return len(m.entries)
}

// SessionSummary summarizes the questions answered in this model.
func (m Model) SessionSummary() telemetry.Summary {
	records, _ := m.session.Records(context.Background())
	return telemetry.Summarize(records)
}
