// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen interactive mode.
//
// Command: tui (default when no command is given)
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nishchalpr4/llmopt/internal/telemetry"
	"github.com/Nishchalpr4/llmopt/internal/ui/chat"
)

// HandleTUI runs the bubbletea question view until the user quits.
func HandleTUI(ctx context.Context, args Args) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &ValidationError{
			Field:   "terminal",
			Reason:  "the TUI needs an interactive terminal",
			Example: `llmopt ask "What is Python?"`,
		}
	}

	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	// Log lines would tear the alternate screen.
	rt, err := Build(cfg, newLogger(false))
	if err != nil {
		return err
	}
	defer rt.Close()

	model := chat.New(ctx, chat.Config{
		Ask:          rt.Optimizer.ProcessQuestion,
		Stats:        rt.Optimizer.Stats,
		Tiers:        rt.Optimizer.Registry().Configs(),
		PreviewChars: cfg.Recorder.PreviewChars,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil && ctx.Err() == nil {
		return NewCommandError("tui", "run", "terminal UI failed", err)
	}

	if m, ok := final.(chat.Model); ok && !args.Quiet {
		if sum := m.SessionSummary(); sum.Status == telemetry.StatusOK {
			fmt.Printf("Session: %d question(s), $%.6f, %d escalated\n",
				sum.TotalQueries, sum.TotalCostUSD, sum.EscalatedCount)
		}
	}
	return nil
}
