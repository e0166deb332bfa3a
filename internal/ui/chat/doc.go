// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive question view for the TUI.
//
// The model sends each question to an AskFunc (normally the optimizer) on a
// background command, shows a spinner while it runs, and appends the routed
// answer with its tier, quality score and cost to a scrolling transcript.
// Every answered question is also tallied in an in-memory session store that
// feeds the cost dashboard.
//
// # Usage
//
//	m := chat.New(ctx, chat.Config{
//	    Ask:   opt.ProcessQuestion,
//	    Stats: opt.Stats,
//	    Tiers: opt.Registry().Configs(),
//	})
//	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
package chat
