// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command handlers for llmopt.
//
// Every handler returns an error instead of printing it; main displays the
// error once and exits with GetExitCode.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed global and command-specific flags
//   - Runtime: A wired optimizer plus its decision log
//   - JSONResponse: Envelope for --json output
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdAsk:
//	    err = cli.HandleAsk(ctx, args)
//	case cli.CmdStats:
//	    err = cli.HandleStats(ctx, args)
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - ask: Answer one question through the optimizer
//   - chat: Line-oriented session with history
//   - explain: Difficulty and quality breakdown without answering
//   - stats: Decision log summary, optionally watched
//   - demo: Sample question batch
//   - config: Show, edit and create the configuration file
//   - doctor: Health checks for configuration, logs and backends
package cli
