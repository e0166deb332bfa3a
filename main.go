// llmopt - Routes each question to the cheapest model tier that answers it well.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nishchalpr4/llmopt/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses argv, dispatches the command, and returns the exit code.
func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(err, args.JSON)
		return cli.GetExitCode(err)
	}

	// Chat manages SIGINT itself so Ctrl+C cancels one question, not the session.
	ctx := context.Background()
	if cmd != cli.CmdChat {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	if err := dispatch(ctx, cmd, args); err != nil {
		cli.DisplayError(err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

func dispatch(ctx context.Context, cmd cli.Command, args cli.Args) error {
	switch cmd {
	case cli.CmdTUI:
		return cli.HandleTUI(ctx, args)
	case cli.CmdAsk:
		return cli.HandleAsk(ctx, args)
	case cli.CmdChat:
		return cli.HandleChat(ctx, args)
	case cli.CmdExplain:
		return cli.HandleExplain(args)
	case cli.CmdStats:
		return cli.HandleStats(ctx, args)
	case cli.CmdDemo:
		return cli.HandleDemo(ctx, args)
	case cli.CmdConfig:
		return cli.HandleConfig(args)
	case cli.CmdDoctor:
		return cli.HandleDoctor(ctx, args)
	case cli.CmdVersion:
		return cli.HandleVersion(args)
	default:
		cli.PrintUsage()
		return nil
	}
}
