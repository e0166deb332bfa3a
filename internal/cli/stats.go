// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stats.go - Decision log summary.
//
// Command: stats [--watch]
//
// Examples:
//   llmopt stats
//   llmopt stats --json
//   llmopt stats --watch       Reprint whenever the log changes
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Nishchalpr4/llmopt/internal/telemetry"
)

// HandleStats prints the summary once, or on every log change with --watch.
func HandleStats(ctx context.Context, args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	rt := &Runtime{Config: cfg}
	_, reader, err := rt.buildRecorder(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	show := func() error {
		sum := telemetry.LoadSummary(ctx, reader)
		if args.JSON {
			return NewJSONResponse("stats", sum).Print()
		}
		printSummary(os.Stdout, sum)
		return nil
	}

	if err := show(); err != nil {
		return err
	}
	if !args.Watch {
		return nil
	}

	path := cfg.Recorder.CSVPath
	if path == "" {
		path = cfg.Recorder.SQLitePath
	}
	if path == "" {
		return NewValidationError("recorder", "", "--watch needs recorder.csv_path or recorder.sqlite_path")
	}

	if !args.JSON {
		fmt.Fprintln(os.Stderr, DimStyle.Render("Watching "+path+" (Ctrl+C to stop)"))
	}
	err = telemetry.Watch(ctx, path, telemetry.DefaultDebounce, func() {
		if !args.JSON && IsStdoutTTY() {
			fmt.Print("\033[H\033[2J")
		}
		if err := show(); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
	})
	if err != nil {
		return NewCommandError("stats", "watch", "could not watch the decision log", err)
	}
	return nil
}

// printSummary renders a summary with grouped thousands.
func printSummary(w io.Writer, sum telemetry.Summary) {
	p := message.NewPrinter(language.English)

	fmt.Fprintln(w, TitleStyle.Render("Decision Log Summary"))

	switch sum.Status {
	case telemetry.StatusNoData:
		fmt.Fprintln(w, DimStyle.Render("No queries logged yet."))
		return
	case telemetry.StatusUnavailable:
		fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("Log unavailable:"), sum.Error)
		return
	}

	fmt.Fprintln(w, RenderRow("Total queries", p.Sprintf("%d", sum.TotalQueries)))
	fmt.Fprintln(w, RenderRow("Total cost", p.Sprintf("$%.6f", sum.TotalCostUSD)))
	fmt.Fprintln(w, RenderRow("Avg cost/query", p.Sprintf("$%.6f", sum.AvgCostUSD)))
	fmt.Fprintln(w, RenderRow("Total latency", p.Sprintf("%.0f ms", sum.TotalLatencyMs)))
	fmt.Fprintln(w, RenderRow("Avg latency", p.Sprintf("%.0f ms", sum.AvgLatencyMs)))
	fmt.Fprintln(w, RenderRow("Avg quality", fmt.Sprintf("%.2f", sum.AvgQuality)))
	fmt.Fprintln(w, RenderRow("Escalations", p.Sprintf("%d (%.1f%%)", sum.EscalatedCount, sum.EscalationRate)))

	if len(sum.TierUsage) > 0 {
		fmt.Fprintln(w, SectionStyle.Render("Final tier usage"))
		for _, tier := range sum.SortedTiers() {
			count := sum.TierUsage[tier]
			share := float64(count) / float64(sum.TotalQueries) * 100
			fmt.Fprintf(w, "  %-10s %s\n", tier, p.Sprintf("%d (%.1f%%)", count, share))
		}
	}
}
