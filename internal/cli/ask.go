// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler.
//
// Command: ask [question]
//
// Examples:
//   llmopt ask "What is the capital of France?"
//   llmopt ask --quiet "Explain the CAP theorem"
//   echo "What is Go?" | llmopt ask
//   llmopt --json ask "Compare TCP and UDP"
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/util"
)

// maxStdinQuestion bounds a question read from a pipe.
const maxStdinQuestion = 1 << 20

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth()),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders content with glamour, or returns it unchanged.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayOptions controls how a result is printed.
type displayOptions struct {
	Markdown     bool
	ShowAttempts bool
}

// HandleAsk answers one question.
func HandleAsk(ctx context.Context, args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" && !IsTTY() {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, maxStdinQuestion))
		if err != nil {
			return WrapError(err, "read question from stdin")
		}
		question = strings.TrimSpace(string(data))
	}
	if question == "" {
		return ErrMissingArgument("question", `llmopt ask "What is Python?"`)
	}

	rt, err := Setup(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.Optimizer.ProcessQuestion(ctx, question)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("ask", res).Print()
	}

	if args.Quiet {
		fmt.Println(res.Answer)
		fmt.Println(quietLine(res))
		return nil
	}

	writeResult(os.Stdout, res, displayOptions{
		Markdown:     rt.Config.UI.Markdown && IsStdoutTTY(),
		ShowAttempts: rt.Config.UI.ShowAttempts,
	})
	return nil
}

// quietLine is the single summary line printed in quiet mode.
func quietLine(res *orchestrator.Result) string {
	return fmt.Sprintf("Cost: $%.6f | Quality: %.2f | Model: %s", res.EstimatedCostUSD, res.QualityScore, res.Model)
}

// writeResult prints the routing decision, the answer, and its metrics.
func writeResult(w io.Writer, res *orchestrator.Result, opts displayOptions) {
	fmt.Fprintf(w, "%s %s\n", InfoStyle.Render("Question:"), util.TruncateRunes(res.Question, 200))
	fmt.Fprintf(w, "%s difficulty %.2f -> %s\n",
		InfoStyle.Render("Routing:"), res.Difficulty, RenderTier(res.InitialTier))

	if opts.ShowAttempts || res.Escalated {
		for i, a := range res.Attempts {
			status := SuccessStyle.Render("ok")
			switch {
			case a.Degraded:
				status = ErrorStyle.Render("unavailable")
			case a.Quality < a.Threshold:
				status = WarningStyle.Render("below threshold")
			}
			fmt.Fprintf(w, "  %d. %-14s quality %s / %.2f  %s\n",
				i+1, a.Model, RenderQuality(a.Quality, a.Threshold), a.Threshold, status)
		}
	}
	if res.Escalated {
		fmt.Fprintf(w, "%s %s -> %s (%d escalation(s))\n",
			WarningStyle.Render("Escalated:"), res.InitialTier, RenderTier(res.FinalTier), res.EscalationCount)
	}
	fmt.Fprintln(w)

	if opts.Markdown {
		fmt.Fprint(w, renderMarkdown(res.Answer))
	} else {
		fmt.Fprintln(w, res.Answer)
	}

	fmt.Fprintln(w, RenderSeparator(45))
	fmt.Fprintf(w, "%s %s | %s %s | %s $%.6f | %s %.0f ms\n",
		DimStyle.Render("Model:"), res.Model,
		DimStyle.Render("Quality:"), RenderQuality(res.QualityScore, res.QualityThreshold),
		DimStyle.Render("Cost:"), res.EstimatedCostUSD,
		DimStyle.Render("Latency:"), res.LatencyMs)
	if res.Degraded {
		fmt.Fprintln(w, WarningStyle.Render("No backend produced an answer; showing a placeholder."))
	}
}
