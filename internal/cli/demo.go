// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// demo.go - Runs a fixed batch of questions spanning the difficulty range.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
)

// DemoQuestions go from trivially small-tier to clearly large-tier.
var DemoQuestions = []string{
	"What is Python?",
	"How do I print hello world?",
	"Explain how machine learning works",
	"What are the differences between arrays and linked lists in computer science?",
	"Design an algorithm to find the optimal route through a graph while minimizing latency and maximizing throughput under varying network conditions, considering both geographical proximity and current network load factors.",
	"Analyze the trade-offs between consistency, availability, and partition tolerance in distributed systems, provide concrete examples, and explain how different architectures make different choices.",
}

// HandleDemo answers every demo question, then prints the log summary.
func HandleDemo(ctx context.Context, args Args) error {
	rt, err := Setup(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	results := make([]*orchestrator.Result, 0, len(DemoQuestions))
	for i, q := range DemoQuestions {
		res, err := rt.Optimizer.ProcessQuestion(ctx, q)
		if err != nil {
			return err
		}
		results = append(results, res)

		if args.JSON {
			continue
		}
		if args.Quiet {
			fmt.Printf("%d. %s\n", i+1, quietLine(res))
			continue
		}
		fmt.Println(RenderSeparator(70))
		fmt.Printf("%s %d/%d\n", TitleStyle.UnsetMarginBottom().Render("Question"), i+1, len(DemoQuestions))
		writeResult(os.Stdout, res, displayOptions{ShowAttempts: true})
		fmt.Println()

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	sum := rt.Optimizer.Stats(ctx)
	if args.JSON {
		return NewJSONResponse("demo", DemoData{Results: results, Summary: sum}).Print()
	}
	fmt.Println(RenderSeparator(70))
	printSummary(os.Stdout, sum)
	return nil
}
