// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator runs the route, answer, score and escalate loop.
//
// An Optimizer estimates a question's difficulty, sends it to the cheapest
// adequate tier, scores the answer and, when the score falls short of the
// tier's threshold, retries on a more capable tier. The escalation budget
// bounds the number of retries and the tier never moves down.
//
// # Usage
//
//	opt := orchestrator.New(provider.NewPlaceholder(reg),
//	    orchestrator.WithRegistry(reg),
//	    orchestrator.WithRecorder(telemetry.NewCSVStore(path)),
//	)
//	result, err := opt.ProcessQuestion(ctx, "What is Python?")
//
// ProcessQuestion is safe for concurrent use.
package orchestrator
