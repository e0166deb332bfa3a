// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ROUTER: Cost and latency estimation
package router

import (
	"strings"
)

// WordsPerToken approximates how many words make up one token.
const WordsPerToken = 1.3

// Latency jitter bounds, as a fraction of the tier's average latency.
const (
	MinLatencyFactor = 0.7
	MaxLatencyFactor = 1.3
)

// Source yields uniformly distributed floats in [0,1).
// *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// midpointSource always returns 0.5, which makes the latency factor exactly 1.
type midpointSource struct{}

func (midpointSource) Float64() float64 { return 0.5 }

// FixedSource returns a Source that makes EstimateLatency return the tier's
// average latency unchanged.
func FixedSource() Source {
	return midpointSource{}
}

// EstimateTokens approximates the token count of a text from its word count.
func EstimateTokens(text string) float64 {
	return float64(len(strings.Fields(text))) / WordsPerToken
}

// EstimateCost returns the USD cost of generating answer on the given tier.
func EstimateCost(cfg TierConfig, answer string) float64 {
	return EstimateTokens(answer) / 1000 * cfg.CostPer1K
}

// EstimateLatency returns the tier's average latency scaled by a factor drawn
// uniformly from [MinLatencyFactor, MaxLatencyFactor). A nil src yields the
// average latency.
func EstimateLatency(cfg TierConfig, src Source) float64 {
	if src == nil {
		src = midpointSource{}
	}
	factor := MinLatencyFactor + src.Float64()*(MaxLatencyFactor-MinLatencyFactor)
	return cfg.AvgLatencyMs * factor
}
