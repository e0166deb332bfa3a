// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router decides which backend tier answers a question.
//
// Questions are scored for difficulty from surface heuristics and mapped to
// a tier through an ordered threshold policy:
// Small (cheap, fast) -> Large (capable, expensive)
//
// # Key Types
//
//   - Tier: typed tier identifier, ordered by cost and capability
//   - TierConfig: model name, pricing, latency and quality bar of a tier
//   - Registry: validated, read-only tier table that fails closed
//   - Policy: ordered (threshold, tier) rules used for initial selection
//   - DifficultyBreakdown: per-heuristic view of a difficulty score
//
// # Usage
//
//	reg := router.DefaultRegistry()
//	difficulty := router.EstimateDifficulty(question)
//	tier := router.DefaultPolicy().Select(difficulty)
//	cfg := reg.Get(tier)
//
// # Cost Estimation
//
// Cost and latency are estimates, not measurements. Tokens are approximated
// from answer word counts and latency is the tier average scaled by a random
// factor drawn from an injected Source.
package router
