// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quality scores generated answers against the question they answer.
//
// Scores are heuristic and live in [0,1]. A Scorer may add a small bounded
// perturbation drawn from an injected random source; without one, scoring is
// a pure function of (answer, question).
package quality
