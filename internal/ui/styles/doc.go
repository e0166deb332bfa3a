// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the llmopt TUI.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
// Tiers are colored by position, cheapest first, and quality scores are
// colored against the threshold of the tier that produced them.
//
// # Usage
//
//	theme := styles.NewTheme()
//	fmt.Println(theme.Question.Render("What is Python?"))
//	fmt.Println(theme.Quality("0.82", 0.82, 0.7))
package styles
