// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - "did you mean" hints for mistyped commands.
package cli

import (
	"strings"
)

// commandWords maps every accepted spelling to the command it runs.
var commandWords = map[string]string{
	"tui":     "tui",
	"ask":     "ask",
	"chat":    "chat",
	"explain": "explain",
	"why":     "explain",
	"stats":   "stats",
	"summary": "stats",
	"demo":    "demo",
	"config":  "config",
	"doctor":  "doctor",
	"diag":    "doctor",
	"version": "version",
	"help":    "help",
}

// SuggestCommand returns the command the user most likely meant, or "" when
// input is already valid or nothing is close. A unique prefix of three or
// more letters wins outright; otherwise the nearest spelling by edit distance
// is used, with more slack for longer input.
func SuggestCommand(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if len([]rune(input)) < 2 {
		return ""
	}
	if _, ok := commandWords[input]; ok {
		return ""
	}

	if len(input) >= 3 {
		prefixed := ""
		for word, cmd := range commandWords {
			if !strings.HasPrefix(word, input) {
				continue
			}
			if prefixed != "" && prefixed != cmd {
				prefixed = ""
				break
			}
			prefixed = cmd
		}
		if prefixed != "" {
			return prefixed
		}
	}

	limit := 1
	switch n := len([]rune(input)); {
	case n > 8:
		limit = 3
	case n >= 4:
		limit = 2
	}

	best, bestDist := "", limit+1
	for word, cmd := range commandWords {
		d := levenshteinDistance(input, word)
		// Ties go to the alphabetically first command so output is stable.
		if d < bestDist || (d == bestDist && cmd < best) {
			best, bestDist = cmd, d
		}
	}
	return best
}

// levenshteinDistance counts the single-rune edits between a and b.
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			above := row[j]
			sub := diag
			if ra[i-1] != rb[j-1] {
				sub++
			}
			row[j] = min(above+1, row[j-1]+1, sub)
			diag = above
		}
	}
	return row[len(rb)]
}
