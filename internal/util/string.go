// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"github.com/mattn/go-runewidth"
)

// UNICODE: all helpers count runes or display cells, never bytes, so they
// cannot split a multi-byte character.

// Ellipsis marks truncated text.
const Ellipsis = "..."

// TruncateRunes truncates s to at most maxRunes runes, ending in "..." when
// truncated.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= len(Ellipsis) {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-len(Ellipsis)]) + Ellipsis
}

// TruncateRunesNoEllipsis truncates s to at most maxRunes runes.
func TruncateRunesNoEllipsis(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}

// Preview keeps the first n runes of s and appends "..." when anything was
// cut. Unlike TruncateRunes the kept text is never shortened to make room.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + Ellipsis
}

// TruncateWidth truncates s to fit maxWidth terminal cells.
// Double-width characters (CJK) take two cells.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}
