// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for llmopt output.
//
// Colors are disabled for piped output and when NO_COLOR is set.
// FORCE_COLOR and ui.color = "always" turn them back on.

package cli

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Answer wrapping bounds.
const (
	fallbackWidth = 80
	minWrapWidth  = 40
	maxWrapWidth  = 120
)

// wrapWidth is the column answers are wrapped at: the terminal width less a
// margin, clamped to [minWrapWidth, maxWrapWidth].
func wrapWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = fallbackWidth
	}
	return min(max(width-4, minWrapWidth), maxWrapWidth)
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// colorState caches the color decision; ForceColorsEnabled replaces it.
var colorState struct {
	mu      sync.Mutex
	decided bool
	enabled bool
}

// decideColors applies https://no-color.org/: NO_COLOR wins over
// FORCE_COLOR, which wins over TTY detection.
func decideColors(noColor, forceColor string, tty bool) bool {
	switch {
	case noColor != "":
		return false
	case forceColor != "":
		return true
	default:
		return tty
	}
}

// ColorsEnabled reports whether colored output should be used.
func ColorsEnabled() bool {
	colorState.mu.Lock()
	defer colorState.mu.Unlock()
	if !colorState.decided {
		colorState.enabled = decideColors(os.Getenv("NO_COLOR"), os.Getenv("FORCE_COLOR"), IsStdoutTTY())
		colorState.decided = true
	}
	return colorState.enabled
}

// ForceColorsEnabled overrides color detection.
func ForceColorsEnabled(enabled bool) {
	colorState.mu.Lock()
	colorState.enabled = enabled
	colorState.decided = true
	colorState.mu.Unlock()
}

// ApplyColorSetting applies ui.color ("auto", "always", "never") and
// reconfigures lipgloss to match.
func ApplyColorSetting(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		ForceColorsEnabled(true)
	case "never":
		ForceColorsEnabled(false)
	}
	lipgloss.SetColorProfile(GetColorProfile())
}

// GetColorProfile returns Ascii when colors are off, otherwise the
// detected terminal profile.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
