// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides string and file helpers shared across llmopt.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes, TruncateRunesNoEllipsis: UTF-8 safe truncation
//   - Preview: answer previews for the decision log
//   - TruncateWidth: terminal cell aware truncation
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	display := util.TruncateRunes(longText, 50)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
