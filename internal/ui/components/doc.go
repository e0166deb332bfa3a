// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components holds the panels drawn inside the TUI, starting with
// the cost dashboard.
package components
