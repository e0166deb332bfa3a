// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry records routing decisions and summarizes them.
//
// Every processed question produces one append-only DecisionRecord. Records
// go to a CSV log (the default, spreadsheet friendly), an SQLite database,
// or both through Multi.
//
// # Key Types
//
//   - DecisionRecord: immutable snapshot of one completed query
//   - Recorder / Reader: append and read back decision records
//   - CSVStore, SQLiteStore, MemoryStore: concrete sinks
//   - Summary: aggregate cost, latency, quality and escalation figures
//
// # Usage
//
//	store := telemetry.NewCSVStore("output/optimizer_log.csv")
//	err := store.Append(ctx, record)
//	summary := telemetry.LoadSummary(ctx, store)
//	if summary.Status == telemetry.StatusNoData {
//	    fmt.Println("no queries recorded yet")
//	}
//
// # Concurrency
//
// All stores serialize appends, so one store may be shared by concurrent
// queries.
//
// # Privacy
//
// Records stay on local disk. Answers are kept only as a short preview.
package telemetry
