// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS decisions (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	query_id           TEXT NOT NULL,
	timestamp          TEXT NOT NULL,
	question           TEXT NOT NULL,
	question_length    INTEGER NOT NULL,
	initial_model      TEXT NOT NULL,
	final_model        TEXT NOT NULL,
	model              TEXT NOT NULL DEFAULT '',
	escalated          INTEGER NOT NULL,
	quality_score      REAL NOT NULL,
	latency_ms         REAL NOT NULL,
	estimated_cost_usd REAL NOT NULL,
	answer_preview     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_timestamp ON decisions(timestamp);
`

// SQLiteStore keeps decision records in an SQLite database.
type SQLiteStore struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// OpenSQLite opens (or creates) the database at path. ":memory:" is
// accepted for tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps ":memory:" alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append implements Recorder.
func (s *SQLiteStore) Append(ctx context.Context, rec DecisionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	escalated := 0
	if rec.Escalated {
		escalated = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions (query_id, timestamp, question, question_length, initial_model,
			final_model, model, escalated, quality_score, latency_ms, estimated_cost_usd, answer_preview)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.QueryID, rec.Timestamp.Format(time.RFC3339Nano), rec.Question, rec.QuestionLength,
		rec.InitialTier, rec.FinalTier, rec.Model, escalated, rec.QualityScore, rec.LatencyMs,
		rec.CostUSD, rec.AnswerPreview,
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// Records implements Reader.
func (s *SQLiteStore) Records(ctx context.Context) ([]DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT query_id, timestamp, question, question_length, initial_model, final_model, model,
			escalated, quality_score, latency_ms, estimated_cost_usd, answer_preview
		 FROM decisions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var records []DecisionRecord
	for rows.Next() {
		var (
			rec       DecisionRecord
			ts        string
			escalated int
		)
		if err := rows.Scan(&rec.QueryID, &ts, &rec.Question, &rec.QuestionLength, &rec.InitialTier,
			&rec.FinalTier, &rec.Model, &escalated, &rec.QualityScore, &rec.LatencyMs,
			&rec.CostUSD, &rec.AnswerPreview); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if rec.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		rec.Escalated = escalated != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summary aggregates in SQL rather than loading every row.
func (s *SQLiteStore) Summary(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Summary{}, ErrClosed
	}

	var (
		sum       Summary
		total     int
		cost      sql.NullFloat64
		latency   sql.NullFloat64
		quality   sql.NullFloat64
		escalated sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(estimated_cost_usd), SUM(latency_ms), AVG(quality_score), SUM(escalated)
		 FROM decisions`).Scan(&total, &cost, &latency, &quality, &escalated)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize decisions: %w", err)
	}
	if total == 0 {
		return Summary{Status: StatusNoData}, nil
	}

	sum.Status = StatusOK
	sum.TotalQueries = total
	sum.TotalCostUSD = cost.Float64
	sum.AvgCostUSD = cost.Float64 / float64(total)
	sum.TotalLatencyMs = latency.Float64
	sum.AvgLatencyMs = latency.Float64 / float64(total)
	sum.AvgQuality = quality.Float64
	sum.EscalatedCount = int(escalated.Int64)
	sum.EscalationRate = float64(sum.EscalatedCount) / float64(total) * 100

	rows, err := s.db.QueryContext(ctx, `SELECT final_model, COUNT(*) FROM decisions GROUP BY final_model`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize tiers: %w", err)
	}
	defer rows.Close()

	sum.TierUsage = make(map[string]int)
	for rows.Next() {
		var (
			tier  string
			count int
		)
		if err := rows.Scan(&tier, &count); err != nil {
			return Summary{}, fmt.Errorf("scan tier usage: %w", err)
		}
		sum.TierUsage[tier] = count
	}
	return sum, rows.Err()
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
