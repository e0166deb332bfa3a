// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"errors"
	"time"
)

// DefaultPreviewChars is how much of an answer a record keeps.
const DefaultPreviewChars = 100

// DecisionRecord is one completed query as persisted by a Recorder.
type DecisionRecord struct {
	QueryID        string    `json:"query_id"`
	Timestamp      time.Time `json:"timestamp"`
	Question       string    `json:"question"`
	QuestionLength int       `json:"question_length"`
	InitialTier    string    `json:"initial_model"`
	FinalTier      string    `json:"final_model"`
	Model          string    `json:"model"`
	Escalated      bool      `json:"escalated"`
	QualityScore   float64   `json:"quality_score"`
	LatencyMs      float64   `json:"latency_ms"`
	CostUSD        float64   `json:"estimated_cost_usd"`
	AnswerPreview  string    `json:"answer_preview"`
}

// Recorder persists decision records. Append must be safe for concurrent use.
type Recorder interface {
	Append(ctx context.Context, rec DecisionRecord) error
}

// Reader reads back every record in arrival order.
// A sink that does not exist yet yields no records and no error.
type Reader interface {
	Records(ctx context.Context) ([]DecisionRecord, error)
}

// Store is a sink that can be both written and read.
type Store interface {
	Recorder
	Reader
}

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("telemetry store is closed")

// Nop discards every record.
type Nop struct{}

// Append implements Recorder.
func (Nop) Append(context.Context, DecisionRecord) error { return nil }

// Records implements Reader.
func (Nop) Records(context.Context) ([]DecisionRecord, error) { return nil, nil }
