// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
	"github.com/Nishchalpr4/llmopt/internal/util"
)

// ErrEmptyQuestion is returned for empty or whitespace-only input.
var ErrEmptyQuestion = errors.New("question is empty")

// InputError reports a question rejected before routing.
type InputError struct {
	Question string
	Err      error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid question: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// EscalationMode picks the tier an escalation moves to.
type EscalationMode string

const (
	// EscalateToTop jumps straight to the most capable tier.
	EscalateToTop EscalationMode = "top"
	// EscalateToNext moves one tier up.
	EscalateToNext EscalationMode = "next"
)

// ParseEscalationMode maps a config value to a mode. Empty means top.
func ParseEscalationMode(s string) (EscalationMode, error) {
	switch EscalationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", EscalateToTop:
		return EscalateToTop, nil
	case EscalateToNext:
		return EscalateToNext, nil
	default:
		return "", fmt.Errorf("unknown escalation mode %q (want top or next)", s)
	}
}

// Attempt is one generate/score cycle.
type Attempt struct {
	Tier      router.Tier `json:"tier"`
	Model     string      `json:"model"`
	Quality   float64     `json:"quality_score"`
	Threshold float64     `json:"threshold"`
	CostUSD   float64     `json:"estimated_cost_usd"`
	LatencyMs float64     `json:"latency_ms"`
	Degraded  bool        `json:"degraded,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Result is the outcome of one processed question.
type Result struct {
	ID                string      `json:"query_id"`
	Question          string      `json:"question"`
	Answer            string      `json:"answer"`
	Difficulty        float64     `json:"difficulty"`
	InitialTier       router.Tier `json:"initial_model"`
	FinalTier         router.Tier `json:"final_model"`
	Model             string      `json:"model"`
	Escalated         bool        `json:"escalated"`
	EscalationCount   int         `json:"escalation_count"`
	QualityScore      float64     `json:"quality_score"`
	QualityThreshold  float64     `json:"quality_threshold"`
	EstimatedCostUSD  float64     `json:"estimated_cost_usd"`
	CumulativeCostUSD float64     `json:"cumulative_cost_usd"`
	LatencyMs         float64     `json:"latency_ms"`
	Degraded          bool        `json:"degraded,omitempty"`
	Attempts          []Attempt   `json:"attempts"`
	Timestamp         time.Time   `json:"timestamp"`
}

// Cycles returns how many generate/score cycles ran.
func (r *Result) Cycles() int {
	return len(r.Attempts)
}

// MetQuality reports whether the final answer reached its tier's threshold.
func (r *Result) MetQuality() bool {
	return r.QualityScore >= r.QualityThreshold
}

// DecisionRecord flattens r into a decision log row, keeping at most
// previewChars characters of the answer.
func (r *Result) DecisionRecord(previewChars int) telemetry.DecisionRecord {
	return telemetry.DecisionRecord{
		QueryID:        r.ID,
		Timestamp:      r.Timestamp,
		Question:       r.Question,
		QuestionLength: len(strings.Fields(r.Question)),
		InitialTier:    r.InitialTier.String(),
		FinalTier:      r.FinalTier.String(),
		Model:          r.Model,
		Escalated:      r.Escalated,
		QualityScore:   r.QualityScore,
		LatencyMs:      r.LatencyMs,
		CostUSD:        r.EstimatedCostUSD,
		AnswerPreview:  util.Preview(r.Answer, previewChars),
	}
}
