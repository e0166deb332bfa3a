// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"sort"
)

// Summary statuses.
const (
	StatusOK          = "ok"
	StatusNoData      = "no_data"
	StatusUnavailable = "unavailable"
)

// Summary aggregates every recorded decision.
type Summary struct {
	Status         string         `json:"status"`
	Error          string         `json:"error,omitempty"`
	TotalQueries   int            `json:"total_queries"`
	TotalCostUSD   float64        `json:"total_cost_usd"`
	AvgCostUSD     float64        `json:"avg_cost_per_query"`
	TotalLatencyMs float64        `json:"total_latency_ms"`
	AvgLatencyMs   float64        `json:"avg_latency_ms"`
	AvgQuality     float64        `json:"avg_quality_score"`
	EscalatedCount int            `json:"escalated_count"`
	EscalationRate float64        `json:"escalation_rate_percent"`
	TierUsage      map[string]int `json:"model_usage,omitempty"`
}

// Summarize computes a Summary from records.
func Summarize(records []DecisionRecord) Summary {
	if len(records) == 0 {
		return Summary{Status: StatusNoData}
	}

	s := Summary{
		Status:       StatusOK,
		TotalQueries: len(records),
		TierUsage:    make(map[string]int),
	}
	var quality float64
	for _, r := range records {
		s.TotalCostUSD += r.CostUSD
		s.TotalLatencyMs += r.LatencyMs
		quality += r.QualityScore
		if r.Escalated {
			s.EscalatedCount++
		}
		s.TierUsage[r.FinalTier]++
	}

	n := float64(len(records))
	s.AvgCostUSD = s.TotalCostUSD / n
	s.AvgLatencyMs = s.TotalLatencyMs / n
	s.AvgQuality = quality / n
	s.EscalationRate = float64(s.EscalatedCount) / n * 100
	return s
}

// summarizer is implemented by stores that aggregate natively.
type summarizer interface {
	Summary(ctx context.Context) (Summary, error)
}

// LoadSummary never fails: an unreadable sink reports StatusUnavailable with
// the error text, an empty one StatusNoData.
func LoadSummary(ctx context.Context, r Reader) Summary {
	if r == nil {
		return Summary{Status: StatusNoData}
	}
	if agg, ok := r.(summarizer); ok {
		s, err := agg.Summary(ctx)
		if err != nil {
			return Summary{Status: StatusUnavailable, Error: err.Error()}
		}
		return s
	}

	records, err := r.Records(ctx)
	if err != nil {
		return Summary{Status: StatusUnavailable, Error: err.Error()}
	}
	return Summarize(records)
}

// SortedTiers returns TierUsage keys in a stable order.
func (s Summary) SortedTiers() []string {
	tiers := make([]string, 0, len(s.TierUsage))
	for t := range s.TierUsage {
		tiers = append(tiers, t)
	}
	sort.Strings(tiers)
	return tiers
}
