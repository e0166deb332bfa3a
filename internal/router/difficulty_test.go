// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

const capQuestion = "Analyze the trade-offs between consistency, availability, and partition tolerance in distributed systems, provide concrete examples, and explain how different architectures make different choices."

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestEstimateDifficulty checks scores against hand-computed heuristics.
func TestEstimateDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     float64
	}{
		{"empty", "", 0.1},
		{"whitespace", "   \t\n", 0.1},
		{"short_lookup", "What is Python?", 0.1},
		{"how_question", "How do I print hello world?", 0.4},
		{"explain_how", "Explain how machine learning works", 0.5},
		{"medium_no_keywords", "What are the differences between arrays and linked lists in computer science?", 0.3},
		{"cap_theorem", capQuestion, 0.9},
		{
			"long_design",
			"Design an algorithm to find the optimal route through a graph while minimizing latency and maximizing throughput under varying network conditions, considering both geographical proximity and current network load factors.",
			0.9,
		},
		{"multiple_questions", "Why? How? What?", 0.45},
		{"semicolon", "a; b", 0.2},
		{"three_commas_no_bonus", "a, b, c, d", 0.1},
		{"four_commas_bonus", "a, b, c, d, e", 0.4},
		{"keyword_case_insensitive", "EXPLAIN THIS", 0.2},
		{"keyword_once", "explain explain explain", 0.2},
		{
			"clamped",
			"Explain and analyze, compare and contrast, evaluate and summarize, discuss and implement the design of a complex technical optimization algorithm; why and how?",
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDifficulty(tt.question)
			if !approxEqual(got, tt.want) {
				t.Errorf("EstimateDifficulty(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

// TestEstimateDifficulty_LengthBuckets verifies the bucket edges.
func TestEstimateDifficulty_LengthBuckets(t *testing.T) {
	tests := []struct {
		words int
		want  float64
	}{
		{0, 0.1}, {4, 0.1}, {5, 0.3}, {14, 0.3}, {15, 0.5}, {29, 0.5}, {30, 0.7}, {200, 0.7},
	}
	for _, tt := range tests {
		q := strings.TrimSpace(strings.Repeat("word ", tt.words))
		if got := EstimateDifficulty(q); !approxEqual(got, tt.want) {
			t.Errorf("%d words: got %v, want %v", tt.words, got, tt.want)
		}
	}
}

// TestEstimateDifficulty_Bounded checks the [0,1] range on assorted input.
func TestEstimateDifficulty_Bounded(t *testing.T) {
	inputs := []string{
		"",
		"?",
		strings.Repeat("?", 100),
		strings.Repeat(";,", 500),
		strings.Repeat(strings.Join(ComplexityKeywords, " ")+" ", 50),
		"日本語の質問ですか？",
		"\x00\xff invalid utf8",
	}
	for _, q := range inputs {
		got := EstimateDifficulty(q)
		if got < 0 || got > 1 {
			t.Errorf("EstimateDifficulty(%q) = %v, out of [0,1]", q, got)
		}
	}
}

// TestEstimateDifficulty_Deterministic repeats the same question.
func TestEstimateDifficulty_Deterministic(t *testing.T) {
	first := EstimateDifficulty(capQuestion)
	for i := 0; i < 100; i++ {
		if got := EstimateDifficulty(capQuestion); got != first {
			t.Fatalf("call %d: got %v, want %v", i, got, first)
		}
	}
}

// TestAnalyzeDifficulty_Breakdown checks the per-heuristic fields.
func TestAnalyzeDifficulty_Breakdown(t *testing.T) {
	b := AnalyzeDifficulty(capQuestion)

	if b.WordCount != 23 {
		t.Errorf("WordCount = %d, want 23", b.WordCount)
	}
	if !approxEqual(b.LengthScore, 0.5) {
		t.Errorf("LengthScore = %v, want 0.5", b.LengthScore)
	}
	wantKeywords := []string{"explain", "how", "analyze"}
	if !reflect.DeepEqual(b.Keywords, wantKeywords) {
		t.Errorf("Keywords = %v, want %v", b.Keywords, wantKeywords)
	}
	if b.Commas != 4 || b.HasSemicolon || b.QuestionMarks != 0 {
		t.Errorf("punctuation counts = (%d, %v, %d)", b.Commas, b.HasSemicolon, b.QuestionMarks)
	}
	if !approxEqual(b.PunctuationScore, 0.1) {
		t.Errorf("PunctuationScore = %v, want 0.1", b.PunctuationScore)
	}
	if !approxEqual(b.Score, b.LengthScore+b.KeywordScore+b.PunctuationScore) {
		t.Errorf("Score %v does not equal the sum of its parts", b.Score)
	}
}

// TestAnalyzeDifficulty_RawExceedsScore keeps the unclamped sum visible.
func TestAnalyzeDifficulty_RawExceedsScore(t *testing.T) {
	q := strings.Repeat("word ", 40) + strings.Join(ComplexityKeywords, " ")
	b := AnalyzeDifficulty(q)
	if b.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", b.Score)
	}
	if b.Raw <= 1.0 {
		t.Errorf("Raw = %v, want > 1.0", b.Raw)
	}
}
