// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"
)

// ============================================================================
// DIFFICULTY ESTIMATION
// ============================================================================

// ComplexityKeywords are the trigger words that raise a question's difficulty.
// Each keyword counts at most once, matched as a case-insensitive substring.
var ComplexityKeywords = []string{
	"explain", "how", "why", "analyze", "compare", "contrast",
	"evaluate", "summarize", "discuss", "implement", "design",
	"algorithm", "complex", "optimization", "technical",
}

const (
	keywordWeight        = 0.1
	multiQuestionBonus   = 0.15
	compoundClauseBonus  = 0.1
	maxCommasBeforeBonus = 3
)

// DifficultyBreakdown shows how each heuristic contributed to a score.
type DifficultyBreakdown struct {
	WordCount   int     `json:"word_count"`
	LengthScore float64 `json:"length_score"`

	Keywords     []string `json:"keywords"`
	KeywordScore float64  `json:"keyword_score"`

	QuestionMarks    int     `json:"question_marks"`
	Commas           int     `json:"commas"`
	HasSemicolon     bool    `json:"has_semicolon"`
	PunctuationScore float64 `json:"punctuation_score"`

	// Raw is the unclamped sum; Score is the final value in [0,1].
	Raw   float64 `json:"raw"`
	Score float64 `json:"score"`
}

// wordCount returns the number of words in a string.
// Uses strings.Fields which splits on whitespace.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// lengthScore maps a word count onto one of four exclusive buckets.
func lengthScore(words int) float64 {
	switch {
	case words < 5:
		return 0.1
	case words < 15:
		return 0.3
	case words < 30:
		return 0.5
	default:
		return 0.7
	}
}

// AnalyzeDifficulty scores a question and reports every contribution.
// It is deterministic and total: any string, including "", is valid input.
func AnalyzeDifficulty(question string) DifficultyBreakdown {
	b := DifficultyBreakdown{
		WordCount: wordCount(question),
	}
	b.LengthScore = lengthScore(b.WordCount)

	q := strings.ToLower(question)
	for _, kw := range ComplexityKeywords {
		if strings.Contains(q, kw) {
			b.Keywords = append(b.Keywords, kw)
		}
	}
	b.KeywordScore = float64(len(b.Keywords)) * keywordWeight

	b.QuestionMarks = strings.Count(question, "?")
	b.Commas = strings.Count(question, ",")
	b.HasSemicolon = strings.Contains(question, ";")
	if b.QuestionMarks > 1 {
		b.PunctuationScore += multiQuestionBonus
	}
	if b.HasSemicolon || b.Commas > maxCommasBeforeBonus {
		b.PunctuationScore += compoundClauseBonus
	}

	b.Raw = b.LengthScore + b.KeywordScore + b.PunctuationScore
	b.Score = b.Raw
	if b.Score > 1.0 {
		b.Score = 1.0
	}
	return b
}

// EstimateDifficulty returns the difficulty of a question in [0,1].
func EstimateDifficulty(question string) float64 {
	return AnalyzeDifficulty(question).Score
}
