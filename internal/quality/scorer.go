// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quality

import (
	"strings"
	"sync"
	"unicode"
)

// Baseline is the score every answer starts from.
const Baseline = 0.5

// DefaultJitter is the half-width of the perturbation range.
const DefaultJitter = 0.05

const (
	relevanceWeight = 0.3
	structureBonus  = 0.1
	minTermLength   = 4
)

// StopWords are question words ignored when measuring relevance.
var StopWords = map[string]struct{}{
	"what": {}, "is": {}, "the": {}, "a": {}, "to": {}, "of": {},
	"and": {}, "or": {}, "in": {}, "how": {}, "why": {}, "when": {},
}

// DiscourseMarkers signal an enumerated or layered answer.
var DiscourseMarkers = []string{"first", "second", "third", "also", "additionally"}

// Source yields uniformly distributed floats in [0,1).
// *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Breakdown shows how each heuristic contributed to a quality score.
type Breakdown struct {
	AnswerWords int     `json:"answer_words"`
	LengthAdj   float64 `json:"length_adjustment"`

	Terms        []string `json:"terms"`
	MatchedTerms []string `json:"matched_terms"`
	Relevance    float64  `json:"relevance"`

	SentenceBonus  float64 `json:"sentence_bonus"`
	DiscourseBonus float64 `json:"discourse_bonus"`

	Jitter float64 `json:"jitter"`
	Score  float64 `json:"score"`
}

// Scorer scores answers. The zero value is a deterministic scorer.
// A Scorer is safe for concurrent use.
type Scorer struct {
	mu     sync.Mutex
	src    Source
	jitter float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithSource enables perturbation drawn from src.
func WithSource(src Source) Option {
	return func(s *Scorer) {
		s.src = src
	}
}

// WithJitter sets the perturbation half-width. Values <= 0 disable it.
func WithJitter(j float64) Option {
	return func(s *Scorer) {
		s.jitter = j
	}
}

// NewScorer creates a Scorer. Without WithSource it is deterministic.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{jitter: DefaultJitter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the quality of answer for question, in [0,1].
func (s *Scorer) Score(answer, question string) float64 {
	return s.Explain(answer, question).Score
}

// Explain scores answer and reports every contribution.
func (s *Scorer) Explain(answer, question string) Breakdown {
	b := analyze(answer, question)
	b.Jitter = s.perturbation()
	b.Score = clamp(Baseline + b.LengthAdj + b.Relevance + b.SentenceBonus + b.DiscourseBonus + b.Jitter)
	return b
}

func (s *Scorer) perturbation() float64 {
	if s == nil || s.src == nil || s.jitter <= 0 {
		return 0
	}
	// *rand.Rand is not safe for concurrent use.
	s.mu.Lock()
	v := s.src.Float64()
	s.mu.Unlock()
	return (v*2 - 1) * s.jitter
}

// Score is the deterministic score of answer for question.
func Score(answer, question string) float64 {
	var s Scorer
	return s.Score(answer, question)
}

// ShouldEscalate reports whether a score falls short of a tier's threshold.
func ShouldEscalate(score, threshold float64) bool {
	return score < threshold
}

func analyze(answer, question string) Breakdown {
	var b Breakdown

	b.AnswerWords = len(strings.Fields(answer))
	switch {
	case b.AnswerWords < 5:
		b.LengthAdj = -0.3
	case b.AnswerWords < 20:
		b.LengthAdj = -0.1
	case b.AnswerWords > 100:
		b.LengthAdj = 0.2
	}

	lower := strings.ToLower(answer)

	b.Terms = questionTerms(question)
	for _, term := range b.Terms {
		if strings.Contains(lower, term) {
			b.MatchedTerms = append(b.MatchedTerms, term)
		}
	}
	if len(b.Terms) > 0 {
		b.Relevance = relevanceWeight * float64(len(b.MatchedTerms)) / float64(len(b.Terms))
	}

	if strings.Count(answer, ".") >= 2 {
		b.SentenceBonus = structureBonus
	}
	for _, marker := range DiscourseMarkers {
		if strings.Contains(lower, marker) {
			b.DiscourseBonus = structureBonus
			break
		}
	}

	return b
}

// questionTerms extracts the content words of a question: lowercased, with
// surrounding punctuation trimmed, longer than three characters and not a
// stop word. Duplicates are kept so repeated terms weigh more.
func questionTerms(question string) []string {
	var terms []string
	for _, word := range strings.Fields(question) {
		w := strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if len([]rune(w)) < minTermLength {
			continue
		}
		if _, stop := StopWords[w]; stop {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
