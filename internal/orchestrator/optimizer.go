// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nishchalpr4/llmopt/internal/provider"
	"github.com/Nishchalpr4/llmopt/internal/quality"
	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
	"github.com/Nishchalpr4/llmopt/internal/util"
)

// DefaultMaxEscalations allows one retry on a more capable tier.
const DefaultMaxEscalations = 1

// DefaultProviderTimeout bounds each provider call.
const DefaultProviderTimeout = 60 * time.Second

// logQuestionRunes caps how much of a question reaches the log.
const logQuestionRunes = 60

// Optimizer routes questions across tiers. Create one with New.
type Optimizer struct {
	registry        *router.Registry
	policy          router.Policy
	provider        provider.Provider
	scorer          *quality.Scorer
	recorder        telemetry.Recorder
	reader          telemetry.Reader
	latency         router.Source
	latencyMu       sync.Mutex
	maxEscalations  int
	mode            EscalationMode
	providerTimeout time.Duration
	previewChars    int
	logger          *log.Logger
	now             func() time.Time
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithRegistry sets the tier table. Default: router.DefaultRegistry().
func WithRegistry(r *router.Registry) Option {
	return func(o *Optimizer) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithPolicy sets the tier selection policy. Default: router.DefaultPolicy().
func WithPolicy(p router.Policy) Option {
	return func(o *Optimizer) {
		o.policy = p
	}
}

// WithScorer sets the quality scorer. Default: deterministic scorer.
func WithScorer(s *quality.Scorer) Option {
	return func(o *Optimizer) {
		if s != nil {
			o.scorer = s
		}
	}
}

// WithRecorder sets the decision sink. If it also implements
// telemetry.Reader it backs Stats.
func WithRecorder(r telemetry.Recorder) Option {
	return func(o *Optimizer) {
		if r == nil {
			return
		}
		o.recorder = r
		if reader, ok := r.(telemetry.Reader); ok && o.reader == nil {
			o.reader = reader
		}
	}
}

// WithReader sets the source used by Stats.
func WithReader(r telemetry.Reader) Option {
	return func(o *Optimizer) {
		o.reader = r
	}
}

// WithLatencySource enables simulated latency jitter. Without it every
// estimate is the tier's average.
func WithLatencySource(src router.Source) Option {
	return func(o *Optimizer) {
		o.latency = src
	}
}

// WithMaxEscalations sets the escalation budget. Negative values become 0.
func WithMaxEscalations(n int) Option {
	return func(o *Optimizer) {
		if n < 0 {
			n = 0
		}
		o.maxEscalations = n
	}
}

// WithEscalationMode sets where escalations go.
func WithEscalationMode(m EscalationMode) Option {
	return func(o *Optimizer) {
		if m != "" {
			o.mode = m
		}
	}
}

// WithProviderTimeout bounds each provider call. Zero disables the bound.
func WithProviderTimeout(d time.Duration) Option {
	return func(o *Optimizer) {
		o.providerTimeout = d
	}
}

// WithPreviewChars sets how much of each answer is recorded.
func WithPreviewChars(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.previewChars = n
		}
	}
}

// WithLogger sets the routing log destination. Default: log.Default().
func WithLogger(l *log.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides time.Now for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Optimizer) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Optimizer answering through p. A nil p uses the offline
// placeholder provider.
func New(p provider.Provider, opts ...Option) *Optimizer {
	o := &Optimizer{
		registry:        router.DefaultRegistry(),
		policy:          router.DefaultPolicy(),
		scorer:          &quality.Scorer{},
		recorder:        telemetry.Nop{},
		maxEscalations:  DefaultMaxEscalations,
		mode:            EscalateToTop,
		providerTimeout: DefaultProviderTimeout,
		previewChars:    telemetry.DefaultPreviewChars,
		logger:          log.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if p == nil {
		p = provider.NewPlaceholder(o.registry)
	}
	if o.providerTimeout > 0 {
		p = provider.NewGuarded(p, provider.WithTimeout(o.providerTimeout))
	}
	o.provider = p
	return o
}

// Registry returns the tier table in use.
func (o *Optimizer) Registry() *router.Registry {
	return o.registry
}

// MaxEscalations returns the escalation budget.
func (o *Optimizer) MaxEscalations() int {
	return o.maxEscalations
}

// ProcessQuestion answers question on the cheapest adequate tier, escalating
// while the answer scores below the tier's threshold and budget remains.
// The only error is an *InputError; provider failures yield a degraded
// Result instead.
func (o *Optimizer) ProcessQuestion(ctx context.Context, question string) (*Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &InputError{Question: question, Err: ErrEmptyQuestion}
	}

	difficulty := router.EstimateDifficulty(question)
	tier := o.policy.Select(difficulty)
	initial := tier

	o.logger.Printf("ROUTING: query=%q difficulty=%.2f -> tier=%s",
		util.TruncateRunes(question, logQuestionRunes), difficulty, tier)

	res := &Result{
		ID:          uuid.NewString(),
		Question:    question,
		Difficulty:  difficulty,
		InitialTier: initial,
		Timestamp:   o.now(),
	}

	for {
		cfg := o.registry.Get(tier)
		answer, attempt := o.attempt(ctx, question, cfg)
		res.Attempts = append(res.Attempts, attempt)
		res.CumulativeCostUSD += attempt.CostUSD

		res.Answer = answer
		res.FinalTier = tier
		res.Model = cfg.Model
		res.QualityScore = attempt.Quality
		res.QualityThreshold = cfg.QualityThreshold
		res.EstimatedCostUSD = attempt.CostUSD
		res.LatencyMs = attempt.LatencyMs
		res.Degraded = attempt.Degraded

		if !quality.ShouldEscalate(attempt.Quality, cfg.QualityThreshold) {
			break
		}
		if res.EscalationCount >= o.maxEscalations {
			break
		}
		next, ok := o.escalationTarget(tier)
		if !ok {
			break
		}

		res.EscalationCount++
		res.Escalated = true
		o.logger.Printf("ESCALATION: quality=%.2f < threshold=%.2f, %s -> %s (%d/%d)",
			attempt.Quality, cfg.QualityThreshold, tier, next, res.EscalationCount, o.maxEscalations)
		tier = next
	}

	o.record(ctx, res)
	return res, nil
}

// attempt runs one generate/score cycle on cfg's tier.
func (o *Optimizer) attempt(ctx context.Context, question string, cfg router.TierConfig) (string, Attempt) {
	at := Attempt{
		Tier:      cfg.Tier,
		Model:     cfg.Model,
		Threshold: cfg.QualityThreshold,
	}

	answer, err := o.provider.Generate(ctx, question, cfg.Tier)
	if err != nil {
		o.logger.Printf("WARNING: %s tier unavailable: %v", cfg.Tier, err)
		answer = degradedAnswer(cfg)
		at.Degraded = true
		at.Error = err.Error()
	}

	at.Quality = o.scorer.Score(answer, question)
	at.CostUSD = router.EstimateCost(cfg, answer)
	at.LatencyMs = o.estimateLatency(cfg)
	return answer, at
}

func degradedAnswer(cfg router.TierConfig) string {
	return fmt.Sprintf("[unavailable: %s] %s could not produce an answer.", cfg.Tier, cfg.Model)
}

// escalationTarget returns the tier to retry on. In top mode that is always
// the most capable tier, so a question already there is answered again. In
// next mode there is nothing above the top tier and the loop stops.
func (o *Optimizer) escalationTarget(current router.Tier) (router.Tier, bool) {
	top := o.registry.MostCapable()
	if o.mode != EscalateToNext {
		return top, true
	}
	if current.Order() >= top.Order() {
		return current, false
	}
	if next := current.Next(); next != nil {
		return *next, true
	}
	return current, false
}

func (o *Optimizer) estimateLatency(cfg router.TierConfig) float64 {
	if o.latency == nil {
		return router.EstimateLatency(cfg, nil)
	}
	// *rand.Rand is not safe for concurrent use.
	o.latencyMu.Lock()
	defer o.latencyMu.Unlock()
	return router.EstimateLatency(cfg, o.latency)
}

// record appends res to the decision sink. Failures are logged only.
func (o *Optimizer) record(ctx context.Context, res *Result) {
	rec := res.DecisionRecord(o.previewChars)

	// A cancelled caller still gets its decision logged.
	if err := o.recorder.Append(context.WithoutCancel(ctx), rec); err != nil {
		o.logger.Printf("WARNING: failed to record decision %s: %v", res.ID, err)
	}
}

// Stats summarizes every recorded decision.
func (o *Optimizer) Stats(ctx context.Context) telemetry.Summary {
	return telemetry.LoadSummary(ctx, o.reader)
}
