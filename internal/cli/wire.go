// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// wire.go - Builds an optimizer from configuration and global flags.

package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/Nishchalpr4/llmopt/internal/cloud"
	"github.com/Nishchalpr4/llmopt/internal/config"
	"github.com/Nishchalpr4/llmopt/internal/ollama"
	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/provider"
	"github.com/Nishchalpr4/llmopt/internal/quality"
	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
)

// Runtime is everything a command needs to answer questions.
type Runtime struct {
	Config    *config.Config
	Optimizer *orchestrator.Optimizer
	Reader    telemetry.Reader

	closers []io.Closer
}

// Close releases recorder resources.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadConfig loads the configuration named by --config (or the default
// location) and applies global flag overrides.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	args.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ApplyColorSetting(cfg.UI.Color)
	return cfg, nil
}

// Setup loads configuration and builds the optimizer.
func Setup(args Args) (*Runtime, error) {
	cfg, err := LoadConfig(args)
	if err != nil {
		return nil, err
	}
	return Build(cfg, newLogger(args.Verbose))
}

// Build wires an optimizer from a validated configuration.
func Build(cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("config tiers: %w", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("config routing: %w", err)
	}
	mode, err := orchestrator.ParseEscalationMode(cfg.Optimizer.Escalation)
	if err != nil {
		return nil, fmt.Errorf("config optimizer.escalation: %w", err)
	}

	p, err := BuildProvider(cfg, reg, logger)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: cfg}
	recorder, reader, err := rt.buildRecorder(cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Reader = reader

	seed := cfg.Optimizer.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Scorer and latency each own a source; *rand.Rand is not safe to share.
	scorer := quality.NewScorer()
	if cfg.Optimizer.QualityJitter > 0 {
		scorer = quality.NewScorer(
			quality.WithSource(rand.New(rand.NewSource(seed))),
			quality.WithJitter(cfg.Optimizer.QualityJitter),
		)
	}

	opts := []orchestrator.Option{
		orchestrator.WithRegistry(reg),
		orchestrator.WithPolicy(policy),
		orchestrator.WithScorer(scorer),
		orchestrator.WithRecorder(recorder),
		orchestrator.WithReader(reader),
		orchestrator.WithMaxEscalations(cfg.Optimizer.MaxEscalations),
		orchestrator.WithEscalationMode(mode),
		orchestrator.WithProviderTimeout(cfg.ProviderTimeout()),
		orchestrator.WithPreviewChars(cfg.Recorder.PreviewChars),
		orchestrator.WithLogger(logger),
	}
	if cfg.Optimizer.SimulateLatency {
		opts = append(opts, orchestrator.WithLatencySource(rand.New(rand.NewSource(seed+1))))
	}

	rt.Optimizer = orchestrator.New(p, opts...)
	return rt, nil
}

// buildRecorder opens the configured decision logs. The SQLite log, when
// present, backs summaries since it aggregates in SQL.
func (rt *Runtime) buildRecorder(cfg *config.Config) (telemetry.Recorder, telemetry.Reader, error) {
	var (
		sinks  telemetry.Multi
		reader telemetry.Reader
	)

	if cfg.Recorder.SQLitePath != "" {
		db, err := telemetry.OpenSQLite(cfg.Recorder.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		rt.closers = append(rt.closers, db)
		sinks = append(sinks, db)
		reader = db
	}

	if cfg.Recorder.CSVPath != "" {
		csvStore := telemetry.NewCSVStore(cfg.Recorder.CSVPath)
		sinks = append(sinks, csvStore)
		if reader == nil {
			reader = csvStore
		}
	}

	switch len(sinks) {
	case 0:
		return telemetry.Nop{}, telemetry.Nop{}, nil
	case 1:
		return sinks[0], reader, nil
	default:
		return sinks, reader, nil
	}
}

// newLogger routes routing decisions to stderr when verbose.
func newLogger(verbose bool) *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// =============================================================================
// PROVIDERS
// =============================================================================

// BuildProvider creates the answer provider named by provider.kind, rate
// limited when provider.rate_limit is set. Cloud clients log each request
// to logger; nil keeps them quiet.
func BuildProvider(cfg *config.Config, reg *router.Registry, logger *log.Logger) (provider.Provider, error) {
	var (
		p   provider.Provider
		err error
	)

	kind := strings.ToLower(cfg.Provider.Kind)
	if kind == config.KindTiered {
		p, err = buildTiered(cfg, reg, logger)
	} else {
		p, err = buildBackend(cfg, reg, logger, kind)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Provider.RateLimit > 0 {
		p = provider.NewGuarded(p, provider.WithRateLimit(cfg.Provider.RateLimit, cfg.Provider.Burst))
	}
	return p, nil
}

// buildTiered gives each tier its configured backend. Tiers without one
// fall back to the placeholder.
func buildTiered(cfg *config.Config, reg *router.Registry, logger *log.Logger) (provider.Provider, error) {
	backends := make(map[router.Tier]provider.Provider)
	built := make(map[string]provider.Provider)
	for _, tier := range router.AllTiers() {
		kind := strings.ToLower(cfg.TierSettings(tier).Backend)
		if kind == "" {
			continue
		}
		p, ok := built[kind]
		if !ok {
			var err error
			p, err = buildBackend(cfg, reg, logger, kind)
			if err != nil {
				return nil, fmt.Errorf("tiers.%s.backend: %w", tier, err)
			}
			built[kind] = p
		}
		backends[tier] = p
	}
	return provider.NewTiered(backends, provider.NewPlaceholder(reg)), nil
}

func buildBackend(cfg *config.Config, reg *router.Registry, logger *log.Logger, kind string) (provider.Provider, error) {
	switch kind {
	case "", config.KindPlaceholder:
		return provider.NewPlaceholder(reg), nil

	case config.KindOllama:
		models := cfg.Provider.Ollama.Models
		client := ollama.New(ollama.Config{
			BaseURL:      cfg.Provider.Ollama.URL,
			Timeout:      cfg.ProviderTimeout(),
			DefaultModel: models.Small,
		})
		return provider.NewOllama(client, reg, models.ByTier()), nil

	case config.KindOpenRouter:
		return buildCloud(cfg, reg, logger, config.KindOpenRouter, cfg.Provider.Cloud.OpenRouterKey, cfg.Provider.Cloud.OpenRouterModels)

	case config.KindGroq:
		return buildCloud(cfg, reg, logger, config.KindGroq, cfg.Provider.Cloud.GroqKey, cfg.Provider.Cloud.GroqModels)

	default:
		return nil, &ValidationError{
			Field:   "provider",
			Value:   kind,
			Reason:  "unknown provider kind",
			Example: "placeholder, ollama, openrouter, groq or tiered",
		}
	}
}

func buildCloud(cfg *config.Config, reg *router.Registry, logger *log.Logger, name, key string, models config.ModelMap) (provider.Provider, error) {
	if key == "" {
		return nil, fmt.Errorf("%s provider: %w (set LLMOPT_%s_KEY)", name, cloud.ErrNotConfigured, strings.ToUpper(name))
	}
	client := cloud.NewClient(key).
		WithBaseURL(cloud.BaseURLFor(name)).
		WithMaxRetries(cfg.Provider.Cloud.MaxRetries).
		WithLogger(logger)
	if d := cfg.ProviderTimeout(); d > 0 {
		client = client.WithTimeout(d)
	}
	return provider.NewCloud(name, client, reg, models.ByTier()), nil
}
