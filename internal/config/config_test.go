// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nishchalpr4/llmopt/internal/router"
)

// clearEnv unsets every variable ApplyEnvOverrides reads for the test's duration.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"LLMOPT_CONFIG", "LLMOPT_PROVIDER", "LLMOPT_MAX_ESCALATIONS", "LLMOPT_ESCALATION",
		"LLMOPT_SEED", "LLMOPT_OLLAMA_URL", "LLMOPT_OPENROUTER_KEY", "OPENROUTER_API_KEY",
		"LLMOPT_GROQ_KEY", "GROQ_API_KEY", "LLMOPT_CSV_PATH", "LLMOPT_SQLITE_PATH",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestConfig_Default tests that Default() returns a valid config matching the
// built-in tier table.
func TestConfig_Default(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1, cfg.Optimizer.MaxEscalations)
	assert.Equal(t, "top", cfg.Optimizer.Escalation)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, KindPlaceholder, cfg.Provider.Kind)
	assert.Equal(t, "output/optimizer_log.csv", cfg.Recorder.CSVPath)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.Equal(t, router.DefaultRegistry().Configs(), reg.Configs())

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, router.DefaultPolicy().Rules(), policy.Rules())
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[optimizer]
max_escalations = 3
escalation = "next"

[tiers.large]
model = "claude-opus"
cost_per_1k = 0.03
avg_latency_ms = 2500
max_tokens = 8192
quality_threshold = 0.9

[[routing.rules]]
below = 0.3
tier = "small"

[recorder]
sqlite_path = "output/decisions.db"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Optimizer.MaxEscalations)
	assert.Equal(t, "next", cfg.Optimizer.Escalation)
	assert.Equal(t, 60, cfg.Optimizer.ProviderTimeoutSecs)
	assert.Equal(t, "GPT-3.5-mini", cfg.Tiers.Small.Model)
	assert.Equal(t, "claude-opus", cfg.Tiers.Large.Model)
	assert.Equal(t, "output/decisions.db", cfg.Recorder.SQLitePath)
	assert.Equal(t, "output/optimizer_log.csv", cfg.Recorder.CSVPath)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.InDelta(t, 0.9, reg.Get(router.TierLarge).QualityThreshold, 1e-9)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, router.TierSmall, policy.Select(0.2))
	assert.Equal(t, router.TierLarge, policy.Select(0.35))
}

func TestLoadFromPath_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFromPath(writeConfig(t, "this is = = not toml"))
	assert.Error(t, err)

	_, err = LoadFromPath(writeConfig(t, "[optimizer]\nmax_escalations = -2\n"))
	require.Error(t, err)
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "optimizer.max_escalations", verrs[0].Field)
}

func TestReadFile_IgnoresEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLMOPT_GROQ_KEY", "gsk-from-env")

	cfg, err := ReadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = ReadFile(writeConfig(t, "[optimizer]\nmax_escalations = 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Optimizer.MaxEscalations)
	assert.Empty(t, cfg.Provider.Cloud.GroqKey)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLMOPT_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Tiers, cfg.Tiers)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLMOPT_PROVIDER", "GROQ")
	t.Setenv("LLMOPT_MAX_ESCALATIONS", "0")
	t.Setenv("LLMOPT_SEED", "42")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("LLMOPT_CSV_PATH", "/tmp/log.csv")
	t.Setenv("LLMOPT_ESCALATION", "next")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, KindGroq, cfg.Provider.Kind)
	assert.Equal(t, 0, cfg.Optimizer.MaxEscalations)
	assert.Equal(t, int64(42), cfg.Optimizer.Seed)
	assert.Equal(t, "gsk-test", cfg.Provider.Cloud.GroqKey)
	assert.Equal(t, "/tmp/log.csv", cfg.Recorder.CSVPath)
	assert.Equal(t, "next", cfg.Optimizer.Escalation)

	// Explicit LLMOPT_ names win over the vendor names.
	t.Setenv("LLMOPT_GROQ_KEY", "gsk-preferred")
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "gsk-preferred", cfg.Provider.Cloud.GroqKey)

	t.Setenv("LLMOPT_MAX_ESCALATIONS", "lots")
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 0, cfg.Optimizer.MaxEscalations)
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad escalation mode", func(c *Config) { c.Optimizer.Escalation = "sideways" }, "optimizer.escalation"},
		{"negative timeout", func(c *Config) { c.Optimizer.ProviderTimeoutSecs = -1 }, "optimizer.provider_timeout_secs"},
		{"huge jitter", func(c *Config) { c.Optimizer.QualityJitter = 0.9 }, "optimizer.quality_jitter"},
		{"threshold out of range", func(c *Config) { c.Tiers.Small.QualityThreshold = 1.5 }, "tiers"},
		{"empty model", func(c *Config) { c.Tiers.Large.Model = "" }, "tiers"},
		{"cost decreases", func(c *Config) { c.Tiers.Large.CostPer1K = 0.0001 }, "tiers"},
		{"unknown rule tier", func(c *Config) { c.Routing.Rules = []RuleConfig{{Below: 0.5, Tier: "medium"}} }, "routing.rules"},
		{"rules not increasing", func(c *Config) {
			c.Routing.Rules = []RuleConfig{{Below: 0.5, Tier: "small"}, {Below: 0.4, Tier: "large"}}
		}, "routing.rules"},
		{"unknown provider", func(c *Config) { c.Provider.Kind = "carrier-pigeon" }, "provider.kind"},
		{"tiered without backend", func(c *Config) {
			c.Provider.Kind = KindTiered
			c.Tiers.Small.Backend = "ollama"
		}, "tiers.large.backend"},
		{"bad ollama url", func(c *Config) {
			c.Provider.Kind = KindOllama
			c.Provider.Ollama.URL = "localhost:11434"
		}, "provider.ollama.url"},
		{"negative rate limit", func(c *Config) { c.Provider.RateLimit = -1 }, "provider.rate_limit"},
		{"bad color", func(c *Config) { c.UI.Color = "rainbow" }, "ui.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			fields := make([]string, len(verrs))
			for i, v := range verrs {
				fields[i] = v.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestConfig_TieredValid(t *testing.T) {
	cfg := Default()
	cfg.Provider.Kind = KindTiered
	cfg.Tiers.Small.Backend = "ollama"
	cfg.Tiers.Large.Backend = "openrouter"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.usesBackend(KindOllama))
	assert.False(t, cfg.usesBackend(KindGroq))
}

// TestConfig_GetSet tests dot-notation access.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("optimizer.max_escalations")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, cfg.Set("optimizer.max_escalations", "2"))
	assert.Equal(t, 2, cfg.Optimizer.MaxEscalations)

	require.NoError(t, cfg.Set("tiers.large.cost_per_1k", "0.02"))
	assert.InDelta(t, 0.02, cfg.Tiers.Large.CostPer1K, 1e-12)

	require.NoError(t, cfg.Set("recorder.sqlite_path", "x.db"))
	assert.Equal(t, "x.db", cfg.Recorder.SQLitePath)

	require.NoError(t, cfg.Set("ui.markdown", "false"))
	assert.False(t, cfg.UI.Markdown)

	_, err = cfg.Get("optimizer.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("optimizer.max_escalations.deeper", "1"))
	assert.Error(t, cfg.Set("optimizer.max_escalations", "many"))
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	cfg := Default()
	for _, k := range []string{"optimizer.max_escalations", "tiers.small.quality_threshold", "provider.ollama.models.large", "recorder.csv_path"} {
		assert.Contains(t, keys, k)
	}
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
	assert.NotContains(t, keys, "routing.rules")
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Optimizer.MaxEscalations = 2
	cfg.Routing.Rules = []RuleConfig{{Below: 0.4, Tier: "small"}}
	cfg.Provider.Cloud.OpenRouterKey = "sk-or-secret"
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Optimizer.MaxEscalations)
	assert.Equal(t, cfg.Routing.Rules, loaded.Routing.Rules)
	assert.Equal(t, "sk-or-secret", loaded.Provider.Cloud.OpenRouterKey)
}

// TestConfig_Clone tests that Clone is a deep copy.
func TestConfig_Clone(t *testing.T) {
	cfg := Default()
	cfg.Routing.Rules = []RuleConfig{{Below: 0.5, Tier: "small"}}

	clone := cfg.Clone()
	clone.Routing.Rules[0].Below = 0.2
	clone.Optimizer.MaxEscalations = 9

	assert.InDelta(t, 0.5, cfg.Routing.Rules[0].Below, 1e-12)
	assert.Equal(t, 1, cfg.Optimizer.MaxEscalations)
}

func TestConfig_StringRedactsKeys(t *testing.T) {
	cfg := Default()
	cfg.Provider.Cloud.OpenRouterKey = "sk-or-v1-secret"
	cfg.Provider.Cloud.GroqKey = "gsk_secret"

	s := cfg.String()
	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "[REDACTED]")
	assert.Equal(t, "sk-or-v1-secret", cfg.Provider.Cloud.OpenRouterKey)
}
