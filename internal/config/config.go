// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
	"github.com/Nishchalpr4/llmopt/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete llmopt configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Escalation behaviour
	Optimizer OptimizerConfig `toml:"optimizer" json:"optimizer"`

	// Per-tier model, pricing and quality bar
	Tiers TiersConfig `toml:"tiers" json:"tiers"`

	// Difficulty to tier mapping
	Routing RoutingConfig `toml:"routing" json:"routing"`

	// Where answers come from
	Provider ProviderConfig `toml:"provider" json:"provider"`

	// Where decisions are logged
	Recorder RecorderConfig `toml:"recorder" json:"recorder"`

	// Terminal output
	UI UIConfig `toml:"ui" json:"ui"`
}

// OptimizerConfig controls the escalation loop.
type OptimizerConfig struct {
	// MaxEscalations bounds retries on more capable tiers (0 = never escalate)
	MaxEscalations int `toml:"max_escalations" json:"max_escalations"`
	// Escalation is "top" (jump to the most capable tier) or "next" (one step up)
	Escalation string `toml:"escalation" json:"escalation"`
	// ProviderTimeoutSecs bounds each provider call
	ProviderTimeoutSecs int `toml:"provider_timeout_secs" json:"provider_timeout_secs"`
	// QualityJitter is the half-width of the random quality perturbation (0 = off)
	QualityJitter float64 `toml:"quality_jitter" json:"quality_jitter"`
	// SimulateLatency varies latency estimates around each tier's average
	SimulateLatency bool `toml:"simulate_latency" json:"simulate_latency"`
	// Seed fixes the random source (0 = seeded from the clock)
	Seed int64 `toml:"seed" json:"seed"`
}

// TierSettings describes one tier.
type TierSettings struct {
	Model            string  `toml:"model" json:"model"`
	CostPer1K        float64 `toml:"cost_per_1k" json:"cost_per_1k"`
	AvgLatencyMs     float64 `toml:"avg_latency_ms" json:"avg_latency_ms"`
	MaxTokens        int     `toml:"max_tokens" json:"max_tokens"`
	QualityThreshold float64 `toml:"quality_threshold" json:"quality_threshold"`
	// Backend overrides provider.kind for this tier when provider.kind = "tiered"
	Backend string `toml:"backend,omitempty" json:"backend,omitempty"`
}

// TiersConfig holds every tier, cheapest first.
type TiersConfig struct {
	Small TierSettings `toml:"small" json:"small"`
	Large TierSettings `toml:"large" json:"large"`
}

// RuleConfig maps difficulty below a bound to a tier.
type RuleConfig struct {
	Below float64 `toml:"below" json:"below"`
	Tier  string  `toml:"tier" json:"tier"`
}

// RoutingConfig contains tier selection rules. Empty means the default
// policy (below 0.5 -> small, otherwise large).
type RoutingConfig struct {
	Rules []RuleConfig `toml:"rules" json:"rules,omitempty"`
}

// ModelMap names a backend model per tier.
type ModelMap struct {
	Small string `toml:"small" json:"small"`
	Large string `toml:"large" json:"large"`
}

// ProviderConfig selects and configures the answer provider.
type ProviderConfig struct {
	// Kind is "placeholder", "ollama", "openrouter", "groq" or "tiered"
	Kind string `toml:"kind" json:"kind"`
	// RateLimit caps provider calls per second (0 = unlimited)
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	Burst     int     `toml:"burst" json:"burst"`

	Ollama OllamaConfig `toml:"ollama" json:"ollama"`
	Cloud  CloudConfig  `toml:"cloud" json:"cloud"`
}

// OllamaConfig contains local Ollama configuration.
type OllamaConfig struct {
	URL    string   `toml:"url" json:"url"`
	Models ModelMap `toml:"models" json:"models"`
}

// CloudConfig contains OpenAI-compatible cloud backend configuration.
type CloudConfig struct {
	OpenRouterKey    string   `toml:"openrouter_key" json:"openrouter_key"`
	OpenRouterModels ModelMap `toml:"openrouter_models" json:"openrouter_models"`
	GroqKey          string   `toml:"groq_key" json:"groq_key"`
	GroqModels       ModelMap `toml:"groq_models" json:"groq_models"`
	MaxRetries       int      `toml:"max_retries" json:"max_retries"`
}

// RecorderConfig controls the decision log.
type RecorderConfig struct {
	// CSVPath is the CSV decision log ("" disables it)
	CSVPath string `toml:"csv_path" json:"csv_path"`
	// SQLitePath additionally logs to an SQLite database ("" disables it)
	SQLitePath string `toml:"sqlite_path" json:"sqlite_path"`
	// PreviewChars is how much of each answer is stored
	PreviewChars int `toml:"preview_chars" json:"preview_chars"`
}

// UIConfig contains terminal output settings.
type UIConfig struct {
	// Color is "auto", "always" or "never"
	Color string `toml:"color" json:"color"`
	// Markdown renders answers with glamour
	Markdown bool `toml:"markdown" json:"markdown"`
	// ShowAttempts prints every generate/score cycle
	ShowAttempts bool `toml:"show_attempts" json:"show_attempts"`
}

// Provider kinds.
const (
	KindPlaceholder = "placeholder"
	KindOllama      = "ollama"
	KindOpenRouter  = "openrouter"
	KindGroq        = "groq"
	KindTiered      = "tiered"
)

var validKinds = map[string]bool{
	KindPlaceholder: true, KindOllama: true, KindOpenRouter: true, KindGroq: true, KindTiered: true,
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Optimizer: OptimizerConfig{
			MaxEscalations:      1,
			Escalation:          "top",
			ProviderTimeoutSecs: 60,
			QualityJitter:       0.05,
			SimulateLatency:     true,
		},

		Tiers: TiersConfig{
			Small: TierSettings{
				Model:            "GPT-3.5-mini",
				CostPer1K:        0.0005,
				AvgLatencyMs:     500,
				MaxTokens:        2048,
				QualityThreshold: 0.7,
			},
			Large: TierSettings{
				Model:            "GPT-4",
				CostPer1K:        0.015,
				AvgLatencyMs:     2000,
				MaxTokens:        4096,
				QualityThreshold: 0.95,
			},
		},

		Provider: ProviderConfig{
			Kind:  KindPlaceholder,
			Burst: 1,
			Ollama: OllamaConfig{
				URL:    "http://127.0.0.1:11434",
				Models: ModelMap{Small: "llama3.2:3b", Large: "qwen2.5:14b"},
			},
			Cloud: CloudConfig{
				OpenRouterModels: ModelMap{Small: "meta-llama/llama-3.2-3b-instruct", Large: "openai/gpt-4o"},
				GroqModels:       ModelMap{Small: "llama-3.1-8b-instant", Large: "llama-3.3-70b-versatile"},
				MaxRetries:       3,
			},
		},

		Recorder: RecorderConfig{
			CSVPath:      telemetry.DefaultCSVPath,
			PreviewChars: telemetry.DefaultPreviewChars,
		},

		UI: UIConfig{
			Color:    "auto",
			Markdown: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the llmopt configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".llmopt"), nil
}

// ConfigPath returns the path to the TOML config file. LLMOPT_CONFIG wins.
func ConfigPath() (string, error) {
	if p := os.Getenv("LLMOPT_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the chat history file path.
func HistoryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// ensureSecurePermissions tightens config files to 0600; they may hold API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the default config file, falling back to built-in defaults when
// it does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation. Keys absent from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ReadFile decodes path over the defaults without environment overrides or
// validation, so the result can be edited and saved back. A missing file
// yields the defaults.
func ReadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		fmt.Fprintf(os.Stderr, "Warning: unknown config keys in %s: %s\n", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	data, err := cfg.EncodeTOML()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncodeTOML renders cfg with a short header.
func (c *Config) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# llmopt configuration file")
	fmt.Fprintln(&buf, "# Generated by llmopt - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration. The returned error is a ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Optimizer
	// ==========================================================================

	if c.Optimizer.MaxEscalations < 0 {
		errs = append(errs, ValidationError{
			Field:   "optimizer.max_escalations",
			Message: "cannot be negative",
		})
	}
	switch strings.ToLower(c.Optimizer.Escalation) {
	case "", "top", "next":
	default:
		errs = append(errs, ValidationError{
			Field:   "optimizer.escalation",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: top, next", c.Optimizer.Escalation),
		})
	}
	if c.Optimizer.ProviderTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "optimizer.provider_timeout_secs",
			Message: "cannot be negative",
		})
	}
	if c.Optimizer.QualityJitter < 0 || c.Optimizer.QualityJitter > 0.5 {
		errs = append(errs, ValidationError{
			Field:   "optimizer.quality_jitter",
			Message: "must be between 0 and 0.5",
		})
	}

	// ==========================================================================
	// Tiers and routing
	// ==========================================================================

	if _, err := c.Registry(); err != nil {
		errs = append(errs, ValidationError{Field: "tiers", Message: err.Error()})
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, ValidationError{Field: "routing.rules", Message: err.Error()})
	}

	// ==========================================================================
	// Provider
	// ==========================================================================

	kind := strings.ToLower(c.Provider.Kind)
	if !validKinds[kind] {
		errs = append(errs, ValidationError{
			Field:   "provider.kind",
			Message: fmt.Sprintf("invalid kind '%s', must be one of: placeholder, ollama, openrouter, groq, tiered", c.Provider.Kind),
		})
	}
	if kind == KindTiered {
		for _, tier := range router.AllTiers() {
			backend := strings.ToLower(c.TierSettings(tier).Backend)
			if backend == "" || backend == KindTiered || !validKinds[backend] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("tiers.%s.backend", tier),
					Message: fmt.Sprintf("invalid backend '%s' for tiered provider", backend),
				})
			}
		}
	}
	if c.Provider.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "provider.rate_limit",
			Message: "cannot be negative",
		})
	}
	if c.Provider.Cloud.MaxRetries < 0 {
		errs = append(errs, ValidationError{
			Field:   "provider.cloud.max_retries",
			Message: "cannot be negative",
		})
	}
	if c.usesBackend(KindOllama) && !strings.HasPrefix(c.Provider.Ollama.URL, "http://") &&
		!strings.HasPrefix(c.Provider.Ollama.URL, "https://") {
		errs = append(errs, ValidationError{
			Field:   "provider.ollama.url",
			Message: fmt.Sprintf("invalid URL '%s', must start with http:// or https://", c.Provider.Ollama.URL),
		})
	}

	// ==========================================================================
	// Recorder and UI
	// ==========================================================================

	if c.Recorder.PreviewChars < 0 {
		errs = append(errs, ValidationError{
			Field:   "recorder.preview_chars",
			Message: "cannot be negative",
		})
	}
	switch strings.ToLower(c.UI.Color) {
	case "", "auto", "always", "never":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.color",
			Message: fmt.Sprintf("invalid value '%s', must be one of: auto, always, never", c.UI.Color),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// usesBackend reports whether kind serves any tier.
func (c *Config) usesBackend(kind string) bool {
	if strings.EqualFold(c.Provider.Kind, kind) {
		return true
	}
	if !strings.EqualFold(c.Provider.Kind, KindTiered) {
		return false
	}
	for _, tier := range router.AllTiers() {
		if strings.EqualFold(c.TierSettings(tier).Backend, kind) {
			return true
		}
	}
	return false
}

// =============================================================================
// ROUTER BINDINGS
// =============================================================================

// TierSettings returns the settings block for tier.
func (c *Config) TierSettings(tier router.Tier) TierSettings {
	if tier == router.TierLarge {
		return c.Tiers.Large
	}
	return c.Tiers.Small
}

// Registry builds the validated tier registry.
func (c *Config) Registry() (*router.Registry, error) {
	configs := make([]router.TierConfig, 0, len(router.AllTiers()))
	for _, tier := range router.AllTiers() {
		s := c.TierSettings(tier)
		configs = append(configs, router.TierConfig{
			Tier:             tier,
			Model:            s.Model,
			CostPer1K:        s.CostPer1K,
			AvgLatencyMs:     s.AvgLatencyMs,
			MaxTokens:        s.MaxTokens,
			QualityThreshold: s.QualityThreshold,
		})
	}
	return router.NewRegistry(configs)
}

// Policy builds the tier selection policy.
func (c *Config) Policy() (router.Policy, error) {
	if len(c.Routing.Rules) == 0 {
		return router.DefaultPolicy(), nil
	}
	rules := make([]router.Rule, 0, len(c.Routing.Rules))
	for i, r := range c.Routing.Rules {
		tier, ok := router.ParseTier(r.Tier)
		if !ok {
			return router.Policy{}, fmt.Errorf("rule %d: unknown tier %q", i, r.Tier)
		}
		rules = append(rules, router.Rule{Below: r.Below, Tier: tier})
	}
	return router.NewPolicy(rules)
}

// ProviderTimeout returns the per-call bound.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Optimizer.ProviderTimeoutSecs) * time.Second
}

// ForTier returns the model mapped to tier.
func (m ModelMap) ForTier(tier router.Tier) string {
	if tier == router.TierLarge {
		return m.Large
	}
	return m.Small
}

// ByTier converts the map for provider constructors, skipping empty entries.
func (m ModelMap) ByTier() map[router.Tier]string {
	out := make(map[router.Tier]string)
	for _, tier := range router.AllTiers() {
		if model := m.ForTier(tier); model != "" {
			out[tier] = model
		}
	}
	return out
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - LLMOPT_PROVIDER: overrides provider.kind
//   - LLMOPT_MAX_ESCALATIONS: overrides optimizer.max_escalations
//   - LLMOPT_ESCALATION: overrides optimizer.escalation
//   - LLMOPT_SEED: overrides optimizer.seed
//   - LLMOPT_OLLAMA_URL: overrides provider.ollama.url
//   - LLMOPT_OPENROUTER_KEY (or OPENROUTER_API_KEY): provider.cloud.openrouter_key
//   - LLMOPT_GROQ_KEY (or GROQ_API_KEY): provider.cloud.groq_key
//   - LLMOPT_CSV_PATH: overrides recorder.csv_path
//   - LLMOPT_SQLITE_PATH: overrides recorder.sqlite_path
//
// Unparseable numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if kind := os.Getenv("LLMOPT_PROVIDER"); kind != "" {
		c.Provider.Kind = strings.ToLower(kind)
	}

	if v := os.Getenv("LLMOPT_MAX_ESCALATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Optimizer.MaxEscalations = n
		}
	}

	if mode := os.Getenv("LLMOPT_ESCALATION"); mode != "" {
		c.Optimizer.Escalation = mode
	}

	if v := os.Getenv("LLMOPT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Optimizer.Seed = n
		}
	}

	if url := os.Getenv("LLMOPT_OLLAMA_URL"); url != "" {
		c.Provider.Ollama.URL = url
	}

	if key := firstEnv("LLMOPT_OPENROUTER_KEY", "OPENROUTER_API_KEY"); key != "" {
		c.Provider.Cloud.OpenRouterKey = key
	}
	if key := firstEnv("LLMOPT_GROQ_KEY", "GROQ_API_KEY"); key != "" {
		c.Provider.Cloud.GroqKey = key
	}

	if p := os.Getenv("LLMOPT_CSV_PATH"); p != "" {
		c.Recorder.CSVPath = p
	}
	if p := os.Getenv("LLMOPT_SQLITE_PATH"); p != "" {
		c.Recorder.SQLitePath = p
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation
// (e.g., "optimizer.max_escalations").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field equivalent; matching is case-insensitive.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				boolVal = strings.EqualFold(strVal, "yes")
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Keys returns every scalar configuration key in dot notation.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if name == "" {
				continue
			}
			key := prefix + name
			switch f.Type.Kind() {
			case reflect.Struct:
				walk(f.Type, key+".")
			case reflect.Slice, reflect.Map:
				// not addressable with dot notation
			default:
				keys = append(keys, key)
			}
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// =============================================================================
// CLONE / STRING
// =============================================================================

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Routing.Rules != nil {
		clone.Routing.Rules = make([]RuleConfig, len(c.Routing.Rules))
		copy(clone.Routing.Rules, c.Routing.Rules)
	}
	return &clone
}

// Redacted returns a copy with API keys masked.
func (c *Config) Redacted() *Config {
	safe := c.Clone()
	if safe.Provider.Cloud.OpenRouterKey != "" {
		safe.Provider.Cloud.OpenRouterKey = "[REDACTED]"
	}
	if safe.Provider.Cloud.GroqKey != "" {
		safe.Provider.Cloud.GroqKey = "[REDACTED]"
	}
	return safe
}

// String returns the redacted config as JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c.Redacted(), "", "  ")
	return string(data)
}
