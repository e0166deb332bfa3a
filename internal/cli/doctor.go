// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Health checks for configuration, decision logs and backends.
//
// Command: doctor
//
// Examples:
//   llmopt doctor
//   llmopt doctor --json
//
// Health Checks Performed:
//   1. Config Valid       - Configuration loads and validates
//   2. Decision Log       - CSV directory writable, SQLite database opens
//   3. Ollama Running     - Server responds (only when Ollama serves a tier)
//   4. Models Available   - Every mapped Ollama model is pulled
//   5. API Keys           - OpenRouter/Groq keys present when those serve a tier
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nishchalpr4/llmopt/internal/cloud"
	"github.com/Nishchalpr4/llmopt/internal/config"
	"github.com/Nishchalpr4/llmopt/internal/ollama"
	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
)

// doctorTimeout bounds each network check.
const doctorTimeout = 3 * time.Second

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the bracketed symbol for the check status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return SuccessStyle.Render("[OK]")
	case CheckWarn:
		return WarningStyle.Render("[!!]")
	case CheckFail:
		return ErrorStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix command or instruction
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), c.Message)
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + DimStyle.Render("   -> "+c.Fix)
	}
	return result
}

// DoctorCheck is the JSON form of a HealthCheck.
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// DoctorData represents the data returned by the doctor command.
type DoctorData struct {
	Checks  []DoctorCheck `json:"checks"`
	Passed  int           `json:"passed"`
	Warned  int           `json:"warned"`
	Failed  int           `json:"failed"`
	Healthy bool          `json:"healthy"`
}

// =============================================================================
// COMMAND
// =============================================================================

// HandleDoctor runs every check and fails when any check fails.
func HandleDoctor(ctx context.Context, args Args) error {
	var checks []*HealthCheck

	cfg, err := LoadConfig(args)
	if err != nil {
		checks = append(checks, &HealthCheck{
			Name:    "Config Valid",
			Status:  CheckFail,
			Message: fmt.Sprintf("Config invalid: %v", err),
			Fix:     "Run: llmopt config show, or llmopt config init --force",
		})
	} else {
		checks = RunChecks(ctx, cfg)
	}

	data := DoctorData{}
	for _, c := range checks {
		switch c.Status {
		case CheckPass:
			data.Passed++
		case CheckWarn:
			data.Warned++
		case CheckFail:
			data.Failed++
		}
		data.Checks = append(data.Checks, DoctorCheck{
			Name: c.Name, Status: c.Status.String(), Message: c.Message, Fix: c.Fix,
		})
	}
	data.Healthy = data.Failed == 0

	var failure error
	if data.Failed > 0 {
		failure = fmt.Errorf("%d health check(s) failed", data.Failed)
	}

	if args.JSON {
		resp := NewJSONResponse("doctor", data)
		if failure != nil {
			msg := failure.Error()
			resp.Success = false
			resp.Error = &msg
		}
		if err := resp.Print(); err != nil {
			return err
		}
		return failure
	}

	fmt.Println(TitleStyle.Render("llmopt Doctor"))
	for _, c := range checks {
		fmt.Println(c.Render())
	}
	fmt.Println(RenderSeparator(41))
	parts := []string{fmt.Sprintf("%d passed", data.Passed)}
	if data.Warned > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d warning", data.Warned)))
	}
	if data.Failed > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", data.Failed)))
	}
	fmt.Println(strings.Join(parts, ", "))
	return failure
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

// RunChecks runs every check that applies to cfg.
func RunChecks(ctx context.Context, cfg *config.Config) []*HealthCheck {
	checks := []*HealthCheck{{
		Name:    "Config Valid",
		Status:  CheckPass,
		Message: fmt.Sprintf("Config valid (provider %s)", cfg.Provider.Kind),
	}}

	checks = append(checks, checkDecisionLog(cfg)...)

	for _, kind := range backendsInUse(cfg) {
		switch kind {
		case config.KindPlaceholder:
			checks = append(checks, &HealthCheck{
				Name:    "Provider",
				Status:  CheckWarn,
				Message: "Placeholder provider: answers are synthetic",
				Fix:     "Set provider.kind to ollama, openrouter, groq or tiered",
			})
		case config.KindOllama:
			checks = append(checks, checkOllama(ctx, cfg)...)
		case config.KindOpenRouter:
			checks = append(checks, checkAPIKey("OpenRouter", cfg.Provider.Cloud.OpenRouterKey, "LLMOPT_OPENROUTER_KEY"))
		case config.KindGroq:
			checks = append(checks, checkAPIKey("Groq", cfg.Provider.Cloud.GroqKey, "LLMOPT_GROQ_KEY"))
		}
	}
	return checks
}

// backendsInUse lists the distinct backends that answer some tier.
func backendsInUse(cfg *config.Config) []string {
	kind := strings.ToLower(cfg.Provider.Kind)
	if kind != config.KindTiered {
		if kind == "" {
			kind = config.KindPlaceholder
		}
		return []string{kind}
	}

	seen := make(map[string]bool)
	var kinds []string
	for _, tier := range router.AllTiers() {
		b := strings.ToLower(cfg.TierSettings(tier).Backend)
		if b == "" {
			b = config.KindPlaceholder
		}
		if !seen[b] {
			seen[b] = true
			kinds = append(kinds, b)
		}
	}
	return kinds
}

func checkDecisionLog(cfg *config.Config) []*HealthCheck {
	var checks []*HealthCheck

	if cfg.Recorder.CSVPath == "" && cfg.Recorder.SQLitePath == "" {
		return []*HealthCheck{{
			Name:    "Decision Log",
			Status:  CheckWarn,
			Message: "No decision log configured; stats will be empty",
			Fix:     "Set recorder.csv_path or recorder.sqlite_path",
		}}
	}

	if path := cfg.Recorder.CSVPath; path != "" {
		check := &HealthCheck{Name: "CSV Log"}
		if err := probeWritable(filepath.Dir(path)); err != nil {
			check.Status = CheckFail
			check.Message = fmt.Sprintf("CSV log directory not writable: %v", err)
			check.Fix = "Fix permissions or change recorder.csv_path"
		} else {
			check.Status = CheckPass
			check.Message = "CSV log writable: " + path
		}
		checks = append(checks, check)
	}

	if path := cfg.Recorder.SQLitePath; path != "" {
		check := &HealthCheck{Name: "SQLite Log"}
		db, err := telemetry.OpenSQLite(path)
		if err != nil {
			check.Status = CheckFail
			check.Message = fmt.Sprintf("SQLite log unusable: %v", err)
			check.Fix = "Fix permissions or change recorder.sqlite_path"
		} else {
			_ = db.Close()
			check.Status = CheckPass
			check.Message = "SQLite log opens: " + path
		}
		checks = append(checks, check)
	}
	return checks
}

// probeWritable creates and removes a file in dir.
func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".llmopt-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func checkOllama(ctx context.Context, cfg *config.Config) []*HealthCheck {
	client := ollama.New(ollama.Config{
		BaseURL: cfg.Provider.Ollama.URL,
		Timeout: doctorTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	running := &HealthCheck{Name: "Ollama Running"}
	if err := client.Ping(ctx); err != nil {
		running.Status = CheckFail
		running.Message = fmt.Sprintf("Ollama not reachable at %s", cfg.Provider.Ollama.URL)
		running.Fix = "Run: ollama serve"
		return []*HealthCheck{running}
	}
	running.Status = CheckPass
	running.Message = "Ollama running at " + cfg.Provider.Ollama.URL

	checks := []*HealthCheck{running}
	models, err := client.Models(ctx)
	if err != nil {
		return append(checks, &HealthCheck{
			Name:    "Models Available",
			Status:  CheckWarn,
			Message: fmt.Sprintf("Could not list models: %v", err),
		})
	}

	for _, tier := range router.AllTiers() {
		if !servedBy(cfg, tier, config.KindOllama) {
			continue
		}
		want := cfg.Provider.Ollama.Models.ForTier(tier)
		check := &HealthCheck{Name: fmt.Sprintf("Model (%s)", tier)}
		if want == "" {
			check.Status = CheckFail
			check.Message = fmt.Sprintf("No Ollama model mapped for the %s tier", tier)
			check.Fix = fmt.Sprintf("Set provider.ollama.models.%s", tier)
		} else if hasModel(models, want) {
			check.Status = CheckPass
			check.Message = "Model available: " + want
		} else {
			check.Status = CheckWarn
			check.Message = "Model not downloaded: " + want
			check.Fix = "Run: ollama pull " + want
		}
		checks = append(checks, check)
	}
	return checks
}

// servedBy reports whether kind answers tier.
func servedBy(cfg *config.Config, tier router.Tier, kind string) bool {
	if strings.EqualFold(cfg.Provider.Kind, config.KindTiered) {
		return strings.EqualFold(cfg.TierSettings(tier).Backend, kind)
	}
	return strings.EqualFold(cfg.Provider.Kind, kind)
}

func hasModel(models []ollama.Model, name string) bool {
	for _, m := range models {
		if m.Name == name || strings.HasPrefix(m.Name, name+":") {
			return true
		}
	}
	return false
}

func checkAPIKey(service, key, envVar string) *HealthCheck {
	check := &HealthCheck{Name: service + " Key"}
	client := cloud.NewClient(key)
	if !client.IsConfigured() {
		check.Status = CheckFail
		check.Message = service + " API key not configured"
		check.Fix = "Export " + envVar
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("%s API key configured (%s)", service, client.KeyFingerprint())
	return check
}
