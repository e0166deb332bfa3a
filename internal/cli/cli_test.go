// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nishchalpr4/llmopt/internal/cloud"
	"github.com/Nishchalpr4/llmopt/internal/config"
	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "flag with value",
			args:    []string{"explain", "--answer", "Paris"},
			wantSub: "explain",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "Paris", p.Flag("answer"))
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"show", "--answer=Rayleigh scattering"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "Rayleigh scattering", p.Flag("answer"))
			},
		},
		{
			name:    "declared boolean does not consume next arg",
			args:    []string{"--watch", "extra"},
			bools:   []string{"watch"},
			wantSub: "extra",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("watch"))
				assert.Equal(t, "", p.Flag("watch"))
			},
		},
		{
			name:    "explicit boolean false",
			args:    []string{"init", "--force=false"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("force"))
				assert.Equal(t, "", p.Flag("force"))
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"set", "--", "--not-a-flag"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, []string{"set", "--not-a-flag"}, p.PositionalFrom(0))
				assert.False(t, p.BoolFlag("not-a-flag"))
			},
		},
		{
			name:    "no arguments",
			args:    nil,
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "", p.Positional(3))
				assert.Equal(t, "", p.Text(0))
				assert.Empty(t, p.PositionalFrom(1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			assert.Equal(t, tt.wantSub, p.Subcommand())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_Text(t *testing.T) {
	p := NewArgParser([]string{"What", "is", "--answer", "Paris", "the", "capital?"})
	assert.Equal(t, "What is the capital?", p.Text(0))
	assert.Equal(t, "the capital?", p.Text(2))
	assert.Equal(t, "Paris", p.Flag("--answer"))
	assert.Equal(t, "", p.Text(9))
}

func TestParseNonNegativeInt(t *testing.T) {
	n, err := ParseNonNegativeInt("0", "n")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, bad := range []string{"", "-1", "two"} {
		_, err := ParseNonNegativeInt(bad, "n")
		assert.Error(t, err, "input %q", bad)
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{argv: nil, wantCmd: CmdTUI},
		{argv: []string{"tui"}, wantCmd: CmdTUI},
		{
			argv:    []string{"ask", "What", "is", "Python?"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "What is Python?", a.Query)
			},
		},
		{
			argv:    []string{"a", "hi"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "hi", a.Query)
			},
		},
		{argv: []string{"chat"}, wantCmd: CmdChat},
		{
			argv:    []string{"why", "Why is the sky blue?", "--answer", "Rayleigh scattering."},
			wantCmd: CmdExplain,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "Why is the sky blue?", a.Query)
				assert.Equal(t, "Rayleigh scattering.", a.Answer)
			},
		},
		{
			argv:    []string{"summary", "--watch"},
			wantCmd: CmdStats,
			check: func(t *testing.T, a Args) {
				assert.True(t, a.Watch)
			},
		},
		{argv: []string{"demo"}, wantCmd: CmdDemo},
		{
			argv:    []string{"config", "set", "tiers.small.model", "tiny", "model"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "set", a.Subcommand)
				assert.Equal(t, "tiers.small.model", a.ConfigKey)
				assert.Equal(t, "tiny model", a.ConfigVal)
			},
		},
		{
			argv:    []string{"config", "init", "--force"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "init", a.Subcommand)
				assert.True(t, a.Force)
			},
		},
		{argv: []string{"doctor"}, wantCmd: CmdDoctor},
		{argv: []string{"--version"}, wantCmd: CmdVersion},
		{argv: []string{"-h"}, wantCmd: CmdHelp},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			cmd, args, err := Parse(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCmd, cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestParse_GlobalFlagsAnywhere(t *testing.T) {
	cmd, args, err := Parse([]string{
		"ask", "--json", "What", "is", "Go?", "-q",
		"--max-escalations=0", "--provider", "Ollama", "--escalation", "next",
		"--config", "/tmp/llmopt.toml",
	})
	require.NoError(t, err)

	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "What is Go?", args.Query)
	assert.True(t, args.JSON)
	assert.True(t, args.Quiet)
	assert.Equal(t, 0, args.MaxEscalations)
	assert.Equal(t, "ollama", args.Provider)
	assert.Equal(t, "next", args.Escalation)
	assert.Equal(t, "/tmp/llmopt.toml", args.ConfigPath)
}

func TestParse_DefaultsLeaveConfigAlone(t *testing.T) {
	_, args, err := Parse([]string{"ask", "hi"})
	require.NoError(t, err)
	assert.Equal(t, -1, args.MaxEscalations)

	cfg := config.Default()
	args.applyOverrides(cfg)
	assert.Equal(t, config.Default().Optimizer, cfg.Optimizer)
	assert.Equal(t, config.KindPlaceholder, cfg.Provider.Kind)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		field string
	}{
		{"negative budget", []string{"--max-escalations", "-2", "ask", "x"}, "max-escalations"},
		{"non-numeric budget", []string{"--max-escalations=lots", "ask", "x"}, "max-escalations"},
		{"bad escalation mode", []string{"--escalation", "sideways", "ask", "x"}, "escalation"},
		{"unknown command", []string{"frobnicate"}, "command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.argv)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, ExitUsageError, GetExitCode(err))
		})
	}
}

func TestParse_MissingFlagValue(t *testing.T) {
	_, _, err := Parse([]string{"ask", "x", "--config"})
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestParse_UnknownCommandSuggests(t *testing.T) {
	_, _, err := Parse([]string{"stast"})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Example, "llmopt stats")
}

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"asc", "ask"},
		{"expalin", "explain"},
		{"doctr", "doctor"},
		{"summry", "stats"},
		{"exp", "explain"},
		{"conf", "config"},
		{"Why", ""},
		{"ask", ""},
		{"x", ""},
		{"completelyunrelated", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SuggestCommand(tt.input), "input %q", tt.input)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("ask", "ask"))
	assert.Equal(t, 3, levenshteinDistance("", "ask"))
	assert.Equal(t, 1, levenshteinDistance("chat", "cat"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 1, levenshteinDistance("café", "cafe"))
}

// =============================================================================
// ERROR HANDLING TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("question", "", "required"), ExitUsageError},
		{"input", &orchestrator.InputError{Question: "  "}, ExitUsageError},
		{"config validation", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "tiers", Message: "bad"}}), ExitConfigError},
		{"missing key", fmt.Errorf("groq provider: %w", cloud.ErrNotConfigured), ExitAuthError},
		{"auth", cloud.ErrAuthFailed, ExitAuthError},
		{"deadline", fmt.Errorf("ask: %w", context.DeadlineExceeded), ExitTimeoutError},
		{"timeout message", errors.New("request timed out"), ExitTimeoutError},
		{"network message", errors.New("dial tcp: connection refused"), ExitNetworkError},
		{"generic", errors.New("something else"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewCommandError("stats", "watch", "cannot watch log", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "stats")
	assert.Contains(t, err.Error(), "cannot watch log")
	assert.Nil(t, WrapError(nil, "context"))
	assert.ErrorIs(t, WrapError(inner, "context"), inner)
}

func TestWriteErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeErrorJSON(&buf, ErrMissingArgument("question", `llmopt ask "What is Go?"`)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "validation_error", got["error_type"])
	assert.Equal(t, "question", got["field"])
	assert.EqualValues(t, ExitUsageError, got["exit_code"])

	buf.Reset()
	cfgErr := fmt.Errorf("load: %w", config.ValidateErrors{{Field: "tiers.small.cost_per_1k", Message: "must be positive"}})
	require.NoError(t, writeErrorJSON(&buf, cfgErr))
	assert.Contains(t, buf.String(), `"error_type": "config_error"`)
	assert.Contains(t, buf.String(), `"field": "tiers.small.cost_per_1k"`)
}

// =============================================================================
// OUTPUT TESTS
// =============================================================================

func TestJSONResponse_Write(t *testing.T) {
	var buf bytes.Buffer
	resp := NewJSONResponse("version", VersionData{Version: "1.2.3"})
	require.NoError(t, resp.Write(&buf, false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "version", decoded["command"])
	assert.Equal(t, "1.2.3", decoded["data"].(map[string]interface{})["version"])

	buf.Reset()
	errResp := NewJSONErrorResponse("ask", errors.New("boom"))
	require.NoError(t, errResp.Write(&buf, false))
	assert.Contains(t, buf.String(), `"error": "boom"`)
	assert.Contains(t, buf.String(), `"success": false`)
}

func TestClassifyInput(t *testing.T) {
	tests := map[string]chatAction{
		"":            actionEmpty,
		"   ":         actionEmpty,
		"exit":        actionExit,
		"/QUIT":       actionExit,
		"stats":       actionStats,
		"?":           actionHelp,
		"What is Go?": actionAsk,
		"exit please": actionAsk,
	}
	for input, want := range tests {
		assert.Equal(t, want, classifyInput(input), "input %q", input)
	}
}

func TestQuietLine(t *testing.T) {
	res := &orchestrator.Result{EstimatedCostUSD: 0.0000123, QualityScore: 0.812, Model: "GPT-4"}
	assert.Equal(t, "Cost: $0.000012 | Quality: 0.81 | Model: GPT-4", quietLine(res))
}

func TestPrintSummary(t *testing.T) {
	ForceColorsEnabled(false)

	t.Run("no data", func(t *testing.T) {
		var buf bytes.Buffer
		printSummary(&buf, telemetry.Summary{Status: telemetry.StatusNoData})
		assert.Contains(t, buf.String(), "No queries logged yet.")
	})

	t.Run("unavailable", func(t *testing.T) {
		var buf bytes.Buffer
		printSummary(&buf, telemetry.Summary{Status: telemetry.StatusUnavailable, Error: "permission denied"})
		assert.Contains(t, buf.String(), "permission denied")
	})

	t.Run("totals", func(t *testing.T) {
		var buf bytes.Buffer
		printSummary(&buf, telemetry.Summary{
			Status:         telemetry.StatusOK,
			TotalQueries:   1200,
			TotalCostUSD:   0.5,
			EscalatedCount: 300,
			EscalationRate: 25,
			TierUsage:      map[string]int{"small": 900, "large": 300},
		})
		out := buf.String()
		assert.Contains(t, out, "1,200")
		assert.Contains(t, out, "$0.500000")
		assert.Contains(t, out, "300 (25.0%)")
		assert.Contains(t, out, "900 (75.0%)")
	})
}

// =============================================================================
// EXPLAIN TESTS (explain.go)
// =============================================================================

func TestExplain_SimpleQuestion(t *testing.T) {
	data, err := Explain(config.Default(), "What is Python?", "")
	require.NoError(t, err)

	assert.InDelta(t, 0.1, data.Difficulty.Score, 1e-9)
	assert.Equal(t, router.TierSmall, data.SelectedTier)
	assert.Len(t, data.Tiers, 2)
	assert.Nil(t, data.Quality)
	assert.Nil(t, data.WouldEscalate)
	for _, tc := range data.Tiers {
		assert.Zero(t, tc.AnswerCostUSD)
	}
}

func TestExplain_WithAnswer(t *testing.T) {
	answer := "Python is a programming language. It is widely used. However, it is slower than C."
	data, err := Explain(config.Default(), "What is Python?", answer)
	require.NoError(t, err)

	require.NotNil(t, data.Quality)
	require.NotNil(t, data.WouldEscalate)
	assert.Equal(t, data.Quality.Score < 0.7, *data.WouldEscalate)
	for _, tc := range data.Tiers {
		assert.Greater(t, tc.AnswerCostUSD, 0.0)
	}

	var buf bytes.Buffer
	writeExplain(&buf, data)
	assert.Contains(t, buf.String(), "Answer Quality")
}

// =============================================================================
// WIRING TESTS (wire.go)
// =============================================================================

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Optimizer.Seed = 42
	cfg.Optimizer.SimulateLatency = false
	cfg.Recorder.CSVPath = filepath.Join(t.TempDir(), "decisions.csv")
	return cfg
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestBuild_RecordsToCSV(t *testing.T) {
	cfg := testConfig(t)
	rt, err := Build(cfg, quietLogger())
	require.NoError(t, err)
	defer rt.Close()

	res, err := rt.Optimizer.ProcessQuestion(context.Background(), "What is Python?")
	require.NoError(t, err)
	assert.Equal(t, router.TierSmall, res.InitialTier)

	records, err := rt.Reader.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, res.ID, records[0].QueryID)

	sum := rt.Optimizer.Stats(context.Background())
	assert.Equal(t, telemetry.StatusOK, sum.Status)
	assert.Equal(t, 1, sum.TotalQueries)
}

func TestBuild_SQLiteBacksSummaries(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recorder.SQLitePath = filepath.Join(t.TempDir(), "decisions.db")

	rt, err := Build(cfg, quietLogger())
	require.NoError(t, err)
	defer rt.Close()

	_, isSQLite := rt.Reader.(*telemetry.SQLiteStore)
	assert.True(t, isSQLite)

	for _, q := range []string{"What is Python?", "Compare TCP and UDP"} {
		_, err := rt.Optimizer.ProcessQuestion(context.Background(), q)
		require.NoError(t, err)
	}

	sum := rt.Optimizer.Stats(context.Background())
	assert.Equal(t, 2, sum.TotalQueries)

	// Both sinks received every record.
	csvRecords, err := telemetry.NewCSVStore(cfg.Recorder.CSVPath).Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, csvRecords, 2)
}

func TestBuild_NoDecisionLog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recorder.CSVPath = ""

	rt, err := Build(cfg, quietLogger())
	require.NoError(t, err)
	defer rt.Close()

	_, err = rt.Optimizer.ProcessQuestion(context.Background(), "What is Python?")
	require.NoError(t, err)
	assert.Equal(t, telemetry.StatusNoData, rt.Optimizer.Stats(context.Background()).Status)
}

func TestBuildProvider_Errors(t *testing.T) {
	cfg := config.Default()
	reg, err := cfg.Registry()
	require.NoError(t, err)

	cfg.Provider.Kind = "carrier-pigeon"
	_, err = BuildProvider(cfg, reg, nil)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	cfg.Provider.Kind = config.KindGroq
	cfg.Provider.Cloud.GroqKey = ""
	_, err = BuildProvider(cfg, reg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, cloud.ErrNotConfigured)
	assert.Equal(t, ExitAuthError, GetExitCode(err))
	assert.Contains(t, err.Error(), "LLMOPT_GROQ_KEY")
}

func TestBuildProvider_TieredMissingKey(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.Kind = config.KindTiered
	cfg.Tiers.Large.Backend = config.KindOpenRouter
	reg, err := cfg.Registry()
	require.NoError(t, err)

	_, err = BuildProvider(cfg, reg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiers.large.backend")
	assert.ErrorIs(t, err, cloud.ErrNotConfigured)
}

func TestBuildProvider_RateLimited(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.RateLimit = 100
	cfg.Provider.Burst = 5
	reg, err := cfg.Registry()
	require.NoError(t, err)

	p, err := BuildProvider(cfg, reg, nil)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

// =============================================================================
// DOCTOR TESTS (doctor.go)
// =============================================================================

func findCheck(checks []*HealthCheck, name string) *HealthCheck {
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRunChecks_Placeholder(t *testing.T) {
	cfg := testConfig(t)
	checks := RunChecks(context.Background(), cfg)

	cfgCheck := findCheck(checks, "Config Valid")
	require.NotNil(t, cfgCheck)
	assert.Equal(t, CheckPass, cfgCheck.Status)

	csvCheck := findCheck(checks, "CSV Log")
	require.NotNil(t, csvCheck)
	assert.Equal(t, CheckPass, csvCheck.Status)

	prov := findCheck(checks, "Provider")
	require.NotNil(t, prov)
	assert.Equal(t, CheckWarn, prov.Status)
}

func TestRunChecks_Ollama(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"models":[{"name":"llama3.2:3b"}]}`)
		default:
			fmt.Fprint(w, "Ollama is running")
		}
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.Provider.Kind = config.KindOllama
	cfg.Provider.Ollama.URL = server.URL

	checks := RunChecks(context.Background(), cfg)

	running := findCheck(checks, "Ollama Running")
	require.NotNil(t, running)
	assert.Equal(t, CheckPass, running.Status)

	small := findCheck(checks, "Model (small)")
	require.NotNil(t, small)
	assert.Equal(t, CheckPass, small.Status)

	large := findCheck(checks, "Model (large)")
	require.NotNil(t, large)
	assert.Equal(t, CheckWarn, large.Status)
	assert.Equal(t, "Run: ollama pull qwen2.5:14b", large.Fix)
}

func TestRunChecks_TieredCloudKeys(t *testing.T) {
	cfg := testConfig(t)
	cfg.Provider.Kind = config.KindTiered
	cfg.Tiers.Small.Backend = config.KindGroq
	cfg.Tiers.Large.Backend = config.KindOpenRouter
	cfg.Provider.Cloud.GroqKey = "gsk_test_key_1234567890"

	checks := RunChecks(context.Background(), cfg)

	groq := findCheck(checks, "Groq Key")
	require.NotNil(t, groq)
	assert.Equal(t, CheckPass, groq.Status)
	assert.NotContains(t, groq.Message, "gsk_test_key_1234567890")

	or := findCheck(checks, "OpenRouter Key")
	require.NotNil(t, or)
	assert.Equal(t, CheckFail, or.Status)
	assert.Equal(t, "Export LLMOPT_OPENROUTER_KEY", or.Fix)
}

func TestBackendsInUse(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, []string{config.KindPlaceholder}, backendsInUse(cfg))

	cfg.Provider.Kind = config.KindTiered
	cfg.Tiers.Large.Backend = config.KindOllama
	assert.Equal(t, []string{config.KindPlaceholder, config.KindOllama}, backendsInUse(cfg))
	assert.True(t, servedBy(cfg, router.TierLarge, config.KindOllama))
	assert.False(t, servedBy(cfg, router.TierSmall, config.KindOllama))
}

func TestDecideColors(t *testing.T) {
	tests := []struct {
		name           string
		noColor, force string
		tty, want      bool
	}{
		{"tty", "", "", true, true},
		{"pipe", "", "", false, false},
		{"force on pipe", "", "1", false, true},
		{"no color wins", "1", "1", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decideColors(tt.noColor, tt.force, tt.tty))
		})
	}
}

func TestWrapWidthBounds(t *testing.T) {
	w := wrapWidth()
	assert.GreaterOrEqual(t, w, minWrapWidth)
	assert.LessOrEqual(t, w, maxWrapWidth)
}
