// json_output.go - JSON output for scripting and log pipelines.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/quality"
	"github.com/Nishchalpr4/llmopt/internal/router"
)

// JSONResponse wraps every --json payload. Error is null on success and
// Data is null on failure, so scripts can branch on either.
type JSONResponse struct {
	Success   bool    `json:"success"`
	Command   string  `json:"command,omitempty"`
	Data      any     `json:"data"`
	Error     *string `json:"error"`
	Timestamp string  `json:"timestamp"`
}

func stamp() string { return time.Now().UTC().Format(time.RFC3339) }

// NewJSONResponse wraps a command's result.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{Success: true, Command: command, Data: data, Timestamp: stamp()}
}

// NewJSONErrorResponse wraps a command's failure.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{Command: command, Error: &msg, Timestamp: stamp()}
}

// Print outputs the JSON response to stdout, highlighted when stdout is a
// color terminal.
func (r *JSONResponse) Print() error {
	return r.Write(os.Stdout, ColorsEnabled())
}

// Write encodes the response to w.
func (r *JSONResponse) Write(w io.Writer, highlight bool) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	out := string(data)
	if highlight {
		out = highlightJSON(out)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// highlightJSON colors JSON for terminal display.
func highlightJSON(src string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return strings.TrimRight(buf.String(), "\n")
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// TierCost is the price of an answer on one tier.
type TierCost struct {
	Tier             router.Tier `json:"tier"`
	Model            string      `json:"model"`
	CostPer1K        float64     `json:"cost_per_1k_tokens"`
	AvgLatencyMs     float64     `json:"avg_latency_ms"`
	QualityThreshold float64     `json:"quality_threshold"`
	AnswerCostUSD    float64     `json:"answer_cost_usd,omitempty"`
}

// ExplainData represents the data returned by the explain command.
type ExplainData struct {
	Question      string                     `json:"question"`
	Difficulty    router.DifficultyBreakdown `json:"difficulty"`
	SelectedTier  router.Tier                `json:"selected_tier"`
	Tiers         []TierCost                 `json:"tiers"`
	Answer        string                     `json:"answer,omitempty"`
	Quality       *quality.Breakdown         `json:"quality,omitempty"`
	WouldEscalate *bool                      `json:"would_escalate,omitempty"`
}

// DemoData represents the data returned by the demo command.
type DemoData struct {
	Results []*orchestrator.Result `json:"results"`
	Summary any                    `json:"summary"`
}
