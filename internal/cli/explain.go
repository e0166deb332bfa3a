// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// explain.go - Shows how a question would be routed without answering it.
//
// Command: explain [question] [--answer TEXT]
//
// Examples:
//   llmopt explain "What is Python?"
//   llmopt explain "Why is the sky blue?" --answer "Rayleigh scattering."
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Nishchalpr4/llmopt/internal/config"
	"github.com/Nishchalpr4/llmopt/internal/quality"
	"github.com/Nishchalpr4/llmopt/internal/router"
)

// HandleExplain prints the difficulty breakdown, the selected tier, and
// optionally the quality breakdown of a candidate answer.
func HandleExplain(args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		return ErrMissingArgument("question", `llmopt explain "What is Python?"`)
	}

	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	data, err := Explain(cfg, question, args.Answer)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("explain", data).Print()
	}
	writeExplain(os.Stdout, data)
	return nil
}

// Explain computes the routing analysis for question. A non-empty answer is
// scored against the selected tier's threshold.
func Explain(cfg *config.Config, question, answer string) (*ExplainData, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("config tiers: %w", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("config routing: %w", err)
	}

	breakdown := router.AnalyzeDifficulty(question)
	data := &ExplainData{
		Question:     question,
		Difficulty:   breakdown,
		SelectedTier: policy.Select(breakdown.Score),
		Answer:       answer,
	}

	for _, tc := range reg.Configs() {
		cost := TierCost{
			Tier:             tc.Tier,
			Model:            tc.Model,
			CostPer1K:        tc.CostPer1K,
			AvgLatencyMs:     tc.AvgLatencyMs,
			QualityThreshold: tc.QualityThreshold,
		}
		if answer != "" {
			cost.AnswerCostUSD = router.EstimateCost(tc, answer)
		}
		data.Tiers = append(data.Tiers, cost)
	}

	if answer != "" {
		qb := quality.NewScorer().Explain(answer, question)
		escalate := quality.ShouldEscalate(qb.Score, reg.Get(data.SelectedTier).QualityThreshold)
		data.Quality = &qb
		data.WouldEscalate = &escalate
	}
	return data, nil
}

func writeExplain(w io.Writer, d *ExplainData) {
	b := d.Difficulty

	fmt.Fprintln(w, TitleStyle.Render("Routing Analysis"))
	fmt.Fprintln(w, RenderRow("Question", d.Question))

	fmt.Fprintln(w, SectionStyle.Render("Difficulty"))
	fmt.Fprintln(w, RenderRow("Length", fmt.Sprintf("+%.2f (%d words)", b.LengthScore, b.WordCount)))
	keywords := "none"
	if len(b.Keywords) > 0 {
		keywords = strings.Join(b.Keywords, ", ")
	}
	fmt.Fprintln(w, RenderRow("Keywords", fmt.Sprintf("+%.2f (%s)", b.KeywordScore, keywords)))
	fmt.Fprintln(w, RenderRow("Punctuation", fmt.Sprintf("+%.2f (%d '?', %d ',', semicolon %v)",
		b.PunctuationScore, b.QuestionMarks, b.Commas, b.HasSemicolon)))
	total := fmt.Sprintf("%.2f", b.Score)
	if b.Raw > b.Score {
		total += fmt.Sprintf(" (raw %.2f, capped)", b.Raw)
	}
	fmt.Fprintln(w, RenderRow("Score", total))
	fmt.Fprintln(w, RenderRow("Selected tier", RenderTier(d.SelectedTier)))

	fmt.Fprintln(w, SectionStyle.Render("Tiers"))
	for _, t := range d.Tiers {
		line := fmt.Sprintf("%-14s $%.4f/1K  ~%.0f ms  threshold %.2f", t.Model, t.CostPer1K, t.AvgLatencyMs, t.QualityThreshold)
		if d.Answer != "" {
			line += fmt.Sprintf("  answer $%.6f", t.AnswerCostUSD)
		}
		marker := "  "
		if t.Tier == d.SelectedTier {
			marker = HighlightStyle.Render("> ")
		}
		fmt.Fprintf(w, "%s%-6s %s\n", marker, t.Tier, line)
	}

	if d.Quality == nil {
		return
	}
	q := d.Quality
	fmt.Fprintln(w, SectionStyle.Render("Answer Quality"))
	fmt.Fprintln(w, RenderRow("Baseline", fmt.Sprintf("%.2f", quality.Baseline)))
	fmt.Fprintln(w, RenderRow("Length", fmt.Sprintf("%+.2f (%d words)", q.LengthAdj, q.AnswerWords)))
	fmt.Fprintln(w, RenderRow("Relevance", fmt.Sprintf("%+.2f (%d of %d terms: %s)",
		q.Relevance, len(q.MatchedTerms), len(q.Terms), strings.Join(q.MatchedTerms, ", "))))
	fmt.Fprintln(w, RenderRow("Structure", fmt.Sprintf("%+.2f sentences, %+.2f discourse", q.SentenceBonus, q.DiscourseBonus)))
	fmt.Fprintln(w, RenderRow("Score", fmt.Sprintf("%.2f", q.Score)))
	if d.WouldEscalate != nil && *d.WouldEscalate {
		fmt.Fprintln(w, WarningStyle.Render("Below the selected tier's threshold: this answer would escalate."))
	} else {
		fmt.Fprintln(w, SuccessStyle.Render("Meets the selected tier's threshold."))
	}
}
