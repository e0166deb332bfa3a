// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"strings"

	"github.com/Nishchalpr4/llmopt/internal/router"
	"github.com/Nishchalpr4/llmopt/internal/util"
)

// shortQuestionWords is the word count below which the placeholder answers briefly.
const shortQuestionWords = 10

// Placeholder answers offline with canned text tagged by the tier's model
// name. It never fails unless ctx is done, which makes it the default
// backend for demos and dry runs.
type Placeholder struct {
	registry *router.Registry
}

// NewPlaceholder creates a Placeholder that labels answers from reg.
func NewPlaceholder(reg *router.Registry) *Placeholder {
	if reg == nil {
		reg = router.DefaultRegistry()
	}
	return &Placeholder{registry: reg}
}

// Generate returns a canned answer for question.
func (p *Placeholder) Generate(ctx context.Context, question string, tier router.Tier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrap("placeholder", tier, err)
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(p.registry.Get(tier).Model)
	b.WriteString("] ")

	if len(strings.Fields(question)) < shortQuestionWords {
		b.WriteString("Quick answer to: ")
		b.WriteString(util.TruncateRunesNoEllipsis(question, 30))
		b.WriteString("... This is a concise response.")
		return b.String(), nil
	}

	b.WriteString("Detailed answer to: ")
	b.WriteString(util.TruncateRunesNoEllipsis(question, 50))
	b.WriteString("... This response includes multiple perspectives and deeper analysis of the topic.")
	return b.String(), nil
}
