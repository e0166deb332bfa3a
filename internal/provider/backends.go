// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"

	"github.com/Nishchalpr4/llmopt/internal/router"
)

// Generator is satisfied by *ollama.Client.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// Completer is satisfied by *cloud.Client.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// Ollama answers through a local Ollama server.
type Ollama struct {
	client   Generator
	registry *router.Registry
	models   map[router.Tier]string
}

// NewOllama creates an Ollama provider. models maps tiers to Ollama model
// names; unmapped tiers use the client's default model.
func NewOllama(client Generator, reg *router.Registry, models map[router.Tier]string) *Ollama {
	return &Ollama{client: client, registry: reg, models: copyModels(models)}
}

// Generate implements Provider.
func (o *Ollama) Generate(ctx context.Context, question string, tier router.Tier) (string, error) {
	answer, err := o.client.Generate(ctx, o.models[tier], question, o.registry.Get(tier).MaxTokens)
	if err != nil {
		return "", wrap("ollama", tier, err)
	}
	return answer, nil
}

// Cloud answers through an OpenAI-compatible chat completions API.
type Cloud struct {
	name     string
	client   Completer
	registry *router.Registry
	models   map[router.Tier]string
}

// NewCloud creates a Cloud provider. name labels errors and logs ("openrouter",
// "groq"). Every tier the provider serves needs a model in models.
func NewCloud(name string, client Completer, reg *router.Registry, models map[router.Tier]string) *Cloud {
	return &Cloud{name: name, client: client, registry: reg, models: copyModels(models)}
}

// Generate implements Provider.
func (c *Cloud) Generate(ctx context.Context, question string, tier router.Tier) (string, error) {
	model, ok := c.models[tier]
	if !ok || model == "" {
		return "", &Error{Provider: c.name, Tier: tier, Err: ErrNoModel}
	}
	answer, err := c.client.Complete(ctx, model, question, c.registry.Get(tier).MaxTokens)
	if err != nil {
		return "", wrap(c.name, tier, err)
	}
	return answer, nil
}

func copyModels(in map[router.Tier]string) map[router.Tier]string {
	out := make(map[router.Tier]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
