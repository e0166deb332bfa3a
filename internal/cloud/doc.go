// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud calls OpenAI-compatible chat completion services.
//
// OpenRouter and Groq share the /chat/completions wire format, so one
// Client serves both; only the base URL and key differ. Rate limits and
// 5xx replies are retried with capped exponential backoff, reply bodies
// are read up to MaxResponseSize, and keys are logged only as a short
// SHA-256 fingerprint.
//
//	client := cloud.NewClient(key).WithBaseURL(cloud.BaseURLFor("groq"))
//	answer, err := client.Complete(ctx, "llama-3.1-8b-instant", question, 2048)
package cloud
