// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is a small client for a local Ollama server.
//
// Only the calls llmopt needs are covered: a health ping, the installed
// model list and non-streaming chat. Failures are *Error values classified
// by Kind, so callers can tell a stopped server from a missing model.
//
//	client := ollama.New(ollama.Config{BaseURL: url})
//	answer, err := client.Generate(ctx, "llama3.2:3b", question, 2048)
//	if ollama.IsNotRunning(err) {
//		// fall back to another backend
//	}
package ollama
