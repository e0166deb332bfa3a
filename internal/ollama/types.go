// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "time"

// Message is one turn of a chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage wraps a question as a user turn.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// ChatRequest is the /api/chat body. Stream is always false here.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  *Options  `json:"options,omitempty"`
}

// Options are per-request generation settings.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"` // max tokens generated
}

// ChatResponse is a completed /api/chat reply.
type ChatResponse struct {
	Model         string  `json:"model"`
	Message       Message `json:"message"`
	Done          bool    `json:"done"`
	TotalDuration int64   `json:"total_duration,omitempty"` // nanoseconds
	EvalCount     int     `json:"eval_count,omitempty"`
}

// TotalTime is the server-side duration of the request.
func (r *ChatResponse) TotalTime() time.Duration {
	return time.Duration(r.TotalDuration)
}

// Model is an installed model as listed by /api/tags.
type Model struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

type tagsResponse struct {
	Models []Model `json:"models"`
}

type errorBody struct {
	Error string `json:"error"`
}
