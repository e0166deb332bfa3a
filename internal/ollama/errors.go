// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "errors"

// Kind classifies a client failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotRunning
	KindTimeout
	KindCanceled
	KindModelNotFound
	KindBadResponse
)

// Error is returned by every Client method. Two Errors compare equal under
// errors.Is when their kinds match.
type Error struct {
	Kind Kind
	Op   string // "ping", "tags", "chat"
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Op != "" {
		msg = "ollama " + e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotRunning    = &Error{Kind: KindNotRunning, Msg: "Ollama is not running"}
	ErrTimeout       = &Error{Kind: KindTimeout, Msg: "request timed out"}
	ErrModelNotFound = &Error{Kind: KindModelNotFound, Msg: "model not found"}
)

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotRunning reports whether err means the server could not be reached.
func IsNotRunning(err error) bool { return kindOf(err) == KindNotRunning }

// IsTimeout reports whether err is a request deadline.
func IsTimeout(err error) bool { return kindOf(err) == KindTimeout }

// IsModelNotFound reports whether the requested model is not installed.
func IsModelNotFound(err error) bool { return kindOf(err) == KindModelNotFound }
