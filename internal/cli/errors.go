// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, exit codes and error display.
//
// Handlers return errors and never print them. main prints each error once
// with DisplayError and exits with GetExitCode.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Nishchalpr4/llmopt/internal/cloud"
	"github.com/Nishchalpr4/llmopt/internal/config"
	"github.com/Nishchalpr4/llmopt/internal/ollama"
	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
	"github.com/Nishchalpr4/llmopt/internal/provider"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2 // bad arguments or an empty question
	ExitConfigError  = 3
	ExitAuthError    = 4 // missing or rejected API key
	ExitNetworkError = 5
	ExitTimeoutError = 8
)

// CommandError is a failure inside a command after its input was accepted.
type CommandError struct {
	Command string
	Action  string
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := e.Command + " " + e.Action + " failed: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// NewCommandError builds a *CommandError.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// ValidationError rejects user input. Example, when set, shows a correct
// invocation.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " (got: %s)", e.Value)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "\nExample: %s", e.Example)
	}
	return b.String()
}

// NewValidationError builds a *ValidationError without an example.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// ErrMissingArgument reports a required argument that was not given.
func ErrMissingArgument(name, usage string) error {
	return &ValidationError{Field: name, Reason: "required argument missing", Example: usage}
}

// WrapError prefixes err with message, passing nil through.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// exitRules are checked in order; the first match decides the exit code.
var exitRules = []struct {
	code  int
	match func(error) bool
}{
	{ExitUsageError, func(err error) bool {
		var v *ValidationError
		var in *orchestrator.InputError
		return errors.As(err, &v) || errors.As(err, &in)
	}},
	{ExitConfigError, func(err error) bool {
		var all config.ValidateErrors
		var one config.ValidationError
		return errors.As(err, &all) || errors.As(err, &one)
	}},
	{ExitAuthError, func(err error) bool {
		return errors.Is(err, cloud.ErrAuthFailed) || errors.Is(err, cloud.ErrNotConfigured)
	}},
	{ExitTimeoutError, func(err error) bool {
		return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, provider.ErrTimeout) || ollama.IsTimeout(err)
	}},
	{ExitNetworkError, ollama.IsNotRunning},
}

// Message fragments that classify untyped errors.
var (
	configWords  = []string{"config"}
	timeoutWords = []string{"timed out", "deadline exceeded"}
	networkWords = []string{"network", "connection", "unreachable", "dial"}
)

// GetExitCode maps err to a process exit code. Typed errors are checked
// first; the message is only inspected when none of them match.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	for _, rule := range exitRules {
		if rule.match(err) {
			return rule.code
		}
	}

	msg := strings.ToLower(err.Error())
	mentions := func(words []string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
	switch {
	case mentions(configWords):
		return ExitConfigError
	case mentions(timeoutWords):
		return ExitTimeoutError
	case mentions(networkWords):
		return ExitNetworkError
	}
	return ExitGeneralError
}

// DisplayError prints err once: as JSON on stdout in --json mode, otherwise
// as a styled line on stderr.
func DisplayError(err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		_ = writeErrorJSON(os.Stdout, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("[ERROR]"), err)
}

// errorReport is the --json shape of a failed command.
type errorReport struct {
	Success  bool                     `json:"success"`
	Error    string                   `json:"error"`
	ExitCode int                      `json:"exit_code"`
	Type     string                   `json:"error_type"`
	Field    string                   `json:"field,omitempty"`
	Value    string                   `json:"value,omitempty"`
	Reason   string                   `json:"reason,omitempty"`
	Example  string                   `json:"example,omitempty"`
	Command  string                   `json:"command,omitempty"`
	Action   string                   `json:"action,omitempty"`
	Provider string                   `json:"provider,omitempty"`
	Tier     string                   `json:"tier,omitempty"`
	Fields   []config.ValidationError `json:"fields,omitempty"`
}

func writeErrorJSON(w io.Writer, err error) error {
	r := errorReport{Error: err.Error(), ExitCode: GetExitCode(err), Type: "generic_error"}

	var (
		valErr  *ValidationError
		inErr   *orchestrator.InputError
		cfgErrs config.ValidateErrors
		provErr *provider.Error
		cmdErr  *CommandError
	)
	switch {
	case errors.As(err, &valErr):
		r.Type, r.Field, r.Value, r.Reason, r.Example = "validation_error", valErr.Field, valErr.Value, valErr.Reason, valErr.Example
	case errors.As(err, &inErr):
		r.Type, r.Reason = "input_error", inErr.Error()
	case errors.As(err, &cfgErrs):
		r.Type, r.Fields = "config_error", cfgErrs
	case errors.As(err, &provErr):
		r.Type, r.Provider, r.Tier = "provider_error", provErr.Provider, provErr.Tier.String()
	case errors.As(err, &cmdErr):
		r.Type, r.Command, r.Action, r.Reason = "command_error", cmdErr.Command, cmdErr.Action, cmdErr.Reason
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
