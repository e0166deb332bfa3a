// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Per-command argument parsing.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgParser splits a command's arguments into flags and positionals.
//
// Accepted forms are --name value, --name=value, -n value and bare
// --name. A flag named in the boolean set never takes the next argument,
// so `ask --quiet What is Go?` keeps the question whole. "--" stops flag
// parsing.
type ArgParser struct {
	values     map[string]string
	switches   map[string]bool
	positional []string
}

// NewArgParser parses raw, treating every name in boolNames as a switch.
//
//	p := NewArgParser([]string{"show", "--answer", "Paris", "--json"}, "json")
//	p.Subcommand()     // "show"
//	p.Flag("answer")   // "Paris"
//	p.BoolFlag("json") // true
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	p := &ArgParser{
		values:   make(map[string]string),
		switches: make(map[string]bool),
	}
	isSwitch := make(map[string]bool, len(boolNames))
	for _, name := range boolNames {
		isSwitch[name] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			p.positional = append(p.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case hasValue && (value == "true" || value == "false"):
			p.switches[name] = value == "true"
		case hasValue:
			p.values[name] = value
		case !isSwitch[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-"):
			i++
			p.values[name] = raw[i]
		default:
			p.switches[name] = true
		}
	}
	return p
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Flag returns a valued flag, or "" when it was not given.
func (p *ArgParser) Flag(name string) string {
	return p.values[strings.TrimLeft(name, "-")]
}

// BoolFlag reports whether a switch was set.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.switches[strings.TrimLeft(name, "-")]
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns the positional arguments from index on.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return nil
	}
	return p.positional[index:]
}

// Text joins the positional arguments from index on with single spaces,
// which is how an unquoted question arrives.
func (p *ArgParser) Text(index int) string {
	return strings.Join(p.PositionalFrom(index), " ")
}

// ParseNonNegativeInt parses a flag value that may be zero.
func ParseNonNegativeInt(s, field string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number: %w", field, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s cannot be negative, got %d", field, n)
	}
	return n, nil
}
