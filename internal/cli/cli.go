// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command line parsing for llmopt.
package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Nishchalpr4/llmopt/internal/config"
	"github.com/Nishchalpr4/llmopt/internal/orchestrator"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdExplain
	CmdStats
	CmdDemo
	CmdConfig
	CmdDoctor
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdExplain:
		return "explain"
	case CmdStats:
		return "stats"
	case CmdDemo:
		return "demo"
	case CmdConfig:
		return "config"
	case CmdDoctor:
		return "doctor"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath     string // --config PATH
	JSON           bool   // Output in JSON format
	Verbose        bool   // Routing log on stderr
	Quiet          bool   // Answer plus one summary line
	MaxEscalations int    // -1 = use config
	Provider       string // Overrides provider.kind
	Escalation     string // Overrides optimizer.escalation

	// Command-specific
	Query      string
	Answer     string // explain --answer
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Watch      bool // stats --watch
	Force      bool // config init --force

	// Raw args (remaining after the command name)
	Raw []string
}

const usageText = `llmopt - route questions to the cheapest model tier that answers well

Each question is scored for difficulty, sent to the cheapest adequate tier,
and escalated to a more capable tier when the answer scores below that
tier's quality threshold. Every decision is logged for cost analysis.

Usage:
  llmopt                          Start the interactive TUI (default)
  llmopt ask "question"           Answer a single question
  llmopt chat                     Interactive prompt with history
  llmopt explain "question"       Show how a question would be routed
  llmopt stats [--watch]          Summarize the decision log
  llmopt demo                     Run the sample question batch
  llmopt config [subcommand]      Configuration
  llmopt doctor                   Check configuration, logs and backends
  llmopt version                  Show version information
  llmopt help                     Show this help

Config Commands:
  llmopt config show              Show the effective configuration (keys redacted)
  llmopt config path              Show the configuration file path
  llmopt config init [--force]    Write a default configuration file
  llmopt config get KEY           Show one setting (e.g. optimizer.max_escalations)
  llmopt config set KEY VALUE     Change one setting and save
  llmopt config keys              List every settable key

Explain Options:
  --answer TEXT                   Also break down the quality score of TEXT

Global Flags:
  --config PATH                   Configuration file (default: ~/.llmopt/config.toml)
  --json                          Output in JSON format
  -v, --verbose                   Log routing and escalation decisions to stderr
  -q, --quiet                     Print the answer and a single summary line
  --max-escalations N             Escalation budget (0 = never escalate)
  --escalation MODE               "top" (default) or "next"
  --provider KIND                 placeholder, ollama, openrouter, groq or tiered

Environment:
  LLMOPT_CONFIG                   Configuration file path
  LLMOPT_PROVIDER                 Provider kind
  LLMOPT_OPENROUTER_KEY           OpenRouter API key (or OPENROUTER_API_KEY)
  LLMOPT_GROQ_KEY                 Groq API key (or GROQ_API_KEY)
  NO_COLOR                        Disable colored output

Examples:
  llmopt ask "What is Python?"
  llmopt ask --quiet "Explain the CAP theorem"
  llmopt --provider ollama ask "Compare TCP and UDP"
  llmopt explain "Why is the sky blue?" --answer "Rayleigh scattering."
  llmopt stats --json
`

// PrintUsage prints the help text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("llmopt version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// HandleVersion prints version information.
func HandleVersion(args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print()
	}
	PrintVersion()
	return nil
}

// Parse parses argv (without the program name).
func Parse(argv []string) (Command, Args, error) {
	remaining, parsedArgs, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, parsedArgs, err
	}

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs, nil

	case "ask", "a":
		p := NewArgParser(remaining)
		parsedArgs.Query = p.Text(0)
		return CmdAsk, parsedArgs, nil

	case "chat":
		return CmdChat, parsedArgs, nil

	case "explain", "why":
		p := NewArgParser(remaining)
		parsedArgs.Query = p.Text(0)
		parsedArgs.Answer = p.Flag("answer")
		return CmdExplain, parsedArgs, nil

	case "stats", "summary":
		p := NewArgParser(remaining, "watch")
		parsedArgs.Watch = p.BoolFlag("watch")
		return CmdStats, parsedArgs, nil

	case "demo":
		return CmdDemo, parsedArgs, nil

	case "config":
		p := NewArgParser(remaining, "force")
		parsedArgs.Subcommand = strings.ToLower(p.Subcommand())
		parsedArgs.ConfigKey = p.Positional(1)
		parsedArgs.ConfigVal = strings.Join(p.PositionalFrom(2), " ")
		parsedArgs.Force = p.BoolFlag("force")
		return CmdConfig, parsedArgs, nil

	case "doctor", "diag":
		return CmdDoctor, parsedArgs, nil

	case "version", "--version":
		return CmdVersion, parsedArgs, nil

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs, nil

	default:
		example := "llmopt help"
		if suggestion := SuggestCommand(cmd); suggestion != "" {
			example = "did you mean 'llmopt " + suggestion + "'?"
		}
		return CmdHelp, parsedArgs, &ValidationError{
			Field:   "command",
			Value:   cmd,
			Reason:  "unknown command",
			Example: example,
		}
	}
}

// parseGlobalFlags extracts global flags from anywhere in args.
func parseGlobalFlags(args []string) ([]string, Args, error) {
	var remaining []string
	parsedArgs := Args{MaxEscalations: -1}

	// value returns the argument of a flag given as "--flag value" or "--flag=value".
	value := func(i *int, arg, name string) (string, bool, error) {
		if arg == name {
			if *i+1 >= len(args) {
				return "", true, ErrMissingArgument(strings.TrimLeft(name, "-"), "llmopt "+name+" VALUE ...")
			}
			*i++
			return args[*i], true, nil
		}
		if strings.HasPrefix(arg, name+"=") {
			return strings.TrimPrefix(arg, name+"="), true, nil
		}
		return "", false, nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
			continue
		case "-v", "--verbose":
			parsedArgs.Verbose = true
			continue
		case "--json":
			parsedArgs.JSON = true
			continue
		case "--":
			remaining = append(remaining, args[i:]...)
			return remaining, parsedArgs, nil
		}

		if v, ok, err := value(&i, arg, "--config"); ok {
			if err != nil {
				return nil, parsedArgs, err
			}
			parsedArgs.ConfigPath = v
			continue
		}
		if v, ok, err := value(&i, arg, "--provider"); ok {
			if err != nil {
				return nil, parsedArgs, err
			}
			parsedArgs.Provider = strings.ToLower(v)
			continue
		}
		if v, ok, err := value(&i, arg, "--escalation"); ok {
			if err != nil {
				return nil, parsedArgs, err
			}
			if _, perr := orchestrator.ParseEscalationMode(v); perr != nil {
				return nil, parsedArgs, &ValidationError{Field: "escalation", Value: v, Reason: "must be top or next"}
			}
			parsedArgs.Escalation = v
			continue
		}
		if v, ok, err := value(&i, arg, "--max-escalations"); ok {
			if err != nil {
				return nil, parsedArgs, err
			}
			n, perr := ParseNonNegativeInt(v, "max-escalations")
			if perr != nil {
				return nil, parsedArgs, &ValidationError{Field: "max-escalations", Value: v, Reason: perr.Error()}
			}
			parsedArgs.MaxEscalations = n
			continue
		}

		remaining = append(remaining, arg)
	}

	return remaining, parsedArgs, nil
}

// applyOverrides folds global flags into cfg.
func (a Args) applyOverrides(cfg *config.Config) {
	if a.MaxEscalations >= 0 {
		cfg.Optimizer.MaxEscalations = a.MaxEscalations
	}
	if a.Provider != "" {
		cfg.Provider.Kind = a.Provider
	}
	if a.Escalation != "" {
		cfg.Optimizer.Escalation = a.Escalation
	}
}
