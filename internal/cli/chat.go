// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive question loop with line editing and history.
//
// Command: chat
//
// Inside the loop:
//   exit, quit, q     Leave (prints the session summary)
//   stats             Summarize the decision log
//   help              Show these commands
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/peterh/liner"

	"github.com/Nishchalpr4/llmopt/internal/config"
	"github.com/Nishchalpr4/llmopt/internal/telemetry"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = ""
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if c.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// INPUT CLASSIFICATION
// =============================================================================

type chatAction int

const (
	actionAsk chatAction = iota
	actionEmpty
	actionExit
	actionStats
	actionHelp
)

// classifyInput decides what a line typed at the chat prompt means.
func classifyInput(input string) chatAction {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return actionEmpty
	case "exit", "quit", "q", "/exit", "/quit":
		return actionExit
	case "stats", "/stats":
		return actionStats
	case "help", "/help", "?":
		return actionHelp
	default:
		return actionAsk
	}
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession tracks what happened in one chat run.
type chatSession struct {
	rt      *Runtime
	args    Args
	session *telemetry.MemoryStore

	mu     sync.Mutex
	cancel context.CancelFunc
}

// HandleChat runs the interactive loop until exit or EOF.
func HandleChat(ctx context.Context, args Args) error {
	rt, err := Setup(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	s := &chatSession{rt: rt, args: args, session: telemetry.NewMemoryStore()}

	input := NewChatCLI()
	defer input.Close()

	// Ctrl+C while a question is running cancels only that question.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()
	go func() {
		for range sigChan {
			s.mu.Lock()
			if s.cancel != nil {
				s.cancel()
				s.cancel = nil
				fmt.Fprintln(os.Stderr, "\n"+WarningStyle.Render("[Cancelled]"))
			}
			s.mu.Unlock()
		}
	}()

	if !args.Quiet {
		printChatWelcome(rt)
	}

	for {
		line, err := input.ReadInput("llmopt> ")
		if err != nil {
			// Ctrl+C at the prompt, Ctrl+D, or a closed stdin
			if !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			s.printExitSummary()
			return nil
		}

		switch classifyInput(line) {
		case actionEmpty:
			fmt.Fprintln(os.Stderr, DimStyle.Render("Please enter a question (or 'exit' to leave)."))
		case actionExit:
			s.printExitSummary()
			return nil
		case actionStats:
			printSummary(os.Stdout, s.rt.Optimizer.Stats(ctx))
		case actionHelp:
			printChatHelp()
		default:
			if err := s.ask(ctx, strings.TrimSpace(line)); err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
			}
		}

		if ctx.Err() != nil {
			s.printExitSummary()
			return nil
		}
	}
}

// ask processes one question under a cancellable context.
func (s *chatSession) ask(parent context.Context, question string) error {
	ctx, cancel := context.WithCancel(parent)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		cancel()
	}()

	res, err := s.rt.Optimizer.ProcessQuestion(ctx, question)
	if err != nil {
		return err
	}
	_ = s.session.Append(ctx, res.DecisionRecord(s.rt.Config.Recorder.PreviewChars))

	if s.args.JSON {
		return NewJSONResponse("chat", res).Print()
	}
	if s.args.Quiet {
		fmt.Println(res.Answer)
		fmt.Println(quietLine(res))
		return nil
	}
	writeResult(os.Stdout, res, displayOptions{
		Markdown:     s.rt.Config.UI.Markdown && IsStdoutTTY(),
		ShowAttempts: s.rt.Config.UI.ShowAttempts,
	})
	fmt.Println()
	return nil
}

func printChatWelcome(rt *Runtime) {
	fmt.Println(TitleStyle.Render("llmopt interactive session"))
	reg := rt.Optimizer.Registry()
	for _, cfg := range reg.Configs() {
		fmt.Println(RenderRow(cfg.Tier.String(), fmt.Sprintf("%s  $%.4f/1K tokens  threshold %.2f",
			cfg.Model, cfg.CostPer1K, cfg.QualityThreshold)))
	}
	fmt.Println(RenderRow("provider", rt.Config.Provider.Kind))
	fmt.Println(RenderRow("max escalations", fmt.Sprintf("%d", rt.Optimizer.MaxEscalations())))
	fmt.Println(DimStyle.Render("Type a question, 'stats' for the log summary, or 'exit' to leave."))
	fmt.Println()
}

func printChatHelp() {
	fmt.Println(SectionStyle.Render("Commands"))
	fmt.Println("  exit, quit, q   Leave the session")
	fmt.Println("  stats           Summarize the decision log")
	fmt.Println("  help            Show this help")
	fmt.Println("Anything else is answered as a question.")
}

// printExitSummary prints what this session cost.
func (s *chatSession) printExitSummary() {
	if s.args.Quiet || s.session.Len() == 0 {
		return
	}
	records, _ := s.session.Records(context.Background())
	sum := telemetry.Summarize(records)
	fmt.Printf("%s %d question(s), $%.6f total, %d escalated\n",
		DimStyle.Render("Session:"), sum.TotalQueries, sum.TotalCostUSD, sum.EscalatedCount)
}
