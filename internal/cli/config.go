// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command handlers.
//
// Command: config [show|path|init|get|set|keys]
//
// Examples:
//   llmopt config show
//   llmopt config init --force
//   llmopt config set optimizer.max_escalations 2
//   llmopt config get tiers.small.quality_threshold
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/Nishchalpr4/llmopt/internal/config"
)

// HandleConfig dispatches config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args)
	case "path":
		return handleConfigPath(args)
	case "init":
		return handleConfigInit(args)
	case "get":
		return handleConfigGet(args)
	case "set":
		return handleConfigSet(args)
	case "keys":
		if args.JSON {
			return NewJSONResponse("config keys", config.Keys()).Print()
		}
		for _, k := range config.Keys() {
			fmt.Println(k)
		}
		return nil
	default:
		return &ValidationError{
			Field:   "config subcommand",
			Value:   args.Subcommand,
			Reason:  "unknown subcommand",
			Example: "llmopt config show|path|init|get|set|keys",
		}
	}
}

// configFile is the file config commands read and write.
func configFile(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPath()
}

func handleConfigShow(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	safe := cfg.Redacted()

	if args.JSON {
		return NewJSONResponse("config show", safe).Print()
	}
	data, err := safe.EncodeTOML()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func handleConfigPath(args Args) error {
	path, err := configFile(args)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config path", map[string]interface{}{
			"path":   path,
			"exists": exists,
		}).Print()
	}
	fmt.Println(path)
	if !exists && !args.Quiet {
		fmt.Fprintln(os.Stderr, DimStyle.Render("(not created yet; run 'llmopt config init')"))
	}
	return nil
}

func handleConfigInit(args Args) error {
	path, err := configFile(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !args.Force {
		return NewCommandError("config", "init", "file already exists (use --force to overwrite)", errors.New(path))
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config init", map[string]string{"path": path}).Print()
	}
	fmt.Printf("%s wrote %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

func handleConfigGet(args Args) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "llmopt config get optimizer.max_escalations")
	}
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	val, err := cfg.Redacted().Get(args.ConfigKey)
	if err != nil {
		return NewValidationError("key", args.ConfigKey, err.Error())
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{args.ConfigKey: val}).Print()
	}
	fmt.Println(val)
	return nil
}

// handleConfigSet edits the file itself, so environment overrides are never
// written back.
func handleConfigSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key and value", "llmopt config set optimizer.max_escalations 2")
	}
	path, err := configFile(args)
	if err != nil {
		return err
	}
	cfg, err := config.ReadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewValidationError("key", args.ConfigKey, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config set", map[string]string{
			"path":  path,
			"key":   args.ConfigKey,
			"value": args.ConfigVal,
		}).Print()
	}
	if !args.Quiet {
		fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), args.ConfigKey, args.ConfigVal)
	}
	return nil
}
