// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads llmopt settings from TOML.
//
// A Config starts from Default, is overlaid by the TOML file (--config,
// LLMOPT_CONFIG or ~/.llmopt/config.toml, first one set wins), then by
// LLMOPT_* environment variables, and is validated last. Config.Registry
// turns the [tiers] tables into the router's tier registry.
//
// Get, Set and Keys address single settings by dotted key
// ("optimizer.max_escalations") for the config command.
package config
