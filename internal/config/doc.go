// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for pdfchat.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - AuthConfig: Identity provider settings
//   - BackendConfig: Question-answering backend settings
//   - HistoryConfig: Local answer-history settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (PDFCHAT_*)
//   - ~/.pdfchat/config.toml
//   - ~/.pdfchat/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Watch for live changes:
//
//	stop, err := config.Watch(func(cfg *config.Config) {
//	    // apply the reloaded settings
//	})
//	defer stop()
package config
