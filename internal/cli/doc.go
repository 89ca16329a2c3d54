// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of pdfchat:
// argument parsing, command routing, and the one-shot handlers for
// login, upload, ask, limits, history, and reset, plus an interactive
// REPL with input history.
//
// All handlers return errors; exit-code mapping lives in errors.go and
// is applied by Run in cli.go.
package cli
