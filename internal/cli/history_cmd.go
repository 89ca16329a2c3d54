// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Question history command for pdfchat.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jeranaias/pdfchat-tui/internal/storage"
)

// =============================================================================
// HISTORY COMMAND
// =============================================================================

// HandleHistory lists recorded question-and-answer exchanges from the
// local history database, newest first.
func HandleHistory(args Args) error {
	app, err := NewApp()
	if err != nil {
		return err
	}

	history, err := app.OpenHistory()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if history == nil {
		fmt.Println("History is disabled in the config.")
		return nil
	}
	defer history.Close()

	limit := app.Config.History.Limit
	if args.Subcommand != "" {
		n, err := strconv.Atoi(args.Subcommand)
		if err != nil || n <= 0 {
			return &UsageError{Command: "history", Reason: "--limit must be a positive integer"}
		}
		limit = n
	}

	ctx := context.Background()
	var entries []storage.Entry
	if args.Query != "" {
		entries, err = history.ForDocument(ctx, args.Query, limit)
	} else {
		entries, err = history.Recent(ctx, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if args.JSON {
		return outputJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No recorded questions yet.")
		return nil
	}

	for _, e := range entries {
		stamp := e.CreatedAt.Local().Format("2006-01-02 15:04")
		header := stamp
		if e.Document != "" {
			header += "  " + e.Document
		}
		fmt.Println(RenderConditional(DimStyle, header))
		fmt.Println("Q: " + e.Question)
		fmt.Println("A: " + e.Answer)
		fmt.Println()
	}
	return nil
}
