// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// limits.go - Question counter and reset commands for pdfchat.
package cli

import (
	"context"
	"fmt"
)

// =============================================================================
// LIMITS COMMAND
// =============================================================================

// HandleLimits prints the authoritative question counter.
func HandleLimits(args Args) error {
	app, err := NewApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.RequireSession(ctx); err != nil {
		return err
	}

	quota, err := app.Backend.Limits(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch limits: %w", err)
	}

	if args.JSON {
		return outputJSON(quota)
	}

	fmt.Printf("%s%s\n", RenderConditional(LabelStyle, "Questions:"), quota.String())
	if quota.Exhausted() {
		fmt.Println(RenderConditional(WarningStyle, "Limit reached. Upload a new document to continue."))
	} else {
		fmt.Printf("%s%d remaining\n", RenderConditional(LabelStyle, ""), quota.Remaining())
	}
	return nil
}

// =============================================================================
// RESET COMMAND
// =============================================================================

// HandleReset discards the server-side index and question counter.
func HandleReset(args Args) error {
	app, err := NewApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.RequireSession(ctx); err != nil {
		return err
	}

	if err := app.Backend.Reset(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	if history, herr := app.OpenHistory(); herr == nil && history != nil {
		_ = history.ClearCurrentDocument(ctx)
		history.Close()
	}

	if !args.Quiet {
		fmt.Println("Document and counter reset.")
	}
	return nil
}
