// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// upload.go - Document upload command for pdfchat.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/pdfchat-tui/internal/api"
)

// =============================================================================
// UPLOAD COMMAND
// =============================================================================

// HandleUpload uploads a PDF and waits for it to be indexed. A 429
// from the backend means the upload allowance is spent; it is reported
// as-is and never retried.
func HandleUpload(args Args) error {
	path := strings.TrimSpace(args.File)
	if path == "" {
		return &UsageError{
			Command: "upload",
			Reason:  "a file path is required",
			Example: "upload ./report.pdf",
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	app, err := NewApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.RequireSession(ctx); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("Uploading %s...\n", filepath.Base(path))
	}

	result, err := app.Backend.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		if errors.Is(err, api.ErrUploadLimited) {
			return fmt.Errorf("upload limit reached, try again later: %w", err)
		}
		return err
	}

	// Remember the indexed document so later 'ask' invocations can tag
	// their history entries.
	if history, herr := app.OpenHistory(); herr == nil && history != nil {
		_ = history.SetCurrentDocument(ctx, result.Document)
		history.Close()
	}

	if args.JSON {
		return outputJSON(result)
	}

	fmt.Println(RenderConditional(SuccessStyle, "Indexed "+result.Document))
	if result.Pages > 0 {
		fmt.Printf("  %d pages, %d chunks\n", result.Pages, result.Chunks)
	}
	return nil
}
