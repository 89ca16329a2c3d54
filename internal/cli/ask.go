// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for pdfchat.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/ui/components"
)

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk asks a single question about the indexed document and
// prints the answer. Markdown rendering is used on a TTY unless
// --plain is given; piped output always gets the plain form with
// fenced code blocks syntax-highlighted.
func HandleAsk(args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		return &UsageError{
			Command: "ask",
			Reason:  "a question is required",
			Example: `ask "What does section 3 cover?"`,
		}
	}

	app, err := NewApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.RequireSession(ctx); err != nil {
		return err
	}

	answer, err := app.Backend.Ask(ctx, question)
	if err != nil {
		if errors.Is(err, api.ErrQuotaExceeded) {
			return fmt.Errorf("question limit reached for this document: %w", err)
		}
		return err
	}

	if args.JSON {
		return outputJSON(map[string]string{
			"question": question,
			"answer":   answer,
		})
	}

	fmt.Println(renderAnswer(answer, args.Plain))

	// Best effort: record the exchange locally so 'pdfchat history'
	// matches what the TUI would have recorded. The entry is tagged with
	// the document the last upload recorded so per-document filtering
	// sees it.
	if history, herr := app.OpenHistory(); herr == nil && history != nil {
		defer history.Close()
		document, _ := history.CurrentDocument(ctx)
		_ = history.Append(ctx, document, question, answer)
	}

	return nil
}

// renderAnswer formats an answer for terminal output.
func renderAnswer(answer string, plain bool) string {
	if plain || !IsStdoutTTY() {
		return components.HighlightFencedBlocks(components.Sanitize(answer))
	}

	renderer := components.NewMarkdownRenderer(GetTerminalWidth())
	return strings.TrimRight(renderer.Render(answer), "\n")
}
