// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive question loop for pdfchat.
//
// USABILITY: Provides readline-like line editing and history navigation.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/config"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput wraps liner with a persistent input history file.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &replInput{
		line:        line,
		historyFile: filepath.Join(configDir, "repl_history"),
	}

	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

// read reads a line with history navigation; non-empty lines are added
// to the history.
func (r *replInput) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// close saves history with secure permissions and releases the terminal.
func (r *replInput) close() {
	if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
}

// =============================================================================
// REPL COMMAND
// =============================================================================

// HandleRepl runs the interactive question loop. Slash commands mirror
// the TUI: /upload, /limits, /reset, /quit.
func HandleRepl(args Args) error {
	if err := RequiresTTY("start the question loop"); err != nil {
		return err
	}

	app, err := NewApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.RequireSession(ctx); err != nil {
		return err
	}

	history, err := app.OpenHistory()
	if err == nil && history != nil {
		defer history.Close()
	}

	input := newReplInput()
	defer input.close()

	if !args.Quiet {
		fmt.Println(RenderConditional(TitleStyle, "pdfchat"))
		fmt.Println(RenderConditional(DimStyle, "Ask questions about your document. /upload <path>, /limits, /reset, /quit"))
	}

	for {
		line, err := input.read("pdfchat> ")
		if err != nil {
			// Ctrl+C or Ctrl+D ends the loop.
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if done := runReplCommand(ctx, app, line, args); done {
				return nil
			}
			continue
		}

		answer, err := app.Backend.Ask(ctx, line)
		if err != nil {
			if errors.Is(err, api.ErrQuotaExceeded) {
				fmt.Println(RenderConditional(WarningStyle, "Question limit reached. Upload a new document to continue."))
			} else {
				fmt.Fprintf(os.Stderr, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
			}
			continue
		}

		fmt.Println(renderAnswer(answer, args.Plain))
		fmt.Println()

		if history != nil {
			document, _ := history.CurrentDocument(ctx)
			_ = history.Append(ctx, document, line, answer)
		}
	}
}

// runReplCommand executes a slash command; returns true when the loop
// should exit.
func runReplCommand(ctx context.Context, app *App, line string, args Args) bool {
	fields := strings.Fields(line)

	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true

	case "/upload":
		if len(fields) < 2 {
			fmt.Println("Usage: /upload <path-to-pdf>")
			return false
		}
		uploadArgs := args
		uploadArgs.File = strings.Join(fields[1:], " ")
		if err := HandleUpload(uploadArgs); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
		}

	case "/limits":
		if err := HandleLimits(args); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
		}

	case "/reset":
		if err := HandleReset(args); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", fields[0])
	}
	return false
}
