// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the document chat view for the TUI.
package chat

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/controller"
	"github.com/jeranaias/pdfchat-tui/internal/storage"
)

// =============================================================================
// BACKGROUND COMMANDS
// =============================================================================

// uploadCmd streams a file through the controller's upload lifecycle.
func uploadCmd(ctrl *controller.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		defer f.Close()

		result, err := ctrl.Upload(context.Background(), filepath.Base(path), f)
		return uploadDoneMsg{result: result, err: err}
	}
}

// askCmd submits a question and then pulls the authoritative counter.
// The sync runs after every ask regardless of outcome so the optimistic
// local increment is corrected promptly.
func askCmd(ctrl *controller.Controller, question string) tea.Cmd {
	return func() tea.Msg {
		msg, err := ctrl.Send(context.Background(), question)
		ctrl.SyncLimits(context.Background())
		return askDoneMsg{message: msg, err: err}
	}
}

// syncLimitsCmd pulls the authoritative counter on its own, used when
// the view mounts.
func syncLimitsCmd(ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.SyncLimits(context.Background())
		return limitsSyncedMsg{}
	}
}

// historyCmd loads recent entries for the /history overlay.
func historyCmd(history *storage.History, limit int) tea.Cmd {
	return func() tea.Msg {
		entries, err := history.Recent(context.Background(), limit)
		return historyMsg{entries: entries, err: err}
	}
}

// resetCmd discards the server-side index and counter.
func resetCmd(ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return resetDoneMsg{err: ctrl.Reset(context.Background())}
	}
}

// signedOutCmd emits the SignedOutMsg the parent model routes on.
func signedOutCmd() tea.Cmd {
	return func() tea.Msg {
		return SignedOutMsg{}
	}
}
