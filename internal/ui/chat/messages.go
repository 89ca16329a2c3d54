// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the document chat view for the TUI.
package chat

import (
	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/storage"
)

// =============================================================================
// OUTBOUND MESSAGES
// =============================================================================

// SignedOutMsg is emitted when the user logs out. The parent model
// clears the session and returns to the auth view.
type SignedOutMsg struct{}

// =============================================================================
// INTERNAL MESSAGES
// =============================================================================

// uploadDoneMsg delivers the outcome of an upload-and-index call.
type uploadDoneMsg struct {
	result *api.UploadResult
	err    error
}

// askDoneMsg delivers the settled outcome of a question. The message is
// whatever the controller appended last (answer or notice).
type askDoneMsg struct {
	message *model.Message
	err     error
}

// limitsSyncedMsg reports that a limits sync attempt finished. The
// counter in the controller is already updated (or untouched on
// failure); the view only needs to re-render.
type limitsSyncedMsg struct{}

// historyMsg delivers entries for the /history overlay.
type historyMsg struct {
	entries []storage.Entry
	err     error
}

// resetDoneMsg delivers the outcome of a /reset call.
type resetDoneMsg struct {
	err error
}
