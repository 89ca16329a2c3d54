// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
package authview

import "github.com/jeranaias/pdfchat-tui/internal/auth"

// =============================================================================
// MESSAGES
// =============================================================================

// SignedInMsg is emitted to the parent model once a session is
// established and the account is verified. The parent switches to the
// chat view on receipt.
type SignedInMsg struct {
	Session *auth.Session
}

// signInResultMsg delivers the outcome of a password sign-in.
type signInResultMsg struct {
	session *auth.Session
	err     error
}

// signUpResultMsg delivers the outcome of a sign-up. A nil session with
// a nil error means the account was created and verification is pending.
type signUpResultMsg struct {
	session *auth.Session
	err     error
}

// oauthResultMsg delivers the outcome of the browser OAuth flow.
type oauthResultMsg struct {
	session *auth.Session
	err     error
}

// oauthOpenedMsg reports that the browser was pointed at the authorize
// URL and the local listener is waiting.
type oauthOpenedMsg struct {
	url string
}
