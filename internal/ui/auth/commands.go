// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
package authview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/auth"
)

// =============================================================================
// PROVIDER COMMANDS
// =============================================================================

// signInCmd exchanges credentials for a session in the background.
func signInCmd(provider auth.Provider, email, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := provider.SignInWithPassword(context.Background(), email, password)
		return signInResultMsg{session: sess, err: err}
	}
}

// signUpCmd registers a new account in the background.
func signUpCmd(provider auth.Provider, email, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := provider.SignUp(context.Background(), email, password)
		return signUpResultMsg{session: sess, err: err}
	}
}

// oauthCmd runs the full browser OAuth round trip in the background.
func oauthCmd(provider auth.Provider, port int) tea.Cmd {
	return func() tea.Msg {
		sess, err := runOAuthFlow(context.Background(), provider, "google", port)
		return oauthResultMsg{session: sess, err: err}
	}
}

// signedInCmd emits the SignedInMsg the parent model routes on.
func signedInCmd(sess *auth.Session) tea.Cmd {
	return func() tea.Msg {
		return SignedInMsg{Session: sess}
	}
}
