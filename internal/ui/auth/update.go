// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
package authview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// VerificationRequired is shown when a signed-in account has not
// confirmed its email address yet.
const VerificationRequired = "Please verify your email address, then sign in again."

// VerificationPending is shown after sign-up when the provider withheld
// tokens until the address is confirmed.
const VerificationPending = "Account created. Check your email to verify your address, then sign in."

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case signInResultMsg:
		return m.handleSignInResult(msg)

	case signUpResultMsg:
		return m.handleSignUpResult(msg)

	case oauthResultMsg:
		return m.handleOAuthResult(msg)

	case oauthOpenedMsg:
		m.infoText = "Waiting for the browser…"
		return m, nil
	}

	// Spinner ticks and blink messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		// No form edits while a provider call is in flight.
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1), nil

	case "shift+tab", "up":
		return m.moveFocus(-1), nil

	case "ctrl+t":
		return m.toggleMode(), nil

	case "enter":
		return m.handleEnter()
	}

	// Route typing to the focused field.
	var cmd tea.Cmd
	switch m.focus {
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// moveFocus cycles focus through the form elements.
func (m Model) moveFocus(delta int) Model {
	m.focus = focusTarget((int(m.focus) + delta + int(focusCount)) % int(focusCount))

	m.email.Blur()
	m.password.Blur()
	switch m.focus {
	case focusEmail:
		m.email.Focus()
	case focusPassword:
		m.password.Focus()
	}
	return m
}

// toggleMode flips between sign-in and sign-up, clearing outcome text.
func (m Model) toggleMode() Model {
	if m.mode == ModeSignIn {
		m.mode = ModeSignUp
	} else {
		m.mode = ModeSignIn
	}
	m.errText = ""
	m.infoText = ""
	return m
}

// handleEnter submits the form or activates the focused button.
func (m Model) handleEnter() (Model, tea.Cmd) {
	if m.focus == focusOAuth {
		m.busy = true
		m.errText = ""
		m.infoText = "Opening your browser…"
		return m, tea.Batch(m.spinner.Start("Signing in with Google"), oauthCmd(m.provider, m.oauthPort))
	}

	// Enter anywhere else submits the form.
	if problem := m.validate(); problem != "" {
		m.errText = problem
		return m, nil
	}

	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()

	m.busy = true
	m.errText = ""
	m.infoText = ""

	if m.mode == ModeSignUp {
		return m, tea.Batch(m.spinner.Start("Creating account"), signUpCmd(m.provider, email, password))
	}
	return m, tea.Batch(m.spinner.Start("Signing in"), signInCmd(m.provider, email, password))
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

func (m Model) handleSignInResult(msg signInResultMsg) (Model, tea.Cmd) {
	m.busy = false
	m.spinner.Stop()

	if msg.err != nil {
		// Provider messages are shown verbatim.
		m.errText = msg.err.Error()
		return m, nil
	}

	if !msg.session.User.Verified() {
		m.errText = VerificationRequired
		return m, nil
	}

	// A failed keystore write only costs restore on the next start; the
	// session itself is live.
	_ = m.store.SetSession(msg.session)
	return m, signedInCmd(msg.session)
}

func (m Model) handleSignUpResult(msg signUpResultMsg) (Model, tea.Cmd) {
	m.busy = false
	m.spinner.Stop()

	if msg.err != nil {
		m.errText = msg.err.Error()
		return m, nil
	}

	// No session means verification is pending; flip back to sign-in so
	// the user can come back after confirming.
	if msg.session == nil {
		m.mode = ModeSignIn
		m.infoText = VerificationPending
		m.password.SetValue("")
		return m, nil
	}

	_ = m.store.SetSession(msg.session)
	return m, signedInCmd(msg.session)
}

func (m Model) handleOAuthResult(msg oauthResultMsg) (Model, tea.Cmd) {
	m.busy = false
	m.spinner.Stop()

	if msg.err != nil {
		m.errText = msg.err.Error()
		m.infoText = ""
		return m, nil
	}

	_ = m.store.SetSession(msg.session)
	return m, signedInCmd(msg.session)
}
