// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
package authview

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/auth"
	"github.com/jeranaias/pdfchat-tui/internal/session"
	"github.com/jeranaias/pdfchat-tui/internal/ui/components"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// =============================================================================
// MODE
// =============================================================================

// Mode selects between the sign-in and sign-up forms. Both share the
// same fields; only the submit action and copy change.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

// Title returns the form heading for the mode.
func (m Mode) Title() string {
	if m == ModeSignUp {
		return "Create your account"
	}
	return "Sign in to pdfchat"
}

// SubmitLabel returns the submit button label for the mode.
func (m Mode) SubmitLabel() string {
	if m == ModeSignUp {
		return "Sign up"
	}
	return "Sign in"
}

// =============================================================================
// FOCUS
// =============================================================================

// focusTarget enumerates the focusable elements top to bottom.
type focusTarget int

const (
	focusEmail focusTarget = iota
	focusPassword
	focusSubmit
	focusOAuth
	focusCount
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the auth view.
type Model struct {
	theme    *styles.Theme
	provider auth.Provider
	store    *session.Store

	// OAuth redirect listener port.
	oauthPort int

	mode     Mode
	email    textinput.Model
	password textinput.Model
	focus    focusTarget

	// busy blocks input while a provider call is in flight.
	busy    bool
	spinner components.Spinner

	// errText shows provider messages verbatim; infoText shows
	// non-error outcomes like verification-pending.
	errText  string
	infoText string

	width  int
	height int
}

// New creates the auth view.
func New(theme *styles.Theme, provider auth.Provider, store *session.Store, oauthPort int) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Prompt = ""
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128
	password.Prompt = ""

	return Model{
		theme:     theme,
		provider:  provider,
		store:     store,
		oauthPort: oauthPort,
		mode:      ModeSignIn,
		email:     email,
		password:  password,
		spinner:   components.NewSpinner(theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// VALIDATION
// =============================================================================

// validate checks the form fields before any provider call, returning a
// human-readable problem or empty string.
func (m Model) validate() string {
	email := strings.TrimSpace(m.email.Value())
	if email == "" {
		return "Email is required"
	}
	at := strings.Index(email, "@")
	if at < 1 || !strings.Contains(email[at:], ".") {
		return "Enter a valid email address"
	}
	if m.password.Value() == "" {
		return "Password is required"
	}
	if m.mode == ModeSignUp && len(m.password.Value()) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}
