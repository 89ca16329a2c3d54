// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
package authview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/auth"
	"github.com/jeranaias/pdfchat-tui/internal/session"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// stubProvider satisfies auth.Provider; tests drive Update with result
// messages directly, so the methods are never reached.
type stubProvider struct{}

func (stubProvider) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	return nil, errors.New("unused")
}
func (stubProvider) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	return nil, errors.New("unused")
}
func (stubProvider) SignInWithOAuth(provider, redirectTo string) (string, error) {
	return "", errors.New("unused")
}
func (stubProvider) Refresh(ctx context.Context, refreshToken string) (*auth.Session, error) {
	return nil, errors.New("unused")
}
func (stubProvider) User(ctx context.Context, accessToken string) (*auth.User, error) {
	return nil, errors.New("unused")
}
func (stubProvider) SignOut(ctx context.Context, accessToken string) error { return nil }

func newTestModel(t *testing.T) (Model, *session.Store) {
	t.Helper()
	store := session.NewStore(stubProvider{}, session.NewKeystore(t.TempDir()))
	return New(styles.NewTheme(), stubProvider{}, store, 9573), store
}

func verifiedSession() *auth.Session {
	return &auth.Session{
		AccessToken:  "tok",
		RefreshToken: "ref",
		ExpiresAt:    time.Now().Add(time.Hour),
		User: auth.User{
			ID:               "u1",
			Email:            "user@example.com",
			EmailConfirmedAt: time.Now(),
		},
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		email    string
		password string
		want     string
	}{
		{"missing email", ModeSignIn, "", "hunter2", "Email is required"},
		{"bad email", ModeSignIn, "not-an-email", "hunter2", "Enter a valid email address"},
		{"no dot in domain", ModeSignIn, "user@host", "hunter2", "Enter a valid email address"},
		{"missing password", ModeSignIn, "user@example.com", "", "Password is required"},
		{"short signup password", ModeSignUp, "user@example.com", "abc", "Password must be at least 6 characters"},
		{"short signin password ok", ModeSignIn, "user@example.com", "abc", ""},
		{"valid", ModeSignUp, "user@example.com", "hunter2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m.mode = tt.mode
			m.email.SetValue(tt.email)
			m.password.SetValue(tt.password)
			if got := m.validate(); got != tt.want {
				t.Errorf("validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubmitInvalidFormShowsErrorWithoutCall(t *testing.T) {
	m, _ := newTestModel(t)
	m.email.SetValue("bad")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("invalid form must not fire a provider command")
	}
	if m.errText == "" {
		t.Error("validation problem should be shown")
	}
	if m.busy {
		t.Error("model must not be busy after a rejected submit")
	}
}

// =============================================================================
// MODE TOGGLE TESTS
// =============================================================================

func TestToggleMode(t *testing.T) {
	m, _ := newTestModel(t)
	if m.mode != ModeSignIn {
		t.Fatalf("initial mode = %v", m.mode)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != ModeSignUp {
		t.Error("ctrl+t should switch to sign-up")
	}

	m.errText = "stale"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != ModeSignIn {
		t.Error("ctrl+t should switch back to sign-in")
	}
	if m.errText != "" {
		t.Error("toggling modes should clear outcome text")
	}
}

// =============================================================================
// RESULT HANDLING TESTS
// =============================================================================

func TestSignInSuccessStoresSessionAndEmits(t *testing.T) {
	m, store := newTestModel(t)
	m.busy = true

	m, cmd := m.Update(signInResultMsg{session: verifiedSession()})
	if m.busy {
		t.Error("busy should clear")
	}
	if cmd == nil {
		t.Fatal("expected SignedInMsg command")
	}
	if _, ok := cmd().(SignedInMsg); !ok {
		t.Error("command should emit SignedInMsg")
	}
	if store.Current() == nil {
		t.Error("session should be stored")
	}
}

func TestSignInErrorShownVerbatim(t *testing.T) {
	m, store := newTestModel(t)
	providerErr := &auth.AuthError{Type: auth.ErrTypeInvalidCredentials, Message: "Invalid login credentials"}

	m, cmd := m.Update(signInResultMsg{err: providerErr})
	if cmd != nil {
		t.Error("failed sign-in must not emit SignedInMsg")
	}
	if !strings.Contains(m.errText, "Invalid login credentials") {
		t.Errorf("provider message not preserved: %q", m.errText)
	}
	if store.Current() != nil {
		t.Error("no session should be stored on failure")
	}
}

func TestSignInUnverifiedAccountBlocked(t *testing.T) {
	m, store := newTestModel(t)
	sess := verifiedSession()
	sess.User.EmailConfirmedAt = time.Time{}

	m, cmd := m.Update(signInResultMsg{session: sess})
	if cmd != nil {
		t.Error("unverified account must not proceed to chat")
	}
	if m.errText != VerificationRequired {
		t.Errorf("errText = %q", m.errText)
	}
	if store.Current() != nil {
		t.Error("unverified session must not be stored")
	}
}

func TestSignUpVerificationPending(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = ModeSignUp
	m.password.SetValue("hunter2")

	m, cmd := m.Update(signUpResultMsg{session: nil})
	if cmd != nil {
		t.Error("pending verification must not emit SignedInMsg")
	}
	if m.mode != ModeSignIn {
		t.Error("form should flip back to sign-in")
	}
	if m.infoText != VerificationPending {
		t.Errorf("infoText = %q", m.infoText)
	}
	if m.password.Value() != "" {
		t.Error("password should be cleared")
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m, _ := newTestModel(t)
	m.busy = true
	m.email.SetValue("user@example.com")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("submits must be ignored while busy")
	}
}
