// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the document chat view for the TUI.
package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/controller"
	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/storage"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// stubBackend satisfies controller.Backend; tests drive Update with
// result messages directly, so the methods are never reached.
type stubBackend struct{}

func (stubBackend) Upload(ctx context.Context, filename string, r io.Reader) (*api.UploadResult, error) {
	return nil, errors.New("unused")
}
func (stubBackend) Ask(ctx context.Context, question string) (string, error) {
	return "", errors.New("unused")
}
func (stubBackend) Limits(ctx context.Context) (*model.Quota, error) {
	return nil, errors.New("unused")
}
func (stubBackend) Reset(ctx context.Context) error { return nil }

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctrl := controller.New(controller.Config{Backend: stubBackend{}})
	m := New(styles.NewTheme(), ctrl, nil, 50)
	m.SetSize(100, 30)
	return m
}

func typeLine(m Model, line string) Model {
	m.input.SetValue(line)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

// =============================================================================
// COMMAND DISPATCH TESTS
// =============================================================================

func TestUploadCommandWithoutPathShowsUsage(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("/upload")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("usage error must not start an upload")
	}
	if !strings.Contains(m.statusText, "Usage") {
		t.Errorf("statusText = %q", m.statusText)
	}
}

func TestUnknownCommandReported(t *testing.T) {
	m := newTestModel(t)

	m = typeLine(m, "/frobnicate")
	if !strings.Contains(m.statusText, "/frobnicate") {
		t.Errorf("statusText = %q", m.statusText)
	}
}

func TestHistoryCommandDisabledWithoutStore(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("/history")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("no history command should fire when history is disabled")
	}
	if !strings.Contains(m.statusText, "disabled") {
		t.Errorf("statusText = %q", m.statusText)
	}
}

func TestLogoutEmitsSignedOutMsg(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("/logout")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(SignedOutMsg); !ok {
		t.Error("command should emit SignedOutMsg")
	}
}

func TestSubmitClearsInputAndStatus(t *testing.T) {
	m := newTestModel(t)
	m.statusText = "stale"

	m = typeLine(m, "/frobnicate")
	if m.input.Value() != "" {
		t.Error("input should clear on submit")
	}
}

// =============================================================================
// QUESTION GUARD TESTS
// =============================================================================

func TestQuestionWithoutDocumentRejectedLocally(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("what is this about?")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("no ask command should fire without an indexed document")
	}
	if !strings.Contains(m.statusText, "Upload a document") {
		t.Errorf("statusText = %q", m.statusText)
	}
}

func TestEmptyLineIgnored(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("whitespace-only input should be ignored")
	}
}

// =============================================================================
// RESULT HANDLING TESTS
// =============================================================================

func TestUploadRateLimitedMessage(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(uploadDoneMsg{err: api.ErrUploadLimited})
	if !strings.Contains(m.statusText, "Upload limit") {
		t.Errorf("statusText = %q", m.statusText)
	}
}

func TestUploadSuccessUpdatesPlaceholder(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(uploadDoneMsg{result: &api.UploadResult{Document: "report.pdf"}})
	if !strings.Contains(m.statusText, "report.pdf") {
		t.Errorf("statusText = %q", m.statusText)
	}
	if !strings.Contains(m.input.Placeholder, "Ask a question") {
		t.Errorf("placeholder = %q", m.input.Placeholder)
	}
}

func TestAskRejectionsSurfaceInStatusLine(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"awaiting", controller.ErrAwaitingAnswer, "Wait for the current answer"},
		{"no document", controller.ErrNoDocument, "Upload a document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = m.Update(askDoneMsg{err: tt.err})
			if !strings.Contains(m.statusText, tt.want) {
				t.Errorf("statusText = %q, want substring %q", m.statusText, tt.want)
			}
		})
	}
}

func TestAskWithNoticeLeavesStatusLineAlone(t *testing.T) {
	m := newTestModel(t)
	notice := model.NewNoticeMessage(controller.QuotaNotice)

	m, _ = m.Update(askDoneMsg{message: notice, err: api.ErrQuotaExceeded})
	if m.statusText != "" {
		t.Errorf("notice outcomes belong in the transcript, statusText = %q", m.statusText)
	}
}

// =============================================================================
// HISTORY OVERLAY TESTS
// =============================================================================

func TestHistoryOverlayRendered(t *testing.T) {
	m := newTestModel(t)
	entries := []storage.Entry{
		{Document: "report.pdf", Question: "q1", Answer: "a1", CreatedAt: time.Now()},
	}

	m, _ = m.Update(historyMsg{entries: entries})
	if m.overlay == "" {
		t.Fatal("overlay should be set")
	}
	if !strings.Contains(m.overlay, "q1") || !strings.Contains(m.overlay, "report.pdf") {
		t.Errorf("overlay = %q", m.overlay)
	}
}

func TestHistoryEmptyShowsInfoLine(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(historyMsg{})
	if m.overlay != "" {
		t.Error("no overlay without entries")
	}
	if !strings.Contains(m.statusText, "No recorded questions") {
		t.Errorf("statusText = %q", m.statusText)
	}
}

// =============================================================================
// RESET TESTS
// =============================================================================

func TestResetSuccessRestoresPlaceholder(t *testing.T) {
	m := newTestModel(t)
	m.input.Placeholder = "Ask a question about the document"

	m, _ = m.Update(resetDoneMsg{})
	if !strings.Contains(m.input.Placeholder, "/upload") {
		t.Errorf("placeholder = %q", m.input.Placeholder)
	}
	if !strings.Contains(m.statusText, "reset") {
		t.Errorf("statusText = %q", m.statusText)
	}
}

func TestResetFailureReported(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(resetDoneMsg{err: errors.New("boom")})
	if !strings.Contains(m.statusText, "boom") {
		t.Errorf("statusText = %q", m.statusText)
	}
}
