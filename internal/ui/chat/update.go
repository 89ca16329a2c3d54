// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the document chat view for the TUI.
package chat

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/controller"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case askDoneMsg:
		return m.handleAskDone(msg)

	case limitsSyncedMsg:
		m.refreshViewport()
		return m, nil

	case historyMsg:
		return m.handleHistory(msg)

	case resetDoneMsg:
		return m.handleResetDone(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.handleSubmit()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit routes the input line: slash commands or a question.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.statusText = ""
	m.overlay = ""
	m.input.SetValue("")

	if strings.HasPrefix(line, "/") {
		return m.handleCommand(line)
	}
	return m.submitQuestion(line)
}

// handleCommand dispatches slash commands.
func (m Model) handleCommand(line string) (Model, tea.Cmd) {
	fields := strings.Fields(line)
	name := fields[0]

	switch name {
	case "/upload":
		if len(fields) < 2 {
			m.statusText = m.theme.WarningStyle.Render("Usage: /upload <path-to-pdf>")
			return m, nil
		}
		return m.submitUpload(strings.Join(fields[1:], " "))

	case "/history":
		if m.history == nil {
			m.statusText = m.theme.WarningStyle.Render("History is disabled in the config")
			return m, nil
		}
		return m, historyCmd(m.history, m.historyLimit)

	case "/reset":
		state := m.ctrl.Snapshot()
		if state.Uploading || state.Awaiting {
			m.statusText = m.theme.WarningStyle.Render("Wait for the current operation to finish")
			return m, nil
		}
		return m, resetCmd(m.ctrl)

	case "/logout":
		return m, signedOutCmd()

	default:
		m.statusText = m.theme.WarningStyle.Render("Unknown command: " + name)
		return m, nil
	}
}

// submitUpload starts the upload lifecycle and the processing spinner.
func (m Model) submitUpload(path string) (Model, tea.Cmd) {
	state := m.ctrl.Snapshot()
	if state.Uploading {
		m.statusText = m.theme.WarningStyle.Render("An upload is already in progress")
		return m, nil
	}
	if state.Awaiting {
		m.statusText = m.theme.WarningStyle.Render("Wait for the current answer first")
		return m, nil
	}

	cmd := uploadCmd(m.ctrl, path)
	spin := m.spinner.Start("Uploading and indexing")
	// The controller clears the transcript synchronously inside Upload;
	// the viewport refreshes when the result lands.
	return m, tea.Batch(spin, cmd)
}

// submitQuestion sends a question through the controller.
func (m Model) submitQuestion(text string) (Model, tea.Cmd) {
	state := m.ctrl.Snapshot()
	if !state.Document.Queryable() {
		m.statusText = m.theme.WarningStyle.Render("Upload a document before asking questions")
		return m, nil
	}
	if state.Awaiting {
		m.statusText = m.theme.WarningStyle.Render("Wait for the current answer first")
		return m, nil
	}

	cmd := askCmd(m.ctrl, text)
	spin := m.spinner.Start("Thinking")
	return m, tea.Batch(spin, func() tea.Msg {
		// Render the optimistic user message as soon as the controller
		// has appended it.
		return limitsSyncedMsg{}
	}, cmd)
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

func (m Model) handleUploadDone(msg uploadDoneMsg) (Model, tea.Cmd) {
	m.spinner.Stop()
	m.refreshViewport()

	if msg.err != nil {
		switch {
		case errors.Is(msg.err, api.ErrUploadLimited):
			m.statusText = m.theme.ErrorStyle.Render("Upload limit reached. Try again later.")
		case errors.Is(msg.err, controller.ErrUploadInFlight):
			m.statusText = m.theme.WarningStyle.Render("An upload is already in progress")
		default:
			m.statusText = m.theme.ErrorStyle.Render("Upload failed: " + msg.err.Error())
		}
		return m, nil
	}

	m.statusText = m.theme.SuccessStyle.Render(fmt.Sprintf("Indexed %s", msg.result.Document))
	m.input.Placeholder = "Ask a question about the document"
	return m, nil
}

func (m Model) handleAskDone(msg askDoneMsg) (Model, tea.Cmd) {
	m.spinner.Stop()
	m.refreshViewport()
	m.viewport.GotoBottom()

	// Quota and failure outcomes already appended their notice to the
	// transcript; rejections before the optimistic append surface in
	// the status line instead.
	if msg.err != nil && msg.message == nil {
		switch {
		case errors.Is(msg.err, controller.ErrAwaitingAnswer):
			m.statusText = m.theme.WarningStyle.Render("Wait for the current answer first")
		case errors.Is(msg.err, controller.ErrNoDocument):
			m.statusText = m.theme.WarningStyle.Render("Upload a document before asking questions")
		case errors.Is(msg.err, controller.ErrEmptyQuestion):
			// Nothing to do.
		default:
			m.statusText = m.theme.ErrorStyle.Render(msg.err.Error())
		}
	}
	return m, nil
}

func (m Model) handleHistory(msg historyMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.statusText = m.theme.ErrorStyle.Render("Could not load history: " + msg.err.Error())
		return m, nil
	}
	if len(msg.entries) == 0 {
		m.statusText = m.theme.InfoStyle.Render("No recorded questions yet")
		return m, nil
	}

	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("Recent questions") + "\n\n")
	for _, e := range msg.entries {
		b.WriteString(m.theme.ShortcutKey.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")))
		b.WriteString(" " + m.theme.MessageMeta.Render(e.Document) + "\n")
		b.WriteString("Q: " + e.Question + "\n")
		b.WriteString("A: " + e.Answer + "\n\n")
	}
	m.overlay = b.String()
	m.viewport.SetContent(m.overlay)
	m.viewport.GotoTop()
	return m, nil
}

func (m Model) handleResetDone(msg resetDoneMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.statusText = m.theme.ErrorStyle.Render("Reset failed: " + msg.err.Error())
		return m, nil
	}
	m.refreshViewport()
	m.statusText = m.theme.SuccessStyle.Render("Document and counter reset")
	m.input.Placeholder = "Upload a document with /upload <path>"
	return m, nil
}
