// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the document chat view for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	state := m.ctrl.Snapshot()

	header := m.theme.Header.Width(m.width).Render("pdfchat")

	sidebar := m.docCard.View(state.Document, state.Quota)

	main := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		m.inputView(state.Awaiting || state.Uploading),
		m.footerView(),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// inputView renders the input box, dimmed while a call is in flight.
func (m Model) inputView(busy bool) string {
	if busy {
		line := m.spinner.View()
		if line == "" {
			line = m.theme.InputDisabled.Render("Waiting…")
		}
		return m.theme.InputContainer.Width(m.viewport.Width).Render(line)
	}
	return m.theme.InputContainer.Width(m.viewport.Width).Render(m.input.View())
}

// footerView renders the status line and shortcut hints.
func (m Model) footerView() string {
	if m.statusText != "" {
		return m.statusText
	}
	hints := []string{
		m.theme.ShortcutKey.Render("/upload") + m.theme.ShortcutDesc.Render(" file"),
		m.theme.ShortcutKey.Render("/history") + m.theme.ShortcutDesc.Render(" past answers"),
		m.theme.ShortcutKey.Render("/reset") + m.theme.ShortcutDesc.Render(" start over"),
		m.theme.ShortcutKey.Render("/logout"),
		m.theme.ShortcutKey.Render("ctrl+c") + m.theme.ShortcutDesc.Render(" quit"),
	}
	return m.theme.StatusBar.Width(m.viewport.Width).Render(strings.Join(hints, "  "))
}

// refreshViewport rebuilds the transcript content from the controller
// snapshot, dropping any overlay.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.overlay = ""

	state := m.ctrl.Snapshot()
	if len(state.Messages) == 0 {
		m.viewport.SetContent(m.theme.MessageMeta.Render("No questions yet."))
		return
	}

	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	var blocks []string
	for i := range state.Messages {
		blocks = append(blocks, m.renderMessage(&state.Messages[i], bubbleWidth))
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(blocks, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// renderMessage renders one transcript entry as a bubble.
func (m *Model) renderMessage(msg *model.Message, width int) string {
	meta := m.theme.MessageMeta.Render(msg.Role.DisplayName() + " · " + msg.Timestamp.Local().Format("15:04"))

	switch {
	case msg.Notice:
		return lipgloss.JoinVertical(lipgloss.Center,
			m.theme.NoticeBubble.MaxWidth(width).Render(msg.Content),
		)
	case msg.Role == model.RoleUser:
		bubble := m.theme.UserBubble.MaxWidth(width).Render(msg.Content)
		return lipgloss.JoinVertical(lipgloss.Right, meta, bubble)
	default:
		rendered := m.markdown.Render(msg.Content)
		bubble := m.theme.AssistantBubble.MaxWidth(width).Render(rendered)
		return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
	}
}
