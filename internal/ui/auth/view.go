// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
package authview

import (
	"github.com/charmbracelet/lipgloss"
)

// formWidth is the inner width of the auth box.
const formWidth = 44

// View implements tea.Model.
func (m Model) View() string {
	var rows []string

	rows = append(rows, m.theme.AuthTitle.Width(formWidth).Render(m.mode.Title()), "")

	rows = append(rows, m.theme.AuthLabel.Render("Email"))
	rows = append(rows, m.fieldStyle(focusEmail).Width(formWidth).Render(m.email.View()))

	rows = append(rows, m.theme.AuthLabel.Render("Password"))
	rows = append(rows, m.fieldStyle(focusPassword).Width(formWidth).Render(m.password.View()))
	rows = append(rows, "")

	rows = append(rows, lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.buttonStyle(focusSubmit).Render(m.mode.SubmitLabel()),
		"  ",
		m.buttonStyle(focusOAuth).Render("Continue with Google"),
	))
	rows = append(rows, "")

	if m.busy {
		rows = append(rows, m.spinner.View())
	}
	if m.errText != "" {
		rows = append(rows, m.theme.AuthError.Width(formWidth).Render(m.errText))
	}
	if m.infoText != "" {
		rows = append(rows, m.theme.AuthInfo.Width(formWidth).Render(m.infoText))
	}

	toggle := "Ctrl+T: create an account instead"
	if m.mode == ModeSignUp {
		toggle = "Ctrl+T: sign in instead"
	}
	rows = append(rows, "", m.theme.AuthToggleHint.Render(toggle+" · Tab: next field"))

	box := m.theme.AuthBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// fieldStyle returns the bordered style for a text field, highlighted
// when focused.
func (m Model) fieldStyle(target focusTarget) lipgloss.Style {
	if m.focus == target {
		return m.theme.AuthFieldActive
	}
	return m.theme.AuthField
}

// buttonStyle returns the style for a button, highlighted when focused.
func (m Model) buttonStyle(target focusTarget) lipgloss.Style {
	if m.focus == target {
		return m.theme.AuthButtonFocus
	}
	return m.theme.AuthButton
}
