// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the pdfchat TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// =============================================================================
// DOCUMENT CARD
// =============================================================================

// DocCard shows the current document, its indexing status, and the
// question quota.
type DocCard struct {
	theme *styles.Theme
	width int
}

// NewDocCard creates a document card.
func NewDocCard(theme *styles.Theme) DocCard {
	return DocCard{theme: theme, width: 30}
}

// SetWidth sets the card's outer width.
func (d *DocCard) SetWidth(width int) {
	if width < 16 {
		width = 16
	}
	d.width = width
}

// View renders the card for the given document and quota.
func (d DocCard) View(doc model.Document, quota model.Quota) string {
	inner := d.width - 4 // border and padding

	name := doc.Name
	if name == "" {
		name = "No document"
	}
	name = runewidth.Truncate(name, inner, "…")

	var status string
	switch doc.Status {
	case model.StatusProcessing:
		status = d.theme.DocStatusWorking.Render(doc.Status.DisplayName())
	case model.StatusIndexed:
		status = d.theme.DocStatusIndexed.Render(doc.Status.DisplayName())
	default:
		status = d.theme.DocStatusIdle.Render(doc.Status.DisplayName())
	}

	lines := []string{
		d.theme.DocName.Render(name),
		status,
	}

	// The quota only means something once a document is indexed.
	if doc.Status == model.StatusIndexed {
		lines = append(lines, d.quotaLine(quota))
	}

	return d.theme.DocCard.Width(d.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// quotaLine renders the question counter with severity coloring.
func (d DocCard) quotaLine(quota model.Quota) string {
	label := "Questions: " + quota.String()
	switch {
	case quota.Exhausted():
		return d.theme.QuotaBadgeSpent.Render(label)
	case quota.Remaining() <= 2:
		return d.theme.QuotaBadgeWarning.Render(label)
	default:
		return d.theme.QuotaBadge.Render(label)
	}
}
