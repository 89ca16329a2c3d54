// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the document chat view for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pdfchat-tui/internal/controller"
	"github.com/jeranaias/pdfchat-tui/internal/storage"
	"github.com/jeranaias/pdfchat-tui/internal/ui/components"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	// sidebarWidth is the fixed width of the document sidebar.
	sidebarWidth = 32

	// chromeHeight accounts for the header, input box, and status bar.
	chromeHeight = 7
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. All document and
// transcript state lives in the controller; the model only holds
// presentation state.
type Model struct {
	theme *styles.Theme
	ctrl  *controller.Controller

	// history backs the /history command; nil when disabled.
	history      *storage.History
	historyLimit int

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner
	docCard  components.DocCard
	markdown *components.MarkdownRenderer

	// statusText is a transient line under the input (errors, command
	// feedback). Cleared on the next submit.
	statusText string

	// overlay holds full-viewport content (history listing) until the
	// next transcript change.
	overlay string

	width  int
	height int
	ready  bool
}

// New creates the chat view.
func New(theme *styles.Theme, ctrl *controller.Controller, history *storage.History, historyLimit int) Model {
	input := textinput.New()
	input.Placeholder = "Upload a document with /upload <path>"
	input.CharLimit = 2000
	input.Prompt = "> "
	input.Focus()

	return Model{
		theme:        theme,
		ctrl:         ctrl,
		history:      history,
		historyLimit: historyLimit,
		input:        input,
		spinner:      components.NewSpinner(theme),
		docCard:      components.NewDocCard(theme),
		markdown:     components.NewMarkdownRenderer(72),
	}
}

// Init implements tea.Model. The question counter is pulled from the
// server as soon as the view mounts.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, syncLimitsCmd(m.ctrl))
}

// SetSize lays the view out for new terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - sidebarWidth - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	contentHeight := height - chromeHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = contentHeight
	}

	m.docCard.SetWidth(sidebarWidth)
	m.markdown.SetWidth(contentWidth - 6)
	m.input.Width = contentWidth - 4

	m.refreshViewport()
}
