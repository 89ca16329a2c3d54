// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the pdfchat TUI.
package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// MarkdownRenderer renders assistant answers as terminal markdown. The
// underlying glamour renderer is rebuilt when the wrap width changes.
type MarkdownRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer wrapping at width columns.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	m := &MarkdownRenderer{}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer for a new wrap width.
func (m *MarkdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if width == m.width && m.renderer != nil {
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		// Keep the previous renderer; Render falls back to plain text
		// when none was ever built.
		return
	}
	m.renderer = r
	m.width = width
}

// Render converts markdown to styled terminal output. Answer text is
// sanitized first so a hostile document cannot smuggle terminal escape
// sequences through the backend into the viewport.
func (m *MarkdownRenderer) Render(markdown string) string {
	clean := Sanitize(markdown)

	m.mu.Lock()
	r := m.renderer
	m.mu.Unlock()

	if r == nil {
		return clean
	}

	out, err := r.Render(clean)
	if err != nil {
		return clean
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// SANITIZATION
// =============================================================================

// Sanitize strips ANSI escape sequences and non-printing control
// characters from untrusted text, keeping tabs and newlines.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		// ESC starts a terminal control sequence; skip through its end.
		if r == 0x1B {
			i = skipEscapeSequence(runes, i)
			continue
		}

		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// skipEscapeSequence returns the index of the last rune belonging to the
// escape sequence starting at start.
func skipEscapeSequence(runes []rune, start int) int {
	i := start + 1
	if i >= len(runes) {
		return i
	}

	switch runes[i] {
	case '[':
		// CSI: parameters then a final byte in @-~.
		for i++; i < len(runes); i++ {
			if runes[i] >= '@' && runes[i] <= '~' {
				return i
			}
		}
	case ']':
		// OSC: terminated by BEL or ESC \.
		for i++; i < len(runes); i++ {
			if runes[i] == 0x07 {
				return i
			}
			if runes[i] == 0x1B && i+1 < len(runes) && runes[i+1] == '\\' {
				return i + 1
			}
		}
	default:
		// Two-character sequence.
		return i
	}
	return len(runes) - 1
}
