// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the pdfchat TUI.
package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// A few representative styles must render without panicking.
	if out := theme.UserBubble.Render("hello"); out == "" {
		t.Error("UserBubble render is empty")
	}
	if out := theme.NoticeBubble.Render("notice"); out == "" {
		t.Error("NoticeBubble render is empty")
	}
	if out := theme.AuthTitle.Render("Sign in"); out == "" {
		t.Error("AuthTitle render is empty")
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize = %dx%d", theme.Width, theme.Height)
	}
}
