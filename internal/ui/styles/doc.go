// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the pdfchat TUI.
//
// All colors are lipgloss.AdaptiveColor pairs so the interface reads
// well on both light and dark terminals, and the Theme detects the
// terminal's color profile through termenv at startup.
package styles
