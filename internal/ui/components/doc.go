// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the pdfchat TUI.
//
// The components are small, self-contained pieces shared by the auth and
// chat views: the glamour markdown renderer (with escape-sequence
// sanitization for untrusted answer text), chroma syntax highlighting
// for plain output modes, the loading spinner, and the document card.
package components
