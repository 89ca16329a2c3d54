// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the document chat view for the TUI.
//
// The view is a thin shell over the controller: a sidebar document card
// with the question counter, a viewport transcript, and an input line
// that accepts questions and slash commands (/upload, /history, /reset,
// /logout). All lifecycle rules live in the controller; the view only
// decides what to draw and which background command to fire.
//
// The question counter is synced from the server when the view mounts
// and after every ask.
package chat
