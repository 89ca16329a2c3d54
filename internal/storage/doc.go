// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local question-and-answer history persistence.
//
// Every successfully answered question is appended to a SQLite database
// under ~/.pdfchat so past sessions remain reviewable offline. Only
// settled exchanges are recorded: optimistic sends that fail or hit the
// quota never reach the history.
//
// # Usage
//
//	h, err := storage.OpenHistory(filepath.Join(dir, "history.db"))
//	defer h.Close()
//
//	err = h.Append(ctx, "report.pdf", question, answer)
//	entries, err := h.Recent(ctx, 20)
package storage
