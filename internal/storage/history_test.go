// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local question-and-answer history persistence.
package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryAppendAndRecent(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	if err := h.Append(ctx, "report.pdf", "first question", "first answer"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := h.Append(ctx, "report.pdf", "second question", "second answer"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Question != "second question" {
		t.Errorf("entries[0].Question = %q", entries[0].Question)
	}
	if entries[1].Answer != "first answer" {
		t.Errorf("entries[1].Answer = %q", entries[1].Answer)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Error("entries should have distinct IDs")
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestHistoryForDocument(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	h.Append(ctx, "report.pdf", "about the report", "report answer")
	h.Append(ctx, "manual.pdf", "about the manual", "manual answer")

	entries, err := h.ForDocument(ctx, "manual.pdf", 10)
	if err != nil {
		t.Fatalf("ForDocument failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Document != "manual.pdf" {
		t.Errorf("Document = %q", entries[0].Document)
	}
}

func TestHistoryRecentLimit(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := h.Append(ctx, "report.pdf", "q", "a"); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := h.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("len(entries) = %d, want 3", len(entries))
	}
}

func TestHistoryClear(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	h.Append(ctx, "report.pdf", "q", "a")
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestHistoryEmptyRecent(t *testing.T) {
	h := newTestHistory(t)
	entries, err := h.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestCurrentDocumentRoundTrip(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	name, err := h.CurrentDocument(ctx)
	if err != nil {
		t.Fatalf("CurrentDocument failed: %v", err)
	}
	if name != "" {
		t.Errorf("name = %q, want empty before any upload", name)
	}

	if err := h.SetCurrentDocument(ctx, "report.pdf"); err != nil {
		t.Fatalf("SetCurrentDocument failed: %v", err)
	}
	if err := h.SetCurrentDocument(ctx, "manual.pdf"); err != nil {
		t.Fatalf("SetCurrentDocument failed: %v", err)
	}

	name, err = h.CurrentDocument(ctx)
	if err != nil {
		t.Fatalf("CurrentDocument failed: %v", err)
	}
	if name != "manual.pdf" {
		t.Errorf("name = %q, want latest upload to win", name)
	}

	if err := h.ClearCurrentDocument(ctx); err != nil {
		t.Fatalf("ClearCurrentDocument failed: %v", err)
	}
	name, err = h.CurrentDocument(ctx)
	if err != nil {
		t.Fatalf("CurrentDocument failed: %v", err)
	}
	if name != "" {
		t.Errorf("name = %q, want empty after clear", name)
	}
}
