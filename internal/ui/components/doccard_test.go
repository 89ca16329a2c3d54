// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the pdfchat TUI.
package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

func TestDocCardNoDocument(t *testing.T) {
	card := NewDocCard(styles.NewTheme())
	out := card.View(model.Document{}, model.NewQuota())
	if !strings.Contains(out, "No document") {
		t.Errorf("empty card should show placeholder: %q", out)
	}
}

func TestDocCardProcessing(t *testing.T) {
	card := NewDocCard(styles.NewTheme())
	doc := model.NewDocument("report.pdf")
	out := card.View(doc, model.NewQuota())
	if !strings.Contains(out, "report.pdf") {
		t.Errorf("card should show document name: %q", out)
	}
	if !strings.Contains(out, "Processing") {
		t.Errorf("card should show processing status: %q", out)
	}
	if strings.Contains(out, "Questions:") {
		t.Error("quota should be hidden until the document is indexed")
	}
}

func TestDocCardIndexedShowsQuota(t *testing.T) {
	card := NewDocCard(styles.NewTheme())
	doc := model.NewDocument("report.pdf")
	doc.Status = model.StatusIndexed
	out := card.View(doc, model.Quota{Used: 3, Limit: 10})
	if !strings.Contains(out, "Indexed") {
		t.Errorf("card should show indexed status: %q", out)
	}
	if !strings.Contains(out, "3 / 10") {
		t.Errorf("card should show the counter: %q", out)
	}
}

func TestDocCardTruncatesLongNames(t *testing.T) {
	card := NewDocCard(styles.NewTheme())
	card.SetWidth(20)
	doc := model.NewDocument("a-very-long-document-name-that-cannot-fit.pdf")
	out := card.View(doc, model.NewQuota())
	if !strings.Contains(out, "…") {
		t.Errorf("long names should be truncated: %q", out)
	}
}
