// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript,
// the active document, and the question quota.
package model

import (
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want 'user'", msg.Role)
	}
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want 'Hello'", msg.Content)
	}
	if msg.ID == "" {
		t.Error("ID should not be empty")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage("The total is $500.")

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want 'assistant'", msg.Role)
	}
	if msg.Notice {
		t.Error("answer messages should not be notices")
	}
}

func TestNewNoticeMessage(t *testing.T) {
	msg := NewNoticeMessage("Something went wrong. Please try again.")

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want 'assistant'", msg.Role)
	}
	if !msg.Notice {
		t.Error("Notice should be true")
	}
}

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestNewTranscript(t *testing.T) {
	tr := NewTranscript()

	if !tr.IsEmpty() {
		t.Error("new transcript should be empty")
	}
	if tr.Last() != nil {
		t.Error("Last() on empty transcript should be nil")
	}
}

func TestTranscript_AppendOrder(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("What is the total?")
	tr.AppendAssistant("The total is $500.")

	if tr.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tr.Len())
	}
	if tr.Messages[0].Role != RoleUser {
		t.Errorf("first message role = %q, want user", tr.Messages[0].Role)
	}
	if tr.Messages[1].Role != RoleAssistant {
		t.Errorf("second message role = %q, want assistant", tr.Messages[1].Role)
	}
	if tr.Messages[1].Content != "The total is $500." {
		t.Errorf("assistant content = %q", tr.Messages[1].Content)
	}
}

func TestTranscript_LastAssistant(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("one")
	tr.AppendAssistant("two")
	tr.AppendUser("three")

	last := tr.LastAssistant()
	if last == nil || last.Content != "two" {
		t.Errorf("LastAssistant = %v, want content 'two'", last)
	}
}

func TestTranscript_Clear(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("hello")
	tr.Clear()

	if !tr.IsEmpty() {
		t.Error("transcript should be empty after Clear")
	}
}

// =============================================================================
// DOCUMENT TESTS
// =============================================================================

func TestNewDocument(t *testing.T) {
	doc := NewDocument("report.pdf")

	if doc.Name != "report.pdf" {
		t.Errorf("Name = %q, want 'report.pdf'", doc.Name)
	}
	if doc.Status != StatusProcessing {
		t.Errorf("Status = %v, want processing", doc.Status)
	}
	if doc.Queryable() {
		t.Error("processing document should not be queryable")
	}
}

func TestDocStatusString(t *testing.T) {
	tests := []struct {
		status DocStatus
		want   string
	}{
		{StatusIdle, "idle"},
		{StatusProcessing, "processing"},
		{StatusIndexed, "indexed"},
		{DocStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

// =============================================================================
// QUOTA TESTS
// =============================================================================

func TestQuota_Exhausted(t *testing.T) {
	q := Quota{Used: 10, Limit: 10}
	if !q.Exhausted() {
		t.Error("quota at limit should be exhausted")
	}

	q = Quota{Used: 9, Limit: 10}
	if q.Exhausted() {
		t.Error("quota below limit should not be exhausted")
	}
}

func TestQuota_Remaining(t *testing.T) {
	q := Quota{Used: 3, Limit: 10}
	if got := q.Remaining(); got != 7 {
		t.Errorf("Remaining = %d, want 7", got)
	}

	// Never negative, even if the server lowered the limit below usage.
	q = Quota{Used: 12, Limit: 10}
	if got := q.Remaining(); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}

func TestQuota_String(t *testing.T) {
	q := Quota{Used: 2, Limit: 5}
	if got := q.String(); got != "2 / 5" {
		t.Errorf("String = %q, want '2 / 5'", got)
	}
}
