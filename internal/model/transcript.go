// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript,
// the active document, and the question quota.
package model

import "time"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered sequence of messages for the active document.
// Messages are append-only; the whole transcript is cleared when a new
// document upload begins.
type Transcript struct {
	Messages  []*Message `json:"messages"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		Messages:  make([]*Message, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message to the transcript.
func (t *Transcript) Append(msg *Message) {
	t.Messages = append(t.Messages, msg)
	t.UpdatedAt = time.Now()
}

// AppendUser creates and appends a user message.
func (t *Transcript) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	t.Append(msg)
	return msg
}

// AppendAssistant creates and appends an assistant message.
func (t *Transcript) AppendAssistant(content string) *Message {
	msg := NewAssistantMessage(content)
	t.Append(msg)
	return msg
}

// AppendNotice creates and appends a client-generated notice.
func (t *Transcript) AppendNotice(content string) *Message {
	msg := NewNoticeMessage(content)
	t.Append(msg)
	return msg
}

// Last returns the most recent message, or nil if empty.
func (t *Transcript) Last() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[len(t.Messages)-1]
}

// LastAssistant returns the most recent assistant message, or nil.
func (t *Transcript) LastAssistant() *Message {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == RoleAssistant {
			return t.Messages[i]
		}
	}
	return nil
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.Messages)
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.Messages) == 0
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.Messages = make([]*Message, 0)
	t.UpdatedAt = time.Now()
}

// History returns the messages for display.
func (t *Transcript) History() []*Message {
	return t.Messages
}
