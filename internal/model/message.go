// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript,
// the active document, and the question quota.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the transcript.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Notice marks assistant-role messages that carry a client-generated
	// notice (quota reached, request failed) rather than a server answer.
	Notice bool `json:"notice,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message carrying a server answer.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewNoticeMessage creates an assistant-role message for a client-generated
// notice. Notices render in the transcript like answers but are never
// persisted to history.
func NewNoticeMessage(content string) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Notice = true
	return msg
}

// Preview returns a truncated single-line preview of the content.
func (m *Message) Preview(maxRunes int) string {
	return util.FirstLine(util.TruncateRunes(m.Content, maxRunes))
}
