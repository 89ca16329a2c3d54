// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript,
// the active document, and the question quota.
package model

import "time"

// =============================================================================
// DOCUMENT STATUS
// =============================================================================

// DocStatus is the server-side indexing state of the most recently uploaded
// document, as observed by the client.
type DocStatus int

const (
	// StatusIdle means no document is active (or the last upload failed).
	StatusIdle DocStatus = iota

	// StatusProcessing means an upload is in flight and the server is
	// parsing and indexing the document.
	StatusProcessing

	// StatusIndexed means the document is queryable.
	StatusIndexed
)

// String returns the status name for display.
func (s DocStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusProcessing:
		return "processing"
	case StatusIndexed:
		return "indexed"
	default:
		return "unknown"
	}
}

// DisplayName returns the status label shown in the document card.
func (s DocStatus) DisplayName() string {
	switch s {
	case StatusProcessing:
		return "Processing…"
	case StatusIndexed:
		return "Indexed"
	default:
		return "—"
	}
}

// =============================================================================
// DOCUMENT TYPE
// =============================================================================

// Document describes the active document. Each upload supersedes the
// previous document entirely; documents are never merged.
type Document struct {
	Name       string    `json:"name"`
	Status     DocStatus `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewDocument creates a document entering the processing state.
func NewDocument(name string) Document {
	return Document{
		Name:       name,
		Status:     StatusProcessing,
		UploadedAt: time.Now(),
	}
}

// Queryable reports whether questions may be asked about the document.
func (d Document) Queryable() bool {
	return d.Status == StatusIndexed
}
