// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript,
// the active document, and the question quota.
package model

import "fmt"

// =============================================================================
// QUOTA COUNTER
// =============================================================================

// DefaultQuestionLimit is used until the first successful limits sync.
const DefaultQuestionLimit = 10

// Quota mirrors the server's daily question quota. Used is incremented
// optimistically on each submitted question; the server-reported values
// overwrite both fields on every sync (server wins).
type Quota struct {
	Used  int `json:"questions_used"`
	Limit int `json:"questions_limit"`
}

// NewQuota returns a quota with the default limit and nothing used.
func NewQuota() Quota {
	return Quota{Used: 0, Limit: DefaultQuestionLimit}
}

// Exhausted reports whether no further questions may be submitted.
func (q Quota) Exhausted() bool {
	return q.Used >= q.Limit
}

// Remaining returns the number of questions left, never negative.
func (q Quota) Remaining() int {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}

// String renders the counter as shown in the sidebar.
func (q Quota) String() string {
	return fmt.Sprintf("%d / %d", q.Used, q.Limit)
}
