// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript,
// the active document, and the question quota.
//
// # Key Types
//
//   - Transcript: append-only message sequence for the active document
//   - Message: single message with role, content, and timestamp
//   - Document: name and indexing status of the active upload
//   - Quota: optimistic mirror of the server's daily question quota
//
// # Usage
//
// Build a transcript:
//
//	tr := model.NewTranscript()
//	tr.AppendUser("What is the total on page 3?")
//	tr.AppendAssistant("The total is $500.")
//
// Track the document lifecycle:
//
//	doc := model.NewDocument("report.pdf") // status: processing
//	doc.Status = model.StatusIndexed
package model
