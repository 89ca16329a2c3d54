// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the client for the document question-answering
// backend.
//
// The backend exposes four operations: upload-and-index a PDF, ask a
// question about the indexed document, read the authoritative question
// counter, and reset the server-side state. Every request carries the
// session's bearer token, supplied per call through a TokenSource so
// token refreshes are picked up automatically.
//
// Rate responses are mapped to sentinels the UI switches on: a 429 from
// the ask endpoint is ErrQuotaExceeded (the per-document question quota),
// a 429 from the upload endpoint is ErrUploadLimited.
package api
