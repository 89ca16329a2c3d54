// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller implements the document and chat lifecycle rules.
//
// The Controller is the view-free core of the application: it owns the
// transcript, the document status, the question counter, and the
// in-flight flags, and it enforces the ordering rules the UI relies on:
//
//   - a new upload clears the transcript and counter before any network
//     traffic, and the document reads as processing until the backend
//     acknowledges indexing
//   - questions are appended and counted optimistically, then settled by
//     the answer, a quota notice, or a failure notice
//   - only one upload and one question may be in flight at a time;
//     everything else is rejected, not queued
//   - the server's question counter overwrites the local one whenever a
//     limits sync succeeds, and sync failures are silent
//
// Views call the blocking methods from background commands and render
// from Snapshot copies.
package controller
