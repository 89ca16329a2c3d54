// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the authenticated session lifecycle.
//
// The Store is the single source of truth for "who is signed in". It
// keeps the current session in memory, mirrors every change to an
// encrypted on-disk record, and restores the session on startup by
// exchanging the stored refresh token when the access token has expired.
//
// View code must not render any signed-in surface until Resolve has
// completed; a nil result means signed out, an error means the check
// could not run and should be retried rather than treated as sign-out.
//
// Token material is encrypted at rest with AES-256-GCM under a key
// derived (PBKDF2-SHA-256) from a random machine-local secret. Both the
// secret and the record live in ~/.pdfchat with 0600 permissions, and
// reads refuse files that group or other can access.
package session
