// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
//
// One form serves both modes; Ctrl+T flips between them. Validation
// runs locally before any provider call, provider error messages are
// shown verbatim, and a sign-up that requires email verification flips
// the form back to sign-in with an explanatory note. "Continue with
// Google" runs the browser OAuth round trip against a localhost
// redirect listener.
//
// On success the view stores the session and emits SignedInMsg for the
// parent model to route on.
package authview
