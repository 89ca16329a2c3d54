// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the HTTP client for the hosted identity provider.
package auth

import "time"

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is an authenticated grant from the identity provider. The access
// token authorizes API calls; the refresh token mints a new session when the
// access token expires.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Expired reports whether the access token is past its expiry. Sessions
// without a recorded expiry are treated as live; the server rejects them
// with 401 if they are not.
func (s *Session) Expired() bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// =============================================================================
// USER TYPE
// =============================================================================

// User identifies the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	// EmailConfirmedAt is zero until the user has verified their address.
	EmailConfirmedAt time.Time `json:"email_confirmed_at"`
}

// Verified reports whether the user has confirmed their email address.
func (u User) Verified() bool {
	return !u.EmailConfirmedAt.IsZero()
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// tokenResponse is the provider's response to password and refresh grants.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// signUpResponse is the provider's response to a sign-up request. The
// session fields are empty when the provider requires email verification
// before issuing tokens.
type signUpResponse struct {
	tokenResponse

	// When verification is pending the provider returns the bare user
	// record at the top level instead of a session envelope.
	ID    string `json:"id"`
	Email string `json:"email"`
}

// providerError is the provider's error envelope. Older deployments use
// "msg"; newer ones use "error_description".
type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

// message returns the most specific human-readable message available.
func (e providerError) message() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	default:
		return e.Error
	}
}
