// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the HTTP client for the hosted identity provider.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// AuthError represents an error from the identity provider client.
type AuthError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes provider errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeInvalidCredentials
	ErrTypeProviderRejected
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrTimeout            = &AuthError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrInvalidCredentials = &AuthError{Type: ErrTypeInvalidCredentials, Message: "invalid email or password"}
)

// IsInvalidCredentials checks if an error is a credential rejection.
func IsInvalidCredentials(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Type == ErrTypeInvalidCredentials
	}
	return errors.Is(err, ErrInvalidCredentials)
}

// =============================================================================
// PROVIDER INTERFACE
// =============================================================================

// Provider is the narrow identity-provider contract the rest of the
// application depends on. The concrete Client implements it against the
// hosted auth service; tests substitute fakes.
type Provider interface {
	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)

	// SignUp registers a new account. The returned session is nil when the
	// provider requires email verification before issuing tokens.
	SignUp(ctx context.Context, email, password string) (*Session, error)

	// SignInWithOAuth returns the provider-hosted authorize URL for the
	// named OAuth provider; the caller opens it in a browser. redirectTo
	// is where the provider sends the user after consent.
	SignInWithOAuth(provider, redirectTo string) (string, error)

	// Refresh exchanges a refresh token for a fresh session.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	// User fetches the account behind an access token.
	User(ctx context.Context, accessToken string) (*User, error)

	// SignOut revokes the session behind an access token.
	SignOut(ctx context.Context, accessToken string) error
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the provider client.
type ClientConfig struct {
	// BaseURL is the auth service base URL, e.g.
	// https://project.example.co/auth/v1
	BaseURL string

	// AnonKey is the project's public API key, sent on every request.
	AnonKey string

	// Timeout for requests (default: 15s).
	Timeout time.Duration
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to a GoTrue-compatible identity service. It implements
// only the operations the application needs; it is not a full SDK.
//
// The Client is safe for concurrent use.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a provider client.
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// =============================================================================
// PASSWORD AUTH
// =============================================================================

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	if err := c.post(ctx, "/token?grant_type=password", "", body, &resp); err != nil {
		return nil, err
	}
	return sessionFromToken(resp), nil
}

// SignUp registers a new account. Returns a nil session when the provider
// withholds tokens pending email verification.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp signUpResponse
	if err := c.post(ctx, "/signup", "", body, &resp); err != nil {
		return nil, err
	}

	// No access token means the account was created but verification is
	// pending; the caller surfaces the verify-your-email message.
	if resp.AccessToken == "" {
		return nil, nil
	}
	return sessionFromToken(resp.tokenResponse), nil
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var resp tokenResponse
	if err := c.post(ctx, "/token?grant_type=refresh_token", "", body, &resp); err != nil {
		return nil, err
	}
	return sessionFromToken(resp), nil
}

// =============================================================================
// OAUTH
// =============================================================================

// SignInWithOAuth returns the provider-hosted authorize URL. Opening it is
// the caller's responsibility; the provider redirects to redirectTo with
// the session tokens after consent.
func (c *Client) SignInWithOAuth(provider, redirectTo string) (string, error) {
	if provider == "" {
		return "", &AuthError{Type: ErrTypeProviderRejected, Message: "OAuth provider name is empty"}
	}

	base, err := url.Parse(c.config.BaseURL + "/authorize")
	if err != nil {
		return "", &AuthError{Type: ErrTypeInvalidResponse, Message: "invalid auth base URL", Cause: err}
	}

	q := base.Query()
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	base.RawQuery = q.Encode()

	return base.String(), nil
}

// =============================================================================
// SESSION QUERIES
// =============================================================================

// User fetches the account behind an access token.
func (c *Client) User(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/user", nil)
	if err != nil {
		return nil, &AuthError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &AuthError{Type: ErrTypeConnection, Message: "auth service unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, &AuthError{Type: ErrTypeInvalidResponse, Message: "failed to decode user", Cause: err}
	}
	return &user, nil
}

// SignOut revokes the session behind an access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/logout", nil)
	if err != nil {
		return &AuthError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &AuthError{Type: ErrTypeConnection, Message: "auth service unreachable", Cause: err}
	}
	defer resp.Body.Close()

	// 204 on success; an already-revoked token is not an error worth
	// surfacing during logout.
	if resp.StatusCode >= 500 {
		return decodeError(resp)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// post sends a JSON body and decodes a JSON response.
func (c *Client) post(ctx context.Context, path, accessToken string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &AuthError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &AuthError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &AuthError{Type: ErrTypeConnection, Message: "auth service unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &AuthError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// setHeaders attaches the project key and, when present, the bearer token.
func (c *Client) setHeaders(req *http.Request, accessToken string) {
	if c.config.AnonKey != "" {
		req.Header.Set("apikey", c.config.AnonKey)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

// decodeError converts a non-2xx provider response into an AuthError,
// preserving the provider's message verbatim for display.
func decodeError(resp *http.Response) error {
	var pe providerError
	_ = json.NewDecoder(resp.Body).Decode(&pe)

	msg := pe.message()
	if msg == "" {
		msg = "auth request failed: " + resp.Status
	}

	errType := ErrTypeProviderRejected
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		errType = ErrTypeInvalidCredentials
	}

	return &AuthError{Type: errType, Message: msg}
}

// sessionFromToken converts a token grant into a Session, resolving the
// relative expiry into an absolute instant.
func sessionFromToken(resp tokenResponse) *Session {
	s := &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		User:         resp.User,
	}
	if resp.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return s
}
