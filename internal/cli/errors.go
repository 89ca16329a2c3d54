// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands in pdfchat.
//
// STANDARDIZED PATTERN:
//   - ALWAYS return errors (never just print and return nil)
//   - Let the caller decide how to display errors
//   - Map error categories to distinct exit codes
//
// ERROR HANDLING: Errors must not be silently ignored
package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/auth"
	"github.com/jeranaias/pdfchat-tui/internal/session"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates authentication or authorization failure
	ExitAuthError = 4
	// ExitNetworkError indicates network or connectivity error
	ExitNetworkError = 5
	// ExitQuotaError indicates the question or upload limit was reached
	ExitQuotaError = 6
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError represents invalid command usage.
type UsageError struct {
	Command string // Command that was misused (e.g., "upload")
	Reason  string // Human-readable reason
	Example string // Example of valid usage (optional)
}

func (e *UsageError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Command, e.Reason)
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: pdfchat %s", e.Example)
	}
	return msg
}

// ErrNotSignedIn is returned by commands that need a session when no
// saved session exists.
var ErrNotSignedIn = errors.New("not signed in; run 'pdfchat login' first")

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var authErr *auth.AuthError
	switch {
	case errors.Is(err, ErrNotSignedIn),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, api.ErrUnauthorized),
		errors.As(err, &authErr):
		return ExitAuthError

	case errors.Is(err, api.ErrQuotaExceeded),
		errors.Is(err, api.ErrUploadLimited):
		return ExitQuotaError

	case errors.Is(err, api.ErrNotConfigured):
		return ExitConfigError
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return ExitNetworkError
	}

	return ExitGeneralError
}
