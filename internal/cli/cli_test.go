// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/auth"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, _ := parseFrom(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"tui", []string{"tui"}, CmdTUI},
		{"login", []string{"login"}, CmdLogin},
		{"signin alias", []string{"signin"}, CmdLogin},
		{"logout", []string{"logout"}, CmdLogout},
		{"upload", []string{"upload", "a.pdf"}, CmdUpload},
		{"ask", []string{"ask", "what", "is", "this"}, CmdAsk},
		{"repl", []string{"repl"}, CmdRepl},
		{"chat alias", []string{"chat"}, CmdRepl},
		{"limits", []string{"limits"}, CmdLimits},
		{"quota alias", []string{"quota"}, CmdLimits},
		{"history", []string{"history"}, CmdHistory},
		{"reset", []string{"reset"}, CmdReset},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := parseFrom(tt.args)
			if cmd != tt.want {
				t.Errorf("parseFrom(%v) = %v, want %v", tt.args, cmd, tt.want)
			}
		})
	}
}

func TestParseUnknownCommandBecomesQuestion(t *testing.T) {
	cmd, args := parseFrom([]string{"what", "is", "the", "total?"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.Query != "what is the total?" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parseFrom([]string{"--json", "-q", "limits"})
	if cmd != CmdLimits {
		t.Fatalf("cmd = %v", cmd)
	}
	if !args.JSON || !args.Quiet {
		t.Errorf("JSON = %v, Quiet = %v", args.JSON, args.Quiet)
	}
}

func TestParseAskFlags(t *testing.T) {
	cmd, args := parseFrom([]string{"--plain", "ask", "summarize", "this"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v", cmd)
	}
	if !args.Plain {
		t.Error("Plain should be set")
	}
	if args.Query != "summarize this" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseUploadFile(t *testing.T) {
	_, args := parseFrom([]string{"upload", "./docs/report.pdf"})
	if args.File != "./docs/report.pdf" {
		t.Errorf("File = %q", args.File)
	}
}

func TestParseHistoryFlags(t *testing.T) {
	_, args := parseFrom([]string{"history", "--limit", "10", "--document=report.pdf"})
	if args.Subcommand != "10" {
		t.Errorf("limit = %q", args.Subcommand)
	}
	if args.Query != "report.pdf" {
		t.Errorf("document = %q", args.Query)
	}
}

// =============================================================================
// EXIT CODE TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"usage", &UsageError{Command: "ask", Reason: "missing"}, ExitUsageError},
		{"not signed in", ErrNotSignedIn, ExitAuthError},
		{"unauthorized", api.ErrUnauthorized, ExitAuthError},
		{"auth error", &auth.AuthError{Type: auth.ErrTypeInvalidCredentials, Message: "nope"}, ExitAuthError},
		{"quota", api.ErrQuotaExceeded, ExitQuotaError},
		{"upload limited", api.ErrUploadLimited, ExitQuotaError},
		{"not configured", api.ErrNotConfigured, ExitConfigError},
		{"api 500", &api.APIError{Status: 500, Message: "oops"}, ExitNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

// =============================================================================
// USAGE ERROR TESTS
// =============================================================================

func TestUsageErrorMessage(t *testing.T) {
	err := &UsageError{Command: "upload", Reason: "a file path is required", Example: "upload ./report.pdf"}
	msg := err.Error()
	if msg != "upload: a file path is required\nExample: pdfchat upload ./report.pdf" {
		t.Errorf("Error() = %q", msg)
	}
}
