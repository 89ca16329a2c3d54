// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - Sign-in and sign-out commands for pdfchat.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// =============================================================================
// LOGIN COMMAND
// =============================================================================

// HandleLogin signs in with email and password and persists the session.
// An account whose email address is unverified is rejected without
// saving anything.
func HandleLogin(args Args) error {
	if err := RequiresTTY("sign in"); err != nil {
		return err
	}

	app, err := NewApp()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Already signed in?
	if sess, err := app.Store.Resolve(ctx); err == nil && sess != nil {
		fmt.Printf("Already signed in as %s. Run 'pdfchat logout' to switch accounts.\n", sess.User.Email)
		return nil
	}

	email := promptInput("Email: ")
	if email == "" {
		return &UsageError{Command: "login", Reason: "email is required"}
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return &UsageError{Command: "login", Reason: "password is required"}
	}

	sess, err := app.Auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		// Provider messages are shown verbatim ("Invalid login
		// credentials" and the like).
		return err
	}

	if !sess.User.Verified() {
		fmt.Println(RenderConditional(WarningStyle, "Please verify your email address, then sign in again."))
		return nil
	}

	if err := app.Store.SetSession(sess); err != nil {
		return fmt.Errorf("signed in but failed to save the session: %w", err)
	}

	fmt.Println(RenderConditional(SuccessStyle, "Signed in as "+sess.User.Email))
	return nil
}

// =============================================================================
// LOGOUT COMMAND
// =============================================================================

// HandleLogout revokes the session and deletes the saved token.
func HandleLogout(args Args) error {
	app, err := NewApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, err := app.Store.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if sess == nil {
		fmt.Println("Not signed in.")
		return nil
	}

	if err := app.Store.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// promptInput prompts the user for a line of input.
func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads a password from stdin without echoing.
// Uses golang.org/x/term for secure cross-platform password input.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // Add newline after hidden input

	return strings.TrimSpace(string(passBytes)), nil
}
