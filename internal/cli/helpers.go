// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface functionality.
// This file contains shared wiring used across multiple CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/auth"
	"github.com/jeranaias/pdfchat-tui/internal/config"
	"github.com/jeranaias/pdfchat-tui/internal/session"
	"github.com/jeranaias/pdfchat-tui/internal/storage"
)

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// App bundles the clients every command needs. Build it once per
// command invocation with NewApp.
type App struct {
	Config  *config.Config
	Auth    *auth.Client
	Store   *session.Store
	Backend *api.Client
}

// NewApp wires the auth client, session store, and backend client from
// the global config.
func NewApp() (*App, error) {
	cfg := config.Global()

	dir, err := session.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate data directory: %w", err)
	}

	authClient := auth.NewClient(auth.ClientConfig{
		BaseURL: cfg.Auth.URL,
		AnonKey: cfg.Auth.AnonKey,
		Timeout: cfg.Auth.Timeout(),
	})
	store := session.NewStore(authClient, session.NewKeystore(dir))

	backend := api.NewClient(api.ClientConfig{
		BaseURL:       cfg.Backend.URL,
		Tokens:        SessionTokens(store),
		Timeout:       cfg.Backend.Timeout(),
		UploadTimeout: cfg.Backend.UploadTimeout(),
	})

	return &App{
		Config:  cfg,
		Auth:    authClient,
		Store:   store,
		Backend: backend,
	}, nil
}

// SessionTokens adapts a session store to the backend's token source.
func SessionTokens(store *session.Store) api.TokenSource {
	return func() string {
		if sess := store.Current(); sess != nil {
			return sess.AccessToken
		}
		return ""
	}
}

// RequireSession resolves the saved session and fails when signed out.
// Commands that talk to the backend call this first.
func (a *App) RequireSession(ctx context.Context) error {
	sess, err := a.Store.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if sess == nil {
		return ErrNotSignedIn
	}
	return nil
}

// OpenHistory opens the question history store when enabled in config.
// Returns nil without error when history is disabled.
func (a *App) OpenHistory() (*storage.History, error) {
	if !a.Config.History.Enabled {
		return nil, nil
	}
	path, err := a.Config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return storage.OpenHistory(path)
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// outputJSON outputs data as indented JSON on stdout.
func outputJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
