// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the authenticated session lifecycle.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jeranaias/pdfchat-tui/internal/auth"
)

// =============================================================================
// CHANGE NOTIFICATION
// =============================================================================

// ChangeHandler is invoked whenever the current session changes. The
// session is nil after sign-out.
type ChangeHandler func(sess *auth.Session)

// =============================================================================
// STORE
// =============================================================================

// Store holds the current session in memory and mirrors every change to
// the durable keystore record: sign-in writes the record, sign-out removes
// it. Resolve restores the session on startup, refreshing through the
// provider when the stored access token has expired.
//
// The Store is safe for concurrent use. Change handlers run outside the
// lock.
type Store struct {
	mu       sync.Mutex
	provider auth.Provider
	keystore *Keystore
	current  *auth.Session
	handlers []ChangeHandler
}

// NewStore creates a session store backed by the given provider and
// keystore.
func NewStore(provider auth.Provider, keystore *Keystore) *Store {
	return &Store{
		provider: provider,
		keystore: keystore,
	}
}

// OnChange registers a handler invoked on every session change.
func (s *Store) OnChange(h ChangeHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Current returns the in-memory session without touching disk or network.
// Nil means signed out or not yet resolved.
func (s *Store) Current() *auth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Resolve determines the current session, restoring it from the durable
// record when memory is empty. A stored session whose access token has
// expired is refreshed through the provider; if the refresh is rejected
// the stale record is dropped. Resolve returns (nil, nil) when the user
// is simply signed out; an error means the check itself could not
// complete and the caller should not treat the user as signed out.
func (s *Store) Resolve(ctx context.Context) (*auth.Session, error) {
	s.mu.Lock()
	if s.current != nil && !s.current.Expired() {
		sess := s.current
		s.mu.Unlock()
		return sess, nil
	}
	stored := s.current
	s.mu.Unlock()

	if stored == nil {
		var err error
		stored, err = s.keystore.Load()
		if errors.Is(err, ErrNoSession) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}

	if !stored.Expired() {
		_ = s.setSession(stored, false)
		return stored, nil
	}

	if stored.RefreshToken == "" {
		_ = s.clearSession()
		return nil, nil
	}

	fresh, err := s.provider.Refresh(ctx, stored.RefreshToken)
	if err != nil {
		var authErr *auth.AuthError
		if errors.As(err, &authErr) && authErr.Type == auth.ErrTypeInvalidCredentials {
			// Refresh token revoked or consumed; the record is dead.
			_ = s.clearSession()
			return nil, nil
		}
		return nil, err
	}

	_ = s.setSession(fresh, true)
	return fresh, nil
}

// SetSession installs a freshly granted session and notifies handlers.
// The returned error reports a failed keystore write; the in-memory
// session is installed either way, so the caller stays signed in for
// this run and only loses restore-on-restart.
func (s *Store) SetSession(sess *auth.Session) error {
	return s.setSession(sess, true)
}

// Clear signs out: revokes the session with the provider, removes the
// durable record, and notifies handlers with nil. Provider errors are
// ignored so a dead network cannot block local sign-out; the returned
// error reports a failed keystore delete.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current != nil && current.AccessToken != "" {
		_ = s.provider.SignOut(ctx, current.AccessToken)
	}
	return s.clearSession()
}

// =============================================================================
// INTERNALS
// =============================================================================

// setSession swaps the current session and optionally persists it, then
// notifies handlers outside the lock. The returned error is the
// keystore write failure, if any; the in-memory swap always happens.
func (s *Store) setSession(sess *auth.Session, persist bool) error {
	s.mu.Lock()
	s.current = sess
	handlers := make([]ChangeHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	var err error
	if persist && sess != nil {
		err = s.keystore.Save(sess)
	}

	for _, h := range handlers {
		h(sess)
	}
	return err
}

// clearSession drops the current session and durable record, then
// notifies handlers with nil. The returned error is the keystore
// delete failure, if any.
func (s *Store) clearSession() error {
	s.mu.Lock()
	s.current = nil
	handlers := make([]ChangeHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	err := s.keystore.Delete()

	for _, h := range handlers {
		h(nil)
	}
	return err
}
