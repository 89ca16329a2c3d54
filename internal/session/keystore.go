// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the authenticated session lifecycle.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/pdfchat-tui/internal/auth"
	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// secretFile holds the machine-local encryption secret
	secretFile = "secret.key"

	// tokenFile holds the encrypted session record
	tokenFile = "token.enc"

	// filePerm restricts key material to the owning user
	filePerm = 0600

	// dirPerm restricts the data directory to the owning user
	dirPerm = 0700
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoSession indicates no session record is stored
	ErrNoSession = errors.New("no stored session")

	// ErrInsecurePermissions indicates key material is readable by other users
	ErrInsecurePermissions = errors.New("key file has insecure permissions")
)

// =============================================================================
// KEYSTORE
// =============================================================================

// Keystore persists the session token record encrypted at rest. The
// encryption key is derived from a random machine-local secret created on
// first use, so the record is useless if copied off the machine without
// the secret file.
type Keystore struct {
	dir string
}

// NewKeystore creates a keystore rooted at dir.
func NewKeystore(dir string) *Keystore {
	return &Keystore{dir: dir}
}

// DefaultDir returns the per-user data directory (~/.pdfchat).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".pdfchat"), nil
}

// Save encrypts and persists the session record.
func (k *Keystore) Save(sess *auth.Session) error {
	if sess == nil {
		return errors.New("cannot save nil session")
	}

	secret, err := k.loadOrCreateSecret()
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	blob, err := encrypt(secret, plaintext)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(blob)
	return util.AtomicWriteFileWithDir(filepath.Join(k.dir, tokenFile), []byte(encoded), filePerm, dirPerm)
}

// Load decrypts and returns the stored session record. Returns ErrNoSession
// when no record exists.
func (k *Keystore) Load() (*auth.Session, error) {
	path := filepath.Join(k.dir, tokenFile)
	if err := verifyPermissions(path); err != nil {
		return nil, err
	}

	encoded, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	blob, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	secret, err := k.loadSecret()
	if err != nil {
		return nil, err
	}

	plaintext, err := decrypt(secret, blob)
	if err != nil {
		return nil, err
	}

	var sess auth.Session
	if err := json.Unmarshal(plaintext, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// Delete removes the stored session record. Removing an absent record is
// not an error.
func (k *Keystore) Delete() error {
	err := os.Remove(filepath.Join(k.dir, tokenFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session record: %w", err)
	}
	return nil
}

// =============================================================================
// SECRET MANAGEMENT
// =============================================================================

// loadOrCreateSecret returns the machine-local secret, generating it on
// first use.
func (k *Keystore) loadOrCreateSecret() ([]byte, error) {
	secret, err := k.loadSecret()
	if err == nil {
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	secret = make([]byte, keySize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(secret)
	if err := util.AtomicWriteFileWithDir(filepath.Join(k.dir, secretFile), []byte(encoded), filePerm, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to store secret: %w", err)
	}
	return secret, nil
}

// loadSecret reads the machine-local secret, verifying file permissions
// before trusting the contents.
func (k *Keystore) loadSecret() ([]byte, error) {
	path := filepath.Join(k.dir, secretFile)
	if err := verifyPermissions(path); err != nil {
		return nil, err
	}

	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	secret, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, errors.New("secret file is corrupted")
	}
	if len(secret) != keySize {
		return nil, errors.New("secret file has wrong key length")
	}
	return secret, nil
}

// verifyPermissions rejects key material readable by group or other.
// Missing files pass; callers handle absence separately.
func verifyPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if info.Mode().Perm()&0077 != 0 {
		return fmt.Errorf("%w: %s has mode %04o, want 0600", ErrInsecurePermissions, path, info.Mode().Perm())
	}
	return nil
}
