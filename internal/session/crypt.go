// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the authenticated session lifecycle: the
// in-memory current session, the encrypted on-disk token record, and
// restore-on-startup via the refresh token.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// keySize is the AES-256 key length in bytes
	keySize = 32

	// saltSize is the PBKDF2 salt length in bytes
	saltSize = 16

	// nonceSize is the GCM nonce length in bytes
	nonceSize = 12

	// pbkdf2Iterations follows OWASP guidance for PBKDF2-SHA-256
	pbkdf2Iterations = 600000
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidCiphertext indicates the stored blob is malformed
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// ErrDecryptionFailed indicates decryption failed (wrong key or tampered data)
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")
)

// =============================================================================
// ENCRYPT / DECRYPT
// =============================================================================

// encrypt seals plaintext with AES-256-GCM under a key derived from the
// machine-local secret. The output layout is salt || nonce || ciphertext;
// the salt is fresh per call so identical plaintexts never produce
// identical blobs.
func encrypt(secret, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := newAEAD(secret, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+nonceSize+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// decrypt opens a blob produced by encrypt.
func decrypt(secret, blob []byte) ([]byte, error) {
	if len(blob) < saltSize+nonceSize {
		return nil, ErrInvalidCiphertext
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	aead, err := newAEAD(secret, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// newAEAD derives an AES-256-GCM cipher from the secret and salt.
func newAEAD(secret, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(secret, salt, pbkdf2Iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}
