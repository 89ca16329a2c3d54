// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller implements the document and chat lifecycle rules.
package controller

import (
	"context"
	"io"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// =============================================================================
// UPLOAD
// =============================================================================

// Upload replaces the current document. The transcript and question
// counter are cleared BEFORE the network call so no stale conversation
// can be seen next to the new document, even if indexing fails. While
// the upload runs the document reads as processing; on success it
// becomes indexed, on failure it falls back to idle with no document
// name, the transcript and counter already cleared.
//
// A second upload while one is in flight is rejected with
// ErrUploadInFlight rather than queued.
func (c *Controller) Upload(ctx context.Context, filename string, r io.Reader) (*api.UploadResult, error) {
	c.mu.Lock()
	if c.uploading {
		c.mu.Unlock()
		return nil, ErrUploadInFlight
	}
	if c.awaiting {
		c.mu.Unlock()
		return nil, ErrAwaitingAnswer
	}

	c.uploading = true
	c.transcript.Clear()
	c.quota.Used = 0
	c.document = model.NewDocument(filename)
	c.mu.Unlock()

	// The flag clears on every exit path, including panics in the
	// backend call.
	defer func() {
		c.mu.Lock()
		c.uploading = false
		c.mu.Unlock()
	}()

	result, err := c.backend.Upload(ctx, filename, r)

	c.mu.Lock()
	if err != nil {
		// The failed file's name must not linger as the current document.
		c.document = model.Document{}
		c.mu.Unlock()
		return nil, err
	}

	c.document.Status = model.StatusIndexed
	if result.Document != "" {
		c.document.Name = result.Document
	}
	name := c.document.Name
	c.mu.Unlock()

	if c.history != nil {
		// Best effort: one-shot commands in other processes read this to
		// tag their history entries.
		_ = c.history.SetCurrentDocument(ctx, name)
	}
	return result, nil
}

// =============================================================================
// RESET
// =============================================================================

// Reset discards the server-side index and counter, then clears the
// local state to match. Local state is untouched when the server call
// fails.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.uploading {
		c.mu.Unlock()
		return ErrUploadInFlight
	}
	if c.awaiting {
		c.mu.Unlock()
		return ErrAwaitingAnswer
	}
	c.mu.Unlock()

	if err := c.backend.Reset(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.transcript.Clear()
	c.quota.Used = 0
	c.document = model.Document{}
	c.mu.Unlock()

	if c.history != nil {
		_ = c.history.ClearCurrentDocument(ctx)
	}
	return nil
}
