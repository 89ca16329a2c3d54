// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller implements the document and chat lifecycle rules.
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// =============================================================================
// NOTICE TEXT
// =============================================================================

const (
	// QuotaNotice is shown in the transcript when the question quota is
	// spent, whether detected locally or reported by the server.
	QuotaNotice = "You have reached the question limit for this document. Upload a new document to continue."

	// FailureNotice is shown for any other failed question.
	FailureNotice = "Something went wrong while answering. Please try again."
)

// =============================================================================
// SEND
// =============================================================================

// Send submits a question. The user message is appended and the counter
// incremented optimistically, before the network call, so the transcript
// reflects the question immediately. The awaiting flag is held for the
// duration of the call and cleared on every exit path.
//
// Outcomes:
//   - answer arrives: assistant message appended, exchange recorded in
//     history
//   - quota rejection (locally detected or server 429): quota notice
//     appended, no history record
//   - any other failure: generic failure notice appended, no history
//     record
//
// The returned message is whatever was appended last (answer or notice).
func (c *Controller) Send(ctx context.Context, text string) (*model.Message, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	c.mu.Lock()
	if !c.document.Queryable() {
		c.mu.Unlock()
		return nil, ErrNoDocument
	}
	if c.awaiting {
		c.mu.Unlock()
		return nil, ErrAwaitingAnswer
	}

	// Local quota check: when the counter is already spent the notice is
	// appended without touching the network.
	if c.quota.Exhausted() {
		notice := c.transcript.AppendNotice(QuotaNotice)
		c.mu.Unlock()
		return notice, api.ErrQuotaExceeded
	}

	c.transcript.AppendUser(question)
	c.quota.Used++
	c.awaiting = true
	document := c.document.Name
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.awaiting = false
		c.mu.Unlock()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return c.appendNotice(FailureNotice), err
	}

	answer, err := c.backend.Ask(ctx, question)
	if err != nil {
		if errors.Is(err, api.ErrQuotaExceeded) {
			return c.appendNotice(QuotaNotice), err
		}
		return c.appendNotice(FailureNotice), err
	}

	c.mu.Lock()
	msg := c.transcript.AppendAssistant(answer)
	c.mu.Unlock()

	if c.history != nil {
		// History is best-effort; a failed write must not fail the
		// answer.
		_ = c.history.Append(ctx, document, question, answer)
	}
	return msg, nil
}

// appendNotice appends a notice message under the lock.
func (c *Controller) appendNotice(text string) *model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.AppendNotice(text)
}
