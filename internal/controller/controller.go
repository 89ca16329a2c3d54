// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller implements the document and chat lifecycle rules.
package controller

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/pdfchat-tui/internal/api"
	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyQuestion indicates the question was empty after trimming.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrNoDocument indicates no indexed document to ask about.
	ErrNoDocument = errors.New("no indexed document")

	// ErrAwaitingAnswer indicates a question is already in flight.
	ErrAwaitingAnswer = errors.New("still waiting for the previous answer")

	// ErrUploadInFlight indicates an upload is already in progress.
	ErrUploadInFlight = errors.New("an upload is already in progress")
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the slice of the API client the controller needs.
type Backend interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*api.UploadResult, error)
	Ask(ctx context.Context, question string) (string, error)
	Limits(ctx context.Context) (*model.Quota, error)
	Reset(ctx context.Context) error
}

// Recorder persists settled question-and-answer exchanges and the name
// of the document currently indexed on the backend.
type Recorder interface {
	Append(ctx context.Context, document, question, answer string) error
	SetCurrentDocument(ctx context.Context, name string) error
	ClearCurrentDocument(ctx context.Context) error
}

// =============================================================================
// STATE SNAPSHOT
// =============================================================================

// State is a point-in-time copy of the controller's view state. The
// slices and structs are copies; mutating them does not affect the
// controller.
type State struct {
	Messages  []model.Message
	Document  model.Document
	Quota     model.Quota
	Uploading bool
	Awaiting  bool
}

// CanAsk reports whether a new question may be sent right now.
func (s State) CanAsk() bool {
	return s.Document.Queryable() && !s.Awaiting && !s.Uploading
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the single-document chat state: the transcript, the
// document status, the question counter, and the in-flight flags. All
// mutation goes through its methods, which are safe for concurrent use;
// views render from Snapshot copies.
type Controller struct {
	mu      sync.Mutex
	backend Backend
	history Recorder
	limiter *rate.Limiter

	transcript *model.Transcript
	document   model.Document
	quota      model.Quota
	uploading  bool
	awaiting   bool
}

// Config holds controller construction options.
type Config struct {
	// Backend performs the network operations. Required.
	Backend Backend

	// History records answered questions. Optional.
	History Recorder

	// AskInterval paces questions to the backend (default: 1s).
	AskInterval time.Duration
}

// New creates a controller in the signed-in initial state: empty
// transcript, no document, full quota.
func New(cfg Config) *Controller {
	interval := cfg.AskInterval
	if interval == 0 {
		interval = time.Second
	}
	return &Controller{
		backend:    cfg.Backend,
		history:    cfg.History,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		transcript: model.NewTranscript(),
		quota:      model.NewQuota(),
	}
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]model.Message, 0, c.transcript.Len())
	for _, m := range c.transcript.Messages {
		messages = append(messages, *m)
	}

	return State{
		Messages:  messages,
		Document:  c.document,
		Quota:     c.quota,
		Uploading: c.uploading,
		Awaiting:  c.awaiting,
	}
}
