// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local question-and-answer history persistence.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS qa_history (
	id         TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_qa_history_created ON qa_history(created_at);
CREATE INDEX IF NOT EXISTS idx_qa_history_document ON qa_history(document);
CREATE TABLE IF NOT EXISTS current_document (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL
);
`

// DefaultRecentLimit bounds history queries when the caller passes no limit.
const DefaultRecentLimit = 50

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one answered question, recorded after the backend returns an
// answer. Failed and quota-rejected questions are never recorded.
type Entry struct {
	ID        string
	Document  string
	Question  string
	Answer    string
	CreatedAt time.Time
}

// =============================================================================
// HISTORY STORE
// =============================================================================

// History persists answered questions in a local SQLite database so past
// sessions can be reviewed offline. It is safe for concurrent use.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite handles one writer at a time; serialize through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// Append records an answered question.
func (h *History) Append(ctx context.Context, document, question, answer string) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO qa_history (id, document, question, answer, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), document, question, answer, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}
	return nil
}

// Recent returns the most recent entries across all documents, newest
// first. A non-positive limit uses DefaultRecentLimit.
func (h *History) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return h.query(ctx,
		`SELECT id, document, question, answer, created_at FROM qa_history ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
}

// ForDocument returns the most recent entries for one document, newest
// first.
func (h *History) ForDocument(ctx context.Context, document string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return h.query(ctx,
		`SELECT id, document, question, answer, created_at FROM qa_history WHERE document = ? ORDER BY created_at DESC, id LIMIT ?`,
		document, limit,
	)
}

// SetCurrentDocument records the name of the document currently indexed
// on the backend, so entries recorded outside the upload's process can
// carry the right name.
func (h *History) SetCurrentDocument(ctx context.Context, name string) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO current_document (id, name) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		name,
	)
	if err != nil {
		return fmt.Errorf("failed to record current document: %w", err)
	}
	return nil
}

// CurrentDocument returns the recorded current document name, or an
// empty string when none is recorded.
func (h *History) CurrentDocument(ctx context.Context) (string, error) {
	var name string
	err := h.db.QueryRowContext(ctx, `SELECT name FROM current_document WHERE id = 1`).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read current document: %w", err)
	}
	return name, nil
}

// ClearCurrentDocument forgets the recorded current document.
func (h *History) ClearCurrentDocument(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM current_document`); err != nil {
		return fmt.Errorf("failed to clear current document: %w", err)
	}
	return nil
}

// Clear removes all recorded history.
func (h *History) Clear(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM qa_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// query runs a SELECT returning entries.
func (h *History) query(ctx context.Context, stmt string, args ...any) ([]Entry, error) {
	rows, err := h.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Document, &e.Question, &e.Answer, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}
