// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the client for the document question-answering
// backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(ClientConfig{
		BaseURL: srv.URL,
		Tokens:  func() string { return "tok-123" },
		Timeout: 5 * time.Second,
	})
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ask" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["question"] != "what is chapter 2 about?" {
			t.Errorf("question = %q", body["question"])
		}

		json.NewEncoder(w).Encode(map[string]string{"answer": "It covers indexing."})
	}))
	defer srv.Close()

	answer, err := newTestClient(srv).Ask(context.Background(), "what is chapter 2 about?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "It covers indexing." {
		t.Errorf("answer = %q", answer)
	}
}

func TestAsk_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Ask(context.Background(), "one too many")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestAsk_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Ask(context.Background(), "who am I")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAsk_NotConfigured(t *testing.T) {
	c := NewClient(ClientConfig{})
	if _, err := c.Ask(context.Background(), "hello"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAsk_DoesNotRetryServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Ask(context.Background(), "one shot")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (failed asks must not be resent)", calls)
	}
}

func TestAsk_DoesNotRetryQuota(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Ask(context.Background(), "quota")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (quota errors must not be resent)", calls)
	}
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart form: %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("file field missing: %v", err)
		}
		defer f.Close()
		if header.Filename != "report.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "%PDF-fake" {
			t.Errorf("payload = %q", data)
		}

		json.NewEncoder(w).Encode(map[string]any{"document": "report.pdf", "pages": 12, "chunks": 40})
	}))
	defer srv.Close()

	result, err := newTestClient(srv).Upload(context.Background(), "report.pdf", strings.NewReader("%PDF-fake"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.Document != "report.pdf" || result.Pages != 12 {
		t.Errorf("result = %+v", result)
	}
}

func TestUpload_ReaderFailureAborts(t *testing.T) {
	var sawFullBody bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err == nil {
			sawFullBody = true
		}
	}))

	broken := io.MultiReader(strings.NewReader("%PDF"), &failingReader{})
	_, err := newTestClient(srv).Upload(context.Background(), "report.pdf", broken)
	if err == nil {
		t.Fatal("expected the reader failure to surface")
	}
	if !strings.Contains(err.Error(), "disk read failed") {
		t.Errorf("err = %v, want the reader's failure", err)
	}

	// Close waits for the handler, so the flag is settled.
	srv.Close()
	if sawFullBody {
		t.Error("a failed read must abort the streamed request body")
	}
}

// failingReader fails after its first use.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk read failed")
}

func TestUpload_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Upload(context.Background(), "report.pdf", strings.NewReader("x"))
	if !errors.Is(err, ErrUploadLimited) {
		t.Errorf("expected ErrUploadLimited, got %v", err)
	}
}

// =============================================================================
// LIMITS AND RESET TESTS
// =============================================================================

func TestLimits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/limits" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"questions_used": 7, "questions_limit": 10})
	}))
	defer srv.Close()

	quota, err := newTestClient(srv).Limits(context.Background())
	if err != nil {
		t.Fatalf("Limits failed: %v", err)
	}
	if quota.Used != 7 || quota.Limit != 10 {
		t.Errorf("quota = %+v", quota)
	}
}

func TestReset(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodPost || r.URL.Path != "/api/reset" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := newTestClient(srv).Reset(context.Background()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !called {
		t.Error("reset endpoint not called")
	}
}

// =============================================================================
// ERROR MAPPING TESTS
// =============================================================================

func TestAPIErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "only PDF files are supported"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Upload(context.Background(), "notes.txt", strings.NewReader("plain"))
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if !strings.Contains(apiErr.Message, "only PDF files are supported") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
