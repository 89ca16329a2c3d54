// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the client for the document question-answering
// backend.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/pdfchat-tui/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultTimeout bounds ask and limits requests. Uploads get their own
	// longer bound since indexing a large PDF can take a while.
	DefaultTimeout = 30 * time.Second

	// DefaultUploadTimeout bounds upload-and-index requests.
	DefaultUploadTimeout = 5 * time.Minute

	// MaxResponseSize caps response bodies to prevent memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotConfigured indicates the backend URL is not set.
	ErrNotConfigured = errors.New("backend URL not configured")

	// ErrUnauthorized indicates the access token was missing or rejected.
	ErrUnauthorized = errors.New("not authorized")

	// ErrQuotaExceeded indicates the per-document question quota is spent.
	ErrQuotaExceeded = errors.New("question quota exceeded")

	// ErrUploadLimited indicates the account hit the upload rate limit.
	ErrUploadLimited = errors.New("upload limit reached")
)

// APIError represents a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// UploadResult is the backend's acknowledgement of an indexed document.
type UploadResult struct {
	Document string `json:"document"`
	Pages    int    `json:"pages"`
	Chunks   int    `json:"chunks"`
}

// askRequest is the question payload.
type askRequest struct {
	Question string `json:"question"`
}

// askResponse carries the answer text.
type askResponse struct {
	Answer string `json:"answer"`
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// TOKEN SOURCE
// =============================================================================

// TokenSource supplies the current access token for each request. An
// empty string means no session; the backend answers 401.
type TokenSource func() string

// =============================================================================
// CLIENT
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL, e.g. https://pdfchat.example.com
	BaseURL string

	// Tokens supplies the bearer token per request.
	Tokens TokenSource

	// Timeout for ask and limits requests (default: 30s).
	Timeout time.Duration

	// UploadTimeout for upload requests (default: 5m).
	UploadTimeout time.Duration
}

// Client talks to the document question-answering backend. It is safe
// for concurrent use. No request is ever retried automatically;
// recovery is left to the user.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a backend client.
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = DefaultUploadTimeout
	}
	if config.Tokens == nil {
		config.Tokens = func() string { return "" }
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config:     config,
		httpClient: sharedHTTPClient,
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Upload streams a PDF to the backend, which extracts and indexes it.
// The call returns once indexing has finished. A 429 response maps to
// ErrUploadLimited.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if c.config.BaseURL == "" {
		return nil, ErrNotConfigured
	}

	// The multipart body is streamed through a pipe so a large PDF never
	// sits in memory whole. A reader failure aborts the request through
	// CloseWithError.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(fmt.Errorf("failed to build upload form: %w", err))
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to read document: %w", err))
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	ctx, cancel := context.WithTimeout(ctx, c.config.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := decodeBody(resp, &result); err != nil {
		return nil, err
	}
	if result.Document == "" {
		result.Document = filename
	}
	return &result, nil
}

// Ask sends a question about the indexed document and returns the
// answer text. A 429 response maps to ErrQuotaExceeded.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if c.config.BaseURL == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("failed to marshal question: %w", err)
	}

	var resp askResponse
	if err := c.postJSON(ctx, "/api/ask", payload, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// Limits fetches the authoritative question counter for the current
// document.
func (c *Client) Limits(ctx context.Context) (*model.Quota, error) {
	if c.config.BaseURL == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/limits", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("limits request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var quota model.Quota
	if err := decodeBody(resp, &quota); err != nil {
		return nil, err
	}
	return &quota, nil
}

// Reset discards the backend's index and counter for the current user.
func (c *Client) Reset(ctx context.Context) error {
	if c.config.BaseURL == "" {
		return ErrNotConfigured
	}
	return c.postJSON(ctx, "/api/reset", nil, nil)
}

// =============================================================================
// HELPERS
// =============================================================================

// postJSON sends a single JSON request and decodes a JSON response.
func (c *Client) postJSON(ctx context.Context, path string, payload []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeBody(resp, out)
}

// setAuth attaches the bearer token when a session exists.
func (c *Client) setAuth(req *http.Request) {
	if token := c.config.Tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// checkStatus maps non-2xx responses to typed errors. 429 carries
// different meaning per endpoint, so the sentinel is chosen by path.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		if strings.HasSuffix(resp.Request.URL.Path, "/upload") {
			return ErrUploadLimited
		}
		return ErrQuotaExceeded
	}

	var envelope errorResponse
	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	_ = json.Unmarshal(body, &envelope)

	return &APIError{Status: resp.StatusCode, Message: envelope.Error}
}

// decodeBody decodes a size-limited JSON response body.
func decodeBody(resp *http.Response, out any) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
