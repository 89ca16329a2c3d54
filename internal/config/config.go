// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for pdfchat.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.pdfchat/config.toml
//   - ~/.pdfchat/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/pdfchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete pdfchat configuration.
type Config struct {
	// Version of the config schema, for future migrations.
	Version string `toml:"version" json:"version"`

	// Auth holds identity-provider settings.
	Auth AuthConfig `toml:"auth" json:"auth"`

	// Backend holds question-answering backend settings.
	Backend BackendConfig `toml:"backend" json:"backend"`

	// UI holds terminal interface settings.
	UI UIConfig `toml:"ui" json:"ui"`

	// History holds local answer-history settings.
	History HistoryConfig `toml:"history" json:"history"`
}

// AuthConfig contains identity provider configuration.
type AuthConfig struct {
	// URL is the auth service base URL, e.g.
	// https://project.supabase.co/auth/v1
	URL string `toml:"url" json:"url"`

	// AnonKey is the project's public API key.
	AnonKey string `toml:"anon_key" json:"anon_key"`

	// OAuthPort is the localhost port that receives the OAuth redirect.
	OAuthPort int `toml:"oauth_port" json:"oauth_port"`

	// TimeoutSecs bounds auth requests.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// Timeout returns the auth request timeout as a duration.
func (a AuthConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// BackendConfig contains question-answering backend configuration.
type BackendConfig struct {
	// URL is the backend base URL.
	URL string `toml:"url" json:"url"`

	// TimeoutSecs bounds ask and limits requests.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// UploadTimeoutSecs bounds upload-and-index requests.
	UploadTimeoutSecs int `toml:"upload_timeout_secs" json:"upload_timeout_secs"`

	// AskIntervalMs paces questions to the backend.
	AskIntervalMs int `toml:"ask_interval_ms" json:"ask_interval_ms"`
}

// Timeout returns the request timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// UploadTimeout returns the upload timeout as a duration.
func (b BackendConfig) UploadTimeout() time.Duration {
	return time.Duration(b.UploadTimeoutSecs) * time.Second
}

// AskInterval returns the ask pacing interval as a duration.
func (b BackendConfig) AskInterval() time.Duration {
	return time.Duration(b.AskIntervalMs) * time.Millisecond
}

// UIConfig contains terminal interface configuration.
type UIConfig struct {
	// Markdown enables glamour rendering of answers.
	Markdown bool `toml:"markdown" json:"markdown"`

	// Mouse enables mouse support in the TUI.
	Mouse bool `toml:"mouse" json:"mouse"`

	// CompactMode reduces padding for small terminals.
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// HistoryConfig contains local answer-history configuration.
type HistoryConfig struct {
	// Enabled turns local history recording on or off.
	Enabled bool `toml:"enabled" json:"enabled"`

	// Path overrides the default database location.
	Path string `toml:"path" json:"path"`

	// Limit bounds how many entries history listings show.
	Limit int `toml:"limit" json:"limit"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Auth: AuthConfig{
			OAuthPort:   9573,
			TimeoutSecs: 15,
		},
		Backend: BackendConfig{
			TimeoutSecs:       30,
			UploadTimeoutSecs: 300,
			AskIntervalMs:     1000,
		},
		UI: UIConfig{
			Markdown: true,
			Mouse:    true,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   50,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the pdfchat configuration directory (~/.pdfchat).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".pdfchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryPath returns the configured history database path, falling back
// to ~/.pdfchat/history.db.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk, trying TOML then JSON, and falls
// back to defaults. Environment overrides and validation are always
// applied.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finalize(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finalize(cfg)
		}
	}

	return finalize(cfg)
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// finalize applies env overrides, defaults, and validation.
func finalize(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the TOML config file atomically.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// The anon key is not secret, but the config lives next to token
	// material, so the whole directory stays user-only.
	return util.AtomicWriteFileWithDir(path, []byte(buf.String()), 0600, 0700)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PDFCHAT_* environment variables on top of
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PDFCHAT_AUTH_URL"); v != "" {
		c.Auth.URL = v
	}
	if v := os.Getenv("PDFCHAT_ANON_KEY"); v != "" {
		c.Auth.AnonKey = v
	}
	if v := os.Getenv("PDFCHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("PDFCHAT_OAUTH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Auth.OAuthPort = port
		}
	}
	if v := os.Getenv("PDFCHAT_HISTORY"); v != "" {
		c.History.Enabled = v != "0" && !strings.EqualFold(v, "false")
	}
	if v := os.Getenv("PDFCHAT_MARKDOWN"); v != "" {
		c.UI.Markdown = v != "0" && !strings.EqualFold(v, "false")
	}
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills zero values with defaults after loading.
func (c *Config) SetDefaults() {
	def := Default()

	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Auth.OAuthPort == 0 {
		c.Auth.OAuthPort = def.Auth.OAuthPort
	}
	if c.Auth.TimeoutSecs == 0 {
		c.Auth.TimeoutSecs = def.Auth.TimeoutSecs
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = def.Backend.TimeoutSecs
	}
	if c.Backend.UploadTimeoutSecs == 0 {
		c.Backend.UploadTimeoutSecs = def.Backend.UploadTimeoutSecs
	}
	if c.Backend.AskIntervalMs == 0 {
		c.Backend.AskIntervalMs = def.Backend.AskIntervalMs
	}
	if c.History.Limit == 0 {
		c.History.Limit = def.History.Limit
	}
}

// ValidationError describes a single invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Auth.URL != "" {
		if _, err := url.ParseRequestURI(c.Auth.URL); err != nil {
			return ValidationError{Field: "auth.url", Message: "not a valid URL"}
		}
	}
	if c.Backend.URL != "" {
		if _, err := url.ParseRequestURI(c.Backend.URL); err != nil {
			return ValidationError{Field: "backend.url", Message: "not a valid URL"}
		}
	}
	if c.Auth.OAuthPort < 1 || c.Auth.OAuthPort > 65535 {
		return ValidationError{Field: "auth.oauth_port", Message: "must be between 1 and 65535"}
	}
	if c.Backend.TimeoutSecs < 1 {
		return ValidationError{Field: "backend.timeout_secs", Message: "must be at least 1"}
	}
	if c.History.Limit < 1 {
		return ValidationError{Field: "history.limit", Message: "must be at least 1"}
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Global returns the process-wide configuration, loading it on first
// use. Load failures fall back to defaults so the UI can still start
// and report the problem.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide configuration. Used by the watcher
// on live reload and by tests.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}
