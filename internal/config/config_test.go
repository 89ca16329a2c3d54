// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for pdfchat.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Auth.OAuthPort != 9573 {
		t.Errorf("OAuthPort = %d", cfg.Auth.OAuthPort)
	}
	if cfg.Backend.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Backend.Timeout())
	}
	if cfg.Backend.UploadTimeout() != 5*time.Minute {
		t.Errorf("UploadTimeout = %v", cfg.Backend.UploadTimeout())
	}
	if !cfg.UI.Markdown {
		t.Error("Markdown should default to true")
	}
	if !cfg.History.Enabled {
		t.Error("History should default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1"

[auth]
url = "https://proj.supabase.co/auth/v1"
anon_key = "anon-abc"

[backend]
url = "https://pdfchat.example.com"
timeout_secs = 45

[ui]
markdown = false

[history]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	cfg.SetDefaults()

	if cfg.Auth.URL != "https://proj.supabase.co/auth/v1" {
		t.Errorf("Auth.URL = %q", cfg.Auth.URL)
	}
	if cfg.Auth.AnonKey != "anon-abc" {
		t.Errorf("Auth.AnonKey = %q", cfg.Auth.AnonKey)
	}
	if cfg.Backend.TimeoutSecs != 45 {
		t.Errorf("TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Markdown {
		t.Error("Markdown should be false")
	}
	if cfg.History.Enabled {
		t.Error("History should be disabled")
	}
	// Untouched values keep defaults.
	if cfg.Backend.AskIntervalMs != 1000 {
		t.Errorf("AskIntervalMs = %d, want default 1000", cfg.Backend.AskIntervalMs)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"backend": {"url": "https://pdfchat.example.com", "timeout_secs": 45}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := LoadJSON(cfg, path); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if cfg.Backend.URL != "https://pdfchat.example.com" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 45 {
		t.Errorf("TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PDFCHAT_AUTH_URL", "https://env.supabase.co/auth/v1")
	t.Setenv("PDFCHAT_ANON_KEY", "anon-env")
	t.Setenv("PDFCHAT_BACKEND_URL", "https://env.example.com")
	t.Setenv("PDFCHAT_OAUTH_PORT", "8123")
	t.Setenv("PDFCHAT_MARKDOWN", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Auth.URL != "https://env.supabase.co/auth/v1" {
		t.Errorf("Auth.URL = %q", cfg.Auth.URL)
	}
	if cfg.Auth.AnonKey != "anon-env" {
		t.Errorf("Auth.AnonKey = %q", cfg.Auth.AnonKey)
	}
	if cfg.Backend.URL != "https://env.example.com" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Auth.OAuthPort != 8123 {
		t.Errorf("OAuthPort = %d", cfg.Auth.OAuthPort)
	}
	if cfg.UI.Markdown {
		t.Error("Markdown should be overridden to false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad auth url", func(c *Config) { c.Auth.URL = "::not-a-url" }, true},
		{"bad backend url", func(c *Config) { c.Backend.URL = "::nope" }, true},
		{"port too large", func(c *Config) { c.Auth.OAuthPort = 70000 }, true},
		{"zero timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }, true},
		{"zero history limit", func(c *Config) { c.History.Limit = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Backend.TimeoutSecs == 0 {
		t.Error("TimeoutSecs should be filled")
	}
	if cfg.Auth.OAuthPort == 0 {
		t.Error("OAuthPort should be filled")
	}
	if cfg.History.Limit == 0 {
		t.Error("History.Limit should be filled")
	}
}

func TestGlobalSetAndGet(t *testing.T) {
	orig := Global()
	defer SetGlobal(orig)

	custom := Default()
	custom.Backend.URL = "https://custom.example.com"
	SetGlobal(custom)

	if Global().Backend.URL != "https://custom.example.com" {
		t.Error("SetGlobal should replace the global config")
	}
}
