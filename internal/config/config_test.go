package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != defaultServerURL {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, defaultServerURL)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	if cfg.FetchRetries != defaultFetchRetries {
		t.Fatalf("FetchRetries = %d, want %d", cfg.FetchRetries, defaultFetchRetries)
	}

	wantCreds, err := expandPath(defaultCredsDir)
	if err != nil {
		t.Fatalf("expandPath(defaultCredsDir) returned error: %v", err)
	}
	if cfg.CredsDir != wantCreds {
		t.Fatalf("CredsDir = %q, want %q", cfg.CredsDir, wantCreds)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
server_url = "  http://localhost:3333/  "
request_timeout_seconds = 3
fetch_retries = 0
creds_dir = "  ~/.superlist/creds  "
refresh_interval_seconds = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:3333/" {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, "http://localhost:3333/")
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.FetchRetries != 0 {
		t.Fatalf("FetchRetries = %d, want 0 (explicit zero disables retries)", cfg.FetchRetries)
	}
	if filepath.Base(filepath.Dir(cfg.CredsDir)) != ".superlist" {
		t.Fatalf("CredsDir = %q, want it under ~/.superlist", cfg.CredsDir)
	}
	if cfg.RefreshInterval != 5*time.Second {
		t.Fatalf("RefreshInterval = %v, want 5s", cfg.RefreshInterval)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
server_url = "   "
creds_dir = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != defaultServerURL {
		t.Fatalf("ServerURL = %q, want default %q", cfg.ServerURL, defaultServerURL)
	}
	if cfg.FetchRetries != defaultFetchRetries {
		t.Fatalf("FetchRetries = %d, want default %d", cfg.FetchRetries, defaultFetchRetries)
	}
}
