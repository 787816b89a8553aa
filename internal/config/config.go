package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields superlist needs to reach the list server.
type Config struct {
	ServerURL       string
	RequestTimeout  time.Duration
	FetchRetries    int
	CredsDir        string
	RefreshInterval time.Duration
}

const (
	defaultConfigPath      = "~/.config/superlist/config.toml"
	defaultServerURL       = "https://server-supermarket-api.onrender.com/"
	defaultCredsDir        = "~/.local/share/superlist/creds"
	defaultRequestTimeout  = 10 * time.Second
	defaultFetchRetries    = 2
	defaultRefreshInterval = 2 * time.Second
)

// Load locates and parses the superlist config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServerURL:       defaultServerURL,
		RequestTimeout:  defaultRequestTimeout,
		FetchRetries:    defaultFetchRetries,
		CredsDir:        mustExpand(defaultCredsDir),
		RefreshInterval: defaultRefreshInterval,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServerURL              string `toml:"server_url"`
		RequestTimeoutSeconds  int    `toml:"request_timeout_seconds"`
		FetchRetries           *int   `toml:"fetch_retries"`
		CredsDir               string `toml:"creds_dir"`
		RefreshIntervalSeconds int    `toml:"refresh_interval_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if url := strings.TrimSpace(raw.ServerURL); url != "" {
		cfg.ServerURL = url
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.FetchRetries != nil && *raw.FetchRetries >= 0 {
		cfg.FetchRetries = *raw.FetchRetries
	}
	if dir := strings.TrimSpace(raw.CredsDir); dir != "" {
		cfg.CredsDir = mustExpand(dir)
	}
	if raw.RefreshIntervalSeconds > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshIntervalSeconds) * time.Second
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
