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

// Config captures the fields vaultview needs to reach the vault catalog.
type Config struct {
	APIBind        string
	PollInterval   time.Duration
	SearchDebounce time.Duration
	CacheTTL       time.Duration
	PageSize       int
}

const (
	defaultConfigPath = "~/.config/vaultview/config.toml"
	defaultAPIBind    = "127.0.0.1:8000"

	defaultPollSeconds  = 15
	defaultDebounceMS   = 300
	defaultCacheTTLSecs = 30
	defaultPageSize     = 20
)

// Load locates and parses the vaultview config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

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
		APIBind          string `toml:"api_bind"`
		PollSeconds      int    `toml:"poll_seconds"`
		SearchDebounceMS int    `toml:"search_debounce_ms"`
		CacheTTLSeconds  int    `toml:"cache_ttl_seconds"`
		PageSize         int    `toml:"page_size"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if bind := strings.TrimSpace(raw.APIBind); bind != "" {
		cfg.APIBind = bind
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.SearchDebounceMS > 0 {
		cfg.SearchDebounce = time.Duration(raw.SearchDebounceMS) * time.Millisecond
	}
	if raw.CacheTTLSeconds > 0 {
		cfg.CacheTTL = time.Duration(raw.CacheTTLSeconds) * time.Second
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBind:        defaultAPIBind,
		PollInterval:   defaultPollSeconds * time.Second,
		SearchDebounce: defaultDebounceMS * time.Millisecond,
		CacheTTL:       defaultCacheTTLSecs * time.Second,
		PageSize:       defaultPageSize,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
