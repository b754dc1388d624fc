// Package config loads friosdesk configuration from a JSON file overlaid
// with FRIOSDESK_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the full console configuration.
type Config struct {
	API       APIConfig       `json:"api"`
	Log       LogConfig       `json:"log"`
	Chat      ChatConfig      `json:"chat"`
	Broadcast BroadcastConfig `json:"broadcast"`
}

// APIConfig points the console at the backend.
type APIConfig struct {
	// BaseURL is the backend root, e.g. http://localhost:8000.
	BaseURL string `env:"FRIOSDESK_API_BASE_URL" json:"base_url"`
	// TimeoutSeconds bounds each HTTP request. 0 disables the deadline.
	TimeoutSeconds int `env:"FRIOSDESK_API_TIMEOUT_SECONDS" json:"timeout_seconds"`
}

// LogConfig selects zerolog output.
type LogConfig struct {
	Level  string `env:"FRIOSDESK_LOG_LEVEL"  json:"level"`
	Format string `env:"FRIOSDESK_LOG_FORMAT" json:"format"` // "console" or "json"
}

// ChatConfig tunes the conversation console.
type ChatConfig struct {
	// RefreshSeconds is the tick for badge recomputation and metrics re-fetch.
	RefreshSeconds int `env:"FRIOSDESK_CHAT_REFRESH_SECONDS" json:"refresh_seconds"`
	// SLAWarnMinutes is the unanswered-customer threshold that turns the
	// delay badge into a warning.
	SLAWarnMinutes int `env:"FRIOSDESK_CHAT_SLA_WARN_MINUTES" json:"sla_warn_minutes"`
}

// BroadcastConfig tunes encarte broadcasts.
type BroadcastConfig struct {
	// Cron optionally schedules the next dispatch instead of sending
	// immediately, e.g. "0 9 * * 1".
	Cron string `env:"FRIOSDESK_BROADCAST_CRON" json:"cron,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 0,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Chat: ChatConfig{
			RefreshSeconds: 30,
			SLAWarnMinutes: 5,
		},
	}
}

// Validate rejects configurations the console cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Chat.RefreshSeconds <= 0 {
		return errors.New("chat.refresh_seconds must be positive")
	}
	if c.Chat.SLAWarnMinutes <= 0 {
		return errors.New("chat.sla_warn_minutes must be positive")
	}
	return nil
}

// LoadConfig reads the JSON file at path (missing file yields defaults) and
// then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the configuration back as indented JSON.
func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
