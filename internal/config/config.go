// Package config loads JanConnect configuration from
// ~/.janconnect/config.json with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UserConfig holds ALL JanConnect configuration from .janconnect/config.json.
// This is the single source of truth for configuration.
type UserConfig struct {
	// Gemini credential for letter generation. Absence is not an error:
	// the letter service degrades to template generation.
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Optional model override (default: gemini-1.5-flash).
	Model string `json:"model,omitempty"`

	// Submission backend. Empty endpoint selects the simulated backend.
	SubmitEndpoint string `json:"submit_endpoint,omitempty"`
	SubmitTimeout  string `json:"submit_timeout,omitempty"` // duration string, default 30s

	// Letter generation call timeout (duration string, default 2m).
	LetterTimeout string `json:"letter_timeout,omitempty"`

	// Theme for the TUI ("light" or "dark").
	Theme string `json:"theme,omitempty"`

	// Logging controls the categorized debug logs under .janconnect/logs.
	Logging LoggingConfig `json:"logging,omitempty"`
}

// LoggingConfig mirrors the logging package's config block.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode,omitempty"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// DefaultStateDir returns ~/.janconnect, falling back to a relative
// .janconnect when the home directory cannot be resolved.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".janconnect"
	}
	return filepath.Join(home, ".janconnect")
}

// DefaultUserConfigPath returns the default path to config.json.
func DefaultUserConfigPath() string {
	return filepath.Join(DefaultStateDir(), "config.json")
}

// Load reads the user config from path. A missing file yields a zero
// config, not an error; env overrides are applied either way.
// Priority: env var > config file.
func Load(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFile reads the config file without applying env overrides. Used
// when editing and re-saving the file, so transient environment values
// are never written to disk.
func LoadFile(path string) (*UserConfig, error) {
	cfg := &UserConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *UserConfig) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("JANCONNECT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("JANCONNECT_SUBMIT_ENDPOINT"); v != "" {
		cfg.SubmitEndpoint = v
	}
	if v := os.Getenv("JANCONNECT_THEME"); v != "" {
		cfg.Theme = v
	}
}

// Save writes the config to path, creating parent directories as needed.
func (c *UserConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetModel returns the configured model or the default.
func (c *UserConfig) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	return "gemini-1.5-flash"
}

// GetSubmitTimeout parses SubmitTimeout, defaulting to 30s.
func (c *UserConfig) GetSubmitTimeout() time.Duration {
	return parseDuration(c.SubmitTimeout, 30*time.Second)
}

// GetLetterTimeout parses LetterTimeout, defaulting to 2m.
func (c *UserConfig) GetLetterTimeout() time.Duration {
	return parseDuration(c.LetterTimeout, 2*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
