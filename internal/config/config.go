// Package config loads and persists the wayfinder application
// configuration and resolves provider API keys from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Config represents application configuration
type Config struct {
	Provider      string  `json:"provider"` // "google", "anthropic" or "openai"
	Model         string  `json:"model,omitempty"`
	MaxIterations int     `json:"max_iterations"`
	Temperature   float64 `json:"temperature"`
	MaxTokens     int     `json:"max_tokens,omitempty"`
	LogLevel      string  `json:"log_level"` // debug, info, warn, error, none
	LogPath       string  `json:"-"`
	VenueFile     string  `json:"venue_file,omitempty"` // JSON venue/place data for the tools

	path string
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Provider:      "google",
		MaxIterations: 10,
		Temperature:   0.7,
		LogLevel:      "info",
		LogPath:       filepath.Join(defaultConfigDir(), "wayfinder.log"),
	}
}

func defaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appData := strings.TrimSpace(os.Getenv("APPDATA")); appData != "" {
			return filepath.Join(appData, "wayfinder")
		}
		fallthrough
	default:
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".config", "wayfinder")
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultConfigDir(), "config.json")
}

// Load reads the configuration from path, falling back to defaults when the
// file does not exist. An empty path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = Default().MaxIterations
	}

	return cfg, nil
}

// Save writes the configuration back to the path it was loaded from.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
