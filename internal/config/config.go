package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all client configuration.
type Config struct {
	API    APIConfig
	State  StateConfig
	Logger LoggerConfig
}

// APIConfig holds settings for the backend API collaborator.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// StateConfig holds settings for durable client-side storage.
type StateConfig struct {
	Dir string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("API_URL", "http://127.0.0.1:8000"),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT", 15),
		},
		State: StateConfig{
			Dir: getEnv("STATE_DIR", defaultStateDir()),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds < 1 {
		return fmt.Errorf("API timeout must be at least 1 second")
	}

	if c.State.Dir == "" {
		return fmt.Errorf("state directory is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// defaultStateDir returns the per-user directory for persisted client state.
func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(base, "storefront")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
