package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that required configuration values are present and
// well formed before the application starts.
func ValidateConfig(cfg *Config) error {
	if cfg.DBHost == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.DBUser == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if cfg.ServerPort != "" {
		if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
			return fmt.Errorf("invalid server port %q: %w", cfg.ServerPort, err)
		}
	}
	if cfg.DBPort != "" {
		if _, err := strconv.Atoi(cfg.DBPort); err != nil {
			return fmt.Errorf("invalid database port %q: %w", cfg.DBPort, err)
		}
	}
	if cfg.InferenceTimeout < 0 {
		return fmt.Errorf("inference timeout must not be negative")
	}
	// A missing Gemini key is not fatal: AI endpoints degrade to reporting
	// estimation failures and the model catalog falls back to defaults.
	return nil
}
