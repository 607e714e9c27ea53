// Package config loads the upcheck configuration from defaults, the global
// config file, an optional local file, and environment variables, in that
// order of increasing priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration identifies the hosted application and how to reach its
// update server.
type Configuration struct {
	AppName        string `koanf:"app_name" validate:"required"`
	CurrentVersion string `koanf:"current_version" validate:"required"`
	UpdateURL      string `koanf:"update_url" validate:"required,url"`
	Timeout        int    `koanf:"timeout" validate:"min=1,max=3600"` // seconds
	ShowProgress   bool   `koanf:"show_progress"`
	StateDir       string `koanf:"state_dir" validate:"required"`
}

// Load loads configuration from global, local, and environment sources.
// Priority: CLI overrides > Environment variables > Local config > Global
// config > Defaults. Overrides typically carry command-line flag values.
func Load(localConfigPath string, overrides map[string]any) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	// Load global config if it exists
	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".upcheck", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// Load local config if it exists
	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	// Override with environment variables
	k.Load(env.Provider("UPCHECK_", ".", envTransform), nil)

	// CLI flag overrides win over everything
	for key, value := range overrides {
		k.Set(key, value)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: UPCHECK_UPDATE_URL -> update_url
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "UPCHECK_"))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
