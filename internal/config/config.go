// Package config loads client configuration from an optional YAML file
// with environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the chat client needs to reach the backend.
type Config struct {
	ServerURL string `yaml:"server_url"`
	TenantID  string `yaml:"tenant_id"`
	UserID    string `yaml:"user_id"`
	Token     string `yaml:"token"`
	Tier      string `yaml:"tier"` // basic, advanced, premium
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		ServerURL: "http://localhost:8000",
		TenantID:  "demo-tenant",
		UserID:    "demo-user",
		Tier:      "advanced",
	}
}

// Load builds the config: defaults, then the YAML file at path (skipped if
// path is empty or missing), then env vars. CLI flags are applied on top by
// the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.ServerURL = getEnv("EAGLE_SERVER_URL", cfg.ServerURL)
	cfg.TenantID = getEnv("EAGLE_TENANT_ID", cfg.TenantID)
	cfg.UserID = getEnv("EAGLE_USER_ID", cfg.UserID)
	cfg.Token = getEnv("EAGLE_TOKEN", cfg.Token)
	cfg.Tier = getEnv("EAGLE_TIER", cfg.Tier)

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
