package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`

	// CatalogDBPath is the SQLite reference catalog. Empty uses the built-in catalog.
	CatalogDBPath string `envconfig:"CATALOG_DB_PATH" default:"./catalog.db"`

	EmailAPIKey  string        `envconfig:"EMAIL_API_KEY"`
	FromEmail    string        `envconfig:"FROM_EMAIL" default:"noreply@psxcreative.com"`
	ToEmail      string        `envconfig:"TO_EMAIL" default:"studio@psxcreative.com"`
	EmailTimeout time.Duration `envconfig:"EMAIL_TIMEOUT" default:"10s"`

	ShareSecret   string `envconfig:"SHARE_SECRET"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
}

// Load reads .env (best effort) and the process environment.
func Load() (Config, error) {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_, _ = loadDotEnv(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	if cfg.EmailTimeout <= 0 {
		return Config{}, fmt.Errorf("EMAIL_TIMEOUT must be positive, got %s", cfg.EmailTimeout)
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return cfg, nil
}

// IsDev reports whether the server runs in development mode.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.Environment, "development")
}

// EmailEnabled reports whether an email provider key is configured.
func (c Config) EmailEnabled() bool {
	return c.EmailAPIKey != ""
}

// Warnings lists settings that are missing but not fatal.
func (c Config) Warnings() []string {
	var warnings []string
	if c.EmailAPIKey == "" {
		warnings = append(warnings, "EMAIL_API_KEY is not set; submissions will fail with a configuration error")
	}
	if c.ShareSecret == "" {
		warnings = append(warnings, "SHARE_SECRET is not set; share links will not survive a restart")
	}
	return warnings
}
