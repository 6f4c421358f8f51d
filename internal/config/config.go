// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/validation"
)

// knownWeakSecrets contains default/example secrets that must never be used.
var knownWeakSecrets = []string{
	"fallback_key_for_dev",
	"different_fallback_key",
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"REPLACE_WITH_YOUR_OWN_CSRF_SECRET!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"ROLLCALL_DB_PATH" envDefault:"./data/rollcall.db"`
	SecretKey  string `env:"ROLLCALL_SECRET_KEY,required"`
	CSRFSecret string `env:"ROLLCALL_CSRF_SECRET,required"`
	ServerHost string `env:"ROLLCALL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"ROLLCALL_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ROLLCALL_ENV" envDefault:"development"`
	LogLevel   string `env:"ROLLCALL_LOG_LEVEL" envDefault:"info"`

	// Take the client address from X-Forwarded-For/X-Real-IP. Enable only
	// behind a reverse proxy that overwrites those headers.
	TrustProxy bool `env:"ROLLCALL_TRUST_PROXY" envDefault:"false"`

	// Event log retention in days; 0 disables the cleanup job
	EventRetentionDays int `env:"ROLLCALL_EVENT_RETENTION_DAYS" envDefault:"90"`

	// Bootstrap admin account
	AdminEmail    string `env:"ROLLCALL_ADMIN_EMAIL"`
	AdminPassword string `env:"ROLLCALL_ADMIN_PASSWORD"`
	AdminPhone    string `env:"ROLLCALL_ADMIN_PHONE"`
	AdminName     string `env:"ROLLCALL_ADMIN_NAME" envDefault:"Administrator"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSecretLength is the minimum required length for both secrets.
const MinSecretLength = 32

// ErrSecretsEqual is returned when the general and CSRF secrets are the same value.
var ErrSecretsEqual = errors.New("ROLLCALL_SECRET_KEY and ROLLCALL_CSRF_SECRET must differ")

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := checkSecret("ROLLCALL_SECRET_KEY", cfg.SecretKey); err != nil {
		return nil, err
	}
	if err := checkSecret("ROLLCALL_CSRF_SECRET", cfg.CSRFSecret); err != nil {
		return nil, err
	}
	if cfg.SecretKey == cfg.CSRFSecret {
		return nil, ErrSecretsEqual
	}
	if err := cfg.checkAdmin(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checkAdmin applies the registration rules to the bootstrap admin settings.
func (c *Config) checkAdmin() error {
	if c.AdminEmail == "" {
		return nil
	}
	errs := validation.ValidateBootstrapAdmin(model.RegistrationForm{
		Name:     validation.Normalize(c.AdminName),
		Email:    validation.Normalize(c.AdminEmail),
		Phone:    validation.Normalize(c.AdminPhone),
		Password: c.AdminPassword,
	})
	if !errs.OK() {
		return fmt.Errorf("invalid bootstrap admin settings: %w", errs)
	}
	return nil
}

func checkSecret(name, value string) error {
	if len(value) < MinSecretLength {
		return fmt.Errorf("%s must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			name, MinSecretLength, len(value))
	}

	for _, weak := range knownWeakSecrets {
		if strings.Contains(value, weak) {
			return fmt.Errorf("%s contains a known default value and must not be used; "+
				"generate a secure secret with: openssl rand -base64 32", name)
		}
	}

	if !hasMinimumEntropy(value) {
		slog.Warn(name + " has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
