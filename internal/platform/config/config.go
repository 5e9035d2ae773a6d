// Package config loads process configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds configuration for the back-office server process.
type Server struct {
	HTTPAddr   string        `env:"TRASTIENDA_HTTP_ADDR" envDefault:":8080"`
	DBPath     string        `env:"TRASTIENDA_DB_PATH" envDefault:"data/trastienda.db"`
	AuthSecret string        `env:"TRASTIENDA_AUTH_SECRET"`
	AuthIssuer string        `env:"TRASTIENDA_AUTH_ISSUER" envDefault:"trastienda"`
	TokenTTL   time.Duration `env:"TRASTIENDA_TOKEN_TTL" envDefault:"12h"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer parses and validates server configuration from the environment.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	cfg.AuthSecret = strings.TrimSpace(cfg.AuthSecret)
	if cfg.AuthSecret == "" {
		return Server{}, fmt.Errorf("TRASTIENDA_AUTH_SECRET is required")
	}
	if _, err := hex.DecodeString(cfg.AuthSecret); err != nil {
		return Server{}, fmt.Errorf("TRASTIENDA_AUTH_SECRET must be hex-encoded: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Server{}, fmt.Errorf("TRASTIENDA_TOKEN_TTL must be positive")
	}
	return cfg, nil
}

// SecretBytes returns the decoded signing secret.
func (s Server) SecretBytes() []byte {
	raw, err := hex.DecodeString(s.AuthSecret)
	if err != nil {
		return nil
	}
	return raw
}
