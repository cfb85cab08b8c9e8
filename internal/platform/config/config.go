// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, upstream clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Gutenshelf API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), used for token revocation.
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Cryptographic keys for access token signing
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,required,notEmpty"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// Upstream book sources
	GutenbergBaseURL string        `env:"GUTENBERG_BASE_URL" envDefault:"https://www.gutenberg.org"`
	CatalogBaseURL   string        `env:"CATALOG_BASE_URL"   envDefault:"https://gutendex.com"`
	UpstreamTimeout  time.Duration `env:"UPSTREAM_TIMEOUT"   envDefault:"60s"`

	// Language model (any OpenAI-compatible chat completions endpoint)
	LLMBaseURL     string        `env:"LLM_BASE_URL"    envDefault:"https://api.groq.com/openai/v1"`
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	LLMModel       string        `env:"LLM_MODEL"       envDefault:"gemma2-9b-it"`
	LLMTemperature float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT"     envDefault:"120s"`

	// AnalysisSampleChars is how much of a book's text is sent to the model.
	AnalysisSampleChars int `env:"ANALYSIS_SAMPLE_CHARS" envDefault:"10000"`

	// Cross-Origin Resource Sharing (comma separated origins, production only)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.AnalysisSampleChars <= 0 {
		return fmt.Errorf("config: ANALYSIS_SAMPLE_CHARS must be positive, got %d", c.AnalysisSampleChars)
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return fmt.Errorf("config: LLM_TEMPERATURE must be within [0, 2], got %v", c.LLMTemperature)
	}
	c.GutenbergBaseURL = strings.TrimRight(c.GutenbergBaseURL, "/")
	c.CatalogBaseURL = strings.TrimRight(c.CatalogBaseURL, "/")
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsAllowedOrigin reports whether a browser origin may call the API.
func (c *Config) IsAllowedOrigin(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
