package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Launcher  LauncherConfig
	Scopes    ScopesConfig
	WS        WSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	AllowOrigins    []string      `envconfig:"CORS_ORIGINS"`
	Compression     bool          `envconfig:"HTTP_GZIP" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// LauncherConfig holds launcher model configuration.
type LauncherConfig struct {
	CatalogDir       string   `envconfig:"SHELL_CATALOG_DIR"`
	CatalogPattern   string   `envconfig:"SHELL_CATALOG_PATTERN" default:"**/*.{yaml,yml,toml,json}"`
	CatalogURL       string   `envconfig:"SHELL_CATALOG_URL"`
	Pinned           []string `envconfig:"SHELL_PINNED"`
	RecentLimit      int      `envconfig:"SHELL_RECENT_LIMIT" default:"0"`
	RankByPopularity bool     `envconfig:"SHELL_RANK_BY_POPULARITY" default:"false"`
	SearchCacheSize  int      `envconfig:"SHELL_SEARCH_CACHE_SIZE" default:"128"`
}

// ScopesConfig holds categories model configuration.
type ScopesConfig struct {
	Categories         int  `envconfig:"SHELL_CATEGORIES" default:"4"`
	ResultsPerCategory int  `envconfig:"SHELL_RESULTS_PER_CATEGORY" default:"15"`
	AppsCategory       bool `envconfig:"SHELL_APPS_CATEGORY" default:"true"`
}

// WSConfig holds change-stream configuration.
type WSConfig struct {
	SendBuffer int `envconfig:"WS_SEND_BUFFER" default:"256"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values the models cannot be built from.
func (c *Config) Validate() error {
	if c.Scopes.Categories < 0 {
		return fmt.Errorf("SHELL_CATEGORIES must not be negative, got %d", c.Scopes.Categories)
	}
	if c.Scopes.ResultsPerCategory < 0 {
		return fmt.Errorf("SHELL_RESULTS_PER_CATEGORY must not be negative, got %d", c.Scopes.ResultsPerCategory)
	}
	return nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			Compression:     true,
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Launcher: LauncherConfig{
			CatalogPattern:  "**/*.{yaml,yml,toml,json}",
			SearchCacheSize: 128,
		},
		Scopes: ScopesConfig{
			Categories:         4,
			ResultsPerCategory: 15,
			AppsCategory:       true,
		},
		WS: WSConfig{
			SendBuffer: 256,
		},
	}
}
