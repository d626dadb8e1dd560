// Package config holds the runtime configuration shared by the CLI commands.
package config

import (
	"fmt"
	"os"

	"github.com/naka-gawa/github-stats-dashboard/internal/domain"
	"github.com/naka-gawa/github-stats-dashboard/internal/format"
	"github.com/naka-gawa/github-stats-dashboard/internal/render"
)

// Config holds all configuration for a dashboard run.
type Config struct {
	// Source is a path, URL or github:// location (STATS_SOURCE, default "data.json").
	Source string `validate:"required"`
	// Token is sent to GitHub only (GITHUB_TOKEN).
	Token string
	// LinkHost prefixes profile and repository links.
	LinkHost string `validate:"required,url"`
	// Addr is the serve listen address; Ports is how many ports are probed upward from it.
	Addr   string `validate:"required"`
	Ports  int    `validate:"min=1,max=100"`
	Format string `validate:"oneof=terminal markdown html json"`

	LogLevel  string
	LogFormat string `validate:"oneof=console json"`
	Verbose   bool
}

// SetDefaults fills every empty field with its default.
func (c *Config) SetDefaults() {
	if c.Source == "" {
		c.Source = EnvOr("STATS_SOURCE", "data.json")
	}
	if c.Token == "" {
		c.Token = os.Getenv("GITHUB_TOKEN")
	}
	if c.LinkHost == "" {
		c.LinkHost = format.DefaultLinkHost
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Ports == 0 {
		c.Ports = 10
	}
	if c.Format == "" {
		c.Format = render.FormatTerminal
	}
	if c.LogLevel == "" {
		c.LogLevel = EnvOr("LOG_LEVEL", "debug")
	}
	if c.LogFormat == "" {
		c.LogFormat = EnvOr("LOG_FORMAT", "console")
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if err := domain.NewValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
