// Package config loads the application configuration from a YAML file
// with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/newsbyte/newsbyte/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Source is a single RSS/Atom source for one category
type Source struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Display name of the source"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsbyte.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Feeds struct {
		RefreshInterval time.Duration       `yaml:"refresh_interval" json:"refresh_interval" jsonschema:"default=30m,description=Background feed refresh interval"`
		Timeout         time.Duration       `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Fetch timeout per source"`
		UserAgent       string              `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsbyte/1.0,description=User agent for feed requests"`
		Sources         map[string][]Source `yaml:"sources" json:"sources" jsonschema:"description=RSS sources keyed by category"`
	} `yaml:"feeds" json:"feeds" jsonschema:"description=News feed configuration"`

	Extraction struct {
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
		UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for extraction requests"`
	} `yaml:"extraction" json:"extraction" jsonschema:"description=Article content extraction configuration"`
}

// Load reads configuration from a YAML file. A missing path returns the
// defaults without error.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// GetServerConfig returns listen address and timeout for the HTTP server
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:newsbyte.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Feeds.RefreshInterval == 0 {
		c.Feeds.RefreshInterval = 30 * time.Minute
	}
	if c.Feeds.Timeout == 0 {
		c.Feeds.Timeout = 15 * time.Second
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = "Newsbyte/1.0"
	}

	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func (c *Config) validate() error {
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if c.Feeds.Timeout < time.Second {
		return fmt.Errorf("feeds timeout must be at least 1 second")
	}
	if c.Feeds.RefreshInterval < time.Minute {
		return fmt.Errorf("feeds refresh_interval must be at least 1 minute")
	}

	for category, sources := range c.Feeds.Sources {
		if !domain.Category(category).Valid() {
			return fmt.Errorf("unknown feed category %q", category)
		}
		for _, src := range sources {
			if src.URL == "" {
				return fmt.Errorf("feed source in category %q has no url", category)
			}
		}
	}

	return nil
}
