// Package config provides configuration loading and management for Faraid.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete Faraid configuration
type Config struct {
	NATS    NATSConfig    `yaml:"nats"`
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Storage StorageConfig `yaml:"storage"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Stream is the JetStream stream carrying compute requests
	Stream string `yaml:"stream"`
}

// HTTPConfig configures the HTTP surface of the estate API
type HTTPConfig struct {
	// Enabled toggles the estate-api component
	Enabled bool `yaml:"enabled"`
	// Prefix is the path prefix handlers are mounted under
	Prefix string `yaml:"prefix"`
}

// CatalogConfig configures the rule catalog source
type CatalogConfig struct {
	// Path is an optional YAML rule catalog file. Empty means the
	// stored catalog, falling back to the built-in default.
	Path string `yaml:"path"`
	// Watch enables hot reload of Path on file change
	Watch bool `yaml:"watch"`
}

// StorageConfig configures ruling persistence
type StorageConfig struct {
	// Enabled persists computed rulings to NATS KV
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		NATS: NATSConfig{
			URL:    "nats://localhost:4222",
			Stream: "ESTATE",
		},
		HTTP: HTTPConfig{
			Enabled: true,
			Prefix:  "api/estate",
		},
		Catalog: CatalogConfig{
			Path:  "",
			Watch: false,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required")
	}
	if c.NATS.Stream == "" {
		return fmt.Errorf("nats.stream is required")
	}
	if c.HTTP.Enabled && c.HTTP.Prefix == "" {
		return fmt.Errorf("http.prefix is required when http is enabled")
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return fmt.Errorf("catalog.watch requires catalog.path")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Stream != "" {
		c.NATS.Stream = other.NATS.Stream
	}

	if other.HTTP.Prefix != "" {
		c.HTTP.Prefix = other.HTTP.Prefix
	}
	c.HTTP.Enabled = other.HTTP.Enabled

	if other.Catalog.Path != "" {
		c.Catalog.Path = other.Catalog.Path
		c.Catalog.Watch = other.Catalog.Watch
	}

	c.Storage.Enabled = other.Storage.Enabled
}
