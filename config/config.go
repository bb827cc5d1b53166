// Package config loads and validates the tool configuration from layered
// sources: built-in defaults, an optional YAML file and environment
// variables, in ascending priority.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "OASFORGE_"

// Load reads configuration from defaults, the given YAML file (optional,
// skipped when path is empty or missing) and OASFORGE_* environment
// variables. The result is validated; a missing or empty title or version is
// a fatal construction error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(envprovider.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// New validates a programmatically built configuration and applies the same
// defaults Load would. Useful for embedding the pipeline as a library.
func New(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"docspath":    "/docs",
		"specpath":    "/docs-json",
		"theme":       "default",
		"scanonstart": true,
		"watchmode":   false,

		"includesecurity": false,

		"versioning.enabled":  false,
		"versioning.strategy": "uri",
		"versioning.prefix":   "api",
		"versioning.fallback": "v1",

		"log.level":  "info",
		"log.pretty": false,

		"server.host":              "0.0.0.0",
		"server.port":              8080,
		"server.requestspersecond": 50,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func applyDefaults(cfg *Config) {
	if cfg.DocsPath == "" {
		cfg.DocsPath = "/docs"
	}
	if cfg.SpecPath == "" {
		cfg.SpecPath = "/docs-json"
	}
	if cfg.Theme == "" {
		cfg.Theme = "default"
	}
	if cfg.Versioning.Strategy == "" {
		cfg.Versioning.Strategy = "uri"
	}
	if cfg.Versioning.Prefix == "" {
		cfg.Versioning.Prefix = "api"
	}
	if cfg.Versioning.Fallback == "" {
		cfg.Versioning.Fallback = "v1"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
