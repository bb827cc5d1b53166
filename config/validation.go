package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// VersioningURI is the only supported versioning strategy: one path prefix
// and one server entry per resolved version.
const VersioningURI = "uri"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural validity of the configuration. Title and
// Version are mandatory; everything else is checked only when present.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(cfg.Version) == "" {
		return fmt.Errorf("version is required")
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	if err := validateVersioning(&cfg.Versioning); err != nil {
		return fmt.Errorf("versioning config: %w", err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if cfg.DocsPath != "" && cfg.DocsPath == cfg.SpecPath {
		return fmt.Errorf("docspath and specpath must differ")
	}

	return nil
}

func validateVersioning(cfg *VersioningConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.Strategy != VersioningURI {
		return fmt.Errorf("unsupported strategy: %s (must be %s)", cfg.Strategy, VersioningURI)
	}

	if strings.TrimSpace(cfg.Fallback) == "" {
		return fmt.Errorf("fallback version is required when versioning is enabled")
	}

	return nil
}

func validateLog(cfg *LogConfig) error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !slices.Contains(validLevels, cfg.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			cfg.Level, strings.Join(validLevels, ", "))
	}
	return nil
}

func validateServer(cfg *ServerConfig) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 0-65535)", cfg.Port)
	}
	return nil
}
