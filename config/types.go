package config

// Config is the full configuration consumed by the pipeline and the docs
// server. Title and Version are the only mandatory fields; everything else
// has a usable default.
type Config struct {
	Title       string `koanf:"title" validate:"required"`
	Version     string `koanf:"version" validate:"required"`
	Description string `koanf:"description"`

	SourcePath   string `koanf:"sourcepath"`
	GlobalPrefix string `koanf:"globalprefix"`
	DocsPath     string `koanf:"docspath"`
	SpecPath     string `koanf:"specpath"`
	Theme        string `koanf:"theme"`

	Servers         []ServerEntry     `koanf:"servers"`
	CategoryMapping map[string]string `koanf:"categorymapping"`
	Exclude         []string          `koanf:"exclude"`

	ScanOnStart bool `koanf:"scanonstart"`
	WatchMode   bool `koanf:"watchmode"`

	IncludeSecurity bool            `koanf:"includesecurity"`
	SecurityScheme  *SecurityScheme `koanf:"securityscheme"`

	Versioning VersioningConfig `koanf:"versioning"`
	Log        LogConfig        `koanf:"log"`
	Server     ServerConfig     `koanf:"server"`
}

// ServerEntry is one extra server listed verbatim in the output document.
type ServerEntry struct {
	URL         string `koanf:"url" validate:"required"`
	Description string `koanf:"description"`
}

// SecurityScheme describes the security scheme attached to non-public routes
// when IncludeSecurity is set.
type SecurityScheme struct {
	Type         string `koanf:"type"`
	Scheme       string `koanf:"scheme"`
	BearerFormat string `koanf:"bearerformat"`
	Name         string `koanf:"name"`
	In           string `koanf:"in"`
}

// VersioningConfig controls per-version path prefixes and server entries.
type VersioningConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Strategy string `koanf:"strategy"`
	Prefix   string `koanf:"prefix"`
	Fallback string `koanf:"fallback"`
}

// LogConfig mirrors the logger package's options.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// ServerConfig holds the docs server listen options.
type ServerConfig struct {
	Host              string `koanf:"host"`
	Port              int    `koanf:"port"`
	RequestsPerSecond int    `koanf:"requestspersecond"`
}

// DefaultBearerScheme is applied when security is enabled without an explicit
// scheme.
func DefaultBearerScheme() *SecurityScheme {
	return &SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}
}
