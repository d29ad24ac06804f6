package config

import (
	"time"

	"tagforge-hq/tagforge/pkg/engine"
)

// Config is the root configuration structure for the tagforge server. It
// covers the HTTP server, snippet storage, output caching, code
// validation, per-service template settings, and telemetry.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Store selects and configures the snippet storage backend.
	Store StoreConfig `yaml:"store"`

	// Cache configures the rendered-output cache.
	Cache CacheConfig `yaml:"cache"`

	// Validation bounds the authoring-time code validator.
	Validation ValidationConfig `yaml:"validation"`

	// Services holds per-service template settings keyed by catalog
	// service key (e.g. "google_analytics").
	Services map[string]ServiceConfig `yaml:"services"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out a response.
	// Default: 15s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle limit.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects the snippet storage backend.
type StoreConfig struct {
	// Backend is "sqlite" or "file".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// File configures the read-only YAML file backend.
	File FileStoreConfig `yaml:"file"`
}

// SQLiteConfig contains configuration for the SQLite snippet store.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/snippets.db"
	Path string `yaml:"path"`

	// MaxOpenConns caps open connections. Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns caps idle connections. Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging. Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the lock wait limit. Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// FileStoreConfig contains configuration for the YAML file snippet source.
type FileStoreConfig struct {
	// Dir is the directory holding snippet YAML files.
	// Default: "snippets/"
	Dir string `yaml:"dir"`

	// Watch reloads snippets when files change.
	// Default: true
	Watch bool `yaml:"watch"`

	// DebounceInterval collapses rapid file-change bursts into one reload.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// CacheConfig contains configuration for the rendered-output cache.
type CacheConfig struct {
	// Backend is "memory" or "otter".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// TTL is how long rendered output stays cached.
	// Default: 1h
	TTL time.Duration `yaml:"ttl"`

	// MaxEntries bounds the otter backend's capacity.
	// Default: 10000
	MaxEntries int `yaml:"max_entries"`

	// SweepSchedule is a cron expression for expired-entry sweeps on the
	// memory backend. Empty disables sweeping.
	// Default: "*/10 * * * *"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// ValidationConfig bounds the authoring-time code validator.
type ValidationConfig struct {
	// MaxCodeLength is the largest accepted snippet, in bytes.
	// Default: 50000
	MaxCodeLength int `yaml:"max_code_length"`

	// MinCodeLength rejects non-empty code shorter than this.
	// Default: 10
	MinCodeLength int `yaml:"min_code_length"`

	// AllowedDomains overrides the built-in external-domain allow-list
	// when non-empty.
	AllowedDomains []string `yaml:"allowed_domains"`

	// SuspiciousDomains overrides the built-in denylist when non-empty.
	SuspiciousDomains []string `yaml:"suspicious_domains"`
}

// ServiceConfig is one catalog service's settings. Template-backed
// services render from the built-in template with TrackingID substituted;
// custom-code services emit CustomCode as-is after validation.
type ServiceConfig struct {
	// Enabled gates the whole service.
	Enabled bool `yaml:"enabled"`

	// UseTemplate selects the built-in template over CustomCode.
	// Default: true
	UseTemplate *bool `yaml:"use_template"`

	// TrackingID is the service identifier substituted into the template.
	TrackingID string `yaml:"tracking_id"`

	// CustomCode replaces the template when UseTemplate is false.
	CustomCode string `yaml:"custom_code"`

	// Position overrides the service's default output position.
	Position string `yaml:"position"`

	// Priority orders the service against other snippets.
	// Default: 10
	Priority int `yaml:"priority"`

	// Device restricts the service to one device class.
	// Default: "all"
	Device string `yaml:"device"`

	// Conditions gates the service with a visibility rule tree.
	Conditions *engine.Node `yaml:"conditions"`
}

// TemplateEnabled reports whether the service renders from its catalog
// template. Nil UseTemplate means yes.
func (s ServiceConfig) TemplateEnabled() bool {
	return s.UseTemplate == nil || *s.UseTemplate
}

// TelemetryConfig contains logging and metrics configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled exposes the /metrics endpoint.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
