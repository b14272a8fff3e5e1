// Package config provides domain models for planner configuration.
package config

import (
	"time"

	"github.com/felixgeelhaar/stackplan/domain/goal"
)

// Store backends.
const (
	BackendMemory     = "memory"
	BackendSQLite     = "sqlite"
	BackendBadger     = "badger"
	BackendRedis      = "redis"
	BackendFilesystem = "filesystem"
)

// Defaults applied to unset fields.
const (
	DefaultBudget            = 100000
	DefaultRetryAttempts     = 3
	DefaultRetryInitialDelay = Duration(50 * time.Millisecond)
)

// PlannerConfig represents the complete planner configuration.
type PlannerConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Search contains search settings.
	Search SearchConfig `json:"search,omitempty" yaml:"search,omitempty"`
	// Logging contains logger settings.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// Store selects where named worlds are kept.
	Store StoreConfig `json:"store,omitempty" yaml:"store,omitempty"`
	// Telemetry toggles span export.
	Telemetry TelemetryConfig `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`
}

// SearchConfig contains search settings.
type SearchConfig struct {
	// Budget is the maximum number of node expansions per interpretation.
	Budget int `json:"budget,omitempty" yaml:"budget,omitempty"`
	// DisplacementCost is the heuristic cost of clearing one object.
	DisplacementCost int `json:"displacement_cost,omitempty" yaml:"displacement_cost,omitempty"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	// Level is the minimum level (trace, debug, info, warn, error).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is json or console.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// StoreConfig selects the world store.
type StoreConfig struct {
	// Backend is memory, sqlite, badger, redis or filesystem.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// DSN is the sqlite data source name.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	// Dir is the badger data directory or the filesystem world directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
	// Addr is the redis server address (host:port).
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Password authenticates against redis.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	// KeyPrefix namespaces keys in shared key-value backends.
	KeyPrefix string `json:"key_prefix,omitempty" yaml:"key_prefix,omitempty"`
	// Retry configures retries around store calls.
	Retry RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// RetryConfig configures retries around store calls.
type RetryConfig struct {
	// MaxAttempts is the total number of tries.
	MaxAttempts int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	// InitialDelay is the delay before the first retry.
	InitialDelay Duration `json:"initial_delay,omitempty" yaml:"initial_delay,omitempty"`
}

// TelemetryConfig toggles tracing.
type TelemetryConfig struct {
	// Enabled exports spans for each Plan call to stderr.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *PlannerConfig {
	cfg := &PlannerConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *PlannerConfig) ApplyDefaults() {
	if c.Search.Budget == 0 {
		c.Search.Budget = DefaultBudget
	}
	if c.Search.DisplacementCost == 0 {
		c.Search.DisplacementCost = goal.DisplacementCost
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendMemory
	}
	if c.Store.Retry.MaxAttempts == 0 {
		c.Store.Retry.MaxAttempts = DefaultRetryAttempts
	}
	if c.Store.Retry.InitialDelay == 0 {
		c.Store.Retry.InitialDelay = DefaultRetryInitialDelay
	}
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	// Handle null
	if string(b) == "null" {
		return nil
	}

	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
