// Package sqlite stores named worlds in a SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Config configures the world database.
type Config struct {
	// DSN is a file path or "file:" URI. Driver parameters derived from
	// JournalMode and BusyTimeout are appended unless the DSN sets them.
	DSN string

	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	// Migrate creates the worlds table on open.
	Migrate bool

	// JournalMode is applied to every pooled connection. Empty keeps the
	// driver default.
	JournalMode string

	// BusyTimeout is how long a writer waits for a locked database.
	BusyTimeout time.Duration
}

// Option configures the world database.
type Option func(*Config)

// WithDSN sets the data source name.
func WithDSN(dsn string) Option {
	return func(c *Config) {
		c.DSN = dsn
	}
}

// WithJournalMode sets the journal mode.
func WithJournalMode(mode string) Option {
	return func(c *Config) {
		c.JournalMode = mode
	}
}

// WithBusyTimeout sets the busy timeout.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.BusyTimeout = d
	}
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		DSN:             "file:stackplan.db?mode=rwc",
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Hour,
		Migrate:         true,
		JournalMode:     "WAL",
		BusyTimeout:     5 * time.Second,
	}
}

var (
	ErrConnectionFailed = errors.New("sqlite: connection failed")
	ErrMigrationFailed  = errors.New("sqlite: migration failed")
)

// inMemory reports whether dsn names a private in-memory database.
func inMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// connString appends the go-sqlite3 connection parameters for cfg to its DSN.
// Parameters already present in the DSN win.
func connString(cfg Config) string {
	base, rawQuery, _ := strings.Cut(cfg.DSN, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return cfg.DSN
	}

	set := func(key, value string) {
		if value != "" && !query.Has(key) {
			query.Set(key, value)
		}
	}
	if !inMemory(cfg.DSN) {
		set("_journal_mode", cfg.JournalMode)
	}
	if cfg.BusyTimeout > 0 {
		set("_busy_timeout", strconv.FormatInt(cfg.BusyTimeout.Milliseconds(), 10))
	}

	if len(query) == 0 {
		return base
	}
	return base + "?" + query.Encode()
}

// openDB opens and pings the database described by cfg.
func openDB(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", connString(cfg))
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	// Every connection to an in-memory DSN opens a separate database.
	if inMemory(cfg.DSN) {
		cfg.MaxOpenConns = 1
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return db, nil
}
