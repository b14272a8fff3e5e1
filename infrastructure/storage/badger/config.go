// Package badger stores named worlds in an embedded BadgerDB database.
package badger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/stackplan/infrastructure/logging"
)

// DefaultKeyPrefix namespaces world keys inside a shared database.
const DefaultKeyPrefix = "stackplan/"

// ErrOpenFailed is returned when the database cannot be opened.
var ErrOpenFailed = errors.New("badger: failed to open world database")

// Config configures the world database.
type Config struct {
	// Dir holds the database files. Ignored when InMemory is set.
	Dir string

	// InMemory keeps everything in memory. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every Put and Delete.
	SyncWrites bool

	// GCInterval is the period of value log collection. Zero disables it.
	GCInterval time.Duration

	// GCDiscardRatio is passed to RunValueLogGC.
	GCDiscardRatio float64

	KeyPrefix string

	// Logger receives badger's own log lines. Nil silences them.
	Logger *bolt.Logger
}

// Option configures the world database.
type Option func(*Config)

// WithDir sets the data directory.
func WithDir(dir string) Option {
	return func(c *Config) {
		c.Dir = dir
	}
}

// WithInMemory keeps the database in memory.
func WithInMemory() Option {
	return func(c *Config) {
		c.InMemory = true
	}
}

// WithSyncWrites enables synchronous writes.
func WithSyncWrites() Option {
	return func(c *Config) {
		c.SyncWrites = true
	}
}

// WithKeyPrefix sets the key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Config) {
		c.KeyPrefix = prefix
	}
}

// WithLogger routes badger's log output through l.
func WithLogger(l *bolt.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
		KeyPrefix:      DefaultKeyPrefix,
	}
}

// openDB opens the database described by cfg. Worlds are overwritten in
// place, so only the latest version of a key is kept.
func openDB(cfg Config) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Dir).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(boltLogger{cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}
	return db, nil
}

// boltLogger adapts a bolt logger to badger.Logger. Badger's info output is
// demoted to debug.
type boltLogger struct {
	l *bolt.Logger
}

func (b boltLogger) Errorf(format string, args ...any) { b.log(b.l.Error(), format, args) }

func (b boltLogger) Warningf(format string, args ...any) { b.log(b.l.Warn(), format, args) }

func (b boltLogger) Infof(format string, args ...any) { b.log(b.l.Debug(), format, args) }

func (b boltLogger) Debugf(format string, args ...any) { b.log(b.l.Debug(), format, args) }

func (b boltLogger) log(e *bolt.Event, format string, args []any) {
	logging.NewEvent(e).Add(
		logging.Component("badger"),
	).Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

var _ badger.Logger = boltLogger{}
