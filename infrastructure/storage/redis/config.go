// Package redis stores named worlds in Redis so several planners can share
// one catalog.
package redis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces world keys in a shared server.
const DefaultKeyPrefix = "stackplan:"

var (
	ErrConnectionFailed = errors.New("redis: connection failed")
	ErrOperationTimeout = errors.New("redis: operation timed out")
	ErrInvalidAddress   = errors.New("redis: invalid address")
)

// Config configures the connection to the world catalog.
type Config struct {
	// Address is host:port or a redis:// or rediss:// URL. Credentials and
	// database in a URL override Password and DB.
	Address  string
	Password string
	DB       int

	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	KeyPrefix string
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		Address:      "localhost:6379",
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
		KeyPrefix:    DefaultKeyPrefix,
	}
}

// ConfigOption configures the connection.
type ConfigOption func(*Config)

// WithAddress sets the server address.
func WithAddress(addr string) ConfigOption {
	return func(c *Config) {
		c.Address = addr
	}
}

// WithPassword sets the password.
func WithPassword(password string) ConfigOption {
	return func(c *Config) {
		c.Password = password
	}
}

// WithDB selects the database index.
func WithDB(db int) ConfigOption {
	return func(c *Config) {
		c.DB = db
	}
}

// WithKeyPrefix sets the key prefix. An empty prefix keeps the default.
func WithKeyPrefix(prefix string) ConfigOption {
	return func(c *Config) {
		if prefix != "" {
			c.KeyPrefix = prefix
		}
	}
}

// WithTimeouts sets the dial, read and write timeouts.
func WithTimeouts(dial, read, write time.Duration) ConfigOption {
	return func(c *Config) {
		c.DialTimeout = dial
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// clientOptions converts c to go-redis options.
func (c Config) clientOptions() (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     c.Address,
		Password: c.Password,
		DB:       c.DB,
	}
	if strings.Contains(c.Address, "://") {
		parsed, err := redis.ParseURL(c.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
		}
		if parsed.Password == "" {
			parsed.Password = c.Password
		}
		opts = parsed
	}

	opts.MaxRetries = c.MaxRetries
	opts.DialTimeout = c.DialTimeout
	opts.ReadTimeout = c.ReadTimeout
	opts.WriteTimeout = c.WriteTimeout
	opts.PoolSize = c.PoolSize
	return opts, nil
}
