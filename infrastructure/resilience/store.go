// Package resilience retries transient world store failures with fortify.
package resilience

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// StoreConfig configures retries around a world store.
type StoreConfig struct {
	// MaxAttempts is the total number of tries per call.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// BackoffMultiplier is the exponential backoff multiplier.
	BackoffMultiplier float64
}

// DefaultStoreConfig returns a configuration with sensible defaults.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		MaxAttempts:       3,
		InitialDelay:      50 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

// Option configures the store.
type Option func(*StoreConfig)

// WithRetryAttempts sets the maximum attempts.
func WithRetryAttempts(n int) Option {
	return func(c *StoreConfig) {
		c.MaxAttempts = n
	}
}

// WithRetryDelay sets the initial retry delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *StoreConfig) {
		c.InitialDelay = d
	}
}

// nonRetryable are failures that another attempt cannot fix.
var nonRetryable = []error{
	world.ErrWorldNotFound,
	world.ErrInvalidName,
	world.ErrInvalidWorld,
	context.Canceled,
	context.DeadlineExceeded,
}

// Store decorates a world.Store with retries on transient failures.
type Store struct {
	next      world.Store
	getRetry  retry.Retry[world.State]
	listRetry retry.Retry[[]string]
	execRetry retry.Retry[struct{}]
}

// NewStore wraps next with retries.
func NewStore(next world.Store, opts ...Option) *Store {
	config := DefaultStoreConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}

	return &Store{
		next:      next,
		getRetry:  retry.New[world.State](retryConfig(config)),
		listRetry: retry.New[[]string](retryConfig(config)),
		execRetry: retry.New[struct{}](retryConfig(config)),
	}
}

func retryConfig(config StoreConfig) retry.Config {
	return retry.Config{
		MaxAttempts:        config.MaxAttempts,
		InitialDelay:       config.InitialDelay,
		BackoffPolicy:      retry.BackoffExponential,
		Multiplier:         config.BackoffMultiplier,
		NonRetryableErrors: nonRetryable,
	}
}

// Get returns the named world.
func (s *Store) Get(ctx context.Context, name string) (world.State, error) {
	return s.getRetry.Do(ctx, func(ctx context.Context) (world.State, error) {
		return s.next.Get(ctx, name)
	})
}

// Put stores the world under name.
func (s *Store) Put(ctx context.Context, name string, w world.State) error {
	_, err := s.execRetry.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.Put(ctx, name, w)
	})
	return err
}

// Delete removes the named world.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.execRetry.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.Delete(ctx, name)
	})
	return err
}

// List returns the stored names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.listRetry.Do(ctx, func(ctx context.Context) ([]string, error) {
		return s.next.List(ctx)
	})
}

// Ensure interface compliance.
var _ world.Store = (*Store)(nil)
