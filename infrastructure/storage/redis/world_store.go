package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// WorldStore is a Redis-backed implementation of world.Store. Each world is
// a JSON string key; a set holds the stored names.
type WorldStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewWorldStore connects to Redis with the given configuration.
func NewWorldStore(cfg Config, opts ...ConfigOption) (*WorldStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	clientOpts, err := cfg.clientOptions()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(clientOpts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return NewWorldStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewWorldStoreFromClient creates a world store from an existing Redis client.
func NewWorldStoreFromClient(client *redis.Client, keyPrefix string) *WorldStore {
	return &WorldStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *WorldStore) key(name string) string {
	return s.keyPrefix + "worlds:" + name
}

func (s *WorldStore) indexKey() string {
	return s.keyPrefix + "worlds"
}

// Get returns the world stored under name.
func (s *WorldStore) Get(ctx context.Context, name string) (world.State, error) {
	if err := ctx.Err(); err != nil {
		return world.State{}, err
	}
	if err := world.ValidateName(name); err != nil {
		return world.State{}, err
	}

	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return world.State{}, fmt.Errorf("%w: %s", world.ErrWorldNotFound, name)
		}
		return world.State{}, wrapError(err)
	}

	var w world.State
	if err := json.Unmarshal(data, &w); err != nil {
		return world.State{}, fmt.Errorf("decode world %s: %w", name, err)
	}
	return w, nil
}

// Put stores or replaces the world under name.
func (s *WorldStore) Put(ctx context.Context, name string, w world.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := world.ValidateName(name); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode world %s: %w", name, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(name), data, 0)
		pipe.SAdd(ctx, s.indexKey(), name)
		return nil
	})
	return wrapError(err)
}

// Delete removes the named world.
func (s *WorldStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := world.ValidateName(name); err != nil {
		return err
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		pipe.SRem(ctx, s.indexKey(), name)
		return nil
	})
	return wrapError(err)
}

// List returns the stored names in sorted order.
func (s *WorldStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, wrapError(err)
	}
	slices.Sort(names)
	return names, nil
}

// Close closes the Redis connection.
func (s *WorldStore) Close() error {
	return s.client.Close()
}

// wrapError marks timeouts with ErrOperationTimeout.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrOperationTimeout, err)
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Join(ErrOperationTimeout, err)
	}

	return err
}

var _ world.Store = (*WorldStore)(nil)
