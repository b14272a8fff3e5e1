// Package memory keeps named worlds in process memory.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// WorldStore is an in-memory implementation of world.Store. Worlds are kept
// encoded so callers never share memory with the store.
type WorldStore struct {
	worlds map[string][]byte
	mu     sync.RWMutex
}

// Option configures a WorldStore.
type Option func(*WorldStore) error

// WithWorlds seeds the store.
func WithWorlds(worlds map[string]world.State) Option {
	return func(s *WorldStore) error {
		for name, w := range worlds {
			if err := s.put(name, w); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithExamples seeds the store with the built-in example worlds.
func WithExamples() Option {
	return WithWorlds(world.Examples())
}

// NewWorldStore creates a new in-memory world store.
func NewWorldStore(opts ...Option) (*WorldStore, error) {
	s := &WorldStore{
		worlds: make(map[string][]byte),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns the named world.
func (s *WorldStore) Get(ctx context.Context, name string) (world.State, error) {
	if err := ctx.Err(); err != nil {
		return world.State{}, err
	}
	if err := world.ValidateName(name); err != nil {
		return world.State{}, err
	}

	s.mu.RLock()
	data, ok := s.worlds[name]
	s.mu.RUnlock()
	if !ok {
		return world.State{}, fmt.Errorf("%w: %s", world.ErrWorldNotFound, name)
	}

	var w world.State
	if err := json.Unmarshal(data, &w); err != nil {
		return world.State{}, err
	}
	return w, nil
}

// Put validates and stores the world under name.
func (s *WorldStore) Put(ctx context.Context, name string, w world.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.put(name, w)
}

func (s *WorldStore) put(name string, w world.State) error {
	if err := world.ValidateName(name); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(w)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.worlds[name] = data
	return nil
}

// Delete removes the named world.
func (s *WorldStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := world.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.worlds, name)
	return nil
}

// List returns the stored names in sorted order.
func (s *WorldStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.worlds))
	for name := range s.worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Ensure interface compliance.
var _ world.Store = (*WorldStore)(nil)
