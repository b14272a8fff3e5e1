package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

var errTransient = errors.New("database is locked")

// flakyStore fails the first failures calls of every method.
type flakyStore struct {
	failures int32
	calls    atomic.Int32
	err      error
}

func (f *flakyStore) fail() error {
	if f.calls.Add(1) <= f.failures {
		return f.err
	}
	return nil
}

func (f *flakyStore) Get(context.Context, string) (world.State, error) {
	if err := f.fail(); err != nil {
		return world.State{}, err
	}
	return world.Examples()["tiny"], nil
}

func (f *flakyStore) Put(context.Context, string, world.State) error { return f.fail() }

func (f *flakyStore) Delete(context.Context, string) error { return f.fail() }

func (f *flakyStore) List(context.Context) ([]string, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []string{"tiny"}, nil
}

func fastStore(next world.Store, attempts int) *Store {
	return NewStore(next, WithRetryAttempts(attempts), WithRetryDelay(time.Millisecond))
}

func TestDefaultStoreConfig(t *testing.T) {
	t.Parallel()

	config := DefaultStoreConfig()
	if config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", config.MaxAttempts)
	}
	if config.InitialDelay != 50*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 50ms", config.InitialDelay)
	}
}

func TestStore_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func(s *Store) error
	}{
		{"get", func(s *Store) error { _, err := s.Get(context.Background(), "tiny"); return err }},
		{"put", func(s *Store) error { return s.Put(context.Background(), "tiny", world.State{}) }},
		{"delete", func(s *Store) error { return s.Delete(context.Background(), "tiny") }},
		{"list", func(s *Store) error { _, err := s.List(context.Background()); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := &flakyStore{failures: 2, err: errTransient}
			if err := tt.call(fastStore(next, 3)); err != nil {
				t.Fatalf("call error = %v, want nil after retries", err)
			}
			if got := next.calls.Load(); got != 3 {
				t.Errorf("calls = %d, want 3", got)
			}
		})
	}
}

func TestStore_GivesUp(t *testing.T) {
	t.Parallel()

	next := &flakyStore{failures: 10, err: errTransient}
	_, err := fastStore(next, 2).Get(context.Background(), "tiny")
	if !errors.Is(err, errTransient) {
		t.Errorf("Get() error = %v, want %v", err, errTransient)
	}
	if got := next.calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestStore_DoesNotRetryPermanentFailures(t *testing.T) {
	t.Parallel()

	for _, permanent := range []error{world.ErrWorldNotFound, world.ErrInvalidWorld, world.ErrInvalidName} {
		t.Run(permanent.Error(), func(t *testing.T) {
			t.Parallel()

			next := &flakyStore{failures: 10, err: permanent}
			_, err := fastStore(next, 5).Get(context.Background(), "tiny")
			if !errors.Is(err, permanent) {
				t.Errorf("Get() error = %v, want %v", err, permanent)
			}
			if got := next.calls.Load(); got != 1 {
				t.Errorf("calls = %d, want 1", got)
			}
		})
	}
}
