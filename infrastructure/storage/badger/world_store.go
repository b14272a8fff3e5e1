package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// WorldStore is a BadgerDB-backed implementation of world.Store.
type WorldStore struct {
	db        *badger.DB
	keyPrefix string
	gcStop    chan struct{}
	gcWg      sync.WaitGroup
	closeOnce sync.Once
}

// NewWorldStore creates a new BadgerDB world store with the given configuration.
func NewWorldStore(cfg Config, opts ...Option) (*WorldStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &WorldStore{
		db:        db,
		keyPrefix: cfg.KeyPrefix,
		gcStop:    make(chan struct{}),
	}

	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.startGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}

	return s, nil
}

// startGC starts the value log garbage collection goroutine.
func (s *WorldStore) startGC(interval time.Duration, discardRatio float64) {
	s.gcWg.Add(1)
	go func() {
		defer s.gcWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.gcStop:
				return
			case <-ticker.C:
				for s.db.RunValueLogGC(discardRatio) == nil {
				}
			}
		}
	}()
}

// Key format: prefix + "worlds:" + name
func (s *WorldStore) namespace() []byte {
	return []byte(s.keyPrefix + "worlds:")
}

func (s *WorldStore) key(name string) []byte {
	return append(s.namespace(), name...)
}

// Get returns the named world.
func (s *WorldStore) Get(ctx context.Context, name string) (world.State, error) {
	if err := ctx.Err(); err != nil {
		return world.State{}, err
	}
	if err := world.ValidateName(name); err != nil {
		return world.State{}, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return world.State{}, fmt.Errorf("%w: %s", world.ErrWorldNotFound, name)
	}
	if err != nil {
		return world.State{}, err
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

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(s.key(name), data))
	})
}

// Delete removes the named world.
func (s *WorldStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := world.ValidateName(name); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(name))
	})
}

// List returns the stored names in sorted order. Badger iterates keys in
// byte order, which is the sorted order of the names.
func (s *WorldStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := s.namespace()
	names := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Clear removes every stored world.
func (s *WorldStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.DropPrefix(s.namespace())
}

// Close stops GC and closes the database.
func (s *WorldStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.gcStop)
		s.gcWg.Wait()
		err = s.db.Close()
	})
	return err
}

// Ensure interface compliance.
var _ world.Store = (*WorldStore)(nil)
