package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/felixgeelhaar/stackplan/domain/world"
	"github.com/felixgeelhaar/stackplan/infrastructure/storage/sqlite"
)

func newTestWorldStore(t *testing.T) *sqlite.WorldStore {
	t.Helper()

	store, err := sqlite.NewWorldStore(sqlite.DefaultConfig(),
		sqlite.WithDSN("file:"+filepath.Join(t.TempDir(), "worlds.db")+"?mode=rwc"),
		sqlite.WithJournalMode("DELETE"),
		sqlite.WithBusyTimeout(time.Second),
	)
	if err != nil {
		t.Fatalf("NewWorldStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestWorldStore_PutGet(t *testing.T) {
	t.Parallel()

	store := newTestWorldStore(t)
	ctx := context.Background()

	small := world.Examples()["small"]
	if err := store.Put(ctx, "small", small); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "small")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Stacks) != len(small.Stacks) {
		t.Errorf("len(Stacks) = %d, want %d", len(got.Stacks), len(small.Stacks))
	}
	if !slices.Equal(got.Stacks[3], small.Stacks[3]) {
		t.Errorf("Stacks[3] = %v, want %v", got.Stacks[3], small.Stacks[3])
	}
	if got.Objects["l"] != small.Objects["l"] {
		t.Errorf("Objects[l] = %+v, want %+v", got.Objects["l"], small.Objects["l"])
	}
}

func TestWorldStore_Replace(t *testing.T) {
	t.Parallel()

	store := newTestWorldStore(t)
	ctx := context.Background()

	examples := world.Examples()
	if err := store.Put(ctx, "lab", examples["small"]); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "lab", examples["tiny"]); err != nil {
		t.Fatalf("Put (replace) failed: %v", err)
	}

	got, err := store.Get(ctx, "lab")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Stacks) != 1 {
		t.Errorf("len(Stacks) = %d, want the replaced world with 1", len(got.Stacks))
	}
}

func TestWorldStore_ListDelete(t *testing.T) {
	t.Parallel()

	store := newTestWorldStore(t)
	ctx := context.Background()

	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty store = %v, want []", names)
	}

	for name, w := range world.Examples() {
		if err := store.Put(ctx, name, w); err != nil {
			t.Fatalf("Put(%s) failed: %v", name, err)
		}
	}

	names, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if want := world.ExampleNames(); !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}

	if err := store.Delete(ctx, "medium"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "medium"); !errors.Is(err, world.ErrWorldNotFound) {
		t.Errorf("Get after Delete error = %v, want %v", err, world.ErrWorldNotFound)
	}
}

func TestWorldStore_Errors(t *testing.T) {
	t.Parallel()

	store := newTestWorldStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, world.ErrWorldNotFound) {
		t.Errorf("Get(missing) error = %v, want %v", err, world.ErrWorldNotFound)
	}
	if err := store.Put(ctx, "", world.Examples()["tiny"]); !errors.Is(err, world.ErrInvalidName) {
		t.Errorf("Put(empty name) error = %v, want %v", err, world.ErrInvalidName)
	}
	if err := store.Put(ctx, "broken", world.State{Stacks: [][]string{{"ghost"}}}); !errors.Is(err, world.ErrInvalidWorld) {
		t.Errorf("Put(broken) error = %v, want %v", err, world.ErrInvalidWorld)
	}
}

func TestWorldStore_InMemoryDSN(t *testing.T) {
	t.Parallel()

	cfg := sqlite.DefaultConfig()
	cfg.DSN = ":memory:"
	cfg.JournalMode = ""

	store, err := sqlite.NewWorldStore(cfg)
	if err != nil {
		t.Fatalf("NewWorldStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Put(ctx, "tiny", world.Examples()["tiny"]); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := store.Get(ctx, "tiny"); err != nil {
		t.Errorf("Get failed: %v", err)
	}
}
