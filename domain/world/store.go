package world

import "context"

// Store persists named worlds.
// Backends live under infrastructure/storage.
type Store interface {
	// Get returns the world stored under name, or ErrWorldNotFound.
	Get(ctx context.Context, name string) (State, error)

	// Put stores or replaces the world under name.
	Put(ctx context.Context, name string, s State) error

	// Delete removes the named world. Deleting a missing world is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in sorted order.
	List(ctx context.Context) ([]string, error)
}
