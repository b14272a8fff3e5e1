package world

import "errors"

// Domain errors for world descriptions.
var (
	// ErrInvalidWorld indicates a world violates a structural or physical invariant.
	ErrInvalidWorld = errors.New("invalid world")

	// ErrUnknownObject indicates an identifier that the world does not describe.
	ErrUnknownObject = errors.New("unknown object")

	// ErrWorldNotFound indicates a named world is not present in a store.
	ErrWorldNotFound = errors.New("world not found")

	// ErrInvalidName indicates an empty or malformed world name.
	ErrInvalidName = errors.New("invalid world name")
)
