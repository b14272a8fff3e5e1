package config

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// LoadWorldFile reads a world state from a YAML or JSON file and validates it.
func (l *Loader) LoadWorldFile(path string) (world.State, error) {
	f, format, err := openFile(path)
	if err != nil {
		return world.State{}, err
	}
	defer f.Close()

	return l.LoadWorld(f, format)
}

// LoadWorld reads a world state from a reader and validates it.
func (l *Loader) LoadWorld(r io.Reader, format Format) (world.State, error) {
	var s world.State
	if err := l.decode(r, format, &s); err != nil {
		return world.State{}, err
	}
	if err := s.Validate(); err != nil {
		return world.State{}, fmt.Errorf("world file: %w", err)
	}
	return s, nil
}
