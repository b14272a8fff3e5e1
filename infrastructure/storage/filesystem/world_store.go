// Package filesystem provides a directory-backed world store. Each world is
// a YAML file named after it, so the directory can be edited by hand.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

const fileExt = ".yaml"

// WorldStore implements world.Store using the local filesystem.
type WorldStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewWorldStore creates a new filesystem world store rooted at basePath.
func NewWorldStore(basePath string) (*WorldStore, error) {
	if err := os.MkdirAll(basePath, 0750); err != nil {
		return nil, fmt.Errorf("failed to create world directory: %w", err)
	}

	return &WorldStore{basePath: basePath}, nil
}

// Path returns the file that holds the named world.
func (s *WorldStore) Path(name string) string {
	return filepath.Join(s.basePath, name+fileExt)
}

// Get reads and validates the named world.
func (s *WorldStore) Get(ctx context.Context, name string) (world.State, error) {
	if err := ctx.Err(); err != nil {
		return world.State{}, err
	}
	if err := world.ValidateName(name); err != nil {
		return world.State{}, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.Path(name))
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return world.State{}, fmt.Errorf("%w: %s", world.ErrWorldNotFound, name)
		}
		return world.State{}, fmt.Errorf("failed to read world %s: %w", name, err)
	}

	var w world.State
	if err := yaml.Unmarshal(data, &w); err != nil {
		return world.State{}, fmt.Errorf("failed to decode world %s: %w", name, err)
	}
	if err := w.Validate(); err != nil {
		return world.State{}, fmt.Errorf("world %s: %w", name, err)
	}
	return w, nil
}

// Put writes the world through a temporary file so readers never see a
// partial document.
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

	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode world %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.basePath, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           // #nosec G104 -- best-effort cleanup in error path
		os.Remove(tmp.Name()) // #nosec G104 -- best-effort cleanup in error path
		return fmt.Errorf("failed to write world %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) // #nosec G104 -- best-effort cleanup in error path
		return fmt.Errorf("failed to close world file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		os.Remove(tmp.Name()) // #nosec G104 -- best-effort cleanup in error path
		return fmt.Errorf("failed to store world %s: %w", name, err)
	}
	return nil
}

// Delete removes the named world. Missing worlds are ignored.
func (s *WorldStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := world.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete world %s: %w", name, err)
	}
	return nil
}

// List returns the names of the YAML files in the directory, sorted.
func (s *WorldStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries, err := os.ReadDir(s.basePath)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), fileExt)
		if world.ValidateName(name) != nil || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var _ world.Store = (*WorldStore)(nil)
