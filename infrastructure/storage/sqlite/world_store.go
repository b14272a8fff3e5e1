package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/stackplan/domain/world"
)

// WorldStore is a SQLite-backed implementation of world.Store.
type WorldStore struct {
	db *sql.DB
}

// NewWorldStore creates a new SQLite world store with the given configuration.
func NewWorldStore(cfg Config, opts ...Option) (*WorldStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &WorldStore{db: db}

	if cfg.Migrate {
		if err := s.migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// migrate creates the worlds table if it doesn't exist.
func (s *WorldStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS worlds (
			name TEXT PRIMARY KEY,
			stacks INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
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
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM worlds WHERE name = ?",
		name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
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

// Put validates and stores the world under name, replacing any previous one.
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

	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO worlds (name, stacks, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			stacks = excluded.stacks,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		name, len(w.Stacks), data, now, now,
	)
	return err
}

// Delete removes the named world.
func (s *WorldStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := world.ValidateName(name); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, "DELETE FROM worlds WHERE name = ?", name)
	return err
}

// List returns the stored names in sorted order.
func (s *WorldStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM worlds ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (s *WorldStore) Close() error {
	return s.db.Close()
}

// Ensure interface compliance.
var _ world.Store = (*WorldStore)(nil)
