// Package local implements the fallback Store used when no remote backend
// is configured. Every entity collection is persisted as one JSON array
// under a well-known key in a single SQLite table, and each operation is a
// whole-collection read-modify-write snapshot. There are no row-level
// updates and no cross-step transactions: single-process usage is the only
// mode with any safety guarantee, which is the contract the data layer
// accepts for local mode.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/store/local/migrations"
)

// Collection keys. Collaborator lists are keyed per project.
const (
	keyUsers    = "users"
	keyProjects = "projects"
	keyVersions = "versions"
	keyComments = "comments"
	keyProfile  = "profile"
	keyActivity = "activity_logs"

	collaboratorKeyPrefix = "collaborators/"
)

// Store implements collab.Store on an embedded SQLite database.
type Store struct {
	db    *sql.DB
	idgen collab.IDGenerator
	clock collab.Clock
}

// Open creates a Store backed by the database file at dataDir/collab.db,
// creating the directory and applying pending schema migrations as needed.
func Open(dataDir string, idgen collab.IDGenerator, clock collab.Clock) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := OpenConnection(filepath.Join(dataDir, "collab.db"))
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating local store: %w", err)
	}

	return &Store{db: db, idgen: idgen, clock: clock}, nil
}

// CheckSchema reports whether the database under dataDir exists and has
// all migrations applied, without migrating or creating anything.
func CheckSchema(dataDir string) error {
	path := filepath.Join(dataDir, "collab.db")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("store not initialized (created on first use)")
		}
		return fmt.Errorf("checking store file: %w", err)
	}

	db, err := OpenConnection(path)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.CheckDBMigrationStatus(db)
}

// NewFromDB wraps an existing connection whose schema is already in place.
// The caller keeps ownership of the connection's configuration.
func NewFromDB(db *sql.DB, idgen collab.IDGenerator, clock collab.Clock) *Store {
	return &Store{db: db, idgen: idgen, clock: clock}
}

// OpenConnection opens and configures a SQLite connection. path can be a
// file path or ":memory:" for an in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Wait for locks instead of failing when another handle holds one.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Compile-time check that Store implements the data layer's contract.
var _ collab.Store = (*Store)(nil)

// collaboratorKey returns the collection key for a project's grant list.
func collaboratorKey(projectID string) string {
	return collaboratorKeyPrefix + projectID
}

// readRaw returns the serialized collection for key, or nil when the
// collection has never been written.
func (s *Store) readRaw(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading collection %q: %w", key, err)
	}
	return []byte(data), nil
}

// writeRaw replaces the serialized collection for key in one statement.
func (s *Store) writeRaw(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (key, data) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data`,
		key, string(data))
	if err != nil {
		return fmt.Errorf("writing collection %q: %w", key, err)
	}
	return nil
}

// deleteRaw removes a collection entirely. Absent keys are a no-op.
func (s *Store) deleteRaw(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM collections WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting collection %q: %w", key, err)
	}
	return nil
}

// readCollection loads a whole collection as a snapshot slice. A missing
// collection is an empty slice.
func readCollection[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	raw, err := s.readRaw(ctx, key)
	if err != nil || raw == nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding collection %q: %w", key, err)
	}
	return items, nil
}

// writeCollection persists a whole collection snapshot.
func writeCollection[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding collection %q: %w", key, err)
	}
	return s.writeRaw(ctx, key, data)
}

// readSingleton loads a single-record collection such as the profile.
// ok is false when nothing has been stored yet.
func readSingleton[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	var item T
	raw, err := s.readRaw(ctx, key)
	if err != nil || raw == nil {
		return item, false, err
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, false, fmt.Errorf("decoding collection %q: %w", key, err)
	}
	return item, true, nil
}

// writeSingleton persists a single-record collection.
func writeSingleton[T any](ctx context.Context, s *Store, key string, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding collection %q: %w", key, err)
	}
	return s.writeRaw(ctx, key, data)
}
