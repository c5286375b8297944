package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/store/local"
	"github.com/collabcloud/collab/internal/store/local/migrations"
)

var errAppendRefused = errors.New("activity log unavailable")

// NewTestStore creates a local store backed by an in-memory SQLite database
// with migrations applied. The store is closed when the test completes.
func NewTestStore(t *testing.T) *local.Store {
	t.Helper()

	db, err := local.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		t.Fatalf("failed to apply migrations: %v", err)
	}

	store := local.NewFromDB(db, NewStubIDGenerator(), FixedClock())

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// FailingActivityStore wraps a store so that every activity append fails.
// All other operations pass through.
type FailingActivityStore struct {
	collab.Store
	Appends int
}

func (s *FailingActivityStore) AppendActivity(ctx context.Context, entry model.ActivityLogEntry) error {
	s.Appends++
	return errAppendRefused
}
