package local_test

import (
	"strings"
	"testing"

	"github.com/collabcloud/collab/internal/store/local"
	"github.com/collabcloud/collab/internal/testutil"
)

func TestCheckSchema(t *testing.T) {
	t.Run("reports an uninitialized store", func(t *testing.T) {
		err := local.CheckSchema(t.TempDir())
		if err == nil {
			t.Fatal("CheckSchema() on empty dir returned nil, want error")
		}
		if !strings.Contains(err.Error(), "not initialized") {
			t.Errorf("CheckSchema() error = %v, want a not-initialized message", err)
		}
	})

	t.Run("passes after the store has been opened and migrated", func(t *testing.T) {
		dataDir := t.TempDir()

		store, err := local.Open(dataDir, testutil.NewStubIDGenerator(), testutil.FixedClock())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		if err := local.CheckSchema(dataDir); err != nil {
			t.Errorf("CheckSchema() after migration error = %v", err)
		}
	})
}
