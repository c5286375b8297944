package collab_test

import (
	"testing"

	"github.com/collabcloud/collab/internal/collab"
)

func TestULIDGenerator(t *testing.T) {
	t.Parallel()

	gen := collab.NewULIDGenerator()

	prev := gen.New()
	if len(prev) != 26 {
		t.Fatalf("id length = %d, want 26", len(prev))
	}

	// Monotonic entropy keeps ids strictly increasing even within the
	// same millisecond, so insertion order is recoverable from the ids.
	for i := 0; i < 100; i++ {
		id := gen.New()
		if id <= prev {
			t.Fatalf("id %q not greater than previous %q", id, prev)
		}
		prev = id
	}
}
