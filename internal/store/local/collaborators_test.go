package local_test

import (
	"context"
	"errors"
	"testing"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/testutil"
)

func TestStore_AddCollaborator(t *testing.T) {
	ctx := context.Background()

	t.Run("grants access once per email", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		projectID, _ := newProjectWithFile(t, store, "")

		grant, err := store.AddCollaborator(ctx, projectID, "Bob@Example.com", model.PermissionEdit)
		if err != nil {
			t.Fatalf("AddCollaborator() error = %v", err)
		}
		if grant.UserEmail != "bob@example.com" {
			t.Errorf("email = %q, want lowercased", grant.UserEmail)
		}
		if grant.Permission != model.PermissionEdit {
			t.Errorf("permission = %q, want edit", grant.Permission)
		}

		// Same email in different case must be rejected and leave the
		// grant list untouched.
		_, err = store.AddCollaborator(ctx, projectID, "bob@example.com", model.PermissionView)
		if !errors.Is(err, collab.ErrCollaboratorExists) {
			t.Fatalf("AddCollaborator() duplicate error = %v, want ErrCollaboratorExists", err)
		}

		grants, err := store.Collaborators(ctx, projectID)
		if err != nil {
			t.Fatalf("Collaborators() error = %v", err)
		}
		if len(grants) != 1 {
			t.Errorf("grants = %d, want 1", len(grants))
		}
		if grants[0].Permission != model.PermissionEdit {
			t.Errorf("permission = %q, want the original edit grant", grants[0].Permission)
		}
	})

	t.Run("requires an existing project", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		if _, err := store.AddCollaborator(ctx, "missing", "bob@example.com", model.PermissionView); !errors.Is(err, collab.ErrNotFound) {
			t.Errorf("AddCollaborator() error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_RemoveCollaborator(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	projectID, _ := newProjectWithFile(t, store, "")

	grant, err := store.AddCollaborator(ctx, projectID, "bob@example.com", model.PermissionView)
	if err != nil {
		t.Fatalf("AddCollaborator() error = %v", err)
	}

	if err := store.RemoveCollaborator(ctx, projectID, grant.ID); err != nil {
		t.Fatalf("RemoveCollaborator() error = %v", err)
	}
	if err := store.RemoveCollaborator(ctx, projectID, grant.ID); !errors.Is(err, collab.ErrNotFound) {
		t.Errorf("RemoveCollaborator() second time error = %v, want ErrNotFound", err)
	}

	grants, err := store.Collaborators(ctx, projectID)
	if err != nil {
		t.Fatalf("Collaborators() error = %v", err)
	}
	if len(grants) != 0 {
		t.Errorf("grants after removal = %d, want 0", len(grants))
	}
}
