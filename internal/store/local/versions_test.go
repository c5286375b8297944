package local_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/testutil"
)

// newProjectWithFile creates a project holding one file and returns the
// project and file ids.
func newProjectWithFile(t *testing.T, store collab.Store, content string) (string, string) {
	t.Helper()

	project, err := store.CreateProject(context.Background(), "Demo", "", []model.FileInput{
		{Name: "notes.txt", Content: content},
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	return project.ID, project.Files[0].ID
}

func TestStore_SaveVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the log newest first", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		projectID, fileID := newProjectWithFile(t, store, "")

		for _, msg := range []string{"first", "second", "third"} {
			if _, err := store.SaveVersion(ctx, projectID, fileID, msg+" content", msg, "alice"); err != nil {
				t.Fatalf("SaveVersion(%q) error = %v", msg, err)
			}
		}

		versions, err := store.Versions(ctx, model.VersionFilter{ProjectID: projectID, FileID: fileID})
		if err != nil {
			t.Fatalf("Versions() error = %v", err)
		}
		if len(versions) != 3 {
			t.Fatalf("versions = %d, want 3", len(versions))
		}
		want := []string{"third", "second", "first"}
		for i, v := range versions {
			if v.CommitMessage != want[i] {
				t.Errorf("versions[%d] = %q, want %q", i, v.CommitMessage, want[i])
			}
		}
	})

	t.Run("latest version wins over inline file content", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		projectID, fileID := newProjectWithFile(t, store, "hello")

		if _, err := store.SaveVersion(ctx, projectID, fileID, "world", "update", "alice"); err != nil {
			t.Fatalf("SaveVersion() error = %v", err)
		}

		content, err := store.FileContent(ctx, projectID, fileID)
		if err != nil {
			t.Fatalf("FileContent() error = %v", err)
		}
		if content != "world" {
			t.Errorf("FileContent() = %q, want %q", content, "world")
		}
	})

	t.Run("rejects files outside the project", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		projectID, _ := newProjectWithFile(t, store, "")

		_, err := store.SaveVersion(ctx, projectID, "other-file", "x", "msg", "alice")
		if !errors.Is(err, collab.ErrFileNotInProject) {
			t.Errorf("SaveVersion() error = %v, want ErrFileNotInProject", err)
		}

		versions, err := store.Versions(ctx, model.VersionFilter{ProjectID: projectID})
		if err != nil {
			t.Fatalf("Versions() error = %v", err)
		}
		if len(versions) != 0 {
			t.Errorf("versions after rejected save = %d, want 0", len(versions))
		}
	})
}

func TestStore_Versions(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)

	p1, f1 := newProjectWithFile(t, store, "")
	p2, f2 := newProjectWithFile(t, store, "")

	if _, err := store.SaveVersion(ctx, p1, f1, "a", "p1 save", "alice"); err != nil {
		t.Fatalf("SaveVersion() error = %v", err)
	}
	if _, err := store.SaveVersion(ctx, p2, f2, "b", "p2 save", "alice"); err != nil {
		t.Fatalf("SaveVersion() error = %v", err)
	}

	all, err := store.Versions(ctx, model.VersionFilter{})
	if err != nil {
		t.Fatalf("Versions() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered versions = %d, want 2", len(all))
	}

	only, err := store.Versions(ctx, model.VersionFilter{ProjectID: p1, FileID: f1})
	if err != nil {
		t.Fatalf("Versions() error = %v", err)
	}
	if len(only) != 1 || only[0].CommitMessage != "p1 save" {
		t.Errorf("filtered versions = %+v, want just the p1 save", only)
	}
}

func TestStore_RestoreVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("copies an old version forward as a new entry", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		projectID, fileID := newProjectWithFile(t, store, "")

		v1, err := store.SaveVersion(ctx, projectID, fileID, "A", "first", "alice")
		if err != nil {
			t.Fatalf("SaveVersion() error = %v", err)
		}
		v2, err := store.SaveVersion(ctx, projectID, fileID, "B", "second", "alice")
		if err != nil {
			t.Fatalf("SaveVersion() error = %v", err)
		}

		restored, err := store.RestoreVersion(ctx, projectID, fileID, v1.ID, "alice")
		if err != nil {
			t.Fatalf("RestoreVersion() error = %v", err)
		}
		if restored.Content != "A" {
			t.Errorf("restored content = %q, want %q", restored.Content, "A")
		}
		if restored.ID == v1.ID {
			t.Error("restore reused the old version id instead of creating a new entry")
		}
		if !strings.HasPrefix(restored.CommitMessage, "Restored version ") {
			t.Errorf("commit message = %q, want a restore message", restored.CommitMessage)
		}

		// The log grew; nothing was rewritten.
		versions, err := store.Versions(ctx, model.VersionFilter{ProjectID: projectID, FileID: fileID})
		if err != nil {
			t.Fatalf("Versions() error = %v", err)
		}
		if len(versions) != 3 {
			t.Fatalf("versions = %d, want 3", len(versions))
		}
		if versions[0].ID != restored.ID {
			t.Errorf("newest version = %s, want the restored entry %s", versions[0].ID, restored.ID)
		}
		for _, v := range versions {
			if v.ID == v2.ID && v.Content != "B" {
				t.Errorf("untouched version content = %q, want %q", v.Content, "B")
			}
		}

		content, err := store.FileContent(ctx, projectID, fileID)
		if err != nil {
			t.Fatalf("FileContent() error = %v", err)
		}
		if content != "A" {
			t.Errorf("FileContent() after restore = %q, want %q", content, "A")
		}
	})

	t.Run("rejects a restore for a deleted file without touching the log", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		projectID, fileID := newProjectWithFile(t, store, "")

		v1, err := store.SaveVersion(ctx, projectID, fileID, "A", "first", "alice")
		if err != nil {
			t.Fatalf("SaveVersion() error = %v", err)
		}
		if _, err := store.DeleteFile(ctx, projectID, fileID); err != nil {
			t.Fatalf("DeleteFile() error = %v", err)
		}

		if _, err := store.RestoreVersion(ctx, projectID, fileID, v1.ID, "alice"); !errors.Is(err, collab.ErrFileNotInProject) {
			t.Fatalf("RestoreVersion() error = %v, want ErrFileNotInProject", err)
		}

		versions, err := store.Versions(ctx, model.VersionFilter{ProjectID: projectID, FileID: fileID})
		if err != nil {
			t.Fatalf("Versions() error = %v", err)
		}
		if len(versions) != 1 {
			t.Errorf("versions after rejected restore = %d, want 1", len(versions))
		}
	})

	t.Run("rejects a version from another file", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		p1, f1 := newProjectWithFile(t, store, "")
		p2, f2 := newProjectWithFile(t, store, "")

		v, err := store.SaveVersion(ctx, p1, f1, "A", "first", "alice")
		if err != nil {
			t.Fatalf("SaveVersion() error = %v", err)
		}

		if _, err := store.RestoreVersion(ctx, p2, f2, v.ID, "alice"); !errors.Is(err, collab.ErrNotFound) {
			t.Errorf("RestoreVersion() across files error = %v, want ErrNotFound", err)
		}
	})
}
