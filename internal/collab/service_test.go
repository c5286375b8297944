package collab_test

import (
	"context"
	"errors"
	"testing"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/session"
	"github.com/collabcloud/collab/internal/testutil"
)

// newTestService wires a service over an in-memory local store with a
// logged-in session.
func newTestService(t *testing.T) (*collab.Service, *session.Session) {
	t.Helper()

	store := testutil.NewTestStore(t)
	sess := testutil.LoggedInSession()
	recorder := collab.NewRecorder(store, sess, testutil.FixedClock(), collab.NewNopLogger())
	return collab.NewService(store, sess, recorder, collab.NewNopLogger()), sess
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed input before touching the store", func(t *testing.T) {
		svc, _ := newTestService(t)

		cases := []struct {
			name            string
			email, password string
		}{
			{"bad email", "not-an-email", "sup3rsecret"},
			{"empty email", "", "sup3rsecret"},
			{"short password", "alice@example.com", "short"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tc.email, tc.password, "Alice")
				if !errors.Is(err, collab.ErrValidation) {
					t.Errorf("Register() error = %v, want ErrValidation", err)
				}
			})
		}
	})

	t.Run("normalizes the email and records activity", func(t *testing.T) {
		svc, _ := newTestService(t)

		user, err := svc.Register(ctx, "  Alice@Example.COM ", "sup3rsecret", "Alice")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("email = %q, want trimmed and lowercased", user.Email)
		}

		logs := svc.Recorder().Logs(ctx)
		if len(logs) != 1 || logs[0].ActionType != model.ActionRegister {
			t.Errorf("activity log = %+v, want one register entry", logs)
		}
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, sess := newTestService(t)

	if _, err := svc.Register(ctx, "alice@example.com", "sup3rsecret", "Alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	auth, err := svc.Login(ctx, "alice@example.com", "sup3rsecret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.UserID != auth.User.ID || sess.Email != "alice@example.com" {
		t.Errorf("session = %+v, want populated from login", sess)
	}

	svc.Logout()
	if sess.LoggedIn() {
		t.Error("session still logged in after Logout()")
	}
}

func TestService_RequiresLogin(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	sess := &session.Session{}
	recorder := collab.NewRecorder(store, sess, testutil.FixedClock(), collab.NewNopLogger())
	svc := collab.NewService(store, sess, recorder, collab.NewNopLogger())

	if _, err := svc.CreateProject(ctx, "Demo", "", nil); !errors.Is(err, collab.ErrNotLoggedIn) {
		t.Errorf("CreateProject() error = %v, want ErrNotLoggedIn", err)
	}
	if _, err := svc.SaveVersion(ctx, "p", "f", "x", "msg"); !errors.Is(err, collab.ErrNotLoggedIn) {
		t.Errorf("SaveVersion() error = %v, want ErrNotLoggedIn", err)
	}
	if _, err := svc.PostComment(ctx, "hi", "p", ""); !errors.Is(err, collab.ErrNotLoggedIn) {
		t.Errorf("PostComment() error = %v, want ErrNotLoggedIn", err)
	}
	if _, err := svc.Profile(ctx); !errors.Is(err, collab.ErrNotLoggedIn) {
		t.Errorf("Profile() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestService_SaveVersion_StampsAuthor(t *testing.T) {
	ctx := context.Background()
	svc, sess := newTestService(t)

	project, err := svc.CreateProject(ctx, "Demo", "", []model.FileInput{
		{Name: "notes.txt", Content: "hello"},
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	version, err := svc.SaveVersion(ctx, project.ID, project.Files[0].ID, "world", "update")
	if err != nil {
		t.Fatalf("SaveVersion() error = %v", err)
	}
	if version.Author != sess.Email {
		t.Errorf("author = %q, want session email %q", version.Author, sess.Email)
	}
}

// A flaky activity backend must never fail the operation that produced the
// entry.
func TestService_ActivityIsBestEffort(t *testing.T) {
	ctx := context.Background()

	inner := testutil.NewTestStore(t)
	failing := &testutil.FailingActivityStore{Store: inner}
	sess := testutil.LoggedInSession()
	recorder := collab.NewRecorder(failing, sess, testutil.FixedClock(), collab.NewNopLogger())
	svc := collab.NewService(failing, sess, recorder, collab.NewNopLogger())

	project, err := svc.CreateProject(ctx, "Demo", "", nil)
	if err != nil {
		t.Fatalf("CreateProject() error = %v despite failing activity log", err)
	}
	if failing.Appends == 0 {
		t.Fatal("no activity append was attempted")
	}

	comment, err := svc.PostComment(ctx, "still works", project.ID, "")
	if err != nil {
		t.Fatalf("PostComment() error = %v despite failing activity log", err)
	}
	if comment.Text != "still works" {
		t.Errorf("comment text = %q", comment.Text)
	}

	if logs := svc.Recorder().Logs(ctx); len(logs) != 0 {
		t.Errorf("logs = %d entries, want 0 since every append failed", len(logs))
	}
}

// The full editing flow: create a project with one file, save two versions,
// then restore the first.
func TestService_VersioningFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	project, err := svc.CreateProject(ctx, "Demo", "demo project", []model.FileInput{
		{Name: "notes.txt", Content: "draft"},
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	fileID := project.Files[0].ID

	v1, err := svc.SaveVersion(ctx, project.ID, fileID, "first draft", "initial")
	if err != nil {
		t.Fatalf("SaveVersion() error = %v", err)
	}
	if _, err := svc.SaveVersion(ctx, project.ID, fileID, "second draft", "revised"); err != nil {
		t.Fatalf("SaveVersion() error = %v", err)
	}

	content, err := svc.FileContent(ctx, project.ID, fileID)
	if err != nil {
		t.Fatalf("FileContent() error = %v", err)
	}
	if content != "second draft" {
		t.Fatalf("FileContent() = %q, want latest version", content)
	}

	if _, err := svc.RestoreVersion(ctx, project.ID, fileID, v1.ID); err != nil {
		t.Fatalf("RestoreVersion() error = %v", err)
	}

	content, err = svc.FileContent(ctx, project.ID, fileID)
	if err != nil {
		t.Fatalf("FileContent() error = %v", err)
	}
	if content != "first draft" {
		t.Errorf("FileContent() after restore = %q, want %q", content, "first draft")
	}

	versions, err := svc.Versions(ctx, model.VersionFilter{ProjectID: project.ID, FileID: fileID})
	if err != nil {
		t.Fatalf("Versions() error = %v", err)
	}
	if len(versions) != 3 {
		t.Errorf("versions = %d, want 3 (two saves plus the restore)", len(versions))
	}
}

func TestService_PostComment_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.PostComment(ctx, "   ", "p", ""); !errors.Is(err, collab.ErrValidation) {
		t.Errorf("PostComment() blank text error = %v, want ErrValidation", err)
	}
}

func TestService_AddCollaborator_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	project, err := svc.CreateProject(ctx, "Demo", "", nil)
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	if _, err := svc.AddCollaborator(ctx, project.ID, "not-an-email", model.PermissionView); !errors.Is(err, collab.ErrValidation) {
		t.Errorf("AddCollaborator() bad email error = %v, want ErrValidation", err)
	}
	if _, err := svc.AddCollaborator(ctx, project.ID, "bob@example.com", "owner"); !errors.Is(err, collab.ErrValidation) {
		t.Errorf("AddCollaborator() bad permission error = %v, want ErrValidation", err)
	}
}
