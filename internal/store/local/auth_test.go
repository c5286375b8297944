package local_test

import (
	"context"
	"errors"
	"testing"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/testutil"
)

func TestStore_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user without exposing the password hash", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		user, err := store.Register(ctx, "Alice@Example.com", "sup3rsecret", "Alice")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("email = %q, want lowercased %q", user.Email, "alice@example.com")
		}
		if user.PasswordHash != "" {
			t.Error("Register() returned the password hash")
		}
		if user.ID == "" {
			t.Error("Register() returned empty id")
		}
	})

	t.Run("rejects a duplicate email without side effects", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		if _, err := store.Register(ctx, "alice@example.com", "sup3rsecret", "Alice"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		_, err := store.Register(ctx, "ALICE@example.com", "otherpassword", "Imposter")
		if !errors.Is(err, collab.ErrDuplicateEmail) {
			t.Fatalf("Register() error = %v, want ErrDuplicateEmail", err)
		}

		// The original account must still log in with its own password.
		if _, err := store.Login(ctx, "alice@example.com", "sup3rsecret"); err != nil {
			t.Errorf("Login() after rejected duplicate error = %v", err)
		}
	})
}

func TestStore_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		if _, err := store.Register(ctx, "alice@example.com", "sup3rsecret", "Alice"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		auth, err := store.Login(ctx, "alice@example.com", "sup3rsecret")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if auth.User.Email != "alice@example.com" {
			t.Errorf("user email = %q, want %q", auth.User.Email, "alice@example.com")
		}
		if auth.User.PasswordHash != "" {
			t.Error("Login() returned the password hash")
		}
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		if _, err := store.Register(ctx, "alice@example.com", "sup3rsecret", "Alice"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		_, wrongPass := store.Login(ctx, "alice@example.com", "wrong")
		_, unknown := store.Login(ctx, "nobody@example.com", "whatever")

		if !errors.Is(wrongPass, collab.ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPass)
		}
		if !errors.Is(unknown, collab.ErrInvalidCredentials) {
			t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknown)
		}
		if wrongPass.Error() != unknown.Error() {
			t.Errorf("error messages differ, revealing which emails exist: %q vs %q",
				wrongPass.Error(), unknown.Error())
		}
	})
}

func TestStore_ChangePassword(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)

	if _, err := store.Register(ctx, "alice@example.com", "sup3rsecret", "Alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := store.ChangePassword(ctx, "alice@example.com", "wrong", "newpassword1"); !errors.Is(err, collab.ErrInvalidCredentials) {
		t.Fatalf("ChangePassword() with wrong current error = %v, want ErrInvalidCredentials", err)
	}

	if err := store.ChangePassword(ctx, "alice@example.com", "sup3rsecret", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := store.Login(ctx, "alice@example.com", "sup3rsecret"); !errors.Is(err, collab.ErrInvalidCredentials) {
		t.Errorf("Login() with old password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := store.Login(ctx, "alice@example.com", "newpassword1"); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}

func TestStore_Profile(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)

	p, err := store.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if p.Name != "" || p.Email != "" {
		t.Errorf("unsaved profile = %+v, want zero value", p)
	}

	p.Name = "Alice"
	p.Email = "alice@example.com"
	p.Bio = "builds things"

	saved, err := store.SaveProfile(ctx, p)
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("SaveProfile() did not stamp UpdatedAt")
	}

	got, err := store.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if got.Name != "Alice" || got.Bio != "builds things" {
		t.Errorf("Profile() = %+v, want saved values", got)
	}
}
