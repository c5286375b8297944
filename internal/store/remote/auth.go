package remote

import (
	"context"
	"net/http"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
)

// Register creates an account. The backend reports an existing email as a
// conflict, surfaced as ErrDuplicateEmail.
func (s *Store) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}

	var user model.User
	if err := s.doJSON(ctx, http.MethodPost, "/auth/register", body, &user, collab.ErrDuplicateEmail); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and the user record.
func (s *Store) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var auth model.AuthResult
	if err := s.doJSON(ctx, http.MethodPost, "/auth/login", body, &auth, nil); err != nil {
		return nil, err
	}
	return &auth, nil
}

// ResetPassword asks the backend to start a reset flow for the email.
func (s *Store) ResetPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return s.doJSON(ctx, http.MethodPost, "/auth/reset-password", body, nil, nil)
}

// ChangePassword replaces the current user's password. The backend derives
// the account from the bearer token; the email argument is unused here.
func (s *Store) ChangePassword(ctx context.Context, email, current, next string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	return s.doJSON(ctx, http.MethodPut, "/users/me/password", body, nil, nil)
}

// Profile fetches the current user's profile.
func (s *Store) Profile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	if err := s.doJSON(ctx, http.MethodGet, "/users/me", nil, &p, nil); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile persists profile edits and returns the stored copy.
func (s *Store) SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	var saved model.Profile
	if err := s.doJSON(ctx, http.MethodPut, "/users/me", p, &saved, nil); err != nil {
		return nil, err
	}
	return &saved, nil
}
