// Package collab is the data access layer for CollabCloud. The Service
// mediates every read and write of users, projects, files, versions,
// comments, and collaborator grants, dispatching to whichever Store
// implementation was injected at construction.
package collab

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/session"
)

// Service is the single point of truth for entity persistence. It validates
// input at the boundary, stamps authorship from the injected session, and
// records a best-effort activity entry for every mutating operation.
type Service struct {
	store    Store
	session  *session.Session
	recorder *Recorder
	logger   Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(store Store, sess *session.Session, recorder *Recorder, logger Logger) *Service {
	return &Service{
		store:    store,
		session:  sess,
		recorder: recorder,
		logger:   logger,
	}
}

// Recorder exposes the service's activity recorder for read operations.
func (s *Service) Recorder() *Recorder { return s.recorder }

// author returns the identity stamped on versions and comments: the
// session's email, or the user id when no email is known.
func (s *Service) author() string {
	if s.session.Email != "" {
		return s.session.Email
	}
	return s.session.UserID
}

// requireLogin fails unless the session carries an identity.
func (s *Service) requireLogin() error {
	if !s.session.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

// Register creates a new account and signs the session in as that user.
func (s *Service) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return nil, fmt.Errorf("%w: email: %v", ErrValidation, err)
	}
	if err := validation.Validate(password, validation.Required, validation.Length(8, 0)); err != nil {
		return nil, fmt.Errorf("%w: password: %v", ErrValidation, err)
	}
	if err := validation.Validate(strings.TrimSpace(name), validation.Required); err != nil {
		return nil, fmt.Errorf("%w: name: %v", ErrValidation, err)
	}

	user, err := s.store.Register(ctx, email, password, name)
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.recorder.Record(ctx, model.ActionRegister, user.Email, "")
	return user, nil
}

// Login verifies credentials and populates the session on success.
func (s *Service) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return nil, fmt.Errorf("%w: email: %v", ErrValidation, err)
	}
	if err := validation.Validate(password, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: password: %v", ErrValidation, err)
	}

	auth, err := s.store.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	s.session.SetAuth(auth)
	s.recorder.Record(ctx, model.ActionLogin, auth.User.Email, "")
	return auth, nil
}

// Logout clears the in-memory session. Persisting the cleared state is the
// caller's job, since the service does not own the session file.
func (s *Service) Logout() {
	s.session.Reset()
}

// ResetPassword requests a password reset. The outcome never reveals
// whether the email has an account.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return fmt.Errorf("%w: email: %v", ErrValidation, err)
	}
	if err := s.store.ResetPassword(ctx, email); err != nil {
		return fmt.Errorf("requesting password reset: %w", err)
	}
	return nil
}

// ChangePassword replaces the current user's password.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := validation.Validate(next, validation.Required, validation.Length(8, 0)); err != nil {
		return fmt.Errorf("%w: new password: %v", ErrValidation, err)
	}

	if err := s.store.ChangePassword(ctx, s.session.Email, current, next); err != nil {
		return fmt.Errorf("changing password: %w", err)
	}

	s.recorder.Record(ctx, model.ActionPasswordChanged, s.session.Email, "")
	return nil
}

// Profile returns the current user's profile.
func (s *Service) Profile(ctx context.Context) (*model.Profile, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	p, err := s.store.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return p, nil
}

// SaveProfile persists profile edits.
func (s *Service) SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := validation.Validate(strings.TrimSpace(p.Name), validation.Required); err != nil {
		return nil, fmt.Errorf("%w: name: %v", ErrValidation, err)
	}
	if p.Email != "" {
		if err := validation.Validate(p.Email, is.Email); err != nil {
			return nil, fmt.Errorf("%w: email: %v", ErrValidation, err)
		}
	}

	saved, err := s.store.SaveProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}

	s.recorder.Record(ctx, model.ActionProfileUpdated, saved.Name, "")
	return saved, nil
}
