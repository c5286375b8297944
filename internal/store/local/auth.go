package local

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
)

const bcryptCost = 12

// Register creates a new user. The users collection is read, checked for
// the email, and written back in one snapshot, so a rejected duplicate
// leaves no partial user behind.
func (s *Store) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	users, err := readCollection[model.User](ctx, s, keyUsers)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return nil, collab.ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		ID:           s.idgen.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         model.RoleUser,
	}

	if err := writeCollection(ctx, s, keyUsers, append(users, user)); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login verifies credentials against the stored bcrypt hash. Every failure
// maps to ErrInvalidCredentials so callers cannot tell a wrong password
// from an unknown email. Local mode issues no bearer token.
func (s *Store) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	users, err := readCollection[model.User](ctx, s, keyUsers)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, collab.ErrInvalidCredentials
		}
		return &model.AuthResult{User: *sanitizeUser(u)}, nil
	}

	return nil, collab.ErrInvalidCredentials
}

// ResetPassword accepts any email without revealing whether an account
// exists. The local store has no mail transport, so there is nothing
// further to do.
func (s *Store) ResetPassword(ctx context.Context, email string) error {
	return nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Store) ChangePassword(ctx context.Context, email, current, next string) error {
	users, err := readCollection[model.User](ctx, s, keyUsers)
	if err != nil {
		return err
	}

	for i, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
			return collab.ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		users[i].PasswordHash = string(hash)
		return writeCollection(ctx, s, keyUsers, users)
	}

	return collab.ErrInvalidCredentials
}

// Profile returns the stored profile singleton, or an empty profile when
// none has been saved yet.
func (s *Store) Profile(ctx context.Context) (*model.Profile, error) {
	p, _, err := readSingleton[model.Profile](ctx, s, keyProfile)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile replaces the profile singleton.
func (s *Store) SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	saved := *p
	saved.UpdatedAt = s.clock.Now()
	if err := writeSingleton(ctx, s, keyProfile, saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// sanitizeUser strips the password hash from a user before it leaves the
// store.
func sanitizeUser(u model.User) *model.User {
	u.PasswordHash = ""
	return &u
}
