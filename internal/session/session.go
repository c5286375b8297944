// Package session holds the current user's identity between CLI
// invocations. The session is an explicit object loaded at startup and
// injected into the data layer; nothing reads it from package state.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/collabcloud/collab/internal/model"
)

// Session identifies the logged-in user. Token is the bearer token for the
// remote backend and is empty in local mode. A zero Session means nobody is
// logged in.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// LoggedIn reports whether the session carries an identity.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != ""
}

// Expired reports whether the session's token has an expiry in the past.
// Sessions without an expiry (local mode) never expire.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SetAuth populates the session from a login result. When the token is a
// JWT its expiry claim is read without signature verification; the client
// only uses it to know when to prompt for a fresh login, the backend
// remains the token's validator.
func (s *Session) SetAuth(auth *model.AuthResult) {
	s.UserID = auth.User.ID
	s.Email = auth.User.Email
	s.Name = auth.User.Name
	s.Role = string(auth.User.Role)
	s.Token = auth.Token
	s.ExpiresAt = time.Time{}

	if auth.Token == "" {
		return
	}
	token, _, err := jwt.NewParser().ParseUnverified(auth.Token, jwt.MapClaims{})
	if err != nil {
		return
	}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
}

// Reset clears the session in place.
func (s *Session) Reset() {
	*s = Session{}
}

// Load reads a session from path. A missing file yields an empty session,
// not an error.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &s, nil
}

// Save writes the session to path, creating parent directories as needed.
// The file is user-readable only since it carries the bearer token.
func Save(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
