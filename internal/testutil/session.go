package testutil

import (
	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/session"
)

// LoggedInSession returns a session for a fixed test user.
func LoggedInSession() *session.Session {
	return &session.Session{
		UserID: "user-test",
		Email:  "dev@example.com",
		Name:   "Dev User",
		Role:   string(model.RoleUser),
	}
}
