package collab

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by both store implementations. Callers match them
// with errors.Is so they never depend on which backend produced the failure.
var (
	// ErrNotFound means a referenced project, file, version, or comment
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail means registration was attempted with an email
	// that already has an account.
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrInvalidCredentials is returned for any login failure. The message
	// is deliberately generic and does not reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation means a required field was empty or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrFileNotInProject means a version operation named a file that does
	// not belong to the given project.
	ErrFileNotInProject = errors.New("file does not belong to project")

	// ErrCollaboratorExists means a grant already exists for the
	// (project, email) pair.
	ErrCollaboratorExists = errors.New("collaborator already added")

	// ErrNotLoggedIn means the operation needs an authenticated session.
	ErrNotLoggedIn = errors.New("not logged in")
)

// TransportError wraps a network or backend failure from the remote store,
// keeping the backend's own message for display.
type TransportError struct {
	Op      string // operation being attempted, e.g. "POST /projects"
	Message string // backend-provided message, if any
	Err     error  // underlying error, if the request never completed
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
