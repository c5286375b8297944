package collab

import (
	"context"

	"github.com/collabcloud/collab/internal/model"
)

// Store is the persistence strategy behind the data access layer. Two
// implementations exist: a remote HTTP client against the CollabCloud
// backend, and a local SQLite-backed fallback store. The implementation is
// chosen once at construction from configuration and injected into the
// Service; no operation branches on the mode.
//
// Both implementations present identical semantics and report failures via
// the sentinel errors in this package, so callers stay backend-agnostic.
// Methods that stamp authorship take the author explicitly; the remote
// backend derives it from the bearer token instead and ignores the argument.
type Store interface {
	// Auth

	// Register creates a new account. Fails with ErrDuplicateEmail if the
	// email is taken; no partial user is left behind on failure.
	Register(ctx context.Context, email, password, name string) (*model.User, error)

	// Login verifies credentials. Fails with ErrInvalidCredentials on any
	// mismatch without revealing whether the email exists.
	Login(ctx context.Context, email, password string) (*model.AuthResult, error)

	// ResetPassword requests a password reset for the email. Local mode
	// accepts silently; neither mode reveals whether the email exists.
	ResetPassword(ctx context.Context, email string) error

	// ChangePassword replaces the password for the account identified by
	// email after verifying the current one.
	ChangePassword(ctx context.Context, email, current, next string) error

	// Projects

	// CreateProject assigns a fresh id and prepends the project to the
	// collection so listings are most-recent-first. The project and its
	// files become visible atomically from the caller's point of view.
	CreateProject(ctx context.Context, name, description string, files []model.FileInput) (*model.Project, error)

	// Projects returns all projects, most-recently-created first.
	Projects(ctx context.Context) ([]*model.Project, error)

	// Project returns one project or ErrNotFound.
	Project(ctx context.Context, id string) (*model.Project, error)

	// DeleteProject removes the project and its files.
	DeleteProject(ctx context.Context, id string) error

	// Files

	// UploadFiles adds files to a project and returns the updated project.
	UploadFiles(ctx context.Context, projectID string, files []model.FileInput) (*model.Project, error)

	// DeleteFile removes one file and returns the updated project.
	DeleteFile(ctx context.Context, projectID, fileID string) (*model.Project, error)

	// FileContent resolves the current text of a file: the content of its
	// latest version, or the file's own inline content when no version
	// exists yet. The file record is a cache only; the version log wins.
	FileContent(ctx context.Context, projectID, fileID string) (string, error)

	// WriteFileContent overwrites a file's cached inline content without
	// creating a version. Once the file has versions this does not change
	// what FileContent resolves to.
	WriteFileContent(ctx context.Context, projectID, fileID, content string) error

	// Versions

	// SaveVersion appends an immutable version for (projectID, fileID) and
	// then refreshes the file's cached content. The version is written
	// first: if the cache refresh fails the version still stands as the
	// source of truth. Fails with ErrFileNotInProject when the file does
	// not belong to the project.
	SaveVersion(ctx context.Context, projectID, fileID, content, message, author string) (*model.Version, error)

	// Versions lists versions newest-first, optionally filtered.
	Versions(ctx context.Context, filter model.VersionFilter) ([]*model.Version, error)

	// RestoreVersion copies the named version's content forward as a new
	// restore version. The source version is left untouched and remains
	// retrievable by its original id. Fails with ErrNotFound if the
	// version does not exist for that (projectID, fileID).
	RestoreVersion(ctx context.Context, projectID, fileID, versionID, author string) (*model.Version, error)

	// Comments

	// Comments lists comments newest-first. An empty projectID lists all.
	Comments(ctx context.Context, projectID string) ([]*model.Comment, error)

	// PostComment appends a comment stamped with the given author.
	PostComment(ctx context.Context, text, projectID, fileID, author string) (*model.Comment, error)

	// DeleteComment removes one comment or fails with ErrNotFound.
	DeleteComment(ctx context.Context, id string) error

	// Collaborators

	// AddCollaborator grants access to a project. Fails with
	// ErrCollaboratorExists when a grant for (projectID, email) already
	// exists; the grant list is unchanged by a rejected call.
	AddCollaborator(ctx context.Context, projectID, email string, permission model.Permission) (*model.CollaboratorGrant, error)

	// Collaborators lists a project's grants in the order they were added.
	Collaborators(ctx context.Context, projectID string) ([]*model.CollaboratorGrant, error)

	// RemoveCollaborator deletes one grant by id.
	RemoveCollaborator(ctx context.Context, projectID, grantID string) error

	// Profile

	// Profile returns the current user's profile.
	Profile(ctx context.Context) (*model.Profile, error)

	// SaveProfile persists the profile and returns the stored copy.
	SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error)

	// Activity

	// AppendActivity appends one activity entry. Callers treat failures
	// as best-effort; see Recorder.
	AppendActivity(ctx context.Context, entry model.ActivityLogEntry) error

	// ActivityLogs lists entries newest-first.
	ActivityLogs(ctx context.Context) ([]*model.ActivityLogEntry, error)

	// ClearActivityLogs removes all entries. Backends that do not support
	// deletion may report an error; callers must not assume success.
	ClearActivityLogs(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
