package model

import "time"

// Role identifies a user's access level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Permission is the access level of a collaborator grant on a project.
type Permission string

const (
	PermissionView  Permission = "view"
	PermissionEdit  Permission = "edit"
	PermissionAdmin Permission = "admin"
)

// User represents a registered account.
// PasswordHash is only populated by the local store; the remote backend
// never returns it.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
}

// AuthResult is the outcome of a successful login.
// Token is empty in local mode, where no bearer token exists.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"accessToken"`
}

// Project owns an ordered set of files. Projects are listed
// most-recently-created first.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Files       []File    `json:"files"`
}

// File belongs to exactly one project. Content holds base64-encoded text
// for inline files; ExternalRef points into the backend's blob store for
// files whose bytes live elsewhere. At most one of the two is set.
type File struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MimeType    string    `json:"mimeType"`
	Content     string    `json:"content,omitempty"`
	ExternalRef string    `json:"externalContentRef,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// FileInput is the caller-supplied shape for creating a file. Content is
// the raw text; the store encodes it before persisting.
type FileInput struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"`
}

// Version is one immutable entry in a file's append-only version log.
// Ordering within a (ProjectID, FileID) log is newest-first by creation,
// with ULID ids breaking timestamp ties in insertion order.
type Version struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"projectId"`
	FileID        string    `json:"fileId"`
	Content       string    `json:"content"`
	CommitMessage string    `json:"commitMessage"`
	Author        string    `json:"author"`
	Timestamp     time.Time `json:"timestamp"`
}

// VersionFilter narrows a version listing. Zero fields match everything.
type VersionFilter struct {
	ProjectID string
	FileID    string
}

// Comment is attached to a project and optionally to one of its files.
// Comments cannot be edited or threaded, only deleted.
type Comment struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId,omitempty"`
	FileID    string    `json:"fileId,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// CollaboratorGrant links a user to a project at a permission level.
// At most one grant exists per (ProjectID, UserEmail) pair.
type CollaboratorGrant struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"projectId"`
	UserEmail  string     `json:"userEmail"`
	Permission Permission `json:"permission"`
	AddedAt    time.Time  `json:"addedAt"`
}

// Profile is the current user's editable profile, a singleton per account.
type Profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActionType classifies an activity log entry.
type ActionType string

const (
	ActionRegister           ActionType = "register"
	ActionLogin              ActionType = "login"
	ActionProjectCreated     ActionType = "project_created"
	ActionProjectDeleted     ActionType = "project_deleted"
	ActionFilesUploaded      ActionType = "files_uploaded"
	ActionFileDeleted        ActionType = "file_deleted"
	ActionFileContentUpdated ActionType = "file_content_updated"
	ActionVersionSaved       ActionType = "version_saved"
	ActionVersionRestored    ActionType = "version_restored"
	ActionCommentPosted      ActionType = "comment_posted"
	ActionCommentDeleted     ActionType = "comment_deleted"
	ActionCollaboratorAdded  ActionType = "collaborator_added"
	ActionCollaboratorRemoved ActionType = "collaborator_removed"
	ActionProfileUpdated     ActionType = "profile_updated"
	ActionPasswordChanged    ActionType = "password_changed"
)

// ActivityLogEntry records one data-layer action. Entries are append-only
// and best-effort: losing one never fails the operation that produced it.
type ActivityLogEntry struct {
	ActionType    ActionType `json:"actionType"`
	ActionDetails string     `json:"actionDetails"`
	UserID        string     `json:"userId"`
	ProjectID     string     `json:"projectId,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
}
