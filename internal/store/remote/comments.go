package remote

import (
	"context"
	"net/http"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
)

// Comments lists comments newest-first, optionally scoped to a project.
func (s *Store) Comments(ctx context.Context, projectID string) ([]*model.Comment, error) {
	path := query("/comments", map[string]string{"projectId": projectID})

	var comments []*model.Comment
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &comments, nil); err != nil {
		return nil, err
	}
	return comments, nil
}

// PostComment creates a comment; the backend stamps the author from the
// bearer token, so the author argument is unused here.
func (s *Store) PostComment(ctx context.Context, text, projectID, fileID, author string) (*model.Comment, error) {
	body := map[string]string{
		"text":      text,
		"projectId": projectID,
		"fileId":    fileID,
	}

	var comment model.Comment
	if err := s.doJSON(ctx, http.MethodPost, "/projects/comments", body, &comment, nil); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes one comment by id.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, "/comments/"+id, nil, nil, nil)
}

// AddCollaborator grants project access; a duplicate (project, email) pair
// comes back as a conflict, surfaced as ErrCollaboratorExists.
func (s *Store) AddCollaborator(ctx context.Context, projectID, email string, permission model.Permission) (*model.CollaboratorGrant, error) {
	body := map[string]string{
		"userEmail":  email,
		"permission": string(permission),
	}

	var grant model.CollaboratorGrant
	path := "/projects/" + projectID + "/collaborators"
	if err := s.doJSON(ctx, http.MethodPost, path, body, &grant, collab.ErrCollaboratorExists); err != nil {
		return nil, err
	}
	return &grant, nil
}

// Collaborators lists a project's grants in the order they were added.
func (s *Store) Collaborators(ctx context.Context, projectID string) ([]*model.CollaboratorGrant, error) {
	var grants []*model.CollaboratorGrant
	path := "/projects/" + projectID + "/collaborators"
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &grants, nil); err != nil {
		return nil, err
	}
	return grants, nil
}

// RemoveCollaborator revokes one grant by id.
func (s *Store) RemoveCollaborator(ctx context.Context, projectID, grantID string) error {
	path := "/projects/" + projectID + "/collaborators/" + grantID
	return s.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// AppendActivity posts one activity entry.
func (s *Store) AppendActivity(ctx context.Context, entry model.ActivityLogEntry) error {
	return s.doJSON(ctx, http.MethodPost, "/api/activity-logs", entry, nil, nil)
}

// ActivityLogs lists entries newest-first.
func (s *Store) ActivityLogs(ctx context.Context) ([]*model.ActivityLogEntry, error) {
	var entries []*model.ActivityLogEntry
	if err := s.doJSON(ctx, http.MethodGet, "/api/activity-logs", nil, &entries, nil); err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearActivityLogs deletes all entries. Backends without deletion support
// answer with an error status; the Recorder treats that as best-effort.
func (s *Store) ClearActivityLogs(ctx context.Context) error {
	return s.doJSON(ctx, http.MethodDelete, "/api/activity-logs", nil, nil, nil)
}
