package local

import (
	"context"
	"strings"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
)

// AddCollaborator appends a grant to the project's collaborator list.
// The (project, email) pair is unique: a duplicate add is rejected and the
// list is left exactly as it was.
func (s *Store) AddCollaborator(ctx context.Context, projectID, email string, permission model.Permission) (*model.CollaboratorGrant, error) {
	if _, err := s.Project(ctx, projectID); err != nil {
		return nil, err
	}

	key := collaboratorKey(projectID)
	grants, err := readCollection[model.CollaboratorGrant](ctx, s, key)
	if err != nil {
		return nil, err
	}

	for _, g := range grants {
		if strings.EqualFold(g.UserEmail, email) {
			return nil, collab.ErrCollaboratorExists
		}
	}

	grant := model.CollaboratorGrant{
		ID:         s.idgen.New(),
		ProjectID:  projectID,
		UserEmail:  strings.ToLower(email),
		Permission: permission,
		AddedAt:    s.clock.Now(),
	}

	if err := writeCollection(ctx, s, key, append(grants, grant)); err != nil {
		return nil, err
	}
	return &grant, nil
}

// Collaborators returns a project's grants in the order they were added.
func (s *Store) Collaborators(ctx context.Context, projectID string) ([]*model.CollaboratorGrant, error) {
	if _, err := s.Project(ctx, projectID); err != nil {
		return nil, err
	}

	grants, err := readCollection[model.CollaboratorGrant](ctx, s, collaboratorKey(projectID))
	if err != nil {
		return nil, err
	}

	out := make([]*model.CollaboratorGrant, len(grants))
	for i := range grants {
		out[i] = &grants[i]
	}
	return out, nil
}

// RemoveCollaborator deletes one grant by id.
func (s *Store) RemoveCollaborator(ctx context.Context, projectID, grantID string) error {
	key := collaboratorKey(projectID)
	grants, err := readCollection[model.CollaboratorGrant](ctx, s, key)
	if err != nil {
		return err
	}

	kept := grants[:0]
	found := false
	for _, g := range grants {
		if g.ID == grantID {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return collab.ErrNotFound
	}
	return writeCollection(ctx, s, key, kept)
}
