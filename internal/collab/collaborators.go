package collab

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/collabcloud/collab/internal/model"
)

// AddCollaborator grants a user access to a project. At most one grant
// exists per (project, email) pair; adding a duplicate fails with
// ErrCollaboratorExists and leaves the grant list unchanged.
func (s *Service) AddCollaborator(ctx context.Context, projectID, email string, permission model.Permission) (*model.CollaboratorGrant, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return nil, fmt.Errorf("%w: email: %v", ErrValidation, err)
	}
	if err := validation.Validate(string(permission), validation.Required,
		validation.In(string(model.PermissionView), string(model.PermissionEdit), string(model.PermissionAdmin))); err != nil {
		return nil, fmt.Errorf("%w: permission: %v", ErrValidation, err)
	}

	grant, err := s.store.AddCollaborator(ctx, projectID, email, permission)
	if err != nil {
		return nil, fmt.Errorf("adding collaborator: %w", err)
	}

	s.recorder.Record(ctx, model.ActionCollaboratorAdded, grant.UserEmail, projectID)
	return grant, nil
}

// Collaborators lists a project's grants in the order they were added.
func (s *Service) Collaborators(ctx context.Context, projectID string) ([]*model.CollaboratorGrant, error) {
	grants, err := s.store.Collaborators(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing collaborators: %w", err)
	}
	return grants, nil
}

// RemoveCollaborator revokes one grant by id.
func (s *Service) RemoveCollaborator(ctx context.Context, projectID, grantID string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := s.store.RemoveCollaborator(ctx, projectID, grantID); err != nil {
		return fmt.Errorf("removing collaborator: %w", err)
	}

	s.recorder.Record(ctx, model.ActionCollaboratorRemoved, grantID, projectID)
	return nil
}
