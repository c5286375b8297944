package collab

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/collabcloud/collab/internal/model"
)

// Comments lists comments newest-first. An empty projectID lists comments
// across all projects.
func (s *Service) Comments(ctx context.Context, projectID string) ([]*model.Comment, error) {
	comments, err := s.store.Comments(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// PostComment attaches a comment to a project (and optionally a file),
// stamped with the session's identity. Empty or whitespace-only text is
// rejected.
func (s *Service) PostComment(ctx context.Context, text, projectID, fileID string) (*model.Comment, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := validation.Validate(strings.TrimSpace(text), validation.Required); err != nil {
		return nil, fmt.Errorf("%w: comment text: %v", ErrValidation, err)
	}

	comment, err := s.store.PostComment(ctx, text, projectID, fileID, s.author())
	if err != nil {
		return nil, fmt.Errorf("posting comment: %w", err)
	}

	s.recorder.Record(ctx, model.ActionCommentPosted, comment.ID, projectID)
	return comment, nil
}

// DeleteComment removes one comment by id.
func (s *Service) DeleteComment(ctx context.Context, id string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := s.store.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	s.recorder.Record(ctx, model.ActionCommentDeleted, id, "")
	return nil
}
