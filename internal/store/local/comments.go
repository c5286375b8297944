package local

import (
	"context"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
)

// Comments lists comments newest-first, optionally scoped to a project.
func (s *Store) Comments(ctx context.Context, projectID string) ([]*model.Comment, error) {
	comments, err := readCollection[model.Comment](ctx, s, keyComments)
	if err != nil {
		return nil, err
	}

	var out []*model.Comment
	for i := range comments {
		if projectID != "" && comments[i].ProjectID != projectID {
			continue
		}
		out = append(out, &comments[i])
	}
	return out, nil
}

// PostComment prepends a comment so retrieval is newest-first. When a
// project is named it must exist.
func (s *Store) PostComment(ctx context.Context, text, projectID, fileID, author string) (*model.Comment, error) {
	if projectID != "" {
		if _, err := s.Project(ctx, projectID); err != nil {
			return nil, err
		}
	}

	comments, err := readCollection[model.Comment](ctx, s, keyComments)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:        s.idgen.New(),
		ProjectID: projectID,
		FileID:    fileID,
		Text:      text,
		Author:    author,
		Timestamp: s.clock.Now(),
	}

	comments = append([]model.Comment{comment}, comments...)
	if err := writeCollection(ctx, s, keyComments, comments); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes one comment by id.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	comments, err := readCollection[model.Comment](ctx, s, keyComments)
	if err != nil {
		return err
	}

	kept := comments[:0]
	found := false
	for _, c := range comments {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return collab.ErrNotFound
	}
	return writeCollection(ctx, s, keyComments, kept)
}

// dropCommentsForProject removes a deleted project's comments.
func (s *Store) dropCommentsForProject(ctx context.Context, projectID string) error {
	comments, err := readCollection[model.Comment](ctx, s, keyComments)
	if err != nil {
		return err
	}

	kept := comments[:0]
	for _, c := range comments {
		if c.ProjectID != projectID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(comments) {
		return nil
	}
	return writeCollection(ctx, s, keyComments, kept)
}
