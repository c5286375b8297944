package collab

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/collabcloud/collab/internal/model"
)

// SaveVersion appends an immutable version to the log for
// (projectID, fileID), stamped with the session's identity, and refreshes
// the file's cached content. The store writes the version first; if the
// cache refresh fails the version record still stands and FileContent
// resolves from the log.
func (s *Service) SaveVersion(ctx context.Context, projectID, fileID, content, message string) (*model.Version, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := validation.Validate(strings.TrimSpace(message), validation.Required); err != nil {
		return nil, fmt.Errorf("%w: commit message: %v", ErrValidation, err)
	}

	version, err := s.store.SaveVersion(ctx, projectID, fileID, content, message, s.author())
	if err != nil {
		return nil, fmt.Errorf("saving version: %w", err)
	}

	s.recorder.Record(ctx, model.ActionVersionSaved, version.CommitMessage, projectID)
	return version, nil
}

// Versions lists versions newest-first, optionally filtered by project
// and file.
func (s *Service) Versions(ctx context.Context, filter model.VersionFilter) ([]*model.Version, error) {
	versions, err := s.store.Versions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	return versions, nil
}

// RestoreVersion makes the named version's content current by copying it
// forward as a new restore version. The restored version itself is never
// modified and remains retrievable by its original id.
func (s *Service) RestoreVersion(ctx context.Context, projectID, fileID, versionID string) (*model.Version, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}

	restored, err := s.store.RestoreVersion(ctx, projectID, fileID, versionID, s.author())
	if err != nil {
		return nil, fmt.Errorf("restoring version: %w", err)
	}

	s.recorder.Record(ctx, model.ActionVersionRestored, versionID, projectID)
	return restored, nil
}
