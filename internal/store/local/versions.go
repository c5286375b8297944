package local

import (
	"context"
	"fmt"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
)

// SaveVersion appends a version for (projectID, fileID) and then refreshes
// the file's cached content. The version write commits first: if the cache
// refresh fails, the call reports the error but the version stands, and
// FileContent resolves from the log rather than the stale cache.
func (s *Store) SaveVersion(ctx context.Context, projectID, fileID, content, message, author string) (*model.Version, error) {
	if err := s.checkFileInProject(ctx, projectID, fileID); err != nil {
		return nil, err
	}
	return s.appendVersion(ctx, projectID, fileID, content, message, author)
}

// Versions lists versions newest-first. The flat collection is stored
// newest-first, so filtering preserves the order.
func (s *Store) Versions(ctx context.Context, filter model.VersionFilter) ([]*model.Version, error) {
	versions, err := readCollection[model.Version](ctx, s, keyVersions)
	if err != nil {
		return nil, err
	}

	var out []*model.Version
	for i := range versions {
		v := &versions[i]
		if filter.ProjectID != "" && v.ProjectID != filter.ProjectID {
			continue
		}
		if filter.FileID != "" && v.FileID != filter.FileID {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// RestoreVersion copies the named version's content forward as a new
// restore version. The source version is never touched, so it remains
// retrievable by its original id with its original content. The file must
// still belong to the project; nothing is appended for a deleted file.
func (s *Store) RestoreVersion(ctx context.Context, projectID, fileID, versionID, author string) (*model.Version, error) {
	if err := s.checkFileInProject(ctx, projectID, fileID); err != nil {
		return nil, err
	}

	versions, err := readCollection[model.Version](ctx, s, keyVersions)
	if err != nil {
		return nil, err
	}

	for _, v := range versions {
		if v.ID != versionID {
			continue
		}
		if v.ProjectID != projectID || v.FileID != fileID {
			return nil, collab.ErrNotFound
		}
		message := fmt.Sprintf("Restored version %s", shortID(versionID))
		return s.appendVersion(ctx, projectID, fileID, v.Content, message, author)
	}
	return nil, collab.ErrNotFound
}

// appendVersion prepends a new version record and then updates the file's
// inline content cache. Sequencing is version-first, cache-second.
func (s *Store) appendVersion(ctx context.Context, projectID, fileID, content, message, author string) (*model.Version, error) {
	versions, err := readCollection[model.Version](ctx, s, keyVersions)
	if err != nil {
		return nil, err
	}

	version := model.Version{
		ID:            s.idgen.New(),
		ProjectID:     projectID,
		FileID:        fileID,
		Content:       content,
		CommitMessage: message,
		Author:        author,
		Timestamp:     s.clock.Now(),
	}

	versions = append([]model.Version{version}, versions...)
	if err := writeCollection(ctx, s, keyVersions, versions); err != nil {
		return nil, err
	}

	// The cache is derived data; a failure here leaves the version log as
	// the source of truth.
	if err := s.WriteFileContent(ctx, projectID, fileID, content); err != nil {
		return nil, fmt.Errorf("refreshing file content cache: %w", err)
	}

	return &version, nil
}

// checkFileInProject verifies the file belongs to the project.
func (s *Store) checkFileInProject(ctx context.Context, projectID, fileID string) error {
	project, err := s.Project(ctx, projectID)
	if err != nil {
		return err
	}
	for _, f := range project.Files {
		if f.ID == fileID {
			return nil
		}
	}
	return collab.ErrFileNotInProject
}

// dropVersionsForProject removes a deleted project's versions from the
// flat log.
func (s *Store) dropVersionsForProject(ctx context.Context, projectID string) error {
	versions, err := readCollection[model.Version](ctx, s, keyVersions)
	if err != nil {
		return err
	}

	kept := versions[:0]
	for _, v := range versions {
		if v.ProjectID != projectID {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(versions) {
		return nil
	}
	return writeCollection(ctx, s, keyVersions, kept)
}

// shortID abbreviates an id for display in generated commit messages.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
