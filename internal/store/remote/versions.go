package remote

import (
	"context"
	"net/http"

	"github.com/collabcloud/collab/internal/model"
)

// SaveVersion appends a version on the backend, which stamps author and
// timestamp from the bearer token; the author argument is unused here.
func (s *Store) SaveVersion(ctx context.Context, projectID, fileID, content, message, author string) (*model.Version, error) {
	body := map[string]string{
		"content": content,
		"message": message,
	}

	var version model.Version
	path := "/projects/" + projectID + "/files/" + fileID + "/versions"
	if err := s.doJSON(ctx, http.MethodPost, path, body, &version, nil); err != nil {
		return nil, err
	}
	return &version, nil
}

// Versions lists versions newest-first, filtered server-side.
func (s *Store) Versions(ctx context.Context, filter model.VersionFilter) ([]*model.Version, error) {
	path := query("/versions", map[string]string{
		"projectId": filter.ProjectID,
		"fileId":    filter.FileID,
	})

	var versions []*model.Version
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &versions, nil); err != nil {
		return nil, err
	}
	return versions, nil
}

// RestoreVersion asks the backend to copy the version's content forward
// and returns the synthetic restore version it created.
func (s *Store) RestoreVersion(ctx context.Context, projectID, fileID, versionID, author string) (*model.Version, error) {
	var version model.Version
	path := "/projects/" + projectID + "/files/" + fileID + "/versions/" + versionID + "/restore"
	if err := s.doJSON(ctx, http.MethodPost, path, nil, &version, nil); err != nil {
		return nil, err
	}
	return &version, nil
}
