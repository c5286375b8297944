package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/collabcloud/collab/internal/model"
)

// CreateProject creates a project with its initial files in one call; the
// backend assigns all ids.
func (s *Store) CreateProject(ctx context.Context, name, description string, files []model.FileInput) (*model.Project, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"files":       files,
	}

	var project model.Project
	if err := s.doJSON(ctx, http.MethodPost, "/projects", body, &project, nil); err != nil {
		return nil, err
	}
	return &project, nil
}

// Projects lists all projects, most-recently-created first.
func (s *Store) Projects(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	if err := s.doJSON(ctx, http.MethodGet, "/projects", nil, &projects, nil); err != nil {
		return nil, err
	}
	return projects, nil
}

// Project fetches one project by id.
func (s *Store) Project(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := s.doJSON(ctx, http.MethodGet, "/projects/"+id, nil, &project, nil); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project. Cascade policy is the backend's.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, "/projects/"+id, nil, nil, nil)
}

// UploadFiles sends files as a multipart form, one part per file.
func (s *Store) UploadFiles(ctx context.Context, projectID string, files []model.FileInput) (*model.Project, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := createFilePart(w, f)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(part, f.Content); err != nil {
			return nil, fmt.Errorf("writing file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	path := "/projects/" + projectID + "/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.send(req, http.MethodPost, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := s.checkStatus(resp, http.MethodPost, path, nil); err != nil {
		return nil, err
	}

	var project model.Project
	if err := decodeJSON(resp.Body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteFile removes one file and returns the updated project.
func (s *Store) DeleteFile(ctx context.Context, projectID, fileID string) (*model.Project, error) {
	var project model.Project
	path := "/projects/" + projectID + "/files/" + fileID
	if err := s.doJSON(ctx, http.MethodDelete, path, nil, &project, nil); err != nil {
		return nil, err
	}
	return &project, nil
}

// FileContent downloads the file's resolved current content as raw text.
func (s *Store) FileContent(ctx context.Context, projectID, fileID string) (string, error) {
	path := "/api/files/" + fileID + "/download"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := s.send(req, http.MethodGet, path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := s.checkStatus(resp, http.MethodGet, path, nil); err != nil {
		return "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading file content: %w", err)
	}
	return string(data), nil
}

// WriteFileContent overwrites the file's cached content on the backend.
func (s *Store) WriteFileContent(ctx context.Context, projectID, fileID, content string) error {
	body := map[string]string{"content": content}
	return s.doJSON(ctx, http.MethodPut, "/api/files/"+fileID+"/content", body, nil, nil)
}

// createFilePart adds a form part named "files" carrying the file's name
// and mime type.
func createFilePart(w *multipart.Writer, f model.FileInput) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
	contentType := f.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	return part, nil
}
