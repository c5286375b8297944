package collab

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/collabcloud/collab/internal/model"
)

// CreateProject creates a project with the given files. The project and its
// files become visible atomically; no partial project with zero of its
// files is ever observable.
func (s *Service) CreateProject(ctx context.Context, name, description string, files []model.FileInput) (*model.Project, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := validation.Validate(strings.TrimSpace(name), validation.Required); err != nil {
		return nil, fmt.Errorf("%w: project name: %v", ErrValidation, err)
	}
	for _, f := range files {
		if err := validation.Validate(strings.TrimSpace(f.Name), validation.Required); err != nil {
			return nil, fmt.Errorf("%w: file name: %v", ErrValidation, err)
		}
	}

	project, err := s.store.CreateProject(ctx, name, description, files)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.recorder.Record(ctx, model.ActionProjectCreated, project.Name, project.ID)
	return project, nil
}

// Projects lists all projects, most-recently-created first.
func (s *Service) Projects(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.store.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Project returns one project by id.
func (s *Service) Project(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.store.Project(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project and its files.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.recorder.Record(ctx, model.ActionProjectDeleted, id, id)
	return nil
}

// UploadFiles adds files to an existing project.
func (s *Service) UploadFiles(ctx context.Context, projectID string, files []model.FileInput) (*model.Project, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files to upload", ErrValidation)
	}
	for _, f := range files {
		if err := validation.Validate(strings.TrimSpace(f.Name), validation.Required); err != nil {
			return nil, fmt.Errorf("%w: file name: %v", ErrValidation, err)
		}
	}

	project, err := s.store.UploadFiles(ctx, projectID, files)
	if err != nil {
		return nil, fmt.Errorf("uploading files: %w", err)
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	s.recorder.Record(ctx, model.ActionFilesUploaded, strings.Join(names, ", "), projectID)
	return project, nil
}

// DeleteFile removes one file from a project.
func (s *Service) DeleteFile(ctx context.Context, projectID, fileID string) (*model.Project, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	project, err := s.store.DeleteFile(ctx, projectID, fileID)
	if err != nil {
		return nil, fmt.Errorf("deleting file: %w", err)
	}

	s.recorder.Record(ctx, model.ActionFileDeleted, fileID, projectID)
	return project, nil
}

// FileContent resolves the current text of a file. The latest version wins;
// the file's inline content is only used while the version log is empty.
func (s *Service) FileContent(ctx context.Context, projectID, fileID string) (string, error) {
	content, err := s.store.FileContent(ctx, projectID, fileID)
	if err != nil {
		return "", fmt.Errorf("fetching file content: %w", err)
	}
	return content, nil
}

// WriteFileContent overwrites a file's cached content without versioning
// it. Editors use this for scratch saves between named versions.
func (s *Service) WriteFileContent(ctx context.Context, projectID, fileID, content string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := s.store.WriteFileContent(ctx, projectID, fileID, content); err != nil {
		return fmt.Errorf("writing file content: %w", err)
	}

	s.recorder.Record(ctx, model.ActionFileContentUpdated, fileID, projectID)
	return nil
}
