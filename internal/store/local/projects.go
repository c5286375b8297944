package local

import (
	"context"

	"github.com/collabcloud/collab/internal/codec"
	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/model"
)

// CreateProject assigns fresh ids to the project and its files and
// prepends the project, keeping the collection most-recent-first. The
// single snapshot write makes the project and all of its files visible
// atomically.
func (s *Store) CreateProject(ctx context.Context, name, description string, files []model.FileInput) (*model.Project, error) {
	projects, err := readCollection[model.Project](ctx, s, keyProjects)
	if err != nil {
		return nil, err
	}

	project := model.Project{
		ID:          s.idgen.New(),
		Name:        name,
		Description: description,
		CreatedAt:   s.clock.Now(),
		Files:       s.newFiles(files),
	}

	projects = append([]model.Project{project}, projects...)
	if err := writeCollection(ctx, s, keyProjects, projects); err != nil {
		return nil, err
	}
	return &project, nil
}

// Projects returns all projects. The collection is already ordered
// most-recent-first because creation prepends.
func (s *Store) Projects(ctx context.Context) ([]*model.Project, error) {
	projects, err := readCollection[model.Project](ctx, s, keyProjects)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Project, len(projects))
	for i := range projects {
		out[i] = &projects[i]
	}
	return out, nil
}

// Project returns one project by id.
func (s *Store) Project(ctx context.Context, id string) (*model.Project, error) {
	projects, err := readCollection[model.Project](ctx, s, keyProjects)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, collab.ErrNotFound
}

// DeleteProject removes the project (and with it its files), then cascades
// to the project's versions, comments, and collaborator list. The project
// write happens first so a mid-cascade failure can only leave unreachable
// orphans, never a half-deleted project.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	projects, err := readCollection[model.Project](ctx, s, keyProjects)
	if err != nil {
		return err
	}

	kept := projects[:0]
	found := false
	for _, p := range projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return collab.ErrNotFound
	}
	if err := writeCollection(ctx, s, keyProjects, kept); err != nil {
		return err
	}

	if err := s.dropVersionsForProject(ctx, id); err != nil {
		return err
	}
	if err := s.dropCommentsForProject(ctx, id); err != nil {
		return err
	}
	return s.deleteRaw(ctx, collaboratorKey(id))
}

// UploadFiles appends files to an existing project.
func (s *Store) UploadFiles(ctx context.Context, projectID string, files []model.FileInput) (*model.Project, error) {
	return s.updateProject(ctx, projectID, func(p *model.Project) error {
		p.Files = append(p.Files, s.newFiles(files)...)
		return nil
	})
}

// DeleteFile removes one file from a project. Versions referencing the
// file stay in the log; the file's history outlives the file record.
func (s *Store) DeleteFile(ctx context.Context, projectID, fileID string) (*model.Project, error) {
	return s.updateProject(ctx, projectID, func(p *model.Project) error {
		for i, f := range p.Files {
			if f.ID == fileID {
				p.Files = append(p.Files[:i], p.Files[i+1:]...)
				return nil
			}
		}
		return collab.ErrNotFound
	})
}

// FileContent resolves current content: the newest version for the file
// wins, the file's inline base64 content is only a fallback for files that
// have never been versioned.
func (s *Store) FileContent(ctx context.Context, projectID, fileID string) (string, error) {
	versions, err := readCollection[model.Version](ctx, s, keyVersions)
	if err != nil {
		return "", err
	}
	for _, v := range versions { // newest-first
		if v.ProjectID == projectID && v.FileID == fileID {
			return v.Content, nil
		}
	}

	project, err := s.Project(ctx, projectID)
	if err != nil {
		return "", err
	}
	for _, f := range project.Files {
		if f.ID != fileID {
			continue
		}
		if f.Content == "" {
			return "", nil
		}
		return codec.Decode(f.Content)
	}
	return "", collab.ErrNotFound
}

// WriteFileContent overwrites a file's cached inline content.
func (s *Store) WriteFileContent(ctx context.Context, projectID, fileID, content string) error {
	_, err := s.updateProject(ctx, projectID, func(p *model.Project) error {
		for i := range p.Files {
			if p.Files[i].ID == fileID {
				p.Files[i].Content = codec.Encode(content)
				p.Files[i].ExternalRef = ""
				return nil
			}
		}
		return collab.ErrNotFound
	})
	return err
}

// updateProject applies fn to the named project inside one snapshot
// read-modify-write and returns the updated project.
func (s *Store) updateProject(ctx context.Context, projectID string, fn func(*model.Project) error) (*model.Project, error) {
	projects, err := readCollection[model.Project](ctx, s, keyProjects)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID != projectID {
			continue
		}
		if err := fn(&projects[i]); err != nil {
			return nil, err
		}
		if err := writeCollection(ctx, s, keyProjects, projects); err != nil {
			return nil, err
		}
		return &projects[i], nil
	}
	return nil, collab.ErrNotFound
}

// newFiles builds file records from inputs, encoding inline text content
// for storage.
func (s *Store) newFiles(inputs []model.FileInput) []model.File {
	files := make([]model.File, len(inputs))
	for i, in := range inputs {
		mimeType := in.MimeType
		if mimeType == "" {
			mimeType = "text/plain"
		}
		files[i] = model.File{
			ID:         s.idgen.New(),
			Name:       in.Name,
			MimeType:   mimeType,
			UploadedAt: s.clock.Now(),
		}
		if in.Content != "" {
			files[i].Content = codec.Encode(in.Content)
		}
	}
	return files
}
