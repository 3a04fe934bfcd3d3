package projects

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/emergent-labs/coder-backend/internal/projects/domain"
)

// binaryMarker replaces file contents that cannot be decoded as text.
const binaryMarker = "[Binary file]"

// Store persists projects as directory trees under basePath/<owner>/<id>,
// with the metadata JSON file acting as the record of existence. It holds no
// in-process state beyond the base path; concurrent calls race only at the
// filesystem level.
type Store struct {
	basePath string
}

func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create base path: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// BasePath returns the storage root. Exposed for the archive sweeper.
func (s *Store) BasePath() string {
	return s.basePath
}

// Spec describes a project to be created. Files maps relative paths to
// text contents.
type Spec struct {
	Name              string            `json:"project_name"`
	Description       string            `json:"description"`
	TechStack         string            `json:"tech_stack"`
	SetupInstructions string            `json:"setup_instructions"`
	Files             map[string]string `json:"files"`
}

// CreateResult reports a successful creation.
type CreateResult struct {
	ProjectID    string          `json:"project_id"`
	ProjectName  string          `json:"project_name"`
	Path         string          `json:"path"`
	FilesCreated int             `json:"files_created"`
	Metadata     domain.Metadata `json:"metadata"`
}

// Detail is a full project read: metadata plus every file's contents.
type Detail struct {
	Metadata domain.Metadata   `json:"metadata"`
	Files    map[string]string `json:"files"`
	Path     string            `json:"path"`
}

// Create allocates a new project id, writes every file from the spec and
// finally the metadata record. Files already written are not rolled back if
// a later write fails.
func (s *Store) Create(owner string, spec Spec) (*CreateResult, error) {
	if !segment(owner) {
		return nil, domain.ErrOwnerRequired
	}

	projectID := uuid.NewString()
	name := spec.Name
	if name == "" {
		name = "project-" + projectID[:8]
	}

	projectPath := filepath.Join(s.basePath, owner, projectID)
	if err := os.MkdirAll(projectPath, 0o755); err != nil {
		return nil, fmt.Errorf("create project directory: %w", err)
	}

	// Deterministic write order keeps partial-failure behavior reproducible.
	paths := make([]string, 0, len(spec.Files))
	for p := range spec.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	filesCreated := make([]string, 0, len(paths))
	for _, p := range paths {
		full, err := resolveInside(projectPath, p)
		if err != nil {
			return nil, fmt.Errorf("file %q: %w", p, err)
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return nil, fmt.Errorf("create directories for %q: %w", p, err)
		}
		if err := os.WriteFile(full, []byte(spec.Files[p]), 0o644); err != nil {
			return nil, fmt.Errorf("write %q: %w", p, err)
		}
		filesCreated = append(filesCreated, p)
	}

	meta := domain.Metadata{
		ID:                projectID,
		Name:              name,
		Description:       spec.Description,
		TechStack:         spec.TechStack,
		CreatedAt:         time.Now().UTC(),
		Files:             filesCreated,
		SetupInstructions: spec.SetupInstructions,
		Status:            "created",
	}

	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(projectPath, domain.MetadataFileName), raw, 0o644); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	return &CreateResult{
		ProjectID:    projectID,
		ProjectName:  name,
		Path:         projectPath,
		FilesCreated: len(filesCreated),
		Metadata:     meta,
	}, nil
}

// Get reads a project's metadata and the contents of every file in its
// subtree except the metadata file. Non-text contents are replaced with a
// placeholder marker.
func (s *Store) Get(owner, projectID string) (*Detail, error) {
	projectPath, err := s.projectPath(owner, projectID)
	if err != nil {
		return nil, err
	}

	meta := domain.Metadata{ID: projectID, Name: "Unknown Project"}
	if raw, err := os.ReadFile(filepath.Join(projectPath, domain.MetadataFileName)); err == nil {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}

	files := make(map[string]string)
	err = filepath.WalkDir(projectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == domain.MetadataFileName {
			return nil
		}
		rel, err := filepath.Rel(projectPath, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if utf8.Valid(data) {
			files[filepath.ToSlash(rel)] = string(data)
		} else {
			files[filepath.ToSlash(rel)] = binaryMarker
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read project files: %w", err)
	}

	return &Detail{Metadata: meta, Files: files, Path: projectPath}, nil
}

// List returns metadata for every project of the owner whose metadata file
// exists, most recently created first. Unknown owners yield an empty list.
func (s *Store) List(owner string) ([]domain.Metadata, error) {
	if !segment(owner) {
		return nil, domain.ErrOwnerRequired
	}

	ownerPath := filepath.Join(s.basePath, owner)
	entries, err := os.ReadDir(ownerPath)
	if os.IsNotExist(err) {
		return []domain.Metadata{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read owner directory: %w", err)
	}

	out := make([]domain.Metadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(ownerPath, e.Name(), domain.MetadataFileName))
		if err != nil {
			// No metadata file means the project does not exist.
			continue
		}
		var meta domain.Metadata
		if err := json.Unmarshal(raw, &meta); err != nil {
			continue
		}
		out = append(out, meta)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateFile overwrites or creates a single file inside an existing project.
// It checks only that the project directory exists, not the metadata file,
// and never refreshes the metadata file list or timestamp.
func (s *Store) UpdateFile(owner, projectID, filePath, content string) error {
	projectPath, err := s.projectPath(owner, projectID)
	if err != nil {
		return err
	}

	full, err := resolveInside(projectPath, filePath)
	if err != nil {
		return fmt.Errorf("file %q: %w", filePath, err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directories for %q: %w", filePath, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", filePath, err)
	}
	return nil
}

// Delete removes the project's entire subtree.
func (s *Store) Delete(owner, projectID string) error {
	projectPath, err := s.projectPath(owner, projectID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(projectPath); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Export writes a zip archive of the project's files (metadata excluded)
// into the base directory and returns its path. The project tree itself is
// not modified.
func (s *Store) Export(owner, projectID string) (string, error) {
	projectPath, err := s.projectPath(owner, projectID)
	if err != nil {
		return "", err
	}

	zipPath := filepath.Join(s.basePath, projectID+".zip")
	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(projectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == domain.MetadataFileName {
			return nil
		}
		rel, err := filepath.Rel(projectPath, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return "", fmt.Errorf("archive project files: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}

	return zipPath, nil
}

// projectPath resolves and checks the project directory for operations that
// require an existing project.
func (s *Store) projectPath(owner, projectID string) (string, error) {
	if !segment(owner) || !segment(projectID) {
		return "", domain.ErrProjectNotFound
	}
	projectPath := filepath.Join(s.basePath, owner, projectID)
	info, err := os.Stat(projectPath)
	if os.IsNotExist(err) {
		return "", domain.ErrProjectNotFound
	}
	if err != nil {
		return "", fmt.Errorf("stat project: %w", err)
	}
	if !info.IsDir() {
		return "", domain.ErrProjectNotFound
	}
	return projectPath, nil
}
