package projects

import (
	"path/filepath"
	"strings"

	"github.com/emergent-labs/coder-backend/internal/projects/domain"
)

// resolveInside joins rel onto root and verifies the result stays inside
// root. Rejects absolute paths, empty paths and any traversal that would
// resolve to root itself or outside of it.
func resolveInside(root, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" || filepath.IsAbs(rel) {
		return "", domain.ErrInvalidPath
	}

	full := filepath.Join(root, filepath.Clean(rel))

	inner, err := filepath.Rel(root, full)
	if err != nil {
		return "", domain.ErrInvalidPath
	}
	if inner == "." || inner == ".." || strings.HasPrefix(inner, ".."+string(filepath.Separator)) {
		return "", domain.ErrInvalidPath
	}

	return full, nil
}

// segment validates a single path component (owner or project id) so that
// identifiers cannot address anything beyond their own subtree.
func segment(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}
