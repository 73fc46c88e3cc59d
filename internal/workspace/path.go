package workspace

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// RelativePath is a sequence of directory names leading from the workspace
// root down to some directory. The empty path is the root itself.
type RelativePath []string

// IsEmpty reports whether the path denotes the workspace root.
func (p RelativePath) IsEmpty() bool { return len(p) == 0 }

// String renders the path with forward slashes, as Cargo manifests expect.
func (p RelativePath) String() string {
	return path.Join(p...)
}

// Join appends elem to the path. elem may use OS separators.
func (p RelativePath) Join(elem ...string) string {
	parts := make([]string, 0, len(p)+len(elem))
	parts = append(parts, p...)
	for _, e := range elem {
		parts = append(parts, filepath.ToSlash(e))
	}
	return path.Join(parts...)
}

// RelativePathFrom expresses dir relative to the workspace root. ok is false
// when dir is not inside the workspace. dir must exist.
func (h *Handle) RelativePathFrom(fs afero.Fs, dir string) (rel RelativePath, ok bool, err error) {
	root, err := normalize(fs, h.Root())
	if err != nil {
		return nil, false, err
	}
	cur, err := normalize(fs, dir)
	if err != nil {
		return nil, false, err
	}

	for cur != root {
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, false, nil
		}
		rel = append(rel, filepath.Base(cur))
		cur = parent
	}
	// Segments were collected leaf first.
	for i, j := 0, len(rel)-1; i < j; i, j = i+1, j-1 {
		rel[i], rel[j] = rel[j], rel[i]
	}
	if rel == nil {
		rel = RelativePath{}
	}
	return rel, true, nil
}

// MemberPath returns the member entry for libDir, a directory given relative
// to cwd. libDir is used as given when cwd cannot be expressed relative to
// the workspace root.
func (h *Handle) MemberPath(fs afero.Fs, cwd, libDir string) (string, error) {
	rel, ok, err := h.RelativePathFrom(fs, cwd)
	if err != nil {
		return "", err
	}
	if !ok {
		return filepath.ToSlash(libDir), nil
	}
	return rel.Join(libDir), nil
}

// normalize makes dir absolute and clean. On the OS filesystem symlinks are
// resolved as well.
func normalize(fs afero.Fs, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := fs.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("resolving %s: not a directory", dir)
	}
	if _, isOS := fs.(*afero.OsFs); isOS {
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", dir, err)
		}
		abs = resolved
	}
	return abs, nil
}
