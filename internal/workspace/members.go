package workspace

import (
	"path/filepath"

	"github.com/fbkclanna/cargo-add-dynamic/internal/manifest"
	"github.com/spf13/afero"
)

// IsMember reports whether one of members, taken as a directory relative to
// workspaceDir, holds a manifest whose package is named target. Entries that
// do not lead to a readable package manifest are skipped; glob patterns are
// not expanded.
func IsMember(fs afero.Fs, workspaceDir string, members []string, target string) bool {
	for _, member := range members {
		path := filepath.Join(workspaceDir, filepath.FromSlash(member), manifest.FileName)
		m, err := manifest.Load(fs, path)
		if err != nil {
			continue
		}
		if name, ok := m.PackageName(); ok && name == target {
			return true
		}
	}
	return false
}

// IsMember reports whether the handle's target package belongs to its workspace.
func (h *Handle) IsMember(fs afero.Fs) bool {
	if h.TargetIsRoot {
		return true
	}
	return IsMember(fs, h.Root(), h.Members(), h.TargetPackage)
}
