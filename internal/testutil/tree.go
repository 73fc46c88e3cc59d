package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// WriteFile writes content to path on fs, creating parent directories.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// Mkdir creates dir and its parents on fs.
func Mkdir(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
}

// PackageManifest returns a minimal Cargo.toml for a library package.
func PackageManifest(name string) string {
	return fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\n", name)
}

// WorkspaceManifest returns a virtual workspace Cargo.toml with the given members.
func WorkspaceManifest(members ...string) string {
	quoted := make([]string, len(members))
	for i, m := range members {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return fmt.Sprintf("[workspace]\nresolver = \"2\"\nmembers = [%s]\n", strings.Join(quoted, ", "))
}

// RootPackageWorkspaceManifest returns a Cargo.toml declaring both a package
// and a workspace.
func RootPackageWorkspaceManifest(name string, members ...string) string {
	return PackageManifest(name) + "\n" + WorkspaceManifest(members...)
}
