package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cargo-add-dynamic/internal/manifest"
	"github.com/fbkclanna/cargo-add-dynamic/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

// execute runs the root command with args and returns its captured output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Keep a developer's ~/.cargo/add-dynamic.toml out of the tests.
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newCargoWorkspace creates a virtual workspace on disk with member a
// (package foo) and returns its root.
func newCargoWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	fs := afero.NewOsFs()
	testutil.WriteFile(t, fs, filepath.Join(root, "Cargo.toml"), testutil.WorkspaceManifest("a"))
	testutil.WriteFile(t, fs, filepath.Join(root, "a", "Cargo.toml"), testutil.PackageManifest("foo"))
	return root
}

func realPath(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("resolving %s: %v", path, err)
	}
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func workspaceMembers(t *testing.T, root string) []string {
	t.Helper()
	doc, err := manifest.LoadDocument(afero.NewOsFs(), filepath.Join(root, "Cargo.toml"))
	if err != nil {
		t.Fatalf("loading workspace manifest: %v", err)
	}
	return doc.Members()
}

// assertCalls compares recorded cargo invocations. Directories are compared
// after resolving symlinks since the fake records $(pwd).
func assertCalls(t *testing.T, got, want []testutil.Call) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d cargo calls %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if realPath(t, got[i].Dir) != realPath(t, want[i].Dir) {
			t.Errorf("call %d dir = %q, want %q", i, got[i].Dir, want[i].Dir)
		}
		if diff := cmp.Diff(want[i].Args, got[i].Args); diff != "" {
			t.Errorf("call %d args mismatch (-want +got):\n%s", i, diff)
		}
	}
}
