package manifest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_package(t *testing.T) {
	m, err := Parse([]byte(`
[package]
name = "foo"
version.workspace = true
edition = "2021"

[dependencies]
serde = "1"
`))
	require.NoError(t, err)
	assert.False(t, m.IsWorkspace())
	name, ok := m.PackageName()
	require.True(t, ok)
	assert.Equal(t, "foo", name)
}

func TestParse_workspace(t *testing.T) {
	m, err := Parse([]byte(`
[workspace]
members = ["a", "crates/*"]
exclude = ["old"]
resolver = "2"
`))
	require.NoError(t, err)
	require.True(t, m.IsWorkspace())
	assert.Equal(t, []string{"a", "crates/*"}, m.Workspace.Members)
	_, ok := m.PackageName()
	assert.False(t, ok)
}

func TestParse_emptyWorkspaceTable(t *testing.T) {
	m, err := Parse([]byte("[workspace]\n\n[package]\nname = \"root\"\n"))
	require.NoError(t, err)
	assert.True(t, m.IsWorkspace())
	name, ok := m.PackageName()
	assert.True(t, ok)
	assert.Equal(t, "root", name)
}

func TestParse_packageWithoutName(t *testing.T) {
	m, err := Parse([]byte("[package]\nversion = \"0.1.0\"\n"))
	require.NoError(t, err)
	_, ok := m.PackageName()
	assert.False(t, ok)
}

func TestParse_invalid(t *testing.T) {
	_, err := Parse([]byte("[package\nname = "))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/w/a/Cargo.toml", []byte("[package]\nname = \"foo\"\n"), 0644))

	m, err := Load(fs, "/w/a/Cargo.toml")
	require.NoError(t, err)
	name, _ := m.PackageName()
	assert.Equal(t, "foo", name)

	_, err = Load(fs, "/w/b/Cargo.toml")
	require.Error(t, err)
}
