package workspace

import (
	"testing"

	"github.com/fbkclanna/cargo-add-dynamic/internal/manifest"
	"github.com/fbkclanna/cargo-add-dynamic/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_AddMember_roundTrip(t *testing.T) {
	fs := newTree(t)

	h, err := Find(fs, "/w/a", "")
	require.NoError(t, err)
	require.NotNil(t, h)

	member, err := h.MemberPath(fs, "/w/a", "foo-dynamic")
	require.NoError(t, err)
	require.NoError(t, h.AddMember(fs, member))

	doc, err := manifest.LoadDocument(fs, "/w/Cargo.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a/foo-dynamic"}, doc.Members())

	data, err := afero.ReadFile(fs, "/w/Cargo.toml")
	require.NoError(t, err)
	assert.Equal(t, "[workspace]\nresolver = \"2\"\nmembers = [\"a\", \"b\", \"a/foo-dynamic\"]\n", string(data))
}

func TestHandle_AddMember_noMembersKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "[package]\nname = \"app\"\n\n[workspace]\n"
	testutil.WriteFile(t, fs, "/w/Cargo.toml", src)

	h, err := Find(fs, "/w", "")
	require.NoError(t, err)
	require.NotNil(t, h)

	err = h.AddMember(fs, "app-dynamic")
	require.ErrorIs(t, err, manifest.ErrNoMembers)

	data, err := afero.ReadFile(fs, "/w/Cargo.toml")
	require.NoError(t, err)
	assert.Equal(t, src, string(data))
}

func TestHandle_AddMember_inlineWorkspace(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "package = { name = \"app\" }\nworkspace = { members = [] }\n"
	testutil.WriteFile(t, fs, "/w/Cargo.toml", src)

	h, err := Find(fs, "/w", "")
	require.NoError(t, err)
	require.NotNil(t, h)

	err = h.AddMember(fs, "app-dynamic")
	require.ErrorIs(t, err, manifest.ErrInlineWorkspace)

	data, err := afero.ReadFile(fs, "/w/Cargo.toml")
	require.NoError(t, err)
	assert.Equal(t, src, string(data))
}

func TestHandle_AddMember_writeFailure(t *testing.T) {
	fs := newTree(t)
	h, err := Find(fs, "/w/a", "")
	require.NoError(t, err)

	err = h.AddMember(afero.NewReadOnlyFs(fs), "a/foo-dynamic")
	require.Error(t, err)

	doc, err := manifest.LoadDocument(fs, "/w/Cargo.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Members())
}
