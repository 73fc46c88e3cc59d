package manifest

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseDocument("/w/Cargo.toml", []byte(src))
	require.NoError(t, err)
	return doc
}

func TestDocument_reads(t *testing.T) {
	doc := parseDoc(t, `
[package]
name = "root"

[workspace]
members = ["a", "b"]
`)
	assert.True(t, doc.IsWorkspace())
	name, ok := doc.PackageName()
	require.True(t, ok)
	assert.Equal(t, "root", name)
	assert.Equal(t, []string{"a", "b"}, doc.Members())

	s, ok := doc.GetString("package.name")
	assert.True(t, ok)
	assert.Equal(t, "root", s)
	assert.Nil(t, doc.Get("package.version"))
}

func TestDocument_notWorkspace(t *testing.T) {
	doc := parseDoc(t, "[package]\nname = \"foo\"\n")
	assert.False(t, doc.IsWorkspace())
	assert.Empty(t, doc.Members())
}

func TestDocument_invalid(t *testing.T) {
	_, err := ParseDocument("/w/Cargo.toml", []byte("[workspace\n"))
	require.Error(t, err)
}

func TestDocument_AppendMember(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "single line",
			src:  "[workspace]\nmembers = [\"a\", \"b\"]\n",
			want: "[workspace]\nmembers = [\"a\", \"b\", \"c\"]\n",
		},
		{
			name: "single line trailing comma",
			src:  "[workspace]\nmembers = [\"a\",]\n",
			want: "[workspace]\nmembers = [\"a\", \"c\",]\n",
		},
		{
			name: "empty",
			src:  "[workspace]\nmembers = []\n",
			want: "[workspace]\nmembers = [\"c\"]\n",
		},
		{
			name: "multi line trailing comma",
			src:  "[workspace]\nmembers = [\n    \"a\",\n    \"b\",\n]\n",
			want: "[workspace]\nmembers = [\n    \"a\",\n    \"b\",\n    \"c\",\n]\n",
		},
		{
			name: "multi line no trailing comma",
			src:  "[workspace]\nmembers = [\n  \"a\",\n  \"b\"\n]\n",
			want: "[workspace]\nmembers = [\n  \"a\",\n  \"b\",\n  \"c\"\n]\n",
		},
		{
			name: "multi line comment after last entry",
			src:  "[workspace]\nmembers = [\n  \"a\", # first\n]\n",
			want: "[workspace]\nmembers = [\n  \"a\", # first\n  \"c\",\n]\n",
		},
		{
			name: "closing bracket on last entry line",
			src:  "[workspace]\nmembers = [\n  \"a\",\n  \"b\"]\n",
			want: "[workspace]\nmembers = [\n  \"a\",\n  \"b\",\n  \"c\"]\n",
		},
		{
			name: "brackets inside strings",
			src:  "[workspace]\nmembers = [\"x]\", 'y[']\n",
			want: "[workspace]\nmembers = [\"x]\", 'y[', \"c\"]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.src)
			before := doc.Members()

			require.NoError(t, doc.AppendMember("c"))
			assert.Equal(t, tt.want, string(doc.Bytes()))
			assert.Equal(t, append(before, "c"), doc.Members())
		})
	}
}

func TestDocument_AppendMember_preservesUnrelatedContent(t *testing.T) {
	src := `# top comment
[package]
name = "root"   # aligned comment
version = "0.1.0"

[workspace]
resolver = "2"
members = [
    "a",
]
exclude = ["tmp"]

[dependencies]
serde = { version = "1", features = ["derive"] }
`
	want := `# top comment
[package]
name = "root"   # aligned comment
version = "0.1.0"

[workspace]
resolver = "2"
members = [
    "a",
    "nested/dir/foo-dynamic",
]
exclude = ["tmp"]

[dependencies]
serde = { version = "1", features = ["derive"] }
`
	doc := parseDoc(t, src)
	require.NoError(t, doc.AppendMember("nested/dir/foo-dynamic"))
	assert.Equal(t, want, string(doc.Bytes()))
}

func TestDocument_AppendMember_allowsDuplicates(t *testing.T) {
	doc := parseDoc(t, "[workspace]\nmembers = [\"a\"]\n")
	require.NoError(t, doc.AppendMember("a"))
	assert.Equal(t, []string{"a", "a"}, doc.Members())
}

func TestDocument_AppendMember_escapes(t *testing.T) {
	doc := parseDoc(t, "[workspace]\nmembers = []\n")
	require.NoError(t, doc.AppendMember(`we"ird\dir`))
	assert.Equal(t, []string{`we"ird\dir`}, doc.Members())
}

func TestDocument_AppendMember_noMembers(t *testing.T) {
	src := "[workspace]\nresolver = \"2\"\n"
	doc := parseDoc(t, src)
	err := doc.AppendMember("c")
	require.ErrorIs(t, err, ErrNoMembers)
	assert.Equal(t, src, string(doc.Bytes()))
}

func TestDocument_AppendMember_notArray(t *testing.T) {
	doc := parseDoc(t, "[workspace]\nmembers = \"a\"\n")
	require.ErrorIs(t, doc.AppendMember("c"), ErrMembersNotArray)
}

func TestDocument_AppendMember_inlineWorkspace(t *testing.T) {
	src := "workspace = { members = [\"a\"] }\n"
	doc := parseDoc(t, src)
	require.True(t, doc.IsWorkspace())
	assert.Equal(t, []string{"a"}, doc.Members())

	err := doc.AppendMember("c")
	require.ErrorIs(t, err, ErrInlineWorkspace)
	assert.Equal(t, src, string(doc.Bytes()))
}

func TestDocument_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/w/Cargo.toml"
	require.NoError(t, afero.WriteFile(fs, path, []byte("[workspace]\nmembers = [\"a\"]\n"), 0600))

	doc, err := LoadDocument(fs, path)
	require.NoError(t, err)
	require.NoError(t, doc.AppendMember("b"))
	require.NoError(t, doc.Save(fs))

	reloaded, err := LoadDocument(fs, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, reloaded.Members())

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadDocument_missing(t *testing.T) {
	_, err := LoadDocument(afero.NewMemMapFs(), "/nope/Cargo.toml")
	require.Error(t, err)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a/b"`, Quote("a/b"))
	assert.Equal(t, `"a\"b"`, Quote(`a"b`))
	assert.Equal(t, `"a\\b"`, Quote(`a\b`))
	assert.Equal(t, `"\u0001"`, Quote("\x01"))
}
