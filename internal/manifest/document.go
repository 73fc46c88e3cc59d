package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
)

const membersKey = "workspace.members"

var (
	// ErrNoMembers is returned when a workspace manifest has no members key to append to.
	ErrNoMembers = errors.New("workspace has no members list")
	// ErrMembersNotArray is returned when workspace.members is not an array.
	ErrMembersNotArray = errors.New("workspace.members is not an array")
	// ErrInlineWorkspace is returned when the workspace is an inline table,
	// whose members cannot be located in the source.
	ErrInlineWorkspace = errors.New("workspace is an inline table; use a [workspace] section to add members")
)

// Document is an editable Cargo.toml. It keeps the file's raw bytes and a
// parsed tree for lookups; edits are spliced into the raw bytes so that
// formatting, comments and key order survive a write.
type Document struct {
	path string
	raw  []byte
	tree *toml.Tree
}

// LoadDocument reads the manifest at path into a Document.
func LoadDocument(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseDocument(path, data)
}

// ParseDocument parses data as the content of the manifest at path.
func ParseDocument(path string, data []byte) (*Document, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return &Document{path: path, raw: raw, tree: tree}, nil
}

// Path returns the file the document was read from.
func (d *Document) Path() string { return d.path }

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte { return d.raw }

// Get returns the value at a dotted key path, or nil.
func (d *Document) Get(key string) any {
	return d.tree.Get(key)
}

// GetString returns the string at a dotted key path.
func (d *Document) GetString(key string) (string, bool) {
	s, ok := d.tree.Get(key).(string)
	return s, ok
}

// IsWorkspace reports whether the document declares a workspace table.
func (d *Document) IsWorkspace() bool {
	_, ok := d.tree.Get("workspace").(*toml.Tree)
	return ok
}

// PackageName returns package.name when the document declares a package.
func (d *Document) PackageName() (string, bool) {
	if _, ok := d.tree.Get("package").(*toml.Tree); !ok {
		return "", false
	}
	name, ok := d.GetString("package.name")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Members returns the string entries of workspace.members in declared order.
func (d *Document) Members() []string {
	var members []string
	switch v := d.tree.Get(membersKey).(type) {
	case []any:
		for _, m := range v {
			if s, ok := m.(string); ok {
				members = append(members, s)
			}
		}
	case []string:
		members = append(members, v...)
	}
	return members
}

// AppendMember adds member to the end of workspace.members. Only the array's
// text is touched.
func (d *Document) AppendMember(member string) error {
	if !d.tree.Has(membersKey) {
		return ErrNoMembers
	}
	switch d.tree.Get(membersKey).(type) {
	case []any, []string:
	default:
		return ErrMembersNotArray
	}

	pos := d.tree.GetPosition(membersKey)
	if pos.Invalid() {
		return fmt.Errorf("%s: %w", d.path, ErrInlineWorkspace)
	}
	start, err := offsetOf(d.raw, pos.Line, pos.Col)
	if err != nil {
		return fmt.Errorf("locating %s in %s: %w", membersKey, d.path, err)
	}
	arr, err := findArray(d.raw, start)
	if err != nil {
		return fmt.Errorf("locating %s in %s: %w", membersKey, d.path, err)
	}

	before := len(d.Members())
	edited := arr.appendItem(d.raw, Quote(member))
	tree, err := toml.LoadBytes(edited)
	if err != nil {
		return fmt.Errorf("appending member to %s produced invalid TOML: %w", d.path, err)
	}
	next := &Document{path: d.path, raw: edited, tree: tree}
	if got := len(next.Members()); got != before+1 {
		return fmt.Errorf("appending member to %s: expected %d members, found %d", d.path, before+1, got)
	}
	*d = *next
	return nil
}

// Save overwrites the document's file with its current content.
func (d *Document) Save(fs afero.Fs) error {
	mode := os.FileMode(0644)
	if info, err := fs.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(fs, d.path, d.raw, mode); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
