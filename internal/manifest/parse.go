package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// Load reads and decodes the manifest at path.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes Cargo.toml content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest TOML: %w", err)
	}
	// An empty [workspace] table still makes this a workspace root.
	if m.Workspace == nil && md.IsDefined("workspace") {
		m.Workspace = &Workspace{}
	}
	if m.Package == nil && md.IsDefined("package") {
		m.Package = &Package{}
	}
	return &m, nil
}
