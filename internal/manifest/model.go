package manifest

// FileName is the name of a Cargo manifest inside a package or workspace directory.
const FileName = "Cargo.toml"

// Manifest is the typed view of a Cargo.toml. Only the keys this tool
// inspects are decoded; everything else is ignored.
type Manifest struct {
	Package   *Package   `toml:"package"`
	Workspace *Workspace `toml:"workspace"`
}

// Package is the [package] table.
type Package struct {
	Name string `toml:"name"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Members []string `toml:"members"`
}

// IsWorkspace reports whether the manifest declares a [workspace] table.
func (m *Manifest) IsWorkspace() bool {
	return m.Workspace != nil
}

// PackageName returns the declared package name, if any.
func (m *Manifest) PackageName() (string, bool) {
	if m.Package == nil || m.Package.Name == "" {
		return "", false
	}
	return m.Package.Name, true
}
