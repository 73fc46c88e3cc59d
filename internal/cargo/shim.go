package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/cargo-add-dynamic/internal/manifest"
	"github.com/spf13/afero"
)

const dylibTable = "\n[lib]\ncrate-type = [\"dylib\"]\n"

// MakeDylib appends a [lib] table with crate-type = ["dylib"] to the shim
// package manifest in pkgDir.
func MakeDylib(fs afero.Fs, pkgDir string) error {
	path := filepath.Join(pkgDir, manifest.FileName)
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	if _, err := f.WriteString(dylibTable); err != nil {
		_ = f.Close()
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return f.Close()
}

// WriteReexport replaces the shim's src/lib.rs with a glob re-export of crate.
func WriteReexport(fs afero.Fs, pkgDir, crate string) error {
	path := filepath.Join(pkgDir, "src", "lib.rs")
	f, err := fs.OpenFile(path, os.O_TRUNC|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	if _, err := f.WriteString(ReexportSource(crate)); err != nil {
		_ = f.Close()
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return f.Close()
}

// ReexportSource returns the lib.rs content re-exporting crate. Crate names
// may use dashes; their Rust identifiers use underscores.
func ReexportSource(crate string) string {
	return fmt.Sprintf("pub use %s::*;\n", strings.ReplaceAll(crate, "-", "_"))
}
