package workspace

import (
	"fmt"

	"github.com/spf13/afero"
)

// AddMember appends member to the workspace's members list and rewrites the
// workspace manifest. A workspace without a members array is an error and
// leaves the file untouched.
func (h *Handle) AddMember(fs afero.Fs, member string) error {
	if err := h.Doc.AppendMember(member); err != nil {
		return fmt.Errorf("adding %q to workspace %s: %w", member, h.ManifestPath, err)
	}
	return h.Doc.Save(fs)
}
