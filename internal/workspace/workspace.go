package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/cargo-add-dynamic/internal/manifest"
	"github.com/spf13/afero"
)

// ErrAmbiguousTarget is returned when a workspace is found but nothing says
// which of its packages should be modified.
var ErrAmbiguousTarget = errors.New("found workspace but no target package; please specify a package with --package")

// Outcome classifies the result of Locate.
type Outcome int

const (
	// NoWorkspace means no workspace manifest encloses the start directory.
	NoWorkspace Outcome = iota
	// NotAMember means a workspace was found but the target package is not part of it.
	NotAMember
	// Found means the workspace contains the target package.
	Found
)

func (o Outcome) String() string {
	switch o {
	case NoWorkspace:
		return "no workspace"
	case NotAMember:
		return "not a member"
	case Found:
		return "found"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Handle is a workspace confirmed to contain the target package.
type Handle struct {
	TargetPackage string
	TargetIsRoot  bool
	ManifestPath  string
	Doc           *manifest.Document
}

// Root returns the workspace directory.
func (h *Handle) Root() string {
	return filepath.Dir(h.ManifestPath)
}

// Members returns the workspace's declared member entries.
func (h *Handle) Members() []string {
	return h.Doc.Members()
}

// Result is what Locate found. Handle is set only when Outcome is Found;
// WorkspaceManifest and TargetPackage are set for NotAMember too.
type Result struct {
	Outcome           Outcome
	Handle            *Handle
	WorkspaceManifest string
	TargetPackage     string
}

// Locator walks up the directory tree looking for a workspace manifest.
type Locator struct {
	FS     afero.Fs
	Logger *log.Logger
}

// NewLocator returns a Locator on fs. A nil logger discards output.
func NewLocator(fs afero.Fs, logger *log.Logger) *Locator {
	return &Locator{FS: fs, Logger: logger}
}

// Find is Locate reduced to its handle: nil when there is no workspace or
// the target is not a member of it.
func Find(fs afero.Fs, startDir, target string) (*Handle, error) {
	res, err := NewLocator(fs, nil).Locate(startDir, target)
	if err != nil {
		return nil, err
	}
	return res.Handle, nil
}

// Locate walks upward from startDir. The first manifest declaring a
// [workspace] ends the walk. Until then the first [package] seen names the
// target when target is empty.
func (l *Locator) Locate(startDir, target string) (Result, error) {
	logger := l.logger()
	logger.Debug("trying to find workspace", "start", startDir)

	// Walk the physical path so the walk and the member projection agree.
	dir, err := normalize(l.fs(), startDir)
	if err != nil {
		return Result{}, fmt.Errorf("resolving start directory: %w", err)
	}

	var (
		wsDoc        *manifest.Document
		targetIsRoot bool
	)
	for {
		doc, err := l.inspect(dir)
		if err != nil {
			return Result{}, err
		}
		if doc != nil {
			name, hasPackage := doc.PackageName()
			if doc.IsWorkspace() {
				if hasPackage && target == "" {
					logger.Debug("found target package", "name", name, "manifest", doc.Path())
					target = name
				}
				targetIsRoot = hasPackage && name == target
				logger.Debug("found workspace manifest", "path", doc.Path())
				wsDoc = doc
				break
			}
			if hasPackage && target == "" {
				logger.Debug("found target package", "name", name, "manifest", doc.Path())
				target = name
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wsDoc == nil {
		return Result{Outcome: NoWorkspace, TargetPackage: target}, nil
	}
	if target == "" {
		return Result{}, fmt.Errorf("%w (workspace %s)", ErrAmbiguousTarget, wsDoc.Path())
	}

	res := Result{Outcome: NotAMember, WorkspaceManifest: wsDoc.Path(), TargetPackage: target}
	h := &Handle{
		TargetPackage: target,
		TargetIsRoot:  targetIsRoot,
		ManifestPath:  wsDoc.Path(),
		Doc:           wsDoc,
	}
	if !h.IsMember(l.fs()) {
		logger.Debug("target package is not in workspace", "package", target, "workspace", wsDoc.Path())
		return res, nil
	}

	logger.Debug("target package is in workspace",
		"package", target, "workspace", wsDoc.Path(), "root_package", targetIsRoot)
	res.Outcome = Found
	res.Handle = h
	return res, nil
}

// inspect parses dir's manifest. It returns nil when dir has none.
func (l *Locator) inspect(dir string) (*manifest.Document, error) {
	path := filepath.Join(dir, manifest.FileName)
	info, err := l.fs().Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, nil
	}
	l.logger().Debug("inspecting manifest", "path", path)
	return manifest.LoadDocument(l.fs(), path)
}

func (l *Locator) fs() afero.Fs {
	if l.FS == nil {
		return afero.NewOsFs()
	}
	return l.FS
}

func (l *Locator) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}
