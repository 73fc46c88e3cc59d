package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/cargo-add-dynamic/internal/cargo"
	"github.com/fbkclanna/cargo-add-dynamic/internal/config"
	"github.com/fbkclanna/cargo-add-dynamic/internal/ui"
	"github.com/fbkclanna/cargo-add-dynamic/internal/workspace"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func runAdd(cmd *cobra.Command, args []string) error {
	dir, err := workDir(cmd)
	if err != nil {
		return err
	}
	crate, err := dependencyArg(args)
	if err != nil {
		return err
	}

	v, err := config.NewViper(cmd.Flags(), configPaths(dir)...)
	if err != nil {
		return err
	}
	opts, err := config.FromViper(v, crate, dir)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	return addDynamic(cmd, afero.NewOsFs(), logger, opts)
}

// dependencyArg returns DEP from args, prompting for it on a terminal.
func dependencyArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		return "", errors.New("missing dependency: usage: cargo add-dynamic <DEP>")
	}
	return promptInput("Dependency to add as a dylib", "serde", validateCrateName)
}

// addDynamic runs the workflow. The workspace is resolved before anything
// is written so that an ambiguous target aborts without side effects.
func addDynamic(cmd *cobra.Command, fs afero.Fs, logger *log.Logger, opts *config.Options) error {
	res, err := workspace.NewLocator(fs, logger).Locate(opts.Dir, opts.Package)
	if err != nil {
		return err
	}

	steps := 4
	if res.Outcome == workspace.Found {
		steps++
	}
	progress := ui.NewProgress(cmd.ErrOrStderr(), steps)

	switch res.Outcome {
	case workspace.Found:
		h := res.Handle
		member, err := h.MemberPath(fs, opts.Dir, opts.LibDir)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("register %s in %s", member, h.ManifestPath)
		if err := progress.Step(label, func() error { return h.AddMember(fs, member) }); err != nil {
			return err
		}
	case workspace.NotAMember:
		logger.Debug("target is not a workspace member, not registering", "package", res.TargetPackage, "workspace", res.WorkspaceManifest)
	default:
		logger.Debug("not in a workspace")
	}

	runner := newRunner(cmd, opts.CargoBin, opts.Dir, logger)
	pkgDir := filepath.Join(opts.Dir, opts.LibDir)

	if err := progress.Step(fmt.Sprintf("create package %s in %s", opts.Name, opts.LibDir), func() error {
		return runner.NewLib(cargo.NewLibOpts{Name: opts.Name, Dir: opts.LibDir})
	}); err != nil {
		return err
	}

	if err := progress.Step(fmt.Sprintf("add %s to %s", opts.Crate, opts.Name), func() error {
		return runner.AddDependency(pkgDir, cargo.AddDepOpts{
			Crate:             opts.Crate,
			Offline:           opts.Offline,
			Features:          opts.Features,
			NoDefaultFeatures: opts.NoDefaultFeatures,
			Path:              opts.Path,
		})
	}); err != nil {
		return err
	}

	if err := progress.Step(fmt.Sprintf("make %s a dylib re-exporting %s", opts.Name, opts.Crate), func() error {
		if err := cargo.MakeDylib(fs, pkgDir); err != nil {
			return err
		}
		return cargo.WriteReexport(fs, pkgDir, opts.Crate)
	}); err != nil {
		return err
	}

	if err := progress.Step(fmt.Sprintf("add %s to %s as %s", opts.Name, targetLabel(res, opts), opts.DependencyKey()), func() error {
		return runner.AddShim(cargo.AddShimOpts{
			Name:     opts.Name,
			Rename:   opts.DependencyKey(),
			LibDir:   opts.LibDir,
			Offline:  opts.Offline,
			Optional: opts.Optional,
			Package:  opts.Package,
		})
	}); err != nil {
		return err
	}

	progress.Log("%s is now linked dynamically through %s", opts.Crate, opts.LibDir)
	return nil
}

func targetLabel(res workspace.Result, opts *config.Options) string {
	switch {
	case opts.Package != "":
		return opts.Package
	case res.TargetPackage != "":
		return res.TargetPackage
	default:
		return "current package"
	}
}

// validateCrateName accepts bare crate names: ASCII letters, digits, - and _.
func validateCrateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("dependency name is required")
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("invalid character %q in dependency name", r)
		}
	}
	return nil
}
