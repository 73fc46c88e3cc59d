package main

import (
	"errors"
	"fmt"

	"github.com/fbkclanna/cargo-add-dynamic/internal/ui"
	"github.com/fbkclanna/cargo-add-dynamic/internal/workspace"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	dir, err := workDir(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)
	bin, _ := cmd.Flags().GetString("cargo")
	runner := newRunner(cmd, bin, dir, logger)
	ok := true

	// Check cargo.
	_, _ = fmt.Fprint(out, "Checking cargo... ")
	cargoPath, err := runner.LookPath()
	if err != nil {
		_, _ = fmt.Fprintln(out, ui.Fail("NOT FOUND"))
		_, _ = fmt.Fprintln(out, "  cargo is required. Install it from https://rustup.rs/")
		ok = false
	} else {
		_, _ = fmt.Fprintf(out, "found at %s\n", ui.OK(cargoPath))
	}

	// Check cargo version.
	if err == nil {
		_, _ = fmt.Fprint(out, "Checking cargo version... ")
		ver, verr := runner.Version()
		if verr != nil {
			_, _ = fmt.Fprintln(out, ui.Fail("ERROR"))
			ok = false
		} else {
			_, _ = fmt.Fprintln(out, ver)
		}
	}

	res, locErr := workspace.NewLocator(afero.NewOsFs(), logger).Locate(dir, "")
	switch {
	case errors.Is(locErr, workspace.ErrAmbiguousTarget):
		_, _ = fmt.Fprintln(out, ui.Warn("Workspace found but no target package here; pass --package when adding"))
	case locErr != nil:
		_, _ = fmt.Fprintf(out, "Workspace: %s (%v)\n", ui.Fail("ERROR"), locErr)
		ok = false
	case res.Outcome == workspace.Found:
		_, _ = fmt.Fprintf(out, "Workspace: %s (%d members, target %s)\n",
			res.Handle.ManifestPath, len(res.Handle.Members()), res.Handle.TargetPackage)
	case res.Outcome == workspace.NotAMember:
		_, _ = fmt.Fprintf(out, "Workspace: %s (package %s is not a member, new packages will not be registered)\n",
			res.WorkspaceManifest, res.TargetPackage)
	default:
		_, _ = fmt.Fprintln(out, "No workspace found (new packages will not be registered)")
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return errors.New("doctor checks failed")
}
