package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/cargo-add-dynamic/internal/manifest"
	"github.com/fbkclanna/cargo-add-dynamic/internal/ui"
	"github.com/fbkclanna/cargo-add-dynamic/internal/workspace"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Show the workspace a new dylib package would be registered in",
		Args:  cobra.NoArgs,
		RunE:  runWorkspace,
	}
	cmd.Flags().StringP("package", "p", "", "Package to resolve instead of the current one")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type workspaceReport struct {
	Outcome      string         `json:"outcome"`
	Target       string         `json:"target,omitempty"`
	TargetIsRoot bool           `json:"target_is_root"`
	Manifest     string         `json:"manifest,omitempty"`
	Members      []memberReport `json:"members,omitempty"`
}

type memberReport struct {
	Path    string `json:"path"`
	Package string `json:"package,omitempty"`
	Target  bool   `json:"target"`
	Error   string `json:"error,omitempty"`
}

func runWorkspace(cmd *cobra.Command, _ []string) error {
	dir, err := workDir(cmd)
	if err != nil {
		return err
	}
	target, _ := cmd.Flags().GetString("package")
	verbose, _ := cmd.Flags().GetBool("verbose")
	asJSON, _ := cmd.Flags().GetBool("json")

	fs := afero.NewOsFs()
	res, err := workspace.NewLocator(fs, newLogger(cmd.ErrOrStderr(), verbose)).Locate(dir, target)
	if err != nil {
		return err
	}
	report, err := buildWorkspaceReport(fs, res)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printWorkspaceReport(cmd, report)
}

func buildWorkspaceReport(fs afero.Fs, res workspace.Result) (workspaceReport, error) {
	report := workspaceReport{
		Outcome:  res.Outcome.String(),
		Target:   res.TargetPackage,
		Manifest: res.WorkspaceManifest,
	}
	if res.Handle != nil {
		report.TargetIsRoot = res.Handle.TargetIsRoot
	}
	if res.WorkspaceManifest == "" {
		return report, nil
	}

	doc, err := manifest.LoadDocument(fs, res.WorkspaceManifest)
	if err != nil {
		return report, err
	}
	root := filepath.Dir(res.WorkspaceManifest)
	members := doc.Members()
	report.Members = make([]memberReport, len(members))
	var g errgroup.Group
	g.SetLimit(8)
	for i, member := range members {
		i, member := i, member
		g.Go(func() error {
			m := memberPackage(fs, root, member)
			m.Target = m.Package != "" && m.Package == res.TargetPackage
			report.Members[i] = m
			return nil
		})
	}
	// Member problems are reported per entry and never fail the group.
	_ = g.Wait()
	return report, nil
}

// memberPackage reads the package name of a member entry. Entries without a
// manifest, such as globs or removed directories, are listed without a name;
// a manifest that exists but cannot be parsed is reported in Error.
func memberPackage(fs afero.Fs, root, member string) memberReport {
	m := memberReport{Path: member}
	path := filepath.Join(root, filepath.FromSlash(member), manifest.FileName)
	if _, err := fs.Stat(path); err != nil {
		return m
	}
	pkg, err := manifest.Load(fs, path)
	if err != nil {
		m.Error = err.Error()
		return m
	}
	m.Package, _ = pkg.PackageName()
	return m
}

func printWorkspaceReport(cmd *cobra.Command, report workspaceReport) error {
	out := cmd.OutOrStdout()

	summary := ui.NewTable(out)
	summary.Row("outcome", report.Outcome)
	if report.Target != "" {
		summary.Row("target", report.Target)
	}
	if report.Manifest != "" {
		summary.Row("manifest", report.Manifest)
		summary.Row("root package", ui.Check(report.TargetIsRoot))
	}
	if err := summary.Flush(); err != nil {
		return err
	}
	if len(report.Members) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(out)
	members := ui.NewTable(out, "MEMBER", "PACKAGE", "TARGET")
	for _, m := range report.Members {
		pkg := m.Package
		switch {
		case m.Error != "":
			pkg = "(unreadable)"
		case pkg == "":
			pkg = "-"
		}
		members.Row(m.Path, pkg, ui.Check(m.Target))
	}
	return members.Flush()
}
