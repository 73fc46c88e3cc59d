package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/cargo-add-dynamic/internal/cargo"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cargo-add-dynamic [DEP]",
		Short: "Add a dependency as a dynamic library (dylib)",
		Long: `Cargo command similar to "cargo add" that adds a dependency <DEP> as a
dynamic library (dylib) crate. It creates a new sub-package whose only
dependency is <DEP> and whose crate-type is ["dylib"], and adds that package
to the target package under the name <DEP>. Inside a workspace the new
package is registered as a workspace member.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAdd,
	}

	cmd.PersistentFlags().StringP("directory", "C", "", "Run as if started in this directory")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Additional (debug) logging")
	cmd.PersistentFlags().String("cargo", "", "Cargo executable to run (default $CARGO or cargo)")

	cmd.Flags().Bool("optional", false, "Mark the dependency as optional; the package name will be exposed as a feature of your crate")
	cmd.Flags().Bool("offline", false, "Run without accessing the network")
	cmd.Flags().Bool("no-default-features", false, "Disable the default features")
	cmd.Flags().StringSliceP("features", "F", nil, "Space or comma separated list of features to activate")
	cmd.Flags().String("path", "", "Filesystem path to local crate to add")
	cmd.Flags().String("rename", "", "Rename the dependency in the target package")
	cmd.Flags().StringP("name", "n", "", "Name of the dynamic library, defaults to <DEP>-dynamic")
	cmd.Flags().String("lib-dir", "", "Directory for the new sub-package, defaults to the library name")
	cmd.Flags().StringP("package", "p", "", "Package to modify")

	cmd.AddCommand(
		newWorkspaceCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// workDir returns the absolute directory the command acts in.
func workDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("directory")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving --directory: %w", err)
	}
	return abs, nil
}

// configPaths lists the directories searched for add-dynamic.toml.
func configPaths(dir string) []string {
	paths := []string{dir}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".cargo"))
	}
	return paths
}

func newLogger(out io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(out, log.Options{Prefix: "add-dynamic"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newRunner returns a cargo runner writing to the command's output. An
// empty bin falls back to $CARGO, then cargo.
func newRunner(cmd *cobra.Command, bin, dir string, logger *log.Logger) *cargo.Runner {
	return &cargo.Runner{
		Bin:    bin,
		Dir:    dir,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger,
	}
}
