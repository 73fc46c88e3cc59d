package cargo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ExitCodeError is used when cargo failed without reporting an exit status.
const ExitCodeError = 2

// ExitError reports a cargo invocation that exited unsuccessfully. The
// command as a whole should exit with Code.
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("cargo %s exited with status %d", strings.Join(e.Args, " "), e.Code)
}

// Runner runs cargo subcommands.
type Runner struct {
	// Bin is the cargo executable. Empty means $CARGO, then "cargo".
	Bin string
	// Dir is the working directory for commands that do not name their own.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// NewLibOpts configures NewLib.
type NewLibOpts struct {
	Name string
	Dir  string
}

// NewLib creates a library package: cargo new --lib --name <name> <dir>.
func (r *Runner) NewLib(opts NewLibOpts) error {
	return r.run(r.Dir, "new", "--lib", "--name", opts.Name, opts.Dir)
}

// AddDepOpts configures AddDependency.
type AddDepOpts struct {
	Crate             string
	Offline           bool
	Features          []string
	NoDefaultFeatures bool
	Path              string
}

// AddDependency runs cargo add for the wrapped crate inside pkgDir.
func (r *Runner) AddDependency(pkgDir string, opts AddDepOpts) error {
	return r.run(pkgDir, addDependencyArgs(opts)...)
}

func addDependencyArgs(opts AddDepOpts) []string {
	args := []string{"add", opts.Crate}
	if opts.Offline {
		args = append(args, "--offline")
	}
	if len(opts.Features) > 0 {
		args = append(args, "--features", strings.Join(opts.Features, ","))
	}
	if opts.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if opts.Path != "" {
		args = append(args, "--path", opts.Path)
	}
	return args
}

// AddShimOpts configures AddShim.
type AddShimOpts struct {
	// Name is the shim package name.
	Name string
	// Rename is the dependency key in the target package.
	Rename   string
	LibDir   string
	Offline  bool
	Optional bool
	Package  string
}

// AddShim adds the shim package to the target package under Rename.
func (r *Runner) AddShim(opts AddShimOpts) error {
	return r.run(r.Dir, addShimArgs(opts)...)
}

func addShimArgs(opts AddShimOpts) []string {
	args := []string{"add", opts.Name, "--rename", opts.Rename, "--path", opts.LibDir}
	if opts.Offline {
		args = append(args, "--offline")
	}
	if opts.Optional {
		args = append(args, "--optional")
	}
	if opts.Package != "" {
		args = append(args, "--package", opts.Package)
	}
	return args
}

// Version returns the output of cargo --version.
func (r *Runner) Version() (string, error) {
	cmd := exec.Command(r.bin(), "--version") //nolint:gosec // cargo binary is configured by the user
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cargo --version: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// LookPath returns the resolved cargo executable.
func (r *Runner) LookPath() (string, error) {
	return exec.LookPath(r.bin())
}

// run executes cargo in dir, streaming its output. A non-zero exit becomes
// an *ExitError.
func (r *Runner) run(dir string, args ...string) error {
	r.logger().Debug("running cargo "+strings.Join(args, " "), "dir", dir)

	cmd := exec.Command(r.bin(), args...) //nolint:gosec // arguments are built from parsed flags
	cmd.Dir = dir
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code <= 0 {
				code = ExitCodeError
			}
			return &ExitError{Args: args, Code: code}
		}
		return fmt.Errorf("running cargo %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

func (r *Runner) bin() string {
	if r.Bin != "" {
		return r.Bin
	}
	if env := os.Getenv("CARGO"); env != "" {
		return env
	}
	return "cargo"
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}
