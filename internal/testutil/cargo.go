package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FakeCargo is a stand-in cargo executable. It records every invocation,
// scaffolds a library package for "cargo new", and exits with ExitCode when
// its first argument is FailOn.
type FakeCargo struct {
	Bin     string
	LogPath string
}

// FakeCargoOpts configures NewFakeCargo.
type FakeCargoOpts struct {
	FailOn   string
	ExitCode int
}

const fakeCargoScript = `#!/bin/sh
printf '%%s|%%s\n' "$(pwd)" "$*" >> %q
if [ "$1" = "%s" ]; then
  exit %d
fi
if [ "$1" = "new" ]; then
  name="$4"
  dir="$5"
  mkdir -p "$dir/src"
  printf '[package]\nname = "%%s"\nversion = "0.1.0"\nedition = "2021"\n\n[dependencies]\n' "$name" > "$dir/Cargo.toml"
  printf 'pub fn add(left: u64, right: u64) -> u64 {\n    left + right\n}\n' > "$dir/src/lib.rs"
fi
if [ "$1" = "--version" ]; then
  echo "cargo 1.80.0 (fake)"
fi
exit 0
`

// NewFakeCargo writes a fake cargo script into a temp directory.
func NewFakeCargo(t *testing.T, opts FakeCargoOpts) *FakeCargo {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	bin := filepath.Join(dir, "cargo")

	failOn := opts.FailOn
	if failOn == "" {
		failOn = "__never__"
	}
	script := fmt.Sprintf(fakeCargoScript, logPath, failOn, opts.ExitCode)
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil { //nolint:gosec // test executable
		t.Fatalf("writing fake cargo: %v", err)
	}
	return &FakeCargo{Bin: bin, LogPath: logPath}
}

// Call is one recorded invocation.
type Call struct {
	Dir  string
	Args []string
}

// Calls returns the recorded invocations in order.
func (f *FakeCargo) Calls(t *testing.T) []Call {
	t.Helper()
	data, err := os.ReadFile(f.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading fake cargo log: %v", err)
	}
	var calls []Call
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		dir, args, _ := strings.Cut(line, "|")
		calls = append(calls, Call{Dir: dir, Args: strings.Fields(args)})
	}
	return calls
}
