package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fbkclanna/cargo-add-dynamic/internal/cargo"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(cargoArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		// cargo has already reported its own failure.
		var exitErr *cargo.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cargoArgs drops the subcommand name cargo passes along when the binary is
// run as `cargo add-dynamic ...`.
func cargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == "add-dynamic" {
		return args[1:]
	}
	return args
}
