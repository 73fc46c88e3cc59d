// Package cargo wraps the cargo subcommands used to scaffold the dylib shim
// package and wire it into the target package, plus the small file edits
// that turn a fresh library package into a re-exporting dylib.
package cargo
