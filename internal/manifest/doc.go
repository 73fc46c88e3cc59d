// Package manifest reads and edits Cargo.toml files. Manifest is a typed
// read-only view; Document keeps the raw bytes so that edits such as
// appending a workspace member leave every untouched line as it was.
package manifest
