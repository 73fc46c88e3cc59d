// Package workspace finds the Cargo workspace enclosing a directory, decides
// whether the package being modified belongs to it, and registers new member
// packages in the workspace manifest.
package workspace
