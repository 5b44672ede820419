// Package source provides file content access and canonical path handling.
package source

import (
	"os"
	"path/filepath"
)

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, fixtures, etc.)
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader reads files from disk.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}

// Canonical returns the absolute, symlink-free form of path. When symlinks
// cannot be evaluated (for example the file does not exist yet) the parent
// directory is evaluated instead, and failing that the cleaned absolute path
// is returned.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs))
	}
	return abs
}
