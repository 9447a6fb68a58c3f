// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot indicates a source path that is not under its source root.
var ErrOutsideRoot = errors.New("path is outside the source root")

// Permissions of generated files and directories.
const (
	DirPerm  os.FileMode = 0o750
	FilePerm os.FileMode = 0o644
)

// markdownExts are the source extensions turned into pages.
var markdownExts = []string{".md", ".markdown"}

// IsMarkdown reports whether path has a markdown extension (case-insensitive).
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, m := range markdownExts {
		if ext == m {
			return true
		}
	}
	return false
}

// OutputPath mirrors srcPath, relative to srcRoot, under outRoot and swaps
// its markdown extension for .html.
//
// Examples (srcRoot "pages", outRoot "dist"):
//   - "pages/index.md" -> "dist/index.html"
//   - "pages/guide/setup.markdown" -> "dist/guide/setup.html"
func OutputPath(srcRoot, srcPath, outRoot string) (string, error) {
	rel, err := filepath.Rel(srcRoot, srcPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutsideRoot, srcPath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, srcPath)
	}

	ext := filepath.Ext(rel)
	if IsMarkdown(rel) {
		rel = rel[:len(rel)-len(ext)]
	}
	return filepath.Join(outRoot, rel+".html"), nil
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, creating missing parent directories. Readers never observe a
// partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing %s: %w", path, err)
	}
	// #nosec G302 -- generated pages are meant to be readable
	if err := os.Chmod(tmpPath, FilePerm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "site" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/mdsite/site.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
