// Package output manages the generator's output directory, most notably the
// full cleanup performed before a publish rebuild.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsafePath is returned when cleaning the path could destroy data outside the site output.
	ErrUnsafePath = errors.New("refusing to clean unsafe output path")
	// ErrNotDirectory is returned when the output path exists but is not a directory.
	ErrNotDirectory = errors.New("output path exists but is not a directory")
)

// Cleaner prepares an output directory for a full rebuild.
type Cleaner interface {
	Clean(dir string) error
}

// DirCleaner removes the output directory and recreates it empty.
type DirCleaner struct{}

// NewDirCleaner creates a Cleaner operating on the local filesystem.
func NewDirCleaner() *DirCleaner {
	return &DirCleaner{}
}

// Clean empties the given directory, creating it when it does not exist yet.
// Paths that resolve to the filesystem root, the current working directory,
// or one of its ancestors are rejected.
func (c *DirCleaner) Clean(dir string) error {
	target, err := safeTarget(dir)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Nothing to clean; ensure the directory exists for the build.
	case err != nil:
		return fmt.Errorf("stat output dir: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrNotDirectory, target)
	default:
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("remove output dir: %w", err)
		}
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// safeTarget resolves dir to an absolute path and rejects locations whose
// recursive removal would be destructive.
func safeTarget(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." || dir == ".." {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, dir)
	}

	target, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}

	if filepath.Dir(target) == target {
		// Filesystem root.
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, target)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	if target == wd || isAncestorOf(target, wd) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, target)
	}

	return target, nil
}

// isAncestorOf reports whether dir is an ancestor of path.
func isAncestorOf(dir, path string) bool {
	sep := string(filepath.Separator)
	return strings.HasPrefix(path+sep, dir+sep) && path != dir
}
