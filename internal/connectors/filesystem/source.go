// Package filesystem enumerates and watches input files on local disk.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
	"github.com/custodia-labs/colfilter/internal/logger"
)

// Verify interface compliance.
var _ driven.FileSource = (*Source)(nil)

// Source implements driven.FileSource on the local filesystem.
type Source struct {
	dirPerm os.FileMode
}

// NewSource creates a Source that creates directories with mode 0755.
func NewSource() *Source {
	return &Source{dirPerm: 0755}
}

// List returns the regular files under root. Hidden files and directories
// are skipped, as are directories listed in opts.ExcludeDirs.
func (s *Source) List(ctx context.Context, root string, opts driven.ListOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", root)
	}

	excluded, err := absAll(opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}

	var files []string
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !opts.Recursive || isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if opts.Match != nil && !opts.Match(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}

	slices.Sort(files)
	logger.Debug("filesystem: %d file(s) under %s", len(files), root)
	return files, nil
}

// Exists reports whether anything is present at path.
func (s *Source) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsureDir creates dir and any missing parents.
func (s *Source) EnsureDir(dir string) error {
	return os.MkdirAll(dir, s.dirPerm)
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func absAll(dirs []string) ([]string, error) {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	return out, nil
}

func isExcluded(dir string, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return slices.Contains(excluded, abs)
}
