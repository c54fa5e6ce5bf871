// Package walker enumerates candidate note files under a vault root.
//
// Enumeration is deterministic (filepath.WalkDir visits entries in
// lexicographic order) so batch reports are reproducible across runs.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options configures which files an enumeration yields.
type Options struct {
	// Ext is the file extension to include, with leading dot. Defaults to
	// ".md". Matching is case-insensitive.
	Ext string

	// ExcludeDirs are directory names pruned before descent, so excluded
	// subtrees are never even listed. A trash folder with unreadable
	// entries never triggers an error this way.
	ExcludeDirs []string

	// ExcludeFiles are specific paths never yielded, e.g. the rules note
	// a metadata run must not treat as a regular note.
	ExcludeFiles []string
}

func (o Options) ext() string {
	if o.Ext == "" {
		return ".md"
	}
	return o.Ext
}

// Walk calls fn for every candidate file under root. A root that cannot be
// enumerated at all is the only fatal condition.
func Walk(root string, opts Options, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("vault root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", root)
	}

	excludeDirs := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excludeDirs[name] = true
	}
	excludeFiles := make(map[string]bool, len(opts.ExcludeFiles))
	for _, p := range opts.ExcludeFiles {
		excludeFiles[filepath.Clean(p)] = true
	}

	ext := strings.ToLower(opts.ext())

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("vault root: %w", err)
			}
			// Unreadable entries below the root are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && excludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ext) {
			return nil
		}
		if excludeFiles[filepath.Clean(path)] {
			return nil
		}
		return fn(path)
	})
}

// Collect returns every candidate path under root in walk order.
func Collect(root string, opts Options) ([]string, error) {
	var paths []string
	err := Walk(root, opts, func(path string) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
