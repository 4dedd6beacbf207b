// Package fs provides file system helpers for walking, copying and atomic writes.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root, skipping VCS metadata and ignored names.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// WalkDirs yields root and every directory below it, with the same skip rules as WalkFiles.
func (w *Walker) WalkDirs(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root {
				if skip, action := w.shouldSkip(d, ignores); skip {
					return action
				}
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip reports whether d is excluded. For directories the action is filepath.SkipDir.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
