package cas

import (
	"os"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Cleaner implements ports.CacheCleaner.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean removes the repository and package caches below cacheDir and returns the
// directories that existed.
func (c *Cleaner) Clean(cacheDir string) ([]string, error) {
	var removed []string
	for _, dir := range []string{domain.ReposCachePath(cacheDir), domain.PackagesCachePath(cacheDir)} {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return removed, zerr.With(zerr.Wrap(err, domain.ErrCacheCleanFailed.Error()), "path", dir)
		}
		removed = append(removed, dir)
	}
	return removed, nil
}
