// Package cas stores downloaded repository documents and cleans the download caches.
package cas

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.RepositoryCache using a file-per-URL strategy.
type Store struct {
	root string
}

// NewStore creates a RepositoryCache backed by the directory at root.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Get retrieves the cached document for url.
func (s *Store) Get(url string) (*domain.CachedRepository, error) {
	filename := s.getFilename(url)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var entry domain.CachedRepository
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "url", url)
	}

	// Different URL behind the same hash.
	if entry.URL != url {
		return nil, nil
	}

	return &entry, nil
}

// Put stores the document.
func (s *Store) Put(entry domain.CachedRepository) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	if err := fs.WriteFileAtomic(s.getFilename(entry.URL), data, "repo-cache-*.json"); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "url", entry.URL)
	}

	return nil
}

func (s *Store) getFilename(url string) string {
	return filepath.Join(s.root, strconv.FormatUint(xxhash.Sum64String(url), 16)+".json")
}
