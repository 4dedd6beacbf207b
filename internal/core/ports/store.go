package ports

import (
	"context"

	"go.trai.ch/vpm/internal/core/domain"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// ManifestStore reads and writes a project's lock file.
type ManifestStore interface {
	// Load parses <projectDir>/Packages/vpm-manifest.json.
	// A missing file yields an empty manifest; a malformed one is an error.
	Load(ctx context.Context, projectDir string) (*domain.Manifest, error)

	// Save writes the manifest, preserving unrelated keys already in the file.
	Save(ctx context.Context, projectDir string, manifest *domain.Manifest) error
}

// RepositoryCache stores downloaded repository documents keyed by URL.
type RepositoryCache interface {
	// Get returns the cached document for url.
	// Returns nil, nil if not found.
	Get(url string) (*domain.CachedRepository, error)

	// Put stores a document.
	Put(entry domain.CachedRepository) error
}

// CacheCleaner removes the download caches.
type CacheCleaner interface {
	// Clean deletes the caches below cacheDir and returns the removed directories.
	Clean(cacheDir string) ([]string, error)
}
