package ports

import (
	"context"

	"go.trai.ch/vpm/internal/core/domain"
)

//go:generate mockgen -source=package_index.go -destination=mocks/mock_package_index.go -package=mocks

// PackageIndex answers version queries during resolution.
type PackageIndex interface {
	// FindPackageByName returns the newest version of name admitted by selector.
	FindPackageByName(name string, selector domain.VersionSelector) (domain.PackageInfo, bool)
}

// PackageCollection is a PackageIndex that can also enumerate its packages.
type PackageCollection interface {
	PackageIndex

	// Versions returns every known version of name, newest first.
	Versions(name string) []domain.PackageInfo

	// Names returns every known package name, sorted.
	Names() []string
	// Search fuzzy-matches query against names and display names and returns
	// the latest version of each match, best match first.
	Search(query string) []domain.PackageInfo
}

// CollectionLoader builds a PackageCollection from the configured repositories and user packages.
type CollectionLoader interface {
	Load(ctx context.Context, settings domain.Settings) (PackageCollection, error)
}
