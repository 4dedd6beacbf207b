package ports

import (
	"context"

	"go.trai.ch/vpm/internal/core/domain"
)

// Installer materializes package payloads under a project's Packages folder.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install places pkg at <packagesDir>/<name>.
	// It is a no-op when that directory already holds the same name and version.
	Install(ctx context.Context, pkg domain.PackageInfo, packagesDir string) error
}
