package installer

import (
	"net/http"

	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/core/ports"
)

// NewInstallerWithClient exports newInstallerWithClient for testing.
func NewInstallerWithClient(
	cacheDir string,
	descriptors ports.DescriptorReader,
	walker *fs.Walker,
	client *http.Client,
) *Installer {
	return newInstallerWithClient(cacheDir, descriptors, walker, client)
}
