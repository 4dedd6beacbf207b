package project

import (
	"os"
	"path/filepath"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// DiscoverRoot walks start and its ancestors and returns the first directory that
// holds Packages/vpm-manifest.json, or failing that Packages/manifest.json.
func DiscoverRoot(start string) (string, error) {
	candidate, err := filepath.Abs(start)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrProjectNotFound.Error()), "path", start)
	}

	for {
		if fileExists(domain.ManifestPath(candidate)) || fileExists(domain.LegacyManifestPath(candidate)) {
			return candidate, nil
		}

		parent := filepath.Dir(candidate)
		if parent == candidate {
			return "", zerr.With(domain.ErrProjectNotFound, "path", start)
		}
		candidate = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
