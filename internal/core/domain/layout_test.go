package domain_test

import (
	"path/filepath"
	"testing"

	"go.trai.ch/vpm/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	root := filepath.Join("home", "me", "Avatar")
	cache := filepath.Join("home", "me", ".cache", "vpm")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "PackagesDir",
			got:      domain.PackagesDir(root),
			expected: filepath.Join(root, "Packages"),
		},
		{
			name:     "ManifestPath",
			got:      domain.ManifestPath(root),
			expected: filepath.Join(root, "Packages", "vpm-manifest.json"),
		},
		{
			name:     "LegacyManifestPath",
			got:      domain.LegacyManifestPath(root),
			expected: filepath.Join(root, "Packages", "manifest.json"),
		},
		{
			name:     "EditorVersionPath",
			got:      domain.EditorVersionPath(root),
			expected: filepath.Join(root, "ProjectSettings", "ProjectVersion.txt"),
		},
		{
			name:     "ReposCachePath",
			got:      domain.ReposCachePath(cache),
			expected: filepath.Join(cache, "repos"),
		},
		{
			name:     "PackagesCachePath",
			got:      domain.PackagesCachePath(cache),
			expected: filepath.Join(cache, "packages"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}
