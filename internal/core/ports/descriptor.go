package ports

import "go.trai.ch/vpm/internal/core/domain"

// DescriptorReader reads the package.json of a package directory.
//
//go:generate mockgen -source=descriptor.go -destination=mocks/mock_descriptor.go -package=mocks
type DescriptorReader interface {
	// Read parses <dir>/package.json.
	Read(dir string) (*domain.PackageDescriptor, error)
}
