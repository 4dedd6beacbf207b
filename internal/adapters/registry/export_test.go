package registry

import (
	"net/http"

	"go.trai.ch/vpm/internal/core/ports"
)

// NewLoaderWithClient exports newLoaderWithClient for testing.
func NewLoaderWithClient(logger ports.Logger, descriptors ports.DescriptorReader, client *http.Client) *Loader {
	return newLoaderWithClient(logger, descriptors, client)
}
