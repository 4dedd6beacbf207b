package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vpm/internal/core/ports"
)

// CleanerNodeID is the unique identifier for the cache cleaner Graft node.
const CleanerNodeID graft.ID = "adapter.cache_cleaner"

func init() {
	graft.Register(graft.Node[ports.CacheCleaner]{
		ID:        CleanerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheCleaner, error) {
			return NewCleaner(), nil
		},
	})
}
