package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vpm/internal/adapters/descriptor"
	"go.trai.ch/vpm/internal/adapters/logger"
	"go.trai.ch/vpm/internal/core/ports"
)

// NodeID is the unique identifier for the collection loader Graft node.
const NodeID graft.ID = "adapter.collection_loader"

func init() {
	graft.Register(graft.Node[ports.CollectionLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, descriptor.NodeID},
		Run: func(ctx context.Context) (ports.CollectionLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.DescriptorReader](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, reader), nil
		},
	})
}
