package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/adapters/logger"
	"go.trai.ch/vpm/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 300 * time.Millisecond

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(walker, log), nil
		},
	})
}
