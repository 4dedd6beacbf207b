package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

// WalkerNodeID is the unique identifier for the walker Graft node.
const WalkerNodeID graft.ID = "adapter.fs.walker"

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})
}
