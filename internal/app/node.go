package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vpm/internal/adapters/cas"        //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/adapters/descriptor" //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/adapters/lockfile"   //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/adapters/registry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/vpm/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			descriptor.NodeID,
			registry.NodeID,
			cas.CleanerNodeID,
			watcher.NodeID,
			fs.WalkerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settingsLoader, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	descriptors, err := graft.Dep[ports.DescriptorReader](ctx)
	if err != nil {
		return nil, err
	}

	collections, err := graft.Dep[ports.CollectionLoader](ctx)
	if err != nil {
		return nil, err
	}

	cleaner, err := graft.Dep[ports.CacheCleaner](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(settingsLoader, manifests, descriptors, collections, cleaner, fileWatcher, walker, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
