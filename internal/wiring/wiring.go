// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/vpm/internal/adapters/cas"
	_ "go.trai.ch/vpm/internal/adapters/config"
	_ "go.trai.ch/vpm/internal/adapters/descriptor"
	_ "go.trai.ch/vpm/internal/adapters/fs"
	_ "go.trai.ch/vpm/internal/adapters/lockfile"
	_ "go.trai.ch/vpm/internal/adapters/logger"
	_ "go.trai.ch/vpm/internal/adapters/registry"
	_ "go.trai.ch/vpm/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/vpm/internal/app"
)
