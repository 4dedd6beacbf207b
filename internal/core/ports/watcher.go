package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent is a change observed under the watched Packages folder.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports file system changes below a directory.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root and every directory below it.
	Start(ctx context.Context, root string) error
	// Stop releases the underlying watches and ends Events.
	Stop() error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
