// Package watcher reports changes below a project's Packages folder.
package watcher

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Ignored names the staging directories and temp files written during installs and saves.
var Ignored = []string{".vpm-install-*", "vpm-manifest-*.json", ".DS_Store"}

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	walker *fs.Walker
	logger ports.Logger

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	root      string
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher(walker *fs.Walker, logger ports.Logger) *Watcher {
	return &Watcher{
		walker: walker,
		logger: logger,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start begins watching root and every directory below it.
func (w *Watcher) Start(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", root)
	}
	if !info.IsDir() {
		return zerr.With(domain.ErrWatcherFailed, "path", root)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}

	for dir := range w.walker.WalkDirs(root, Ignored) {
		if err := fsWatcher.Add(dir); err != nil {
			_ = fsWatcher.Close()
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", dir)
		}
	}

	w.mu.Lock()
	w.fsWatcher = fsWatcher
	w.root = root
	w.mu.Unlock()

	go w.processEvents(ctx, fsWatcher)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	err := w.fsWatcher.Close()
	w.fsWatcher = nil
	return err
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent, ok := convertEvent(event)
			if !ok || w.ignored(event.Name) {
				continue
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}

			// New directories (e.g. a freshly installed package) are watched too.
			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for dir := range w.walker.WalkDirs(event.Name, Ignored) {
						_ = fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error: " + err.Error())
		}
	}
}

// ignored reports whether any path component below root matches Ignored.
func (w *Watcher) ignored(path string) bool {
	w.mu.Lock()
	root := w.root
	w.mu.Unlock()

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for part := range strings.SplitSeq(filepath.ToSlash(rel), "/") {
		for _, pattern := range Ignored {
			if matched, _ := filepath.Match(pattern, part); matched {
				return true
			}
		}
	}
	return false
}

func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}
