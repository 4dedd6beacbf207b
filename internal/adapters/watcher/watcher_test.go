package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/adapters/watcher"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/vpm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string) (*watcher.Watcher, <-chan ports.WatchEvent) {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	w := watcher.NewWatcher(fs.NewWalker(), log)
	require.NoError(t, w.Start(ctx, root))
	t.Cleanup(func() { _ = w.Stop() })

	ch := make(chan ports.WatchEvent, 64)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return w, ch
}

func waitFor(t *testing.T, ch <-chan ports.WatchEvent, match func(ports.WatchEvent) bool) ports.WatchEvent {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "event stream closed")
			if match(ev) {
				return ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for event")
			return ports.WatchEvent{}
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	pkg := filepath.Join(root, "com.example.tool")
	require.NoError(t, os.MkdirAll(pkg, 0o750))

	_, events := startWatcher(t, root)

	target := filepath.Join(pkg, "package.json")
	require.NoError(t, os.WriteFile(target, []byte(`{}`), 0o600))

	ev := waitFor(t, events, func(ev ports.WatchEvent) bool { return ev.Path == target })
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	_, events := startWatcher(t, root)

	dir := filepath.Join(root, "com.example.new")
	require.NoError(t, os.Mkdir(dir, 0o750))
	waitFor(t, events, func(ev ports.WatchEvent) bool { return ev.Path == dir })

	target := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(target, []byte(`{}`), 0o600))
	waitFor(t, events, func(ev ports.WatchEvent) bool { return ev.Path == target })
}

func TestWatcher_SkipsStagingDirectories(t *testing.T) {
	root := t.TempDir()
	_, events := startWatcher(t, root)

	staging := filepath.Join(root, ".vpm-install-123")
	require.NoError(t, os.Mkdir(staging, 0o750))
	marker := filepath.Join(root, "marker")
	require.NoError(t, os.WriteFile(marker, nil, 0o600))

	ev := waitFor(t, events, func(ev ports.WatchEvent) bool {
		return ev.Path == marker || ev.Path == staging
	})
	assert.Equal(t, marker, ev.Path)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	root := t.TempDir()
	w, events := startWatcher(t, root)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "stop is idempotent")

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not close")
	}
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	w := watcher.NewWatcher(fs.NewWalker(), nil)
	err := w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorContains(t, err, domain.ErrWatcherFailed.Error())
	require.NoError(t, w.Stop())
}
