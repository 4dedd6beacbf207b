package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/watcher"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) callback(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/project/Packages/com.b/package.json")
		d.Add("/project/Packages/com.a/package.json")
		d.Add("/project/Packages/com.b/package.json")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := rec.snapshot()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{
			"/project/Packages/com.a/package.json",
			"/project/Packages/com.b/package.json",
		}, calls[0])
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/project/Packages/a")
		time.Sleep(50 * time.Millisecond)
		d.Add("/project/Packages/b")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, rec.snapshot(), "second add restarts the window")

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/project/Packages/a")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Add("/project/Packages/b")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/project/Packages/a"}, {"/project/Packages/b"}}, rec.snapshot())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/project/Packages/a")
		d.Flush()
		require.Len(t, rec.snapshot(), 1, "flush runs synchronously")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1, "flushed paths do not fire again")
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	rec := &recorder{}
	d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

	d.Flush()
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_FlushAfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.callback)

		d.Add("/project/Packages/a")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Flush()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/project/Packages/a")
		d.Stop()

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		d.Flush()
		assert.Empty(t, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/project/Packages/a")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Flush()
	})
}
