package logger_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/logger"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("resolved 3 packages")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("repository curated is unreachable, using cache")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Debug(t *testing.T) {
	t.Run("hidden by default", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.Debug("fetching https://example.com/index.json")
		assert.Empty(t, buf.String())
	})

	t.Run("shown when verbose", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.SetVerbose(true)
		lg.Debug("fetching https://example.com/index.json")

		g := goldie.New(t)
		g.Assert(t, "debug_verbose", buf.Bytes())
	})

	t.Run("verbose survives output switch", func(t *testing.T) {
		lg, _ := newTestLogger(t)
		lg.SetVerbose(true)
		buf := &bytes.Buffer{}
		lg.SetOutput(buf)
		lg.Debug("still here")
		assert.Contains(t, buf.String(), "still here")
	})
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(&domain.DependencyNotFoundError{Name: "com.vrchat.base"})

	g := goldie.New(t)
	g.Assert(t, "error_plain", buf.Bytes())
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	root := errors.New("connection refused")
	err := zerr.Wrap(zerr.Wrap(root, domain.ErrRepositoryFetchFailed.Error()), domain.ErrResolveFailed.Error())
	lg.Error(err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ Error: "+domain.ErrResolveFailed.Error()), out)
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ "+domain.ErrRepositoryFetchFailed.Error())
	assert.Contains(t, out, "connection refused")
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestLogger_New(t *testing.T) {
	lg := logger.New()
	require.NotNil(t, lg)
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetOutput(io.Discard)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			lg.Info("message")
		}()
		go func() {
			defer wg.Done()
			lg.SetJSON(i%2 == 0)
		}()
	}
	wg.Wait()
}
