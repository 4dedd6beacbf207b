package app

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/vpm/internal/adapters/detector"
	"go.trai.ch/vpm/internal/adapters/telemetry"
	"go.trai.ch/vpm/internal/adapters/watcher"
	"go.trai.ch/vpm/internal/core/ports"
)

// WithDebounceWindow sets how long Watch waits for a burst of changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// Watch resolves the project once, then again after every settled burst of
// changes below its Packages folder, until ctx is cancelled. Bursts that settle
// while a resolve is running are coalesced into one follow-up resolve.
func (a *App) Watch(ctx context.Context, opts Options) error {
	if _, err := detector.ParseMode(opts.OutputMode); err != nil {
		return err
	}
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}

	p, err := a.openProject(ctx, opts, settings, telemetry.NewNoOpTracer())
	if err != nil {
		return err
	}
	// The project root is known from here on; later passes reload it directly.
	opts.ProjectDir = p.Dir()
	mode := watchOutputMode(opts.OutputMode)

	resolve := func() {
		err := a.withProgress(ctx, mode, func(ctx context.Context, tracer ports.Tracer) error {
			return a.resolveOnce(ctx, opts, settings, tracer)
		})
		if err != nil && ctx.Err() == nil {
			a.logger.Error(err)
		}
	}

	if err := a.watcher.Start(ctx, p.PackagesDir()); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	bursts := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case bursts <- paths:
		default:
			a.logger.Debug(fmt.Sprintf("resolve already queued, coalescing %d change(s)", len(paths)))
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	resolve()
	a.logger.Info("watching " + p.PackagesDir())

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-bursts:
			a.logger.Info(fmt.Sprintf("%d change(s) detected, resolving", len(paths)))
			resolve()
		}
	}
}

// watchOutputMode keeps the explicit quiet mode and prints line output otherwise,
// since a full screen display would be redrawn for every pass.
func watchOutputMode(requested string) string {
	if m, _ := detector.ParseMode(requested); m == detector.ModeQuiet {
		return detector.ModeQuiet.String()
	}
	return detector.ModeLinear.String()
}
