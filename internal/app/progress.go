package app

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vpm/internal/adapters/detector"
	"go.trai.ch/vpm/internal/adapters/linear"
	"go.trai.ch/vpm/internal/adapters/telemetry"
	"go.trai.ch/vpm/internal/adapters/tui"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "go.trai.ch/vpm"

// withProgress runs fn with a tracer whose task spans drive a progress renderer
// chosen from outputMode. The renderer runs concurrently and stops when fn returns.
func (a *App) withProgress(
	ctx context.Context,
	outputMode string,
	fn func(ctx context.Context, tracer ports.Tracer) error,
) error {
	requested, err := detector.ParseMode(outputMode)
	if err != nil {
		return err
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), requested)
	if mode == detector.ModeQuiet {
		return fn(ctx, telemetry.NewNoOpTracer())
	}

	var renderer ports.Renderer
	var tuiRenderer *tui.Renderer
	if mode == detector.ModeTUI {
		tuiRenderer = tui.NewRenderer(a.stderr, a.teaOptions...)
		renderer = tuiRenderer
	} else {
		renderer = linear.NewRenderer(a.stderr)
	}

	tp := setupOTel(telemetry.NewBridge(renderer))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(tp, instrumentationName).WithRenderer(renderer)

	g, gctx := errgroup.WithContext(ctx)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		if err := renderer.Wait(); err != nil {
			return err
		}
		if tuiRenderer != nil && tuiRenderer.Model().Interrupted {
			return domain.ErrInterrupted
		}
		return nil
	})

	// Operation Routine
	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()
		return fn(gctx, tracer)
	})

	return g.Wait()
}

// setupOTel creates a TracerProvider reporting every span to the bridge and
// registers it as the global provider.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
