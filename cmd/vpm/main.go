// Package main is the entry point for the vpm package manager.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/vpm/cmd/vpm/commands"
	"go.trai.ch/vpm/internal/app"
	"go.trai.ch/vpm/internal/core/domain"
	_ "go.trai.ch/vpm/internal/wiring"
)

// exitInterrupted is the conventional exit code after SIGINT.
const exitInterrupted = 130

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	// Apply options
	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if ctx.Err() != nil || errors.Is(err, domain.ErrInterrupted) {
			return exitInterrupted
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
