package app

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolve installs the locked packages and the dependencies of unlocked packages,
// then saves the lock file.
func (a *App) Resolve(ctx context.Context, opts Options) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}

	err = a.withProgress(ctx, opts.OutputMode, func(ctx context.Context, tracer ports.Tracer) error {
		return a.resolveOnce(ctx, opts, settings, tracer)
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrResolveFailed.Error())
	}
	return nil
}

func (a *App) resolveOnce(ctx context.Context, opts Options, settings domain.Settings, tracer ports.Tracer) error {
	p, err := a.openProject(ctx, opts, settings, tracer)
	if err != nil {
		return err
	}

	index, err := a.collections.Load(ctx, settings)
	if err != nil {
		return err
	}

	res, err := p.Resolve(ctx, index)
	if err != nil {
		return err
	}

	// Only the unlocked phase changes the manifest; a missing lock file is created.
	_, statErr := os.Stat(domain.ManifestPath(p.Dir()))
	if len(res.InstalledFromUnlockedDependencies) > 0 || errors.Is(statErr, iofs.ErrNotExist) {
		if err := p.Save(ctx); err != nil {
			return err
		}
	}

	total := len(res.InstalledFromLocked) + len(res.InstalledFromUnlockedDependencies)
	if total == 0 {
		a.logger.Info("all packages are up to date")
		return nil
	}
	a.logger.Info(fmt.Sprintf("installed %d locked and %d new package(s)",
		len(res.InstalledFromLocked), len(res.InstalledFromUnlockedDependencies)))
	return nil
}

// Sweep removes locked packages nothing depends on anymore and saves the lock file.
// With keepExplicit, the top-level dependencies of the lock file are kept as roots.
func (a *App) Sweep(ctx context.Context, opts Options, keepExplicit bool) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}

	return a.withProgress(ctx, opts.OutputMode, func(ctx context.Context, tracer ports.Tracer) error {
		p, err := a.openProject(ctx, opts, settings, tracer)
		if err != nil {
			return err
		}

		var roots []string
		if keepExplicit {
			for _, dep := range p.Manifest().Dependencies() {
				roots = append(roots, dep.Name)
			}
		}

		removed, err := p.MarkAndSweep(ctx, roots...)
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			a.logger.Info("nothing to remove")
			return nil
		}
		if err := p.Save(ctx); err != nil {
			return err
		}
		for _, name := range removed {
			a.logger.Info("removed " + name)
		}
		return nil
	})
}

// Add resolves the given name[@version] specs, installs them with their
// dependencies and records them as top-level dependencies.
func (a *App) Add(ctx context.Context, opts Options, specs []string) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}

	parsed := make([]packageSpec, len(specs))
	for i, s := range specs {
		if parsed[i], err = parsePackageSpec(s); err != nil {
			return err
		}
	}

	return a.withProgress(ctx, opts.OutputMode, func(ctx context.Context, tracer ports.Tracer) error {
		p, err := a.openProject(ctx, opts, settings, tracer)
		if err != nil {
			return err
		}

		index, err := a.collections.Load(ctx, settings)
		if err != nil {
			return err
		}

		var editor *domain.EditorVersion
		if ev, ok := p.EditorVersion(); ok {
			editor = &ev
		}

		allowPrerelease := settings.ShowPrereleasePackages
		roots := make([]domain.PackageInfo, 0, len(parsed))
		for _, spec := range parsed {
			pkg, ok := index.FindPackageByName(spec.name, spec.selector(editor, allowPrerelease))
			if !ok {
				return zerr.With(zerr.With(domain.ErrPackageNotFound, "package", spec.name), "version", spec.versionText())
			}
			if pkg.Version().IsPrerelease() {
				allowPrerelease = true
			}
			roots = append(roots, pkg)
		}

		req, err := p.AddPackageRequest(ctx, index, roots, true, allowPrerelease)
		if err != nil {
			return err
		}
		if err := p.DoAddPackageRequest(ctx, req); err != nil {
			return err
		}
		if err := p.Save(ctx); err != nil {
			return err
		}

		for _, pkg := range req.Locked {
			a.logger.Info("added " + pkg.Key())
		}
		return nil
	})
}

// Remove unlocks the named packages, deletes their directories and saves the lock file.
func (a *App) Remove(ctx context.Context, opts Options, names []string) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}

	return a.withProgress(ctx, opts.OutputMode, func(ctx context.Context, tracer ports.Tracer) error {
		p, err := a.openProject(ctx, opts, settings, tracer)
		if err != nil {
			return err
		}
		if err := p.RemovePackages(ctx, names); err != nil {
			return err
		}
		if err := p.Save(ctx); err != nil {
			return err
		}
		for _, name := range names {
			a.logger.Info("removed " + name)
		}
		return nil
	})
}
