package project

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/zerr"
)

// MarkAndSweep removes every locked row unreachable from the dependencies of the
// unlocked packages (and from extraRoots), deletes their directories and returns
// the removed names in manifest order. A directory that is already gone is fine.
func (p *Project) MarkAndSweep(ctx context.Context, extraRoots ...string) ([]string, error) {
	ctx, span := p.engine.tracer.Start(ctx, "mark and sweep")
	defer span.End()

	removed := p.manifest.MarkAndSweep(p.unlocked, extraRoots...)
	for _, name := range removed {
		p.manifest.RemoveDependency(name)
	}

	if err := p.removeDirs(ctx, removed); err != nil {
		span.RecordError(err)
		return removed, err
	}
	return removed, nil
}

// RemovePackages unlocks names and deletes their directories. It fails without
// changing anything when a name is not locked or is still required by a package
// that stays.
func (p *Project) RemovePackages(ctx context.Context, names []string) error {
	ctx, span := p.engine.tracer.Start(ctx, "remove")
	defer span.End()

	for _, name := range names {
		if !p.manifest.IsLocked(name) {
			err := zerr.With(domain.ErrPackageNotLocked, "package", name)
			span.RecordError(err)
			return err
		}
	}

	if err := p.checkNotRequired(names); err != nil {
		span.RecordError(err)
		return err
	}

	p.manifest.RemoveLocked(names...)
	for _, name := range names {
		p.manifest.RemoveDependency(name)
	}

	if err := p.removeDirs(ctx, names); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (p *Project) checkNotRequired(names []string) error {
	requiredBy := func(requirer string, deps domain.Dependencies) error {
		for _, dep := range deps {
			if slices.Contains(names, dep.Name) {
				return zerr.With(zerr.With(domain.ErrPackageRequired, "package", dep.Name), "required_by", requirer)
			}
		}
		return nil
	}

	for _, entry := range p.manifest.AllLocked() {
		if slices.Contains(names, entry.Name) {
			continue
		}
		if err := requiredBy(entry.Name, entry.Dependencies); err != nil {
			return err
		}
	}
	for _, u := range p.unlocked {
		if u.Descriptor == nil {
			continue
		}
		if err := requiredBy(u.Descriptor.Name, u.Descriptor.Dependencies); err != nil {
			return err
		}
	}
	return nil
}

// removeDirs deletes Packages/<name> for every name concurrently. Directories
// classified as unlocked belong to the user and are left in place.
func (p *Project) removeDirs(ctx context.Context, names []string) error {
	names = slices.DeleteFunc(slices.Clone(names), func(name string) bool {
		return slices.ContainsFunc(p.unlocked, func(u domain.UnlockedPackage) bool {
			return u.DirName == name
		})
	})
	if len(names) == 0 {
		return nil
	}

	done := make([]bool, len(names))
	err := fanOut(ctx, p.engine.parallelism, names, func(ctx context.Context, i int, name string) error {
		_, span := p.engine.tracer.Start(ctx, "remove "+name, ports.WithTask())
		defer span.End()

		dir := filepath.Join(p.PackagesDir(), name)
		if err := os.RemoveAll(dir); err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrPackageRemoveFailed.Error()), "path", dir)
			span.RecordError(err)
			return err
		}
		done[i] = true
		return nil
	})

	for i, name := range names {
		if done[i] {
			delete(p.installed, name)
		}
	}
	return err
}
