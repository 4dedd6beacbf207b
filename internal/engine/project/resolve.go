package project

import (
	"context"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
)

// ResolveResult lists the packages a Resolve call actually materialized.
type ResolveResult struct {
	InstalledFromLocked               []domain.PackageInfo
	InstalledFromUnlockedDependencies []domain.PackageInfo
}

// Resolve installs every locked package that is missing on disk, then resolves,
// installs and locks the dependencies of unlocked packages. Installs that finished
// before a failure are kept. The manifest is not saved.
func (p *Project) Resolve(ctx context.Context, index ports.PackageIndex) (*ResolveResult, error) {
	ctx, span := p.engine.tracer.Start(ctx, "resolve")
	defer span.End()

	fromLocked, err := p.installLocked(ctx, index)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	fromUnlocked, err := p.installUnlockedDependencies(ctx, index)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &ResolveResult{
		InstalledFromLocked:               fromLocked,
		InstalledFromUnlockedDependencies: fromUnlocked,
	}, nil
}

// installLocked installs the exact locked version of every row whose directory
// does not already hold it.
func (p *Project) installLocked(ctx context.Context, index ports.PackageIndex) ([]domain.PackageInfo, error) {
	var pending []domain.LockedEntry
	for _, entry := range p.manifest.AllLocked() {
		if desc, ok := p.installed[entry.Name]; ok && desc.Version.Equal(entry.Version) {
			continue
		}
		pending = append(pending, entry)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	keys := make([]string, len(pending))
	for i, entry := range pending {
		keys[i] = entry.Name + "@" + entry.Version.String()
	}
	p.engine.tracer.EmitPlan(ctx, keys)

	found := make([]domain.PackageInfo, len(pending))
	done := make([]bool, len(pending))
	err := fanOut(ctx, p.engine.parallelism, pending, func(ctx context.Context, i int, entry domain.LockedEntry) error {
		pkg, ok := index.FindPackageByName(entry.Name, domain.ExactVersion(entry.Version))
		if !ok {
			return &domain.DependencyNotFoundError{Name: entry.Name}
		}
		if err := p.installTask(ctx, pkg); err != nil {
			return err
		}
		found[i] = pkg
		done[i] = true
		return nil
	})

	var installed []domain.PackageInfo
	for i := range pending {
		if done[i] {
			p.markInstalled(found[i])
			installed = append(installed, found[i])
		}
	}
	if err != nil {
		return nil, err
	}
	return installed, nil
}

type dependencyGroup struct {
	name      string
	ranges    []domain.VersionRange
	requirers []string
}

// installUnlockedDependencies resolves what unlocked packages require and is
// neither locked nor provided by another unlocked package.
func (p *Project) installUnlockedDependencies(ctx context.Context, index ports.PackageIndex) ([]domain.PackageInfo, error) {
	groups := p.unlockedDependencyGroups()
	if len(groups) == 0 {
		return nil, nil
	}

	roots := make([]domain.PackageInfo, 0, len(groups))
	allowPrerelease := p.engine.allowPrerelease
	for _, g := range groups {
		pkg, err := p.selectGroup(index, g)
		if err != nil {
			return nil, err
		}
		roots = append(roots, pkg)
	}
	for _, pkg := range roots {
		if pkg.Version().IsPrerelease() {
			allowPrerelease = true
		}
	}

	req, err := p.AddPackageRequest(ctx, index, roots, false, allowPrerelease)
	if err != nil {
		return nil, err
	}
	if err := req.FirstConflict(); err != nil {
		return nil, err
	}
	if err := p.DoAddPackageRequest(ctx, req); err != nil {
		return nil, err
	}
	return req.Locked, nil
}

func (p *Project) unlockedDependencyGroups() []*dependencyGroup {
	provided := p.unlockedNames()

	var groups []*dependencyGroup
	byName := make(map[string]*dependencyGroup)
	for _, u := range p.unlocked {
		if u.Descriptor == nil {
			continue
		}
		for _, dep := range u.Descriptor.Dependencies {
			if p.manifest.IsLocked(dep.Name) {
				continue
			}
			if _, ok := provided[dep.Name]; ok {
				continue
			}
			g, ok := byName[dep.Name]
			if !ok {
				g = &dependencyGroup{name: dep.Name}
				byName[dep.Name] = g
				groups = append(groups, g)
			}
			g.ranges = append(g.ranges, dep.Range)
			g.requirers = append(g.requirers, u.Descriptor.Name)
		}
	}
	return groups
}

// selectGroup picks one version satisfying every range of g. When none exists it
// tells a conflict (each range alone is satisfiable) from a missing package.
func (p *Project) selectGroup(index ports.PackageIndex, g *dependencyGroup) (domain.PackageInfo, error) {
	allow := p.engine.allowPrerelease
	if pkg, ok := index.FindPackageByName(g.name, domain.RangesFor(p.editor, g.ranges, allow)); ok {
		return pkg, nil
	}

	for _, r := range g.ranges {
		if _, ok := index.FindPackageByName(g.name, domain.RangesFor(p.editor, []domain.VersionRange{r}, allow)); !ok {
			return domain.PackageInfo{}, &domain.DependencyNotFoundError{Name: g.name}
		}
	}
	return domain.PackageInfo{}, &domain.ConflictError{Conflict: g.name, DependencyName: g.requirers[0]}
}
