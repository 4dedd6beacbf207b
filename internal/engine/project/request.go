package project

import (
	"context"
	"slices"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
)

// Conflict records a package whose requirers cannot agree on one version.
type Conflict struct {
	Name      string
	Requirers []string
}

// AddRequest is the closure computed for a set of root packages, ready to install.
type AddRequest struct {
	Roots          []domain.PackageInfo
	Locked         []domain.PackageInfo
	Conflicts      []Conflict
	ToDependencies bool
}

// HasConflicts reports whether the closure could not be satisfied.
func (r *AddRequest) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FirstConflict returns the first recorded conflict as an error, or nil.
func (r *AddRequest) FirstConflict() error {
	if !r.HasConflicts() {
		return nil
	}
	c := r.Conflicts[0]
	return &domain.ConflictError{Conflict: c.Name, DependencyName: c.Requirers[0]}
}

// AddPackageRequest walks the dependencies of roots breadth-first and chooses one
// version per package. Conflicts are recorded on the request, not returned; a
// dependency with no candidate at all fails with domain.DependencyNotFoundError.
func (p *Project) AddPackageRequest(
	ctx context.Context,
	index ports.PackageIndex,
	roots []domain.PackageInfo,
	toDependencies bool,
	allowPrerelease bool,
) (*AddRequest, error) {
	_, span := p.engine.tracer.Start(ctx, "build add request")
	defer span.End()

	b := &requestBuilder{
		project:         p,
		index:           index,
		allowPrerelease: allowPrerelease,
		reqs:            make(map[string][]requirement),
		chosen:          make(map[string]domain.PackageInfo),
		roots:           make(map[string]struct{}, len(roots)),
		unlockedNames:   p.unlockedNames(),
	}

	for _, root := range roots {
		b.roots[root.Name()] = struct{}{}
	}
	b.seedExistingRequirements()

	var queue []domain.PackageInfo
	for _, root := range roots {
		b.choose(root)
		queue = append(queue, root)
	}

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]

		// A package replaced after it was queued has nothing left to contribute.
		if cur, ok := b.chosen[pkg.Name()]; !ok || !cur.Version().Equal(pkg.Version()) {
			continue
		}

		for _, dep := range pkg.Descriptor.Dependencies {
			next, err := b.visit(pkg.Name(), dep)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			if next != nil {
				queue = append(queue, *next)
			}
		}
	}

	b.prune()
	b.checkRequirers()

	req := &AddRequest{
		Roots:          slices.Clone(roots),
		Conflicts:      b.conflicts,
		ToDependencies: toDependencies,
	}
	for _, name := range b.order {
		req.Locked = append(req.Locked, b.chosen[name])
	}
	return req, nil
}

// DoAddPackageRequest installs every package of req concurrently and, once all
// succeeded, records them as locked rows. It does not save the manifest.
func (p *Project) DoAddPackageRequest(ctx context.Context, req *AddRequest) error {
	if err := req.FirstConflict(); err != nil {
		return err
	}

	ctx, span := p.engine.tracer.Start(ctx, "install")
	defer span.End()

	if err := p.installAll(ctx, req.Locked); err != nil {
		span.RecordError(err)
		return err
	}

	for _, pkg := range req.Locked {
		p.manifest.SetLocked(pkg.Name(), pkg.Version(), pkg.Descriptor.Dependencies.Clone())
	}
	if req.ToDependencies {
		for _, root := range req.Roots {
			p.manifest.AddDependency(root.Name(), root.Version())
		}
	}
	return nil
}

// installAll installs pkgs concurrently, one task span each. Packages installed
// before a failure stay installed.
func (p *Project) installAll(ctx context.Context, pkgs []domain.PackageInfo) error {
	if len(pkgs) == 0 {
		return nil
	}

	keys := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		keys[i] = pkg.Key()
	}
	p.engine.tracer.EmitPlan(ctx, keys)

	done := make([]bool, len(pkgs))
	err := fanOut(ctx, p.engine.parallelism, pkgs, func(ctx context.Context, i int, pkg domain.PackageInfo) error {
		if err := p.installTask(ctx, pkg); err != nil {
			return err
		}
		done[i] = true
		return nil
	})

	for i, pkg := range pkgs {
		if done[i] {
			p.markInstalled(pkg)
		}
	}
	return err
}

func (p *Project) installTask(ctx context.Context, pkg domain.PackageInfo) error {
	ctx, span := p.engine.tracer.Start(ctx, pkg.Key(), ports.WithTask())
	defer span.End()

	span.SetAttribute("vpm.package", pkg.Name())
	span.SetAttribute("vpm.version", pkg.Version().String())

	if err := p.engine.installer.Install(ctx, pkg, p.PackagesDir()); err != nil {
		span.RecordError(err)
		return err
	}
	p.engine.logger.Debug("installed " + pkg.Key())
	return nil
}

type requirement struct {
	requirer string
	r        domain.VersionRange
}

type requestBuilder struct {
	project         *Project
	index           ports.PackageIndex
	allowPrerelease bool

	reqs          map[string][]requirement
	chosen        map[string]domain.PackageInfo
	order         []string
	roots         map[string]struct{}
	unlockedNames map[string]struct{}
	conflicts     []Conflict
}

// seedExistingRequirements registers the ranges declared by locked rows and
// unlocked packages, so every selection honors them.
func (b *requestBuilder) seedExistingRequirements() {
	for _, entry := range b.project.manifest.AllLocked() {
		if _, replaced := b.roots[entry.Name]; replaced {
			continue
		}
		for _, dep := range entry.Dependencies {
			b.require(dep.Name, entry.Name, dep.Range)
		}
	}
	for _, u := range b.project.unlocked {
		if u.Descriptor == nil {
			continue
		}
		for _, dep := range u.Descriptor.Dependencies {
			b.require(dep.Name, u.Descriptor.Name, dep.Range)
		}
	}
}

// require records that requirer needs name in r, replacing requirer's earlier range.
func (b *requestBuilder) require(name, requirer string, r domain.VersionRange) {
	list := b.reqs[name]
	for i := range list {
		if list[i].requirer == requirer {
			list[i].r = r
			return
		}
	}
	b.reqs[name] = append(list, requirement{requirer: requirer, r: r})
}

func (b *requestBuilder) ranges(name string) []domain.VersionRange {
	list := b.reqs[name]
	out := make([]domain.VersionRange, len(list))
	for i, req := range list {
		out[i] = req.r
	}
	return out
}

func (b *requestBuilder) choose(pkg domain.PackageInfo) {
	if _, ok := b.chosen[pkg.Name()]; !ok {
		b.order = append(b.order, pkg.Name())
	}
	b.chosen[pkg.Name()] = pkg
}

func (b *requestBuilder) selector(ranges []domain.VersionRange) domain.VersionSelector {
	return domain.RangesFor(b.project.editor, ranges, b.allowPrerelease)
}

func (b *requestBuilder) addConflict(name, requirer string) {
	for i := range b.conflicts {
		if b.conflicts[i].Name == name {
			if !slices.Contains(b.conflicts[i].Requirers, requirer) {
				b.conflicts[i].Requirers = append(b.conflicts[i].Requirers, requirer)
			}
			return
		}
	}
	b.conflicts = append(b.conflicts, Conflict{Name: name, Requirers: []string{requirer}})
}

// visit handles one declared dependency of requirer and returns a newly chosen
// package whose own dependencies still have to be walked.
func (b *requestBuilder) visit(requirer string, dep domain.Dependency) (*domain.PackageInfo, error) {
	b.require(dep.Name, requirer, dep.Range)

	if cur, ok := b.chosen[dep.Name]; ok {
		if dep.Range.Matches(cur.Version(), b.allowPrerelease) {
			return nil, nil
		}
		if _, isRoot := b.roots[dep.Name]; !isRoot {
			if cand, ok := b.index.FindPackageByName(dep.Name, b.selector(b.ranges(dep.Name))); ok {
				b.choose(cand)
				return &cand, nil
			}
		}
		b.addConflict(dep.Name, requirer)
		return nil, nil
	}

	if locked, ok := b.project.manifest.GetLocked(dep.Name); ok && dep.Range.Matches(locked.Version, b.allowPrerelease) {
		return nil, nil
	}
	if _, ok := b.unlockedNames[dep.Name]; ok {
		return nil, nil
	}

	if cand, ok := b.index.FindPackageByName(dep.Name, b.selector(b.ranges(dep.Name))); ok {
		b.choose(cand)
		return &cand, nil
	}

	// The merged ranges admit nothing. If this requirer's range alone has a
	// candidate, the requirers disagree; otherwise the package is missing.
	if _, ok := b.index.FindPackageByName(dep.Name, b.selector([]domain.VersionRange{dep.Range})); ok {
		b.addConflict(dep.Name, requirer)
		return nil, nil
	}
	return nil, &domain.DependencyNotFoundError{Name: dep.Name}
}

// prune drops chosen packages that only a since-replaced version needed.
func (b *requestBuilder) prune() {
	reached := make(map[string]struct{}, len(b.chosen))
	var stack []string
	for name := range b.roots {
		if _, ok := b.chosen[name]; ok {
			reached[name] = struct{}{}
			stack = append(stack, name)
		}
	}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dep := range b.chosen[name].Descriptor.Dependencies {
			if _, ok := b.chosen[dep.Name]; !ok {
				continue
			}
			if _, seen := reached[dep.Name]; seen {
				continue
			}
			reached[dep.Name] = struct{}{}
			stack = append(stack, dep.Name)
		}
	}

	b.order = slices.DeleteFunc(b.order, func(name string) bool {
		if _, ok := reached[name]; ok {
			return false
		}
		delete(b.chosen, name)
		return true
	})
}

// checkRequirers verifies every declared range against the final choices.
func (b *requestBuilder) checkRequirers() {
	check := func(requirer string, deps domain.Dependencies) {
		for _, dep := range deps {
			cur, ok := b.chosen[dep.Name]
			if ok && !dep.Range.Matches(cur.Version(), b.allowPrerelease) {
				b.addConflict(dep.Name, requirer)
			}
		}
	}

	for _, entry := range b.project.manifest.AllLocked() {
		if _, replaced := b.chosen[entry.Name]; !replaced {
			check(entry.Name, entry.Dependencies)
		}
	}
	for _, u := range b.project.unlocked {
		if u.Descriptor != nil {
			check(u.Descriptor.Name, u.Descriptor.Dependencies)
		}
	}
	for _, name := range b.order {
		pkg := b.chosen[name]
		check(name, pkg.Descriptor.Dependencies)
	}
}
