package project

import (
	"context"
	"slices"

	"go.trai.ch/vpm/internal/core/domain"
)

// Project is the loaded state of one project. It is owned by a single caller
// and must not be used concurrently.
type Project struct {
	engine    *Engine
	dir       string
	manifest  *domain.Manifest
	editor    *domain.EditorVersion
	unlocked  []domain.UnlockedPackage
	installed map[string]*domain.PackageDescriptor
}

// Dir returns the project directory.
func (p *Project) Dir() string {
	return p.dir
}

// PackagesDir returns the project's Packages folder.
func (p *Project) PackagesDir() string {
	return domain.PackagesDir(p.dir)
}

// EditorVersion returns the editor version read at load time.
func (p *Project) EditorVersion() (domain.EditorVersion, bool) {
	if p.editor == nil {
		return domain.EditorVersion{}, false
	}
	return *p.editor, true
}

// Manifest returns the in-memory lock state.
func (p *Project) Manifest() *domain.Manifest {
	return p.manifest
}

// LockedPackages returns the locked rows in manifest order.
func (p *Project) LockedPackages() []domain.LockedEntry {
	return p.manifest.AllLocked()
}

// IsLocked reports whether name has a locked row.
func (p *Project) IsLocked(name string) bool {
	return p.manifest.IsLocked(name)
}

// AllPackages returns the locked rows followed by every unlocked package that has a descriptor.
func (p *Project) AllPackages() []domain.LockedEntry {
	all := p.manifest.AllLocked()
	for _, u := range p.unlocked {
		if u.Descriptor == nil {
			continue
		}
		all = append(all, domain.LockedEntry{
			Name:         u.Descriptor.Name,
			Version:      u.Descriptor.Version,
			Dependencies: u.Descriptor.Dependencies,
		})
	}
	return all
}

// UnlockedPackages returns the directories that are not validated locked installations.
func (p *Project) UnlockedPackages() []domain.UnlockedPackage {
	return slices.Clone(p.unlocked)
}

// InstalledPackage returns the on-disk descriptor of a locked, installed package.
func (p *Project) InstalledPackage(name string) (*domain.PackageDescriptor, bool) {
	desc, ok := p.installed[name]
	return desc, ok
}

// Save persists the manifest.
func (p *Project) Save(ctx context.Context) error {
	return p.engine.manifests.Save(ctx, p.dir, p.manifest)
}

// markInstalled records that pkg now occupies Packages/<name>.
func (p *Project) markInstalled(pkg domain.PackageInfo) {
	desc := pkg.Descriptor
	p.installed[pkg.Name()] = &desc
	p.unlocked = slices.DeleteFunc(p.unlocked, func(u domain.UnlockedPackage) bool {
		return u.DirName == pkg.Name()
	})
}

// unlockedNames returns the names declared by unlocked packages with a descriptor.
func (p *Project) unlockedNames() map[string]struct{} {
	names := make(map[string]struct{}, len(p.unlocked))
	for _, u := range p.unlocked {
		if u.Descriptor != nil {
			names[u.Descriptor.Name] = struct{}{}
		}
	}
	return names
}
