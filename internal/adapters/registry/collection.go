package registry

import (
	"slices"

	"github.com/sahilm/fuzzy"
	"go.trai.ch/vpm/internal/core/domain"
)

// Collection implements ports.PackageCollection over an in-memory package list.
type Collection struct {
	byName map[string][]domain.PackageInfo
	names  []string
}

// NewCollection indexes pkgs. Earlier entries win when the same name and version
// appears more than once.
func NewCollection(pkgs []domain.PackageInfo) *Collection {
	c := &Collection{byName: make(map[string][]domain.PackageInfo)}
	seen := make(map[string]struct{}, len(pkgs))

	for _, pkg := range pkgs {
		key := pkg.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := c.byName[pkg.Name()]; !ok {
			c.names = append(c.names, pkg.Name())
		}
		c.byName[pkg.Name()] = append(c.byName[pkg.Name()], pkg)
	}

	for _, versions := range c.byName {
		slices.SortStableFunc(versions, func(a, b domain.PackageInfo) int {
			return b.Version().Compare(a.Version())
		})
	}
	slices.Sort(c.names)
	return c
}

// FindPackageByName returns the newest version of name admitted by selector.
func (c *Collection) FindPackageByName(name string, selector domain.VersionSelector) (domain.PackageInfo, bool) {
	for _, pkg := range c.byName[name] {
		if selector.Satisfies(&pkg.Descriptor) {
			return pkg, true
		}
	}
	return domain.PackageInfo{}, false
}

// Versions returns every known version of name, newest first.
func (c *Collection) Versions(name string) []domain.PackageInfo {
	return slices.Clone(c.byName[name])
}

// Names returns every known package name, sorted.
func (c *Collection) Names() []string {
	return slices.Clone(c.names)
}

// Search fuzzy-matches query against "name display name" and returns the latest
// version of each matching package, best match first.
func (c *Collection) Search(query string) []domain.PackageInfo {
	latest := make(searchSource, 0, len(c.names))
	for _, name := range c.names {
		if pkg, ok := c.latest(name); ok {
			latest = append(latest, pkg)
		}
	}

	matches := fuzzy.FindFrom(query, latest)
	out := make([]domain.PackageInfo, len(matches))
	for i, m := range matches {
		out[i] = latest[m.Index]
	}
	return out
}

// latest prefers the newest stable version and falls back to the newest of any kind.
func (c *Collection) latest(name string) (domain.PackageInfo, bool) {
	if pkg, ok := c.FindPackageByName(name, domain.LatestFor(nil, false)); ok {
		return pkg, true
	}
	versions := c.byName[name]
	if len(versions) == 0 {
		return domain.PackageInfo{}, false
	}
	return versions[0], true
}

type searchSource []domain.PackageInfo

func (s searchSource) String(i int) string {
	return s[i].Name() + " " + s[i].Descriptor.DisplayName
}

func (s searchSource) Len() int {
	return len(s)
}
