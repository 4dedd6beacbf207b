package domain

// Dependency is one declared requirement on another package.
type Dependency struct {
	Name  string
	Range VersionRange
}

// Dependencies is an ordered name to range mapping. Order is the declaration order
// of the source document and is preserved on write.
type Dependencies []Dependency

// Get returns the range declared for name.
func (d Dependencies) Get(name string) (VersionRange, bool) {
	for _, dep := range d {
		if dep.Name == name {
			return dep.Range, true
		}
	}
	return VersionRange{}, false
}

// Names returns the dependency names in declaration order.
func (d Dependencies) Names() []string {
	names := make([]string, len(d))
	for i, dep := range d {
		names[i] = dep.Name
	}
	return names
}

// With returns a copy of d where name maps to r. An existing entry keeps its position.
func (d Dependencies) With(name string, r VersionRange) Dependencies {
	out := d.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Range = r
			return out
		}
	}
	return append(out, Dependency{Name: name, Range: r})
}

// Clone returns an independent copy of d.
func (d Dependencies) Clone() Dependencies {
	if d == nil {
		return nil
	}
	out := make(Dependencies, len(d))
	copy(out, d)
	return out
}
