package domain

// LockedEntry is one row of the lock file.
type LockedEntry struct {
	Name    string
	Version Version
	// Dependencies are the ranges declared when the entry was locked.
	Dependencies Dependencies
}

// RootDependency is a package the user asked for explicitly.
type RootDependency struct {
	Name    string
	Version Version
}

// Manifest is the in-memory lock state of a project.
// Locked rows keep insertion order; names are unique.
type Manifest struct {
	locked       []LockedEntry
	index        map[string]int
	dependencies []RootDependency
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{index: make(map[string]int)}
}

// GetLocked returns the locked row for name.
func (m *Manifest) GetLocked(name string) (LockedEntry, bool) {
	i, ok := m.index[name]
	if !ok {
		return LockedEntry{}, false
	}
	return m.locked[i], true
}

// IsLocked reports whether name has a locked row.
func (m *Manifest) IsLocked(name string) bool {
	_, ok := m.index[name]
	return ok
}

// AllLocked returns every locked row in insertion order.
func (m *Manifest) AllLocked() []LockedEntry {
	out := make([]LockedEntry, len(m.locked))
	copy(out, m.locked)
	return out
}

// Len returns the number of locked rows.
func (m *Manifest) Len() int {
	return len(m.locked)
}

// SetLocked inserts or replaces the row for name. A replaced row keeps its position.
func (m *Manifest) SetLocked(name string, version Version, deps Dependencies) {
	entry := LockedEntry{Name: name, Version: version, Dependencies: deps.Clone()}
	if i, ok := m.index[name]; ok {
		m.locked[i] = entry
		return
	}
	m.index[name] = len(m.locked)
	m.locked = append(m.locked, entry)
}

// RemoveLocked deletes the rows for names and returns the names that were present.
func (m *Manifest) RemoveLocked(names ...string) []string {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}

	var removed []string
	kept := m.locked[:0]
	for _, entry := range m.locked {
		if _, ok := drop[entry.Name]; ok {
			removed = append(removed, entry.Name)
			continue
		}
		kept = append(kept, entry)
	}
	m.locked = kept
	m.reindex()
	return removed
}

func (m *Manifest) reindex() {
	m.index = make(map[string]int, len(m.locked))
	for i, entry := range m.locked {
		m.index[entry.Name] = i
	}
}

// Dependencies returns the explicit top-level dependencies.
func (m *Manifest) Dependencies() []RootDependency {
	out := make([]RootDependency, len(m.dependencies))
	copy(out, m.dependencies)
	return out
}

// AddDependency records name as an explicit dependency, replacing any previous version.
func (m *Manifest) AddDependency(name string, version Version) {
	for i := range m.dependencies {
		if m.dependencies[i].Name == name {
			m.dependencies[i].Version = version
			return
		}
	}
	m.dependencies = append(m.dependencies, RootDependency{Name: name, Version: version})
}

// RemoveDependency drops name from the explicit dependencies.
func (m *Manifest) RemoveDependency(name string) bool {
	for i := range m.dependencies {
		if m.dependencies[i].Name == name {
			m.dependencies = append(m.dependencies[:i], m.dependencies[i+1:]...)
			return true
		}
	}
	return false
}

// MarkAndSweep removes every locked row that is not reachable from the dependencies
// of the unlocked packages, and returns the removed names in manifest order.
// extraRoots are marked as well, together with everything they reach.
func (m *Manifest) MarkAndSweep(unlocked []UnlockedPackage, extraRoots ...string) []string {
	marked := make(map[string]struct{})
	var queue []string

	mark := func(name string) {
		if _, seen := marked[name]; seen {
			return
		}
		marked[name] = struct{}{}
		queue = append(queue, name)
	}

	for _, pkg := range unlocked {
		if pkg.Descriptor == nil {
			continue
		}
		for _, dep := range pkg.Descriptor.Dependencies {
			mark(dep.Name)
		}
	}
	for _, name := range extraRoots {
		mark(name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		entry, ok := m.GetLocked(name)
		if !ok {
			continue
		}
		for _, dep := range entry.Dependencies {
			mark(dep.Name)
		}
	}

	var sweep []string
	for _, entry := range m.locked {
		if _, ok := marked[entry.Name]; !ok {
			sweep = append(sweep, entry.Name)
		}
	}
	if len(sweep) == 0 {
		return nil
	}
	return m.RemoveLocked(sweep...)
}
