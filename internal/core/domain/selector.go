package domain

import "strings"

// VersionSelector is the criterion handed to the package index: either one exact
// version, or the intersection of ranges gated by editor version and pre-release policy.
type VersionSelector struct {
	exact           *Version
	ranges          []VersionRange
	editor          *EditorVersion
	allowPrerelease bool
}

// ExactVersion selects exactly v. Editor compatibility and yanked state are ignored.
func ExactVersion(v Version) VersionSelector {
	return VersionSelector{exact: &v}
}

// RangesFor selects versions matching every range. A nil editor disables the editor check.
func RangesFor(editor *EditorVersion, ranges []VersionRange, allowPrerelease bool) VersionSelector {
	rs := make([]VersionRange, len(ranges))
	copy(rs, ranges)
	return VersionSelector{ranges: rs, editor: editor, allowPrerelease: allowPrerelease}
}

// LatestFor selects the newest version compatible with editor.
func LatestFor(editor *EditorVersion, allowPrerelease bool) VersionSelector {
	return VersionSelector{editor: editor, allowPrerelease: allowPrerelease}
}

// IsExact reports whether the selector pins a single version.
func (s VersionSelector) IsExact() bool {
	return s.exact != nil
}

// AllowsPrerelease reports whether pre-release candidates are admissible.
func (s VersionSelector) AllowsPrerelease() bool {
	return s.allowPrerelease
}

// Satisfies reports whether d is an admissible candidate.
func (s VersionSelector) Satisfies(d *PackageDescriptor) bool {
	if s.exact != nil {
		return d.Version.Equal(*s.exact)
	}
	if d.Yanked {
		return false
	}
	if len(s.ranges) == 0 && d.Version.IsPrerelease() && !s.allowPrerelease {
		return false
	}
	for _, r := range s.ranges {
		if !r.Matches(d.Version, s.allowPrerelease) {
			return false
		}
	}
	if s.editor != nil && !d.IsEditorCompatible(*s.editor) {
		return false
	}
	return true
}

// String describes the selector for log messages.
func (s VersionSelector) String() string {
	if s.exact != nil {
		return "=" + s.exact.String()
	}
	if len(s.ranges) == 0 {
		return "latest"
	}
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
