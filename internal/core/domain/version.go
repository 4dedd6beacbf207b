package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is a strict semantic version as used by package descriptors and lock files.
type Version struct {
	v *semver.Version
}

// ParseVersion parses a strict semantic version such as "1.2.3" or "2.0.0-beta.1".
func ParseVersion(s string) (Version, error) {
	v, err := semver.StrictNewVersion(strings.TrimSpace(s))
	if err != nil {
		return Version{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", s)
	}
	return Version{v: v}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was never set.
func (v Version) IsZero() bool {
	return v.v == nil
}

// String returns the version as it was written.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// Compare returns -1, 0 or 1. A zero Version sorts before every parsed one.
func (v Version) Compare(o Version) int {
	switch {
	case v.v == nil && o.v == nil:
		return 0
	case v.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return v.v.Compare(o.v)
}

// Equal reports whether both versions have the same precedence.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// IsPrerelease reports whether v carries a pre-release qualifier.
func (v Version) IsPrerelease() bool {
	return v.v != nil && v.v.Prerelease() != ""
}

// VersionRange is a range expression such as "^1.0", ">=1.2.3 <2" or "1.x".
type VersionRange struct {
	raw         string
	constraints *semver.Constraints
}

// ParseVersionRange parses a range expression. An empty expression matches any version.
func ParseVersionRange(s string) (VersionRange, error) {
	raw := strings.TrimSpace(s)
	expr := raw
	if expr == "" {
		expr = "*"
	}
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return VersionRange{}, zerr.With(zerr.Wrap(err, ErrInvalidVersionRange.Error()), "range", s)
	}
	return VersionRange{raw: raw, constraints: c}, nil
}

// MustParseVersionRange is like ParseVersionRange but panics on error.
func MustParseVersionRange(s string) VersionRange {
	r, err := ParseVersionRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// SameOrLater returns the range ">=v".
func SameOrLater(v Version) VersionRange {
	return MustParseVersionRange(">=" + v.String())
}

// String returns the range as it was written.
func (r VersionRange) String() string {
	return r.raw
}

// Matches reports whether v lies in the range. Pre-release versions only match when
// allowPrerelease is set or the range itself names a pre-release.
func (r VersionRange) Matches(v Version, allowPrerelease bool) bool {
	if r.constraints == nil || v.v == nil {
		return false
	}
	c := *r.constraints
	c.IncludePrerelease = allowPrerelease
	return c.Check(v.v)
}
