package app

import (
	"strings"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// packageSpec is a parsed name[@version] command argument.
type packageSpec struct {
	name    string
	version *domain.Version
}

func parsePackageSpec(s string) (packageSpec, error) {
	name, version, hasVersion := strings.Cut(strings.TrimSpace(s), "@")
	if name == "" || (hasVersion && version == "") {
		return packageSpec{}, zerr.With(domain.ErrInvalidPackageSpec, "spec", s)
	}
	if !hasVersion {
		return packageSpec{name: name}, nil
	}

	v, err := domain.ParseVersion(version)
	if err != nil {
		return packageSpec{}, zerr.With(err, "spec", s)
	}
	return packageSpec{name: name, version: &v}, nil
}

// selector pins the requested version, or asks for the newest editor-compatible one.
func (s packageSpec) selector(editor *domain.EditorVersion, allowPrerelease bool) domain.VersionSelector {
	if s.version != nil {
		return domain.ExactVersion(*s.version)
	}
	return domain.LatestFor(editor, allowPrerelease)
}

func (s packageSpec) versionText() string {
	if s.version == nil {
		return "latest"
	}
	return s.version.String()
}
