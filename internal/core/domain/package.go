package domain

import (
	"strconv"
	"strings"
)

// PackageDescriptor is the parsed content of a package.json.
type PackageDescriptor struct {
	Name        string
	DisplayName string
	Description string
	Version     Version
	// Unity is the minimum editor release ("2022.3"), empty when unrestricted.
	Unity        string
	URL          string
	ZipSHA256    string
	Yanked       bool
	Dependencies Dependencies
}

// IsEditorCompatible reports whether the package may be used with editor e.
// Descriptors with an empty or unparsable unity field are always compatible.
func (d *PackageDescriptor) IsEditorCompatible(e EditorVersion) bool {
	major, minor, ok := parseMajorMinor(d.Unity)
	if !ok {
		return true
	}
	return e.AtLeast(major, minor)
}

// Title returns the display name, falling back to the package name.
func (d *PackageDescriptor) Title() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

func parseMajorMinor(s string) (int, int, bool) {
	majorStr, minorStr, found := strings.Cut(strings.TrimSpace(s), ".")
	if !found {
		return 0, 0, false
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return 0, 0, false
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// PackageSource tells the installer where a package payload comes from.
type PackageSource struct {
	// Repository is the id of the remote repository that listed the package.
	Repository string
	// LocalPath is the directory of a user package, empty for remote packages.
	LocalPath string
	// Headers are extra HTTP headers the repository requires for downloads.
	Headers map[string]string
}

// PackageInfo is an owned snapshot of one package version offered by the index.
type PackageInfo struct {
	Descriptor PackageDescriptor
	Source     PackageSource
}

// NewRemotePackage returns a PackageInfo downloaded from repository.
func NewRemotePackage(desc PackageDescriptor, repository string) PackageInfo {
	return PackageInfo{Descriptor: desc, Source: PackageSource{Repository: repository}}
}

// NewLocalPackage returns a PackageInfo copied from a local directory.
func NewLocalPackage(desc PackageDescriptor, path string) PackageInfo {
	return PackageInfo{Descriptor: desc, Source: PackageSource{LocalPath: path}}
}

// Name returns the package name.
func (p PackageInfo) Name() string {
	return p.Descriptor.Name
}

// Version returns the package version.
func (p PackageInfo) Version() Version {
	return p.Descriptor.Version
}

// IsLocal reports whether the payload is a local directory.
func (p PackageInfo) IsLocal() bool {
	return p.Source.LocalPath != ""
}

// Key returns "name@version".
func (p PackageInfo) Key() string {
	return p.Descriptor.Name + "@" + p.Descriptor.Version.String()
}

// UnlockedPackage is a directory under Packages that is not a validated locked installation.
// Descriptor is nil when package.json is missing or unreadable.
type UnlockedPackage struct {
	DirName    string
	Descriptor *PackageDescriptor
}
