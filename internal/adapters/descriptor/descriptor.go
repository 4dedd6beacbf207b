// Package descriptor parses package.json documents.
package descriptor

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Reader implements ports.DescriptorReader on the local file system.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses <dir>/package.json.
func (r *Reader) Read(dir string) (*domain.PackageDescriptor, error) {
	path := filepath.Join(dir, domain.DescriptorFileName)
	//nolint:gosec // Path is built from the project's Packages folder
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDescriptorReadFailed.Error()), "path", path)
	}

	desc, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return desc, nil
}

// Parse parses the content of a package.json.
func Parse(data []byte) (*domain.PackageDescriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, zerr.With(domain.ErrDescriptorParseFailed, "reason", "invalid json")
	}
	return FromResult(gjson.ParseBytes(data))
}

// FromResult builds a descriptor from an already parsed JSON object.
// Unknown fields are ignored.
func FromResult(doc gjson.Result) (*domain.PackageDescriptor, error) {
	if !doc.IsObject() {
		return nil, zerr.With(domain.ErrDescriptorParseFailed, "reason", "not an object")
	}

	name := doc.Get("name").String()
	if name == "" {
		return nil, zerr.With(domain.ErrDescriptorParseFailed, "reason", "missing name")
	}

	version, err := domain.ParseVersion(doc.Get("version").String())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDescriptorParseFailed.Error()), "package", name)
	}

	deps, err := ParseDependencies(doc.Get("vpmDependencies"))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDescriptorParseFailed.Error()), "package", name)
	}

	return &domain.PackageDescriptor{
		Name:         name,
		DisplayName:  doc.Get("displayName").String(),
		Description:  doc.Get("description").String(),
		Version:      version,
		Unity:        doc.Get("unity").String(),
		URL:          doc.Get("url").String(),
		ZipSHA256:    doc.Get("zipSHA256").String(),
		Yanked:       isYanked(doc.Get("yanked")),
		Dependencies: deps,
	}, nil
}

// ParseDependencies reads a name to range object, keeping key order.
// A missing or null value yields no dependencies.
func ParseDependencies(obj gjson.Result) (domain.Dependencies, error) {
	if !obj.Exists() || obj.Type == gjson.Null {
		return nil, nil
	}
	if !obj.IsObject() {
		return nil, zerr.With(domain.ErrInvalidVersionRange, "reason", "dependencies must be an object")
	}

	var (
		deps     domain.Dependencies
		firstErr error
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		r, err := domain.ParseVersionRange(value.String())
		if err != nil {
			firstErr = zerr.With(err, "dependency", key.String())
			return false
		}
		deps = append(deps, domain.Dependency{Name: key.String(), Range: r})
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return deps, nil
}

// isYanked accepts both `"yanked": true` and a yank reason string.
func isYanked(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.String:
		return v.String() != ""
	default:
		return false
	}
}
