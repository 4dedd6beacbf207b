// Package lockfile reads and writes Packages/vpm-manifest.json.
package lockfile

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"go.trai.ch/vpm/internal/adapters/descriptor"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Store implements ports.ManifestStore on the local file system.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load parses the lock file of the project at projectDir.
// A missing file yields an empty manifest.
func (s *Store) Load(ctx context.Context, projectDir string) (*domain.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := domain.ManifestPath(projectDir)
	//nolint:gosec // Path is built from the discovered project directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.NewManifest(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return m, nil
}

// Save writes the manifest, keeping any unrelated top-level keys of the existing file.
func (s *Store) Save(ctx context.Context, projectDir string, m *domain.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := domain.ManifestPath(projectDir)
	//nolint:gosec // Path is built from the discovered project directory
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	out, err := Render(existing, m)
	if err != nil {
		return zerr.With(err, "path", path)
	}

	if err := fs.WriteFileAtomic(path, out, "vpm-manifest-*.json"); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// Parse decodes lock file content. Key order of "locked" is kept as the manifest order.
func Parse(data []byte) (*domain.Manifest, error) {
	m := domain.NewManifest()
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, zerr.With(domain.ErrManifestParseFailed, "reason", "invalid json")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, zerr.With(domain.ErrManifestParseFailed, "reason", "not an object")
	}

	if err := parseLocked(doc.Get("locked"), m); err != nil {
		return nil, err
	}
	if err := parseDependencies(doc.Get("dependencies"), m); err != nil {
		return nil, err
	}
	return m, nil
}

func parseLocked(locked gjson.Result, m *domain.Manifest) error {
	if !locked.Exists() || locked.Type == gjson.Null {
		return nil
	}
	if !locked.IsObject() {
		return zerr.With(domain.ErrManifestParseFailed, "reason", "locked must be an object")
	}

	var firstErr error
	locked.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		version, err := domain.ParseVersion(value.Get("version").String())
		if err != nil {
			firstErr = zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "package", name)
			return false
		}
		deps, err := descriptor.ParseDependencies(value.Get("dependencies"))
		if err != nil {
			firstErr = zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "package", name)
			return false
		}
		m.SetLocked(name, version, deps)
		return true
	})
	return firstErr
}

func parseDependencies(deps gjson.Result, m *domain.Manifest) error {
	if !deps.Exists() || deps.Type == gjson.Null {
		return nil
	}
	if !deps.IsObject() {
		return zerr.With(domain.ErrManifestParseFailed, "reason", "dependencies must be an object")
	}

	var firstErr error
	deps.ForEach(func(key, value gjson.Result) bool {
		version, err := domain.ParseVersion(value.Get("version").String())
		if err != nil {
			firstErr = zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "dependency", key.String())
			return false
		}
		m.AddDependency(key.String(), version)
		return true
	})
	return firstErr
}

// Render merges m into existing lock file content and formats the result.
// Invalid or empty existing content is replaced.
func Render(existing []byte, m *domain.Manifest) ([]byte, error) {
	doc := existing
	if len(bytes.TrimSpace(doc)) == 0 || !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		doc = []byte("{}")
	}

	doc, err := sjson.SetRawBytes(doc, "dependencies", dependenciesJSON(m))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	doc, err = sjson.SetRawBytes(doc, "locked", lockedJSON(m))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	out := pretty.PrettyOptions(doc, prettyOptions)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

func lockedJSON(m *domain.Manifest) []byte {
	buf := []byte{'{'}
	for i, entry := range m.AllLocked() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = gjson.AppendJSONString(buf, entry.Name)
		buf = append(buf, `:{"version":`...)
		buf = gjson.AppendJSONString(buf, entry.Version.String())
		buf = append(buf, `,"dependencies":{`...)
		for j, dep := range entry.Dependencies {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = gjson.AppendJSONString(buf, dep.Name)
			buf = append(buf, ':')
			buf = gjson.AppendJSONString(buf, dep.Range.String())
		}
		buf = append(buf, "}}"...)
	}
	return append(buf, '}')
}

func dependenciesJSON(m *domain.Manifest) []byte {
	buf := []byte{'{'}
	for i, dep := range m.Dependencies() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = gjson.AppendJSONString(buf, dep.Name)
		buf = append(buf, `:{"version":`...)
		buf = gjson.AppendJSONString(buf, dep.Version.String())
		buf = append(buf, '}')
	}
	return append(buf, '}')
}
