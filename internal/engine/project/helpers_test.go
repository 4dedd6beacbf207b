package project_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/descriptor"
	"go.trai.ch/vpm/internal/adapters/lockfile"
	"go.trai.ch/vpm/internal/adapters/registry"
	"go.trai.ch/vpm/internal/adapters/telemetry"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports/mocks"
	"go.trai.ch/vpm/internal/engine/project"
	"go.uber.org/mock/gomock"
)

func deps(pairs ...string) domain.Dependencies {
	var out domain.Dependencies
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Dependency{Name: pairs[i], Range: domain.MustParseVersionRange(pairs[i+1])})
	}
	return out
}

func remote(name, version string, depPairs ...string) domain.PackageInfo {
	return domain.NewRemotePackage(domain.PackageDescriptor{
		Name:         name,
		Version:      domain.MustParseVersion(version),
		Dependencies: deps(depPairs...),
	}, "test")
}

func index(pkgs ...domain.PackageInfo) *registry.Collection {
	return registry.NewCollection(pkgs)
}

func descriptorJSON(name, version string, d domain.Dependencies) string {
	parts := make([]string, len(d))
	for i, dep := range d {
		parts[i] = fmt.Sprintf("%q: %q", dep.Name, dep.Range.String())
	}
	return fmt.Sprintf(`{"name": %q, "version": %q, "vpmDependencies": {%s}}`, name, version, strings.Join(parts, ", "))
}

func writePackage(t *testing.T, packagesDir, dirName, content string) {
	t.Helper()
	dir := filepath.Join(packagesDir, dirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, domain.DescriptorFileName), []byte(content), 0o600))
	}
}

// fakeInstaller writes a package.json for every install and records the calls.
type fakeInstaller struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (f *fakeInstaller) Install(_ context.Context, pkg domain.PackageInfo, packagesDir string) error {
	f.mu.Lock()
	f.calls = append(f.calls, pkg.Key())
	err := f.fail[pkg.Name()]
	f.mu.Unlock()

	if err != nil {
		return err
	}

	dir := filepath.Join(packagesDir, pkg.Name())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	content := descriptorJSON(pkg.Name(), pkg.Version().String(), pkg.Descriptor.Dependencies)
	return os.WriteFile(filepath.Join(dir, domain.DescriptorFileName), []byte(content), 0o600)
}

func (f *fakeInstaller) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fixture struct {
	dir       string
	store     *lockfile.Store
	installer *fakeInstaller
	engine    *project.Engine
}

func newFixture(t *testing.T, opts ...project.Option) *fixture {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(domain.PackagesDir(dir), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Dir(domain.EditorVersionPath(dir)), 0o750))
	require.NoError(t, os.WriteFile(domain.EditorVersionPath(dir), []byte("m_EditorVersion: 2022.3.22f1\nm_EditorVersionWithRevision: 2022.3.22f1 (887be4894c44)\n"), 0o600))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f := &fixture{
		dir:       dir,
		store:     lockfile.NewStore(),
		installer: &fakeInstaller{fail: make(map[string]error)},
	}
	f.engine = project.NewEngine(f.store, descriptor.NewReader(), f.installer, log, telemetry.NewNoOpTracer(), opts...)
	return f
}

func (f *fixture) packagesDir() string {
	return domain.PackagesDir(f.dir)
}

// lock writes a lock file holding the given rows.
func (f *fixture) lock(t *testing.T, rows ...domain.PackageInfo) {
	t.Helper()
	m := domain.NewManifest()
	for _, row := range rows {
		m.SetLocked(row.Name(), row.Version(), row.Descriptor.Dependencies)
	}
	require.NoError(t, f.store.Save(context.Background(), f.dir, m))
}

// install places a package directory as if it had been installed earlier.
func (f *fixture) install(t *testing.T, pkg domain.PackageInfo) {
	t.Helper()
	writePackage(t, f.packagesDir(), pkg.Name(), descriptorJSON(pkg.Name(), pkg.Version().String(), pkg.Descriptor.Dependencies))
}

func (f *fixture) load(t *testing.T) *project.Project {
	t.Helper()
	p, err := f.engine.LoadProject(context.Background(), f.dir)
	require.NoError(t, err)
	return p
}

func keys(pkgs []domain.PackageInfo) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Key()
	}
	return out
}

func lockedKeys(p *project.Project) []string {
	var out []string
	for _, e := range p.LockedPackages() {
		out = append(out, e.Name+"@"+e.Version.String())
	}
	return out
}
