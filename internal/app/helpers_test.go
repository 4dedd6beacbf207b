package app_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/descriptor"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/adapters/lockfile"
	"go.trai.ch/vpm/internal/adapters/registry"
	"go.trai.ch/vpm/internal/app"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports/mocks"
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

func withDescriptor(pkg domain.PackageInfo, edit func(d *domain.PackageDescriptor)) domain.PackageInfo {
	edit(&pkg.Descriptor)
	return pkg
}

func descriptorJSON(name, version string, d domain.Dependencies) string {
	parts := make([]string, len(d))
	for i, dep := range d {
		parts[i] = fmt.Sprintf("%q: %q", dep.Name, dep.Range.String())
	}
	return fmt.Sprintf(`{"name": %q, "version": %q, "vpmDependencies": {%s}}`, name, version, strings.Join(parts, ", "))
}

// fakeInstaller writes a package.json for every install.
type fakeInstaller struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeInstaller) Install(_ context.Context, pkg domain.PackageInfo, packagesDir string) error {
	f.mu.Lock()
	f.calls = append(f.calls, pkg.Key())
	f.mu.Unlock()

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

type harness struct {
	dir       string
	app       *app.App
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	installer *fakeInstaller
	store     *lockfile.Store
	logger    *mocks.MockLogger
	cleaner   *mocks.MockCacheCleaner
	watcher   *mocks.MockWatcher
	settings  domain.Settings
}

// newHarness creates a project directory and an App wired to real file adapters,
// a fake installer and a collection loader serving pkgs. Expectations on the
// logger must be set before calling allowLogs.
func newHarness(t *testing.T, pkgs ...domain.PackageInfo) *harness {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(domain.PackagesDir(dir), 0o750))
	require.NoError(t, os.WriteFile(domain.LegacyManifestPath(dir), []byte(`{"dependencies": {}}`), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Dir(domain.EditorVersionPath(dir)), 0o750))
	require.NoError(t, os.WriteFile(domain.EditorVersionPath(dir), []byte("m_EditorVersion: 2022.3.22f1\n"), 0o600))

	ctrl := gomock.NewController(t)
	settings := domain.DefaultSettings()
	settings.Repositories = nil
	settings.CacheDir = t.TempDir()

	settingsLoader := mocks.NewMockSettingsLoader(ctrl)
	settingsLoader.EXPECT().Load(gomock.Any()).Return(settings, nil).AnyTimes()

	collections := mocks.NewMockCollectionLoader(ctrl)
	collections.EXPECT().Load(gomock.Any(), gomock.Any()).Return(registry.NewCollection(pkgs), nil).AnyTimes()

	h := &harness{
		dir:       dir,
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		installer: &fakeInstaller{},
		store:     lockfile.NewStore(),
		logger:    mocks.NewMockLogger(ctrl),
		cleaner:   mocks.NewMockCacheCleaner(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		settings:  settings,
	}
	h.app = app.New(
		settingsLoader,
		h.store,
		descriptor.NewReader(),
		collections,
		h.cleaner,
		h.watcher,
		fs.NewWalker(),
		h.logger,
	).WithOutput(h.stdout, h.stderr).WithInstaller(h.installer)
	return h
}

func (h *harness) allowLogs() {
	h.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Error(gomock.Any()).AnyTimes()
}

func (h *harness) opts(mode string) app.Options {
	return app.Options{ProjectDir: h.dir, SettingsPath: "settings.yaml", OutputMode: mode}
}

func (h *harness) lock(t *testing.T, rows ...domain.PackageInfo) {
	t.Helper()
	m, err := h.store.Load(context.Background(), h.dir)
	require.NoError(t, err)
	for _, row := range rows {
		m.SetLocked(row.Name(), row.Version(), row.Descriptor.Dependencies)
	}
	require.NoError(t, h.store.Save(context.Background(), h.dir, m))
}

func (h *harness) writePackage(t *testing.T, dirName, content string) {
	t.Helper()
	dir := filepath.Join(domain.PackagesDir(h.dir), dirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, domain.DescriptorFileName), []byte(content), 0o600))
	}
}

func (h *harness) install(t *testing.T, pkg domain.PackageInfo) {
	t.Helper()
	h.writePackage(t, pkg.Name(), descriptorJSON(pkg.Name(), pkg.Version().String(), pkg.Descriptor.Dependencies))
}

func (h *harness) manifest(t *testing.T) *domain.Manifest {
	t.Helper()
	m, err := h.store.Load(context.Background(), h.dir)
	require.NoError(t, err)
	return m
}

func lockedNames(m *domain.Manifest) []string {
	var names []string
	for _, e := range m.AllLocked() {
		names = append(names, e.Name)
	}
	return names
}

// assertCause checks that some error in the chain of err carries msg.
func assertCause(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	for e := err; e != nil; e = errors.Unwrap(e) {
		if strings.Contains(e.Error(), msg) {
			return
		}
	}
	t.Errorf("no error in the chain of %q contains %q", err, msg)
}
