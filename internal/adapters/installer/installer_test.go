package installer_test

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/adapters/descriptor"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/adapters/installer"
	"go.trai.ch/vpm/internal/core/domain"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func sha(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func packageJSON(name, version string) string {
	return `{"name":"` + name + `","version":"` + version + `"}`
}

func remotePackage(name, version, url, zipSHA string) domain.PackageInfo {
	return domain.NewRemotePackage(domain.PackageDescriptor{
		Name:      name,
		Version:   domain.MustParseVersion(version),
		URL:       url,
		ZipSHA256: zipSHA,
	}, "test")
}

type zipServer struct {
	*httptest.Server
	hits    atomic.Int32
	headers atomic.Value
}

func newZipServer(t *testing.T, payload []byte) *zipServer {
	t.Helper()
	s := &zipServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.headers.Store(r.Header.Clone())
		if r.URL.Path != "/pkg.zip" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(payload)
	}))
	t.Cleanup(s.Close)
	return s
}

func newInstaller(t *testing.T, client *http.Client) *installer.Installer {
	t.Helper()
	return installer.NewInstallerWithClient(t.TempDir(), descriptor.NewReader(), fs.NewWalker(), client)
}

func TestInstaller_Remote(t *testing.T) {
	payload := buildZip(t, map[string]string{
		"package.json":    packageJSON("com.example.tool", "1.0.0"),
		"Runtime/tool.cs": "class Tool {}",
	})
	srv := newZipServer(t, payload)
	inst := newInstaller(t, srv.Client())
	pkg := remotePackage("com.example.tool", "1.0.0", srv.URL+"/pkg.zip", sha(payload))
	pkg.Source.Headers = map[string]string{"X-Token": "secret"}

	packagesDir := filepath.Join(t.TempDir(), domain.PackagesDirName)
	require.NoError(t, inst.Install(context.Background(), pkg, packagesDir))

	data, err := os.ReadFile(filepath.Join(packagesDir, "com.example.tool", "Runtime", "tool.cs"))
	require.NoError(t, err)
	assert.Equal(t, "class Tool {}", string(data))
	assert.Equal(t, "secret", srv.headers.Load().(http.Header).Get("X-Token"))

	t.Run("already installed is a no-op", func(t *testing.T) {
		require.NoError(t, inst.Install(context.Background(), pkg, packagesDir))
		assert.Equal(t, int32(1), srv.hits.Load())
	})

	t.Run("zip cache is reused for another project", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), domain.PackagesDirName)
		require.NoError(t, inst.Install(context.Background(), pkg, other))
		assert.Equal(t, int32(1), srv.hits.Load())
		assert.FileExists(t, filepath.Join(other, "com.example.tool", "package.json"))
	})
}

func TestInstaller_Remote_ReplacesOtherVersion(t *testing.T) {
	payload := buildZip(t, map[string]string{"package.json": packageJSON("com.example.tool", "2.0.0")})
	srv := newZipServer(t, payload)
	inst := newInstaller(t, srv.Client())

	packagesDir := t.TempDir()
	stale := filepath.Join(packagesDir, "com.example.tool")
	require.NoError(t, os.MkdirAll(stale, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "package.json"), []byte(packageJSON("com.example.tool", "1.0.0")), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "old.cs"), []byte("old"), domain.FilePerm))

	pkg := remotePackage("com.example.tool", "2.0.0", srv.URL+"/pkg.zip", "")
	require.NoError(t, inst.Install(context.Background(), pkg, packagesDir))

	desc, err := descriptor.NewReader().Read(stale)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", desc.Version.String())
	assert.NoFileExists(t, filepath.Join(stale, "old.cs"))
}

func TestInstaller_Remote_StripsTopDirectory(t *testing.T) {
	payload := buildZip(t, map[string]string{
		"tool-1.0.0/package.json":  packageJSON("com.example.tool", "1.0.0"),
		"tool-1.0.0/Editor/ed.cs":  "class Ed {}",
		"tool-1.0.0/Runtime/rt.cs": "class Rt {}",
	})
	srv := newZipServer(t, payload)
	inst := newInstaller(t, srv.Client())

	packagesDir := t.TempDir()
	pkg := remotePackage("com.example.tool", "1.0.0", srv.URL+"/pkg.zip", "")
	require.NoError(t, inst.Install(context.Background(), pkg, packagesDir))

	assert.FileExists(t, filepath.Join(packagesDir, "com.example.tool", "package.json"))
	assert.FileExists(t, filepath.Join(packagesDir, "com.example.tool", "Editor", "ed.cs"))
}

func TestInstaller_Remote_Errors(t *testing.T) {
	good := buildZip(t, map[string]string{"package.json": packageJSON("a", "1.0.0")})
	evil := buildZip(t, map[string]string{"../evil.txt": "pwned"})

	tests := []struct {
		name        string
		payload     []byte
		path        string
		sha         string
		errContains string
	}{
		{name: "checksum mismatch", payload: good, path: "/pkg.zip", sha: sha([]byte("other")), errContains: domain.ErrChecksumMismatch.Error()},
		{name: "not found", payload: good, path: "/missing.zip", errContains: domain.ErrDownloadFailed.Error()},
		{name: "zip slip", payload: evil, path: "/pkg.zip", errContains: domain.ErrUnsafeArchivePath.Error()},
		{name: "not a zip", payload: []byte("plain text"), path: "/pkg.zip", errContains: domain.ErrExtractFailed.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newZipServer(t, tt.payload)
			inst := newInstaller(t, srv.Client())
			packagesDir := t.TempDir()

			err := inst.Install(context.Background(), remotePackage("a", "1.0.0", srv.URL+tt.path, tt.sha), packagesDir)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.errContains)
			assert.NoDirExists(t, filepath.Join(packagesDir, "a"))
			assert.NoFileExists(t, filepath.Join(filepath.Dir(packagesDir), "evil.txt"))

			entries, readErr := os.ReadDir(packagesDir)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "staging directory cleaned up")
		})
	}
}

func TestInstaller_NoSource(t *testing.T) {
	inst := newInstaller(t, http.DefaultClient)
	err := inst.Install(context.Background(), remotePackage("a", "1.0.0", "", ""), t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrNoPackageSource.Error())
}

func TestInstaller_Local(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "package.json"), []byte(packageJSON("my.local", "0.1.0")), domain.FilePerm))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Runtime"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Runtime", "a.cs"), []byte("class A {}"), domain.FilePerm))

	desc, err := descriptor.NewReader().Read(src)
	require.NoError(t, err)
	pkg := domain.NewLocalPackage(*desc, src)

	inst := newInstaller(t, http.DefaultClient)
	packagesDir := t.TempDir()
	require.NoError(t, inst.Install(context.Background(), pkg, packagesDir))
	assert.FileExists(t, filepath.Join(packagesDir, "my.local", "Runtime", "a.cs"))

	marker := filepath.Join(packagesDir, "my.local", "marker")
	require.NoError(t, os.WriteFile(marker, []byte("x"), domain.FilePerm))
	require.NoError(t, inst.Install(context.Background(), pkg, packagesDir))
	assert.FileExists(t, marker, "matching install is left untouched")
}
