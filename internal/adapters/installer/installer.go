// Package installer materializes package payloads under a project's Packages folder.
package installer

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/zerr"
)

const httpClientTimeout = 5 * time.Minute

// Installer implements ports.Installer for remote zip payloads and local package folders.
type Installer struct {
	cacheDir    string
	httpClient  *http.Client
	descriptors ports.DescriptorReader
	walker      *fs.Walker
}

// New creates an Installer that keeps downloaded zips below cacheDir.
func New(cacheDir string, descriptors ports.DescriptorReader, walker *fs.Walker) *Installer {
	return newInstallerWithClient(cacheDir, descriptors, walker, &http.Client{Timeout: httpClientTimeout})
}

// newInstallerWithClient creates an Installer with a custom http client (used for testing).
func newInstallerWithClient(
	cacheDir string,
	descriptors ports.DescriptorReader,
	walker *fs.Walker,
	client *http.Client,
) *Installer {
	return &Installer{
		cacheDir:    filepath.Clean(cacheDir),
		httpClient:  client,
		descriptors: descriptors,
		walker:      walker,
	}
}

// Install places pkg at <packagesDir>/<name>. Nothing happens when the directory already
// holds the same name and version. The new payload is staged next to the destination and
// swapped in with a rename.
func (i *Installer) Install(ctx context.Context, pkg domain.PackageInfo, packagesDir string) error {
	dest := filepath.Join(packagesDir, pkg.Name())
	if i.isInstalled(dest, pkg) {
		return nil
	}

	if err := os.MkdirAll(packagesDir, domain.DirPerm); err != nil {
		return i.installErr(err, pkg)
	}
	staging, err := os.MkdirTemp(packagesDir, ".vpm-install-*")
	if err != nil {
		return i.installErr(err, pkg)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	if pkg.IsLocal() {
		if err := i.walker.CopyDir(pkg.Source.LocalPath, staging, nil); err != nil {
			return zerr.With(err, "package", pkg.Key())
		}
	} else {
		zipPath, err := i.fetchZip(ctx, pkg)
		if err != nil {
			return zerr.With(err, "package", pkg.Key())
		}
		if err := extractZip(zipPath, staging); err != nil {
			return zerr.With(err, "package", pkg.Key())
		}
	}

	if err := os.RemoveAll(dest); err != nil {
		return i.installErr(err, pkg)
	}
	if err := os.Rename(staging, dest); err != nil {
		return i.installErr(err, pkg)
	}
	return nil
}

func (i *Installer) isInstalled(dest string, pkg domain.PackageInfo) bool {
	desc, err := i.descriptors.Read(dest)
	if err != nil {
		return false
	}
	return desc.Name == pkg.Name() && desc.Version.Equal(pkg.Version())
}

func (i *Installer) installErr(err error, pkg domain.PackageInfo) error {
	return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "package", pkg.Key())
}

// zipPath returns <cacheDir>/<name>/<name>-<version>.zip.
func (i *Installer) zipPath(pkg domain.PackageInfo) string {
	name := pkg.Name()
	return filepath.Join(i.cacheDir, name, name+"-"+pkg.Version().String()+".zip")
}

// fetchZip returns a verified zip for pkg, downloading it unless the cache already holds one.
func (i *Installer) fetchZip(ctx context.Context, pkg domain.PackageInfo) (string, error) {
	url := pkg.Descriptor.URL
	if url == "" {
		return "", domain.ErrNoPackageSource
	}
	want := strings.ToLower(pkg.Descriptor.ZipSHA256)

	path := i.zipPath(pkg)
	if sum, err := fileSHA256(path); err == nil && (want == "" || sum == want) {
		return path, nil
	}

	if err := i.download(ctx, url, path, want, pkg.Source.Headers); err != nil {
		return "", err
	}
	return path, nil
}

func (i *Installer) download(ctx context.Context, url, path, want string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(domain.ErrDownloadFailed, "url", url)
		return zerr.With(statusErr, "status_code", resp.StatusCode)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	tmpFile, err := os.CreateTemp(dir, "download-*.zip")
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmpFile, hasher), resp.Body); err != nil {
		_ = tmpFile.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}

	if got := hex.EncodeToString(hasher.Sum(nil)); want != "" && got != want {
		mismatch := zerr.With(domain.ErrChecksumMismatch, "expected", want)
		return zerr.With(mismatch, "actual", got)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	//nolint:gosec // Path is inside the package cache
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// extractZip unpacks zipPath into targetDir. When every entry sits below one top-level
// directory, that directory is stripped.
func extractZip(zipPath, targetDir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if !filepath.IsLocal(filepath.FromSlash(strings.TrimSuffix(f.Name, "/"))) {
			return zerr.With(domain.ErrUnsafeArchivePath, "entry", f.Name)
		}
	}

	strip := commonTopDir(zr.File)

	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, strip)
		if name == "" {
			continue
		}
		rel := filepath.FromSlash(strings.TrimSuffix(name, "/"))
		dest := filepath.Join(targetDir, rel)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
				return zerr.Wrap(err, domain.ErrExtractFailed.Error())
			}
			continue
		}
		if err := extractFile(f, dest); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "entry", f.Name)
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = domain.FilePerm
	}
	//nolint:gosec // Destination was checked with filepath.IsLocal
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	//nolint:gosec // Package archives are trusted to a size the repository vouches for
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// commonTopDir returns "<dir>/" when every entry lives below dir, "" otherwise.
func commonTopDir(files []*zip.File) string {
	var top string
	for _, f := range files {
		first, rest, found := strings.Cut(f.Name, "/")
		if !found || (rest == "" && !f.FileInfo().IsDir()) {
			return ""
		}
		if top == "" {
			top = first
		} else if top != first {
			return ""
		}
	}
	if top == "" {
		return ""
	}
	return top + "/"
}
