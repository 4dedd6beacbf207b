package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrProjectNotFound is returned when no ancestor of the start directory contains a package manifest.
	ErrProjectNotFound = zerr.New("unity project not found")

	// ErrDependencyNotFound is returned when no candidate in the package index satisfies a requirement.
	ErrDependencyNotFound = zerr.New("dependency not found")

	// ErrConflictWithDependencies is returned when two or more requirers of a package cannot agree on one version.
	ErrConflictWithDependencies = zerr.New("conflict with dependencies")

	// ErrPackageNotLocked is returned when removing a package that is not in the lock file.
	ErrPackageNotLocked = zerr.New("package is not locked")

	// ErrPackageRequired is returned when removing a package that another package still depends on.
	ErrPackageRequired = zerr.New("package is required by another package")

	// ErrPackageNotFound is returned when a requested package is unknown to every repository.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrInvalidPackageSpec is returned when a package argument is not in name[@version] form.
	ErrInvalidPackageSpec = zerr.New("invalid package specification, expected format: name[@version]")

	// ErrInvalidVersion is returned when a version string is not valid semantic versioning.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidVersionRange is returned when a version range expression cannot be parsed.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrInvalidEditorVersion is returned when an editor version string cannot be parsed.
	ErrInvalidEditorVersion = zerr.New("invalid editor version")

	// ErrEditorVersionNotFound is returned when the version marker file holds no editor version line.
	ErrEditorVersionNotFound = zerr.New("editor version marker not found")

	// ErrManifestReadFailed is returned when the lock file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestParseFailed is returned when the lock file is present but malformed.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrManifestWriteFailed is returned when the lock file cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write package manifest")

	// ErrDescriptorReadFailed is returned when a package.json cannot be read.
	ErrDescriptorReadFailed = zerr.New("failed to read package descriptor")

	// ErrDescriptorParseFailed is returned when a package.json is malformed.
	ErrDescriptorParseFailed = zerr.New("failed to parse package descriptor")

	// ErrPackagesDirReadFailed is returned when the Packages folder cannot be listed.
	ErrPackagesDirReadFailed = zerr.New("failed to read packages directory")

	// ErrPackageRemoveFailed is returned when a package directory cannot be deleted.
	ErrPackageRemoveFailed = zerr.New("failed to remove package directory")

	// ErrRepositoryFetchFailed is returned when a repository cannot be downloaded.
	ErrRepositoryFetchFailed = zerr.New("failed to fetch repository")

	// ErrRepositoryParseFailed is returned when a repository document is malformed.
	ErrRepositoryParseFailed = zerr.New("failed to parse repository")

	// ErrCacheReadFailed is returned when a cached repository cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read repository cache")

	// ErrCacheWriteFailed is returned when a repository cannot be written to the cache.
	ErrCacheWriteFailed = zerr.New("failed to write repository cache")

	// ErrCacheMarshalFailed is returned when a cache entry cannot be encoded.
	ErrCacheMarshalFailed = zerr.New("failed to marshal repository cache entry")

	// ErrCacheUnmarshalFailed is returned when a cache entry cannot be decoded.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal repository cache entry")

	// ErrDownloadFailed is returned when a package archive cannot be downloaded.
	ErrDownloadFailed = zerr.New("failed to download package")

	// ErrChecksumMismatch is returned when a downloaded archive does not match its zipSHA256.
	ErrChecksumMismatch = zerr.New("package archive checksum mismatch")

	// ErrExtractFailed is returned when a package archive cannot be extracted.
	ErrExtractFailed = zerr.New("failed to extract package archive")

	// ErrUnsafeArchivePath is returned when an archive entry would escape the target directory.
	ErrUnsafeArchivePath = zerr.New("archive entry escapes target directory")

	// ErrInstallFailed is returned when a package cannot be materialized on disk.
	ErrInstallFailed = zerr.New("failed to install package")

	// ErrNoPackageSource is returned when a package has neither a download URL nor a local path.
	ErrNoPackageSource = zerr.New("package has no installable source")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrInvalidSettings is returned when a settings value is out of range.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrResolveFailed is returned by the application layer when resolution does not complete.
	ErrResolveFailed = zerr.New("failed to resolve project packages")

	// ErrInvalidOutputMode is returned for an unknown --output-mode value.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected one of: auto, tui, linear, quiet")

	// ErrWatcherFailed is returned when the file system watcher cannot be set up.
	ErrWatcherFailed = zerr.New("failed to watch packages directory")

	// ErrCacheCleanFailed is returned when a cache directory cannot be removed.
	ErrCacheCleanFailed = zerr.New("failed to clean cache")

	// ErrInterrupted is returned when the user quits the progress display before the operation finished.
	ErrInterrupted = zerr.New("interrupted")
)

// DependencyNotFoundError reports the package name for which no candidate exists.
type DependencyNotFoundError struct {
	Name string
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDependencyNotFound.Error(), e.Name)
}

// Is matches ErrDependencyNotFound so callers can test with errors.Is.
func (e *DependencyNotFoundError) Is(target error) bool {
	return target == ErrDependencyNotFound
}

// ConflictError reports the first package whose requirers disagree, and the first requirer involved.
type ConflictError struct {
	Conflict       string
	DependencyName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflicts with %s", e.Conflict, e.DependencyName)
}

// Is matches ErrConflictWithDependencies so callers can test with errors.Is.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflictWithDependencies
}

// AsDependencyNotFound extracts a DependencyNotFoundError from err's chain.
func AsDependencyNotFound(err error) (*DependencyNotFoundError, bool) {
	var target *DependencyNotFoundError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsConflict extracts a ConflictError from err's chain.
func AsConflict(err error) (*ConflictError, bool) {
	var target *ConflictError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
