package domain

import "path/filepath"

const (
	// PackagesDirName is the folder under the project root that holds installed packages.
	PackagesDirName = "Packages"

	// ManifestFileName is the name of the lock file inside the Packages folder.
	ManifestFileName = "vpm-manifest.json"

	// LegacyManifestFileName is the editor's own package manifest, used only to recognize a project root.
	LegacyManifestFileName = "manifest.json"

	// DescriptorFileName is the name of the descriptor file in every package directory.
	DescriptorFileName = "package.json"

	// ProjectSettingsDirName is the folder holding the editor version marker.
	ProjectSettingsDirName = "ProjectSettings"

	// EditorVersionFileName is the plain-text editor version marker.
	EditorVersionFileName = "ProjectVersion.txt"

	// ReposCacheDirName is the cache sub-folder for downloaded repository documents.
	ReposCacheDirName = "repos"

	// PackagesCacheDirName is the cache sub-folder for downloaded package archives.
	PackagesCacheDirName = "packages"

	// SettingsDirName is the folder under the user config dir that holds settings.yaml.
	SettingsDirName = "vpm"

	// SettingsFileName is the name of the settings file.
	SettingsFileName = "settings.yaml"

	// SettingsEnvVar overrides the settings file location.
	SettingsEnvVar = "VPM_SETTINGS"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// PackagesDir returns the Packages folder of a project.
func PackagesDir(projectDir string) string {
	return filepath.Join(projectDir, PackagesDirName)
}

// ManifestPath returns the lock file path of a project.
func ManifestPath(projectDir string) string {
	return filepath.Join(projectDir, PackagesDirName, ManifestFileName)
}

// LegacyManifestPath returns the editor manifest path of a project.
func LegacyManifestPath(projectDir string) string {
	return filepath.Join(projectDir, PackagesDirName, LegacyManifestFileName)
}

// EditorVersionPath returns the editor version marker path of a project.
func EditorVersionPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectSettingsDirName, EditorVersionFileName)
}

// ReposCachePath returns the repository cache folder under cacheDir.
func ReposCachePath(cacheDir string) string {
	return filepath.Join(cacheDir, ReposCacheDirName)
}

// PackagesCachePath returns the archive cache folder under cacheDir.
func PackagesCachePath(cacheDir string) string {
	return filepath.Join(cacheDir, PackagesCacheDirName)
}
