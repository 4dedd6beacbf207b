package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// LogFormatPretty selects the colored human-readable log handler.
	LogFormatPretty = "pretty"
	// LogFormatJSON selects structured JSON logs.
	LogFormatJSON = "json"

	// OfficialRepositoryURL is the repository of the official VRChat SDK packages.
	OfficialRepositoryURL = "https://packages.vrchat.com/official?download"
	// CuratedRepositoryURL is the repository of curated community packages.
	CuratedRepositoryURL = "https://packages.vrchat.com/curated?download"
)

// Repository is one remote package repository.
type Repository struct {
	Name    string
	URL     string
	Headers map[string]string
}

// Settings is the user configuration shared by every command.
type Settings struct {
	Repositories           []Repository
	UserPackages           []string
	CacheDir               string
	ShowPrereleasePackages bool
	// Parallelism bounds concurrent installs and deletions; zero means one per CPU.
	Parallelism int
	LogFormat   string
	Offline     bool
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Repositories: []Repository{
			{Name: "official", URL: OfficialRepositoryURL},
			{Name: "curated", URL: CuratedRepositoryURL},
		},
		CacheDir:  DefaultCacheDir(),
		LogFormat: LogFormatPretty,
	}
}

// DefaultCacheDir returns <UserCacheDir>/vpm, or .vpm-cache when no cache dir is known.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".vpm-cache"
	}
	return filepath.Join(dir, SettingsDirName)
}

// DefaultSettingsPath returns $VPM_SETTINGS or <UserConfigDir>/vpm/settings.yaml.
func DefaultSettingsPath() string {
	if p := os.Getenv(SettingsEnvVar); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".vpm", SettingsFileName)
	}
	return filepath.Join(dir, SettingsDirName, SettingsFileName)
}

// CachedRepository is a repository document stored in the local cache.
type CachedRepository struct {
	URL       string    `json:"url"`
	ETag      string    `json:"etag,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
	Body      string    `json:"body"`
}
