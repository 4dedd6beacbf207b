// Package config provides the settings loader for vpm.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// NewLoaderWithFS creates a Loader reading through fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load reads the settings file at path. A missing file yields domain.DefaultSettings.
func (l *Loader) Load(path string) (domain.Settings, error) {
	var file SettingsFile
	found, err := l.readAndUnmarshalYAML(path, &file)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	if !found {
		return domain.DefaultSettings(), nil
	}

	settings, err := l.toSettings(&file, filepath.Dir(path))
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return settings, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// It reports false when the file does not exist.
func (l *Loader) readAndUnmarshalYAML(path string, target *SettingsFile) (bool, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrSettingsReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return false, zerr.Wrap(parseErr, domain.ErrSettingsParseFailed.Error())
	}
	return true, nil
}

func (l *Loader) toSettings(file *SettingsFile, baseDir string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if file.Repositories != nil {
		repos, err := l.buildRepositories(file.Repositories)
		if err != nil {
			return domain.Settings{}, err
		}
		settings.Repositories = repos
	}

	settings.UserPackages = l.resolveUserPackages(file.UserPackages, baseDir)

	if file.CacheDir != "" {
		settings.CacheDir = resolvePath(baseDir, file.CacheDir)
	}

	if file.Parallelism != nil {
		if *file.Parallelism < 0 {
			return domain.Settings{}, zerr.With(domain.ErrInvalidSettings, "parallelism", *file.Parallelism)
		}
		settings.Parallelism = *file.Parallelism
	}

	switch file.LogFormat {
	case "":
	case domain.LogFormatPretty, domain.LogFormatJSON:
		settings.LogFormat = file.LogFormat
	default:
		return domain.Settings{}, zerr.With(domain.ErrInvalidSettings, "logFormat", file.LogFormat)
	}

	settings.ShowPrereleasePackages = file.ShowPrereleasePackages
	settings.Offline = file.Offline
	return settings, nil
}

func (l *Loader) buildRepositories(dtos []RepositoryDTO) ([]domain.Repository, error) {
	repos := make([]domain.Repository, 0, len(dtos))
	seen := make(map[string]struct{}, len(dtos))

	for i, dto := range dtos {
		if dto.URL == "" {
			return nil, zerr.With(zerr.With(domain.ErrInvalidSettings, "repository", i), "reason", "missing url")
		}
		if _, dup := seen[dto.URL]; dup {
			l.Logger.Warn("ignoring duplicate repository " + dto.URL)
			continue
		}
		seen[dto.URL] = struct{}{}

		name := dto.Name
		if name == "" {
			name = dto.URL
		}
		repos = append(repos, domain.Repository{Name: name, URL: dto.URL, Headers: dto.Headers})
	}
	return repos, nil
}

// resolveUserPackages makes paths absolute and drops entries that are not directories.
func (l *Loader) resolveUserPackages(paths []string, baseDir string) []string {
	var out []string
	for _, p := range paths {
		abs := resolvePath(baseDir, p)
		isDir, err := l.FS.IsDir(abs)
		if err != nil || !isDir {
			l.Logger.Warn("user package " + abs + " is not a directory, skipping")
			continue
		}
		out = append(out, abs)
	}
	return out
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}
