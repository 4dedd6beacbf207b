// Package app implements the application layer for vpm.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/vpm/internal/adapters/fs"
	"go.trai.ch/vpm/internal/adapters/installer"
	"go.trai.ch/vpm/internal/adapters/watcher"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/vpm/internal/engine/project"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	settingsLoader ports.SettingsLoader
	manifests      ports.ManifestStore
	descriptors    ports.DescriptorReader
	collections    ports.CollectionLoader
	cleaner        ports.CacheCleaner
	watcher        ports.Watcher
	walker         *fs.Walker
	logger         ports.Logger

	stdout         io.Writer
	stderr         io.Writer
	teaOptions     []tea.ProgramOption
	newInstaller   func(cacheDir string) ports.Installer
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	settingsLoader ports.SettingsLoader,
	manifests ports.ManifestStore,
	descriptors ports.DescriptorReader,
	collections ports.CollectionLoader,
	cleaner ports.CacheCleaner,
	fileWatcher ports.Watcher,
	walker *fs.Walker,
	log ports.Logger,
) *App {
	a := &App{
		settingsLoader: settingsLoader,
		manifests:      manifests,
		descriptors:    descriptors,
		collections:    collections,
		cleaner:        cleaner,
		watcher:        fileWatcher,
		walker:         walker,
		logger:         log,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
	a.newInstaller = func(cacheDir string) ports.Installer {
		return installer.New(domain.PackagesCachePath(cacheDir), a.descriptors, a.walker)
	}
	return a
}

// WithOutput sets the streams command results and progress are written to.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	if stdout != nil {
		a.stdout = stdout
	}
	if stderr != nil {
		a.stderr = stderr
	}
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithInstaller replaces the installer built for every run.
func (a *App) WithInstaller(inst ports.Installer) *App {
	a.newInstaller = func(string) ports.Installer { return inst }
	return a
}

// Options are the flags shared by every command.
type Options struct {
	// ProjectDir is where project discovery starts; empty means the working directory.
	ProjectDir string
	// SettingsPath overrides the settings file location.
	SettingsPath string
	// OutputMode is one of auto, tui, linear or quiet.
	OutputMode string
	Offline    bool
	Prerelease bool
	JSON       bool
	Verbose    bool
}

type configurableLogger interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// loadSettings reads the settings file, applies the command line overrides and
// configures the logger accordingly.
func (a *App) loadSettings(opts Options) (domain.Settings, error) {
	path := opts.SettingsPath
	if path == "" {
		path = domain.DefaultSettingsPath()
	}

	settings, err := a.settingsLoader.Load(path)
	if err != nil {
		return domain.Settings{}, err
	}
	if opts.Offline {
		settings.Offline = true
	}
	if opts.Prerelease {
		settings.ShowPrereleasePackages = true
	}

	if l, ok := a.logger.(configurableLogger); ok {
		l.SetJSON(opts.JSON || settings.LogFormat == domain.LogFormatJSON)
		l.SetVerbose(opts.Verbose)
	}
	return settings, nil
}

// openProject loads the project for opts with an engine reporting to tracer.
// An explicit ProjectDir is loaded as given; otherwise the project is discovered
// from the working directory upwards.
func (a *App) openProject(
	ctx context.Context,
	opts Options,
	settings domain.Settings,
	tracer ports.Tracer,
) (*project.Project, error) {
	engine := project.NewEngine(
		a.manifests,
		a.descriptors,
		a.newInstaller(settings.CacheDir),
		a.logger,
		tracer,
		project.WithParallelism(settings.Parallelism),
		project.WithPrerelease(settings.ShowPrereleasePackages),
	)

	if opts.ProjectDir != "" {
		dir, err := filepath.Abs(opts.ProjectDir)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrProjectNotFound.Error()), "path", opts.ProjectDir)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, zerr.With(domain.ErrProjectNotFound, "path", opts.ProjectDir)
		}
		return engine.LoadProject(ctx, dir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	return engine.FindProject(ctx, cwd)
}
