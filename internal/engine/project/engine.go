// Package project implements the project resolution engine: loading a project's
// lock file and Packages folder, resolving dependencies against a package index,
// installing the result and sweeping packages nothing requires anymore.
package project

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine loads projects and carries the collaborators their operations need.
type Engine struct {
	manifests       ports.ManifestStore
	descriptors     ports.DescriptorReader
	installer       ports.Installer
	logger          ports.Logger
	tracer          ports.Tracer
	parallelism     int
	allowPrerelease bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism bounds concurrent installs and deletions. Zero or less means one per CPU.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithPrerelease makes pre-release versions admissible from the start of every resolution.
func WithPrerelease(allow bool) Option {
	return func(e *Engine) {
		e.allowPrerelease = allow
	}
}

// NewEngine creates an Engine.
func NewEngine(
	manifests ports.ManifestStore,
	descriptors ports.DescriptorReader,
	installer ports.Installer,
	logger ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) *Engine {
	e := &Engine{
		manifests:   manifests,
		descriptors: descriptors,
		installer:   installer,
		logger:      logger,
		tracer:      tracer,
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindProject discovers the project containing start and loads it.
func (e *Engine) FindProject(ctx context.Context, start string) (*Project, error) {
	dir, err := DiscoverRoot(start)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("project found at " + dir)
	return e.LoadProject(ctx, dir)
}

// LoadProject reads the lock file, classifies every directory under Packages and
// reads the editor version of the project at dir.
func (e *Engine) LoadProject(ctx context.Context, dir string) (*Project, error) {
	manifest, err := e.manifests.Load(ctx, dir)
	if err != nil {
		return nil, err
	}

	dirs, err := packageDirs(domain.PackagesDir(dir))
	if err != nil {
		return nil, err
	}

	descriptors := make([]*domain.PackageDescriptor, len(dirs))
	packagesDir := domain.PackagesDir(dir)
	_ = fanOut(ctx, e.parallelism, dirs, func(_ context.Context, i int, name string) error {
		descriptors[i] = e.readDescriptor(filepath.Join(packagesDir, name))
		return nil
	})

	p := &Project{
		engine:    e,
		dir:       dir,
		manifest:  manifest,
		installed: make(map[string]*domain.PackageDescriptor),
	}
	for i, name := range dirs {
		desc := descriptors[i]
		if desc != nil && desc.Name == name && manifest.IsLocked(name) {
			p.installed[name] = desc
			continue
		}
		p.unlocked = append(p.unlocked, domain.UnlockedPackage{DirName: name, Descriptor: desc})
	}

	if ev, ok := e.readEditorVersion(dir); ok {
		p.editor = &ev
	}

	return p, nil
}

// packageDirs lists the directory names under the Packages folder, sorted.
// A missing Packages folder yields no entries.
func packageDirs(packagesDir string) ([]string, error) {
	entries, err := os.ReadDir(packagesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPackagesDirReadFailed.Error()), "path", packagesDir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
			continue
		}
		// Symlinked packages are classified like directories.
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(packagesDir, entry.Name())); err == nil && info.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}

func (e *Engine) readDescriptor(dir string) *domain.PackageDescriptor {
	desc, err := e.descriptors.Read(dir)
	if err == nil {
		return desc
	}
	if errors.Is(err, fs.ErrNotExist) {
		e.logger.Debug("no package.json in " + dir)
	} else {
		e.logger.Warn("ignoring unreadable package.json in " + dir + ": " + err.Error())
	}
	return nil
}

func (e *Engine) readEditorVersion(dir string) (domain.EditorVersion, bool) {
	path := domain.EditorVersionPath(dir)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.logger.Warn("ProjectVersion.txt not found, editor version unknown")
		} else {
			e.logger.Warn("reading ProjectVersion.txt failed: " + err.Error())
		}
		return domain.EditorVersion{}, false
	}

	ev, err := domain.ParseEditorVersionMarker(string(content))
	if err != nil {
		e.logger.Warn("editor version in ProjectVersion.txt is not usable: " + err.Error())
		return domain.EditorVersion{}, false
	}
	return ev, true
}
