package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"go.trai.ch/vpm/internal/adapters/telemetry"
	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/vpm/internal/ui/output"
	"go.trai.ch/vpm/internal/ui/style"
	"go.trai.ch/zerr"
)

const markdownWrapWidth = 80

// Package states reported by List.
const (
	StateInstalled = "installed"
	StateMissing   = "missing"
	StateUnlocked  = "unlocked"
)

// PackageRow is one line of List output.
type PackageRow struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	State   string `json:"state"`
}

// ListOptions configuration for the List method.
type ListOptions struct {
	JSON bool
}

// List prints the locked packages with their install state, then the unlocked
// package directories.
func (a *App) List(ctx context.Context, opts Options, listOpts ListOptions) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}
	p, err := a.openProject(ctx, opts, settings, telemetry.NewNoOpTracer())
	if err != nil {
		return err
	}

	rows := []PackageRow{}
	for _, entry := range p.LockedPackages() {
		state := StateMissing
		if desc, ok := p.InstalledPackage(entry.Name); ok && desc.Version.Equal(entry.Version) {
			state = StateInstalled
		}
		rows = append(rows, PackageRow{Name: entry.Name, Version: entry.Version.String(), State: state})
	}
	for _, u := range p.UnlockedPackages() {
		version := "-"
		if u.Descriptor != nil {
			version = u.Descriptor.Version.String()
		}
		rows = append(rows, PackageRow{Name: u.DirName, Version: version, State: StateUnlocked})
	}

	if listOpts.JSON {
		return a.writeJSON(rows)
	}

	styled := output.IsTerminal(a.stdout)
	table := output.NewTable(a.stdout, styled, "NAME", "VERSION", "STATE")
	for _, r := range rows {
		state := r.State
		if styled {
			state = stateIcon(r.State) + " " + r.State
		}
		table.Row(r.Name, r.Version, state)
	}
	return table.Flush()
}

func stateIcon(state string) string {
	switch state {
	case StateInstalled:
		return style.Check
	case StateMissing:
		return style.Cross
	default:
		return style.Circle
	}
}

// SearchResult is one line of Search output.
type SearchResult struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	DisplayName string `json:"displayName,omitempty"`
}

// Search prints the latest version of every package whose name or display name
// fuzzy-matches query, best match first.
func (a *App) Search(ctx context.Context, opts Options, query string, listOpts ListOptions) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}
	collection, err := a.collections.Load(ctx, settings)
	if err != nil {
		return err
	}

	matches := collection.Search(query)
	results := make([]SearchResult, len(matches))
	for i, pkg := range matches {
		results[i] = SearchResult{
			Name:        pkg.Name(),
			Version:     pkg.Version().String(),
			DisplayName: pkg.Descriptor.DisplayName,
		}
	}

	if listOpts.JSON {
		return a.writeJSON(results)
	}
	if len(results) == 0 {
		a.logger.Info(fmt.Sprintf("no packages match %q", query))
		return nil
	}

	table := output.NewTable(a.stdout, output.IsTerminal(a.stdout), "NAME", "VERSION", "DISPLAY NAME")
	for _, r := range results {
		table.Row(r.Name, r.Version, r.DisplayName)
	}
	return table.Flush()
}

// Info prints a markdown card for the named package: description, every known
// version and the dependencies of the latest one.
func (a *App) Info(ctx context.Context, opts Options, name string) error {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return err
	}
	collection, err := a.collections.Load(ctx, settings)
	if err != nil {
		return err
	}

	versions := collection.Versions(name)
	if len(versions) == 0 {
		return zerr.With(domain.ErrPackageNotFound, "package", name)
	}
	latest, ok := collection.FindPackageByName(name, domain.LatestFor(nil, settings.ShowPrereleasePackages))
	if !ok {
		latest = versions[0]
	}

	md := packageMarkdown(latest, versions)
	if !output.IsTerminal(a.stdout) {
		_, err := fmt.Fprint(a.stdout, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWrapWidth),
	)
	if err != nil {
		return zerr.Wrap(err, "failed to create markdown renderer")
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return zerr.Wrap(err, "failed to render package info")
	}
	_, err = fmt.Fprint(a.stdout, rendered)
	return err
}

func packageMarkdown(latest domain.PackageInfo, versions []domain.PackageInfo) string {
	var b strings.Builder
	desc := latest.Descriptor

	fmt.Fprintf(&b, "# %s\n\n", desc.Title())
	fmt.Fprintf(&b, "`%s` %s\n\n", desc.Name, desc.Version.String())
	if desc.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", desc.Description)
	}
	if desc.Unity != "" {
		fmt.Fprintf(&b, "Requires Unity %s or later.\n\n", desc.Unity)
	}

	b.WriteString("## Versions\n\n")
	for _, v := range versions {
		line := "- " + v.Version().String()
		if v.Descriptor.Yanked {
			line += " (yanked)"
		}
		if v.IsLocal() {
			line += " (user package)"
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n## Dependencies of %s\n\n", desc.Version.String())
	if len(desc.Dependencies) == 0 {
		b.WriteString("None.\n")
	}
	for _, dep := range desc.Dependencies {
		fmt.Fprintf(&b, "- `%s` %s\n", dep.Name, dep.Range.String())
	}
	return b.String()
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
