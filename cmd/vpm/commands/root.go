// Package commands implements the CLI commands for the vpm package manager.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/vpm/internal/app"
	"go.trai.ch/vpm/internal/build"
)

// CLI represents the command line interface for vpm.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, opts app.Options) error
	Sweep(ctx context.Context, opts app.Options, keepExplicit bool) error
	Add(ctx context.Context, opts app.Options, specs []string) error
	Remove(ctx context.Context, opts app.Options, names []string) error
	List(ctx context.Context, opts app.Options, listOpts app.ListOptions) error
	Search(ctx context.Context, opts app.Options, query string, listOpts app.ListOptions) error
	Info(ctx context.Context, opts app.Options, name string) error
	Watch(ctx context.Context, opts app.Options) error
	Clean(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "vpm",
		Short:         "Resolve and install VPM packages for Unity projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("project", "p", "", "Project directory (defaults to the nearest project above the working directory)")
	flags.String("settings", "", "Settings file (defaults to $VPM_SETTINGS or the user config directory)")
	flags.StringP("output-mode", "o", "auto", "Progress output: auto, tui, linear or quiet")
	flags.Bool("offline", false, "Use cached repositories only")
	flags.Bool("prerelease", false, "Consider pre-release versions")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Bool("verbose", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newSweepCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newSearchCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options collects the persistent flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	projectDir, _ := flags.GetString("project")
	settingsPath, _ := flags.GetString("settings")
	outputMode, _ := flags.GetString("output-mode")
	offline, _ := flags.GetBool("offline")
	prerelease, _ := flags.GetBool("prerelease")
	jsonLogs, _ := flags.GetBool("log-json")
	verbose, _ := flags.GetBool("verbose")

	return app.Options{
		ProjectDir:   projectDir,
		SettingsPath: settingsPath,
		OutputMode:   outputMode,
		Offline:      offline,
		Prerelease:   prerelease,
		JSON:         jsonLogs,
		Verbose:      verbose,
	}
}
