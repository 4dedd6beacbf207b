package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Install locked packages and the dependencies of unlocked packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Resolve(cmd.Context(), options(cmd))
		},
	}
}

func (c *CLI) newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove locked packages that nothing depends on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keepExplicit, _ := cmd.Flags().GetBool("keep-explicit")
			return c.app.Sweep(cmd.Context(), options(cmd), keepExplicit)
		},
	}
	cmd.Flags().BoolP("keep-explicit", "k", false, "Keep the top-level dependencies of the lock file")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Resolve again whenever the Packages folder changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), options(cmd))
		},
	}
}
