package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <package[@version]>...",
		Short:   "Install packages and record them as dependencies",
		Example: "  vpm add com.vrchat.avatars\n  vpm add com.vrchat.base@3.5.0",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Add(cmd.Context(), options(cmd), args)
		},
	}
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <package>...",
		Aliases: []string{"rm"},
		Short:   "Unlock packages and delete their folders",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Remove(cmd.Context(), options(cmd), args)
		},
	}
}
