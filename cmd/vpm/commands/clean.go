package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the repository and package caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), options(cmd))
		},
	}
}
