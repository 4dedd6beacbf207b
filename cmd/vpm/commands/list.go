package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vpm/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List locked and unlocked packages of the project",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.List(cmd.Context(), options(cmd), app.ListOptions{JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func (c *CLI) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the configured repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Search(cmd.Context(), options(cmd), args[0], app.ListOptions{JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show the versions and dependencies of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Info(cmd.Context(), options(cmd), args[0])
		},
	}
}
