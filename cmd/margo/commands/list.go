package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/margo/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the crates of the lockfile and whether they are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.List(cmd.Context(), app.ListOptions{Options: options(cmd)}, cmd.OutOrStdout())
		},
	}
}
