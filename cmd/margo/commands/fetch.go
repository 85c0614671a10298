package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/margo/internal/app"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download every crate of the lockfile missing from the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Fetch(cmd.Context(), app.FetchOptions{Options: options(cmd)})
		},
	}
}
