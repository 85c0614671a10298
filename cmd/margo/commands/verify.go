package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/margo/internal/app"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check cached crates against the lockfile checksums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prune, _ := cmd.Flags().GetBool("prune")
			return c.app.Verify(cmd.Context(), app.VerifyOptions{
				Options: options(cmd),
				Prune:   prune,
			})
		},
	}
	cmd.Flags().Bool("prune", false, "Remove corrupt archives so the next fetch replaces them")
	return cmd
}
