package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots [dirs...]",
		Short: "Print the hierarchies that have to be watched to cover the given directories",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Roots(cmd.OutOrStdout(), args)
		},
	}
}
