package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vfswatch/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Watch the configured directories and keep the given paths snapshotted",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			platform, _ := cmd.Flags().GetString("platform")
			debounce, _ := cmd.Flags().GetDuration("debounce")
			timings, _ := cmd.Flags().GetBool("timings")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Dir:      dir,
				Paths:    args,
				Platform: platform,
				Debounce: debounce,
				Timings:  timings,
			})
		},
	}
	cmd.Flags().StringP("dir", "C", "", "Directory to search the configuration from")
	cmd.Flags().StringP("platform", "p", "", "Watch platform: auto, recursive, or non-recursive")
	cmd.Flags().Duration("debounce", 0, "Window for coalescing file system events")
	cmd.Flags().BoolP("timings", "t", false, "Log how long each watch operation takes")
	return cmd
}
