package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modelcache/internal/app"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Evaluate every project of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			jsonOut, _ := cmd.Flags().GetBool("json")
			trace, _ := cmd.Flags().GetBool("trace")

			return c.app.Configure(cmd.Context(), cmd.OutOrStdout(), app.ConfigureOptions{
				NoCache: noCache,
				JSON:    jsonOut,
				Trace:   trace,
			})
		},
	}

	cmd.Flags().BoolP("no-cache", "n", false, "Ignore the models cached by the previous run")
	cmd.Flags().Bool("json", false, "Print the configured models as JSON")
	cmd.Flags().Bool("trace", false, "Log the duration of every model computation")

	return cmd
}
