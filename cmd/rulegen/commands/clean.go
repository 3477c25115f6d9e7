package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rulegen/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove recorded expansion state and cache event traces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			traces, _ := cmd.Flags().GetBool("traces")
			all, _ := cmd.Flags().GetBool("all")
			configPath, _ := cmd.Flags().GetString("config")

			opts := app.CleanOptions{ConfigPath: configPath}
			switch {
			case all:
				opts.State = true
				opts.Traces = true
			case traces:
				opts.Traces = true
			default:
				opts.State = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("traces", "t", false, "Clean cache event traces")
	cmd.Flags().BoolP("all", "a", false, "Clean expansion state and traces")

	return cmd
}
