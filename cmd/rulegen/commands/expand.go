package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [targets...]",
		Short: "Expand test targets and list the resulting rules",
		Long: "Expand the given test targets, or every declared test when none are given, " +
			"and print the resulting rule graph in dependency order.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Expand(cmd.Context(), args, invocationOptions(cmd))
		},
	}
	cmd.Flags().String("build-id", "", "Identifier of this invocation in cache event traces")
	return cmd
}

func (c *CLI) newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps [targets...]",
		Short: "Print the implicit toolchain dependencies of test targets",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Deps(cmd.Context(), args, invocationOptions(cmd))
		},
	}
}
