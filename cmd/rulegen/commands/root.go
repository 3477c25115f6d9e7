// Package commands implements the CLI commands for rulegen.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rulegen/internal/app"
	"go.trai.ch/rulegen/internal/build"
)

// CLI represents the command line interface for rulegen.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	jsonLog func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Expand(ctx context.Context, targetNames []string, opts app.Options) error
	Deps(ctx context.Context, targetNames []string, opts app.Options) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithJSONLogSwitch registers the function called with the value of --json-log
// before any command runs.
func WithJSONLogSwitch(fn func(bool)) Option {
	return func(c *CLI) {
		c.jsonLog = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rulegen",
		Short:         "Expand test targets into compile, test and interface rules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", ".", "Workspace file, or the directory containing rules.yaml")
	rootCmd.PersistentFlags().String("state", "", "Directory expansion state is kept in (default <root>/.rulegen/state)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.jsonLog == nil {
			return
		}
		enabled, _ := cmd.Flags().GetBool("json-log")
		c.jsonLog(enabled)
	}

	rootCmd.AddCommand(c.newExpandCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func invocationOptions(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	stateDir, _ := cmd.Flags().GetString("state")
	buildID, _ := cmd.Flags().GetString("build-id")
	return app.Options{
		ConfigPath: configPath,
		StateDir:   stateDir,
		BuildID:    buildID,
	}
}
