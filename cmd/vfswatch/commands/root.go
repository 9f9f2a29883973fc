// Package commands implements the CLI commands for vfswatch.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/vfswatch/internal/app"
	"go.trai.ch/vfswatch/internal/build"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/vfswatch/internal/ui/output"
)

// CLI represents the command line interface for vfswatch.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Watch(ctx context.Context, opts app.WatchOptions) error
	Roots(w io.Writer, dirs []string) error
}

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. The logger may be nil.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "vfswatch",
		Short:         "Keep file system snapshots valid by watching as few directories as possible",
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

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("log-format", "pretty", "Log format: auto, pretty or json")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRun = c.applyGlobalFlags

	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newRootsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		output.DisableColor(true)
	}
	format, _ := cmd.Flags().GetString("log-format")
	if output.ResolveLogFormat(output.DetectLogFormat, format) == output.FormatJSON {
		if l, ok := c.logger.(jsonLogger); ok {
			l.SetJSON(true)
		}
	}
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

// SetOutput sets the output and error writers for the root command.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
