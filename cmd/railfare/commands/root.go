// Package commands implements the CLI commands for railfare.
package commands

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/railfare/internal/app"
	"go.trai.ch/railfare/internal/build"
	"go.trai.ch/railfare/internal/core/domain"
)

// CLI represents the command line interface for railfare.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	now     func() time.Time
}

// Application represents the application logic interface.
type Application interface {
	ShowTickets(ctx context.Context, q domain.TicketQuery, opts app.OutputOptions) error
	ShowSchedule(ctx context.Context, q domain.ScheduleQuery, opts app.OutputOptions) error
	ShowFare(ctx context.Context, q domain.FareQuery, opts app.OutputOptions) error
	ShowStations(ctx context.Context, keyword string, exact bool, limit int, opts app.OutputOptions) error
	RefreshStations(ctx context.Context) error
	Clean(ctx context.Context) (domain.CleanupReport, error)
	Serve(ctx context.Context) error
	Status(ctx context.Context) error
	ConfigureLogging(json, verbose bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "railfare",
		Short:         "Query rail tickets and find cheaper segmented fares",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("output", "o", "auto", "Output mode: auto, pretty, linear or json")
	flags.BoolP("remote", "r", false, "Send queries to the running daemon")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Bool("verbose", false, "Show debug logs")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		now:     time.Now,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logJSON, _ := cmd.Flags().GetBool("log-json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.ConfigureLogging(logJSON, verbose)
	}

	rootCmd.AddCommand(c.newTicketsCmd())
	rootCmd.AddCommand(c.newScheduleCmd())
	rootCmd.AddCommand(c.newFareCmd())
	rootCmd.AddCommand(c.newStationsCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// WithClock replaces the clock used for the default travel date. Used for testing.
func (c *CLI) WithClock(now func() time.Time) *CLI {
	c.now = now
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

func outputOptions(cmd *cobra.Command) app.OutputOptions {
	mode, _ := cmd.Flags().GetString("output")
	remote, _ := cmd.Flags().GetBool("remote")
	return app.OutputOptions{OutputMode: mode, Remote: remote}
}

func (c *CLI) addDateFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("date", "d", "", "Travel date as YYYY-MM-DD (default today)")
}

func (c *CLI) date(cmd *cobra.Command) string {
	if d, _ := cmd.Flags().GetString("date"); d != "" {
		return d
	}
	return c.now().Format(time.DateOnly)
}
