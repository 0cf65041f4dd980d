// Package cli implements the parcoords command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/parcoords/pkg/buildinfo"
	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/config"
	"github.com/matzehuels/parcoords/pkg/ingest"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "parcoords"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Parcoords filters multi-attribute data with parallel coordinates",
		Long:         `Parcoords draws a dataset as parallel-coordinate polylines and narrows it with range brushes on individual axes and a free-form line brush across them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Chart Loading
// =============================================================================

// sourceOpts are the flags shared by every command that reads a data file.
type sourceOpts struct {
	config string // config file path (.toml, .yaml)
	sheet  string // workbook sheet for .xlsx input
}

func (o *sourceOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "chart config file (.toml, .yaml)")
	cmd.Flags().StringVar(&o.sheet, "sheet", "", "sheet to read from .xlsx input (default first sheet)")
}

// loadConfig reads the config file, or the defaults when none is given.
func (o *sourceOpts) loadConfig() (*config.Config, error) {
	if o.config == "" {
		return config.Default()
	}
	return config.Load(o.config)
}

// loadChart reads the data file into a chart built from cfg and applies the
// configured initial view. Metadata warnings are logged, not returned.
func (o *sourceOpts) loadChart(ctx context.Context, path string, cfg *config.Config) (*chart.Chart, error) {
	logger := loggerFromContext(ctx)

	opts, err := cfg.ChartOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger

	prog := newProgress(logger)
	tbl, err := ingest.Import(ctx, path, ingest.WithSheet(o.sheet))
	if err != nil {
		return nil, err
	}
	prog.done("Read %d rows, %d columns from %s", len(tbl.Rows), len(tbl.Columns), path)

	c := chart.New(opts)
	if err := c.SetData(tbl.Items(), cfg.Dimensions...); err != nil {
		return nil, err
	}
	if err := cfg.Apply(c); err != nil {
		return nil, err
	}
	return c, nil
}
