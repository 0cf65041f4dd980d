package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/config"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
// Flags that are set override the config file.
type renderOpts struct {
	src     sourceOpts
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "svg", "png", "pdf", "json"
	width   float64  // canvas width in pixels
	height  float64  // canvas height in pixels
	curve   string   // "linear" or "monotone"
	topDown bool     // domain minimums at the top
	dims    string   // visible dimensions, comma-separated
	order   string   // axis order, comma-separated
	brushes []string // range brushes, name=lo:hi in domain units
	line    string   // line brush, x1,y1,x2,y2 in canvas pixels
	title   string   // heading drawn on SVG output
	scale   float64  // PNG scale factor
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [data]",
		Short: "Render a parallel-coordinates chart to SVG, PNG, PDF or JSON",
		Long: `Render reads a data file, applies the configured view and any brushes
given on the command line, and writes the resulting chart.

Range brushes are given in domain units, line brushes in canvas pixels:

  parcoords render cars.csv --brush power=100:150 --line 200,40,320,90 -f svg,png`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dataFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			cfg, err := opts.src.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.override(cmd, cfg); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], cfg, &opts)
		},
	}

	opts.src.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", chart.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", chart.DefaultHeight, "canvas height")
	cmd.Flags().StringVar(&opts.curve, "curve", "", "polyline curve: monotone (default), linear")
	cmd.Flags().BoolVar(&opts.topDown, "top-down", false, "draw domain minimums at the top of each axis")
	cmd.Flags().StringVar(&opts.dims, "dims", "", "visible dimensions (comma-separated)")
	cmd.Flags().StringVar(&opts.order, "order", "", "axis order (comma-separated, may be partial)")
	cmd.Flags().StringArrayVar(&opts.brushes, "brush", nil, "range brush name=lo:hi (repeatable)")
	cmd.Flags().StringVar(&opts.line, "line", "", "line brush x1,y1,x2,y2 in canvas pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn on SVG output")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	_ = cmd.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	return cmd
}

// override applies the flags the user set on top of cfg.
func (o *renderOpts) override(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Canvas.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = o.height
	}
	if o.curve != "" {
		cfg.Curve = o.curve
	}
	if flags.Changed("top-down") {
		cfg.TopDown = o.topDown
	}
	if dims := parseList(o.dims); len(dims) > 0 {
		cfg.Visible = dims
	}
	if order := parseList(o.order); len(order) > 0 {
		cfg.Order = order
	}
	for _, s := range o.brushes {
		b, err := parseBrush(s)
		if err != nil {
			return err
		}
		cfg.Brushes = append(cfg.Brushes, b)
	}
	return cfg.Validate()
}

func (c *CLI) runRender(cmd *cobra.Command, input string, cfg *config.Config, opts *renderOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	ch, err := opts.src.loadChart(ctx, input, cfg)
	if err != nil {
		return err
	}
	if opts.line != "" {
		a, b, err := parseLine(opts.line)
		if err != nil {
			return err
		}
		ch.ProcessLinePoint(a)
		ch.ProcessLinePoint(b)
	}

	snap := ch.Snapshot()
	printInfo(out, "%d of %d items selected", snap.Selected, len(snap.Lines))
	if snap.Selected == 0 {
		printWarning(out, "no items match the brushes")
	}

	multi := len(opts.formats) > 1
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, multi)
		if err := writeFormat(ctx, snap, format, path, opts); err != nil {
			// A missing converter skips one format, not the whole run.
			if errors.Is(err, errors.ErrCodeUnsupported) {
				printError(out, "%v", err)
				continue
			}
			return err
		}
		printFile(out, path)
	}
	printSuccess(out, "Rendered %d axes", len(snap.Axes))
	return nil
}

func writeFormat(ctx context.Context, snap chart.Snapshot, format, path string, opts *renderOpts) error {
	data, err := render.Render(ctx, snap, format,
		render.WithTitle(opts.title),
		render.WithScale(opts.scale),
	)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return os.WriteFile(path, data, 0o644)
}
