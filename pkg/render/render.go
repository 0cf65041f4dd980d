package render

import (
	"context"
	"time"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/observability"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists every format [Render] accepts.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Palette holds the colors used by the SVG and PNG sinks, as hex strings.
type Palette struct {
	Background string
	Axis       string
	Text       string
	Selected   string
	Deselected string
	Hovered    string
	Brush      string
	LineBrush  string
}

// DefaultPalette is a light theme with a muted background for deselected lines.
var DefaultPalette = Palette{
	Background: "#ffffff",
	Axis:       "#333333",
	Text:       "#222222",
	Selected:   "#1f77b4",
	Deselected: "#d9d9d9",
	Hovered:    "#ff7f0e",
	Brush:      "#1f77b4",
	LineBrush:  "#d62728",
}

// Option configures the sinks. Options a sink does not use are ignored.
type Option func(*renderer)

type renderer struct {
	palette Palette
	title   string
	scale   float64
	stroke  float64
}

// WithPalette replaces the default colors.
func WithPalette(p Palette) Option { return func(r *renderer) { r.palette = p } }

// WithTitle adds a heading to SVG output.
func WithTitle(s string) Option { return func(r *renderer) { r.title = s } }

// WithScale sets the raster scale of PNG output (default 1).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithStrokeWidth sets the polyline width in pixels (default 1.2).
func WithStrokeWidth(w float64) Option {
	return func(r *renderer) {
		if w > 0 {
			r.stroke = w
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{palette: DefaultPalette, scale: 1, stroke: 1.2}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render writes snap in the named format.
func Render(ctx context.Context, snap chart.Snapshot, format string, opts ...Option) (out []byte, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	}()

	switch format {
	case FormatSVG:
		return RenderSVG(snap, opts...), nil
	case FormatPNG:
		return RenderPNG(snap, opts...)
	case FormatPDF:
		return ToPDF(ctx, RenderSVG(snap, opts...))
	case FormatJSON:
		return RenderJSON(snap)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be svg, png, pdf or json)", format)
	}
}
