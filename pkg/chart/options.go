package chart

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/parcoords/pkg/geom"
	"github.com/matzehuels/parcoords/pkg/scale"
	"github.com/matzehuels/parcoords/pkg/throttle"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 960.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 500.0

	// DefaultAxisPadding is the outer padding of the axis point scale, in steps.
	DefaultAxisPadding = 0.5

	// DefaultInvalidOffset is how far below an axis invalid values are drawn.
	DefaultInvalidOffset = 20.0

	// DefaultThrottleInterval is the minimum spacing of selection notifications.
	DefaultThrottleInterval = 250 * time.Millisecond
)

// DefaultMargin leaves room for axis titles above and invalid markers below.
var DefaultMargin = Margin{Top: 40, Right: 20, Bottom: 40, Left: 20}

// =============================================================================
// Options
// =============================================================================

// Margin is the space between the canvas edge and the plot area.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Options configures a Chart.
type Options struct {
	Width  float64
	Height float64
	Margin Margin

	// NominalPadding is the outer padding of nominal axes, in steps.
	NominalPadding float64
	// AxisPadding is the outer padding of the axis point scale, in steps.
	AxisPadding float64
	// InvalidOffset places invalid values this far past the bottom of the axis.
	InvalidOffset float64

	Curve geom.Curve

	// ThrottleInterval spaces selection notifications per brush source.
	// Zero delivers every notification synchronously.
	ThrottleInterval time.Duration

	// TopDown maps domain minimums to the top of the plot instead of the bottom.
	TopDown bool

	// Runtime options
	Logger *log.Logger
	Clock  throttle.Clock // nil uses the wall clock
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Margin:           DefaultMargin,
		NominalPadding:   scale.DefaultPadding,
		AxisPadding:      DefaultAxisPadding,
		InvalidOffset:    DefaultInvalidOffset,
		Curve:            geom.CurveMonotoneX,
		ThrottleInterval: DefaultThrottleInterval,
	}
}

// setDefaults fills fields that have no usable zero value.
func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.NominalPadding < 0 {
		o.NominalPadding = scale.DefaultPadding
	}
	if o.AxisPadding < 0 {
		o.AxisPadding = DefaultAxisPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// plot returns the plot area in canvas coordinates.
func (o *Options) plot() (x0, y0, w, h float64) {
	w = max(0, o.Width-o.Margin.Left-o.Margin.Right)
	h = max(0, o.Height-o.Margin.Top-o.Margin.Bottom)
	return o.Margin.Left, o.Margin.Top, w, h
}

// yRange returns the pixel range of every value axis.
func (o *Options) yRange() (r0, r1 float64) {
	_, top, _, h := o.plot()
	if o.TopDown {
		return top, top + h
	}
	return top + h, top
}
