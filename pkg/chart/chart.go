// Package chart is the interactive parallel-coordinates engine.
//
// A [Chart] owns the dimension model, one scale and range brush per
// attribute, the axis layout, the line brush and the selection engine. It
// is the surface a renderer or input layer talks to:
//
//	c := chart.New(chart.DefaultOptions())
//	if err := c.SetData(items); err != nil {
//	    return err
//	}
//	c.OnSelectionChanged(func(ids []int) { redraw(ids) })
//	c.SetRangeBrush("Speed", 150, 300)
//	snap := c.Snapshot()
//
// # Selection
//
// An item is selected iff every active range brush and the line brush
// accept it. Every brush mutation returns a [brush.Direction]; the chart
// feeds it to the selection engine so only items that can have changed
// are re-tested.
//
// # Concurrency
//
// All methods are safe for concurrent use. Selection notifications are
// throttled per brush source and delivered without the chart lock held,
// possibly on a timer goroutine. A notification always carries the
// selection at delivery time.
package chart

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/matzehuels/parcoords/pkg/brush"
	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/dimension"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/geom"
	"github.com/matzehuels/parcoords/pkg/layout"
	"github.com/matzehuels/parcoords/pkg/linebrush"
	"github.com/matzehuels/parcoords/pkg/observability"
	"github.com/matzehuels/parcoords/pkg/scale"
	"github.com/matzehuels/parcoords/pkg/selection"
	"github.com/matzehuels/parcoords/pkg/throttle"
)

// LineSource is the notification source name of the line brush.
const LineSource = "line"

// axis is the per-attribute state: descriptor, scale and range brush.
type axis struct {
	desc  dimension.Descriptor
	scale *scale.Scale
	brush brush.Range
}

// Chart is a parallel-coordinates chart.
type Chart struct {
	id   string
	opts Options
	log  *log.Logger

	mu     sync.Mutex
	model  *dimension.Model
	items  []dataset.Item
	byID   map[int]int
	axes   map[string]*axis
	layout *layout.Layout
	line   linebrush.Brush
	engine *selection.Engine
	paths  []*gg.Path // lazily built, nil entries are stale

	hovered  int
	hovering bool

	onSelection []func(ids []int)
	onHover     []func(id int, ok bool)
	throttles   map[string]*throttle.Throttle[string]
}

// New returns an empty chart.
func New(opts Options) *Chart {
	opts.setDefaults()
	_, _, w, _ := opts.plot()
	lay, _ := layout.New(nil, w, opts.AxisPadding)
	return &Chart{
		id:        uuid.NewString(),
		opts:      opts,
		log:       opts.Logger,
		byID:      make(map[int]int),
		axes:      make(map[string]*axis),
		layout:    lay,
		engine:    selection.New(0),
		throttles: make(map[string]*throttle.Throttle[string]),
	}
}

// ID returns the chart's unique identifier.
func (c *Chart) ID() string { return c.id }

// Model returns a copy of the current dimension descriptors.
func (c *Chart) Model() []dimension.Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Descriptors()
}

// Order returns the visible axes in layout order.
func (c *Chart) Order() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.Order()
}

// Len returns the number of items.
func (c *Chart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// =============================================================================
// Selection plumbing (callers hold c.mu)
// =============================================================================

// predicate returns the conjunction of all active brushes.
func (c *Chart) predicate() selection.Predicate {
	type brushed struct {
		name string
		ax   *axis
	}
	var active []brushed
	for _, name := range c.layout.Order() {
		if ax := c.axes[name]; ax.brush.Active() {
			active = append(active, brushed{name, ax})
		}
	}
	lineActive := c.line.Active()

	return func(i int) bool {
		it := c.items[i]
		for _, b := range active {
			if !b.ax.brush.IsSelected(b.ax.scale, it.Get(b.name)) {
				return false
			}
		}
		return !lineActive || c.line.IsSelected(c.path(i))
	}
}

// update applies a direction from source to the selection engine.
func (c *Chart) update(source string, dir brush.Direction) selection.Stats {
	if dir == brush.Unchanged {
		return selection.Stats{}
	}
	start := time.Now()
	st := c.engine.Update(dir, c.predicate())
	elapsed := time.Since(start)

	c.log.Debug("Selection updated", "source", source, "hint", dir, "tested", st.Tested, "changed", st.Changed, "selected", c.engine.Count())
	observability.Selection().OnSelectionUpdate(source, dir.String(), st.Tested, st.Changed, elapsed)
	return st
}

// invalidatePaths marks every cached path stale after axes move.
func (c *Chart) invalidatePaths() {
	for i := range c.paths {
		c.paths[i] = nil
	}
}

// geometryChanged handles an axis move or reorder. Range brushes do not
// depend on x; the line brush does.
func (c *Chart) geometryChanged() brush.Direction {
	c.invalidatePaths()
	if c.line.Active() {
		return brush.Unknown
	}
	return brush.Unchanged
}

// path returns the rendered path of item i, building it if stale.
func (c *Chart) path(i int) *gg.Path {
	if c.paths[i] == nil {
		c.paths[i] = geom.Build(points(c.vertices(i)), c.opts.Curve)
	}
	return c.paths[i]
}

// vertices computes item i's polyline in canvas coordinates.
func (c *Chart) vertices(i int) []Vertex {
	it := c.items[i]
	x0, _, _, _ := c.opts.plot()
	order := c.layout.Order()
	out := make([]Vertex, 0, len(order))
	for _, name := range order {
		ax := c.axes[name]
		x, _ := c.layout.Position(name)
		y, ok := ax.scale.DomainToRange(it.Get(name))
		if !ok {
			_, bottom := ax.scale.Extent()
			y = bottom + c.opts.InvalidOffset
		}
		out = append(out, Vertex{X: x0 + x, Y: y, Invalid: !ok})
	}
	return out
}

func points(vs []Vertex) []gg.Point {
	pts := make([]gg.Point, len(vs))
	for i, v := range vs {
		pts[i] = gg.Pt(v.X, v.Y)
	}
	return pts
}

// visibleAxis returns the state of a laid out axis.
func (c *Chart) visibleAxis(name string) (*axis, error) {
	ax, ok := c.axes[name]
	if !ok || !c.layout.Has(name) {
		return nil, errors.New(errors.ErrCodeUnknownAxis, "no visible axis named %q", name)
	}
	return ax, nil
}

func (c *Chart) selectedIDs() []int {
	idx := c.engine.SelectedIndices()
	ids := make([]int, len(idx))
	for i, j := range idx {
		ids[i] = c.items[j].ID
	}
	return ids
}
