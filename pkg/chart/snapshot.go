package chart

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/dimension"
	"github.com/matzehuels/parcoords/pkg/geom"
)

// Snapshot is a consistent view of everything a renderer needs for one
// frame. All coordinates are canvas pixels.
type Snapshot struct {
	ID       string     `json:"id"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Curve    geom.Curve `json:"curve"`
	Axes     []Axis     `json:"axes"`
	Lines    []Polyline `json:"lines"`
	Selected int        `json:"selected"`

	LineBrush *Segment `json:"line_brush,omitempty"`
	Hovered   *int     `json:"hovered,omitempty"`
}

// Axis is one laid out axis.
type Axis struct {
	Name  string  `json:"name"`
	Title string  `json:"title"`
	Kind  string  `json:"kind"`
	Role  string  `json:"role"`
	X     float64 `json:"x"`
	// Y0 is the pixel of the domain minimum (or first category), Y1 of the maximum.
	Y0       float64 `json:"y0"`
	Y1       float64 `json:"y1"`
	Ticks    []Tick  `json:"ticks"`
	Brush    *Extent `json:"brush,omitempty"`
	Handles  Handles `json:"handles"`
	Color    string  `json:"color,omitempty"`
	Dragging bool    `json:"dragging,omitempty"`
}

// Tick is a labelled position on an axis.
type Tick struct {
	Label string  `json:"label"`
	Y     float64 `json:"y"`
}

// Extent is a brushed pixel interval, Lo <= Hi.
type Extent struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Handles says which brush handles an axis offers. Criterion axes keep the
// end at their optimum fixed, so only the handle on the worse side is shown.
type Handles struct {
	Low  bool `json:"low"`  // handle at the domain-minimum side
	High bool `json:"high"` // handle at the domain-maximum side
}

// Polyline is one item's line.
type Polyline struct {
	ID       int      `json:"id"`
	Vertices []Vertex `json:"vertices"`
	Selected bool     `json:"selected"`
}

// Vertex is a polyline vertex. Invalid vertices sit below their axis.
type Vertex struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Invalid bool    `json:"invalid,omitempty"`
}

// Points returns the vertex positions.
func (p Polyline) Points() []gg.Point { return points(p.Vertices) }

// Segment is the line brush, committed or in preview.
type Segment struct {
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Completed bool    `json:"completed"`
}

// ticksPerAxis is the tick density requested from numerical scales.
const ticksPerAxis = 6

// Snapshot returns the current frame.
func (c *Chart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		ID:       c.id,
		Width:    c.opts.Width,
		Height:   c.opts.Height,
		Curve:    c.opts.Curve,
		Selected: c.engine.Count(),
	}

	x0, _, _, _ := c.opts.plot()
	r0, r1 := c.opts.yRange()
	dragging := make(map[string]bool)
	for _, n := range c.layout.Dragging() {
		dragging[n] = true
	}

	for _, name := range c.layout.Order() {
		ax := c.axes[name]
		x, _ := c.layout.Position(name)
		out := Axis{
			Name:     name,
			Title:    ax.desc.Title(),
			Kind:     ax.desc.Kind.String(),
			Role:     ax.desc.Role().String(),
			X:        x0 + x,
			Y0:       r0,
			Y1:       r1,
			Handles:  handles(ax.desc),
			Dragging: dragging[name],
		}
		if ax.desc.Objective != nil {
			out.Color = ax.desc.Objective.Color
		}
		for _, tk := range ax.scale.Ticks(ticksPerAxis) {
			out.Ticks = append(out.Ticks, Tick{Label: tk.Label, Y: tk.Pos})
		}
		if lo, hi, ok := ax.brush.Extent(); ok {
			out.Brush = &Extent{Lo: lo, Hi: hi}
		}
		snap.Axes = append(snap.Axes, out)
	}

	snap.Lines = make([]Polyline, len(c.items))
	for i, it := range c.items {
		snap.Lines[i] = Polyline{ID: it.ID, Vertices: c.vertices(i), Selected: c.engine.Selected(i)}
	}

	if a, b, ok := c.line.Segment(); ok {
		snap.LineBrush = &Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Completed: true}
	} else if a, b, ok := c.line.Preview(); ok {
		snap.LineBrush = &Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
	}
	if c.hovering {
		id := c.hovered
		snap.Hovered = &id
	}
	return snap
}

func handles(d dimension.Descriptor) Handles {
	h := Handles{Low: true, High: true}
	if d.Objective == nil {
		return h
	}
	switch d.Objective.Direction {
	case dimension.Maximize:
		h.High = false
	case dimension.Minimize:
		h.Low = false
	}
	return h
}

// SelectedIDs returns the IDs of selected items in data order.
func (c *Chart) SelectedIDs() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedIDs()
}

// IsSelected reports whether the item with the given ID is selected.
func (c *Chart) IsSelected(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.byID[id]
	return ok && c.engine.Selected(i)
}

// Path returns the rendered path of the item with the given ID. It is the
// exact geometry the line brush tests against.
func (c *Chart) Path(id int) (*gg.Path, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return c.path(i).Clone(), true
}
