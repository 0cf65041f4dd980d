package chart

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/brush"
	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/linebrush"
)

// =============================================================================
// Range brushes
// =============================================================================

// SetRangeBrush brushes the axis name over the pixel interval [lo, hi],
// given in either order.
func (c *Chart) SetRangeBrush(name string, lo, hi float64) (brush.Direction, error) {
	c.mu.Lock()
	ax, err := c.visibleAxis(name)
	if err != nil {
		c.mu.Unlock()
		return brush.Unchanged, err
	}
	dir := ax.brush.SetExtent(lo, hi)
	c.update(name, dir)
	c.mu.Unlock()

	if dir != brush.Unchanged {
		c.notify(name, false)
	}
	return dir, nil
}

// SetRangeBrushValues brushes a numerical axis over the domain interval
// [lo, hi] by converting it to pixels first.
func (c *Chart) SetRangeBrushValues(name string, lo, hi float64) (brush.Direction, error) {
	c.mu.Lock()
	ax, err := c.visibleAxis(name)
	if err != nil {
		c.mu.Unlock()
		return brush.Unchanged, err
	}
	p0, ok0 := ax.scale.DomainToRange(dataset.Number(lo))
	p1, ok1 := ax.scale.DomainToRange(dataset.Number(hi))
	c.mu.Unlock()

	if !ok0 || !ok1 {
		return brush.Unchanged, errors.New(errors.ErrCodeInvalidInput, "axis %q cannot be brushed by value", name)
	}
	return c.SetRangeBrush(name, p0, p1)
}

// RangeBrush returns the pixel extent of the brush on name.
func (c *Chart) RangeBrush(name string) (lo, hi float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ax, found := c.axes[name]
	if !found {
		return 0, 0, false
	}
	return ax.brush.Extent()
}

// RangeBrushValues returns the domain interval brushed on a numerical axis,
// with lo <= hi.
func (c *Chart) RangeBrushValues(name string) (lo, hi float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ax, p0, p1, ok := c.brushedRange(name)
	if !ok {
		return 0, 0, false
	}
	lo, _ = ax.scale.RangeToDomain(p0)
	hi, _ = ax.scale.RangeToDomain(p1)
	return lo, hi, true
}

// RangeBrushLabels formats the brushed interval on a numerical axis in
// domain units, lower value first.
func (c *Chart) RangeBrushLabels(name string) (lo, hi string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ax, p0, p1, ok := c.brushedRange(name)
	if !ok {
		return "", "", false
	}
	lo, _ = ax.scale.Label(p0)
	hi, _ = ax.scale.Label(p1)
	return lo, hi, true
}

// brushedRange returns the brush extent on a numerical axis ordered so
// that p0 maps to the smaller value. Callers hold c.mu.
func (c *Chart) brushedRange(name string) (ax *axis, p0, p1 float64, ok bool) {
	ax, found := c.axes[name]
	if !found {
		return nil, 0, 0, false
	}
	p0, p1, active := ax.brush.Extent()
	if !active {
		return nil, 0, 0, false
	}
	v0, ok0 := ax.scale.RangeToDomain(p0)
	v1, ok1 := ax.scale.RangeToDomain(p1)
	if !ok0 || !ok1 {
		return nil, 0, 0, false
	}
	if v1 < v0 {
		p0, p1 = p1, p0
	}
	return ax, p0, p1, true
}

// ClearRangeBrush removes the brush on name. A pending notification from
// that axis is dropped and a fresh one is sent.
func (c *Chart) ClearRangeBrush(name string) (brush.Direction, error) {
	c.mu.Lock()
	ax, err := c.visibleAxis(name)
	if err != nil {
		c.mu.Unlock()
		return brush.Unchanged, err
	}
	dir := ax.brush.Clear()
	c.update(name, dir)
	c.mu.Unlock()

	if dir != brush.Unchanged {
		c.notify(name, true)
	}
	return dir, nil
}

// ClearAllBrushes removes every range brush and cancels the line brush.
func (c *Chart) ClearAllBrushes() brush.Direction {
	c.mu.Lock()
	dir := brush.Unchanged
	for _, ax := range c.axes {
		dir = dir.Merge(ax.brush.Clear())
	}
	dir = dir.Merge(c.line.Cancel())
	c.update("all", dir)
	c.mu.Unlock()

	if dir != brush.Unchanged {
		c.notifyNow("all")
	}
	return dir
}

// =============================================================================
// Line brush
// =============================================================================

// ProcessLinePoint feeds a click at p to the line brush.
func (c *Chart) ProcessLinePoint(p gg.Point) brush.Direction {
	c.mu.Lock()
	dir := c.line.Process(p)
	c.update(LineSource, dir)
	c.mu.Unlock()

	if dir != brush.Unchanged {
		c.notify(LineSource, false)
	}
	return dir
}

// TrackLinePoint moves the line brush preview. It never changes the selection.
func (c *Chart) TrackLinePoint(p gg.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line.Track(p)
}

// MoveLineHandle drags an endpoint of a completed line brush.
func (c *Chart) MoveLineHandle(h linebrush.Handle, p gg.Point) brush.Direction {
	c.mu.Lock()
	dir := c.line.MoveHandle(h, p)
	c.update(LineSource, dir)
	c.mu.Unlock()

	if dir != brush.Unchanged {
		c.notify(LineSource, false)
	}
	return dir
}

// CancelLineBrush returns the line brush to idle. A pending notification
// from the line brush is dropped and a fresh one is sent.
func (c *Chart) CancelLineBrush() brush.Direction {
	c.mu.Lock()
	was := c.line.State()
	dir := c.line.Cancel()
	c.update(LineSource, dir)
	c.mu.Unlock()

	if was != linebrush.Idle {
		c.notify(LineSource, true)
	}
	return dir
}

// LineBrushState returns the line brush lifecycle stage.
func (c *Chart) LineBrushState() linebrush.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.line.State()
}
