package chart

import (
	"github.com/matzehuels/parcoords/pkg/brush"
	"github.com/matzehuels/parcoords/pkg/observability"
)

// DragStart begins dragging the axis name.
func (c *Chart) DragStart(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.DragStart(name)
}

// DragMove moves a dragged axis to canvas x. The axis order is re-sorted
// and every axis repositioned before DragMove returns.
func (c *Chart) DragMove(name string, x float64) error {
	c.mu.Lock()
	x0, _, _, _ := c.opts.plot()
	reordered, err := c.layout.DragMove(name, x-x0)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	dir := c.geometryChanged()
	c.update(LineSource, dir)
	order := c.layout.Order()
	c.mu.Unlock()

	if reordered {
		c.log.Debug("Axes reordered", "order", order)
		observability.Selection().OnReorder(order)
	}
	if dir != brush.Unchanged {
		c.notify(LineSource, false)
	}
	return nil
}

// DragEnd drops the axis name into its slot in the final order.
func (c *Chart) DragEnd(name string) error {
	c.mu.Lock()
	if err := c.layout.DragEnd(name); err != nil {
		c.mu.Unlock()
		return err
	}
	dir := c.geometryChanged()
	c.update(LineSource, dir)
	c.mu.Unlock()

	if dir != brush.Unchanged {
		c.notify(LineSource, false)
	}
	return nil
}

// SetAxisOrder replaces the axis order. names must be a permutation of the
// visible axes; otherwise the order is left untouched.
func (c *Chart) SetAxisOrder(names []string) error {
	c.mu.Lock()
	if err := c.layout.SetOrder(names); err != nil {
		c.mu.Unlock()
		return err
	}
	dir := c.geometryChanged()
	c.update(LineSource, dir)
	order := c.layout.Order()
	c.mu.Unlock()

	observability.Selection().OnReorder(order)
	if dir != brush.Unchanged {
		c.notify(LineSource, false)
	}
	return nil
}

// Resize changes the canvas size. Scales are rebuilt for the new plot
// height and range brushes are mapped proportionally onto it.
func (c *Chart) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	oldR0, oldR1 := c.opts.yRange()
	c.opts.Width, c.opts.Height = width, height
	r0, r1 := c.opts.yRange()
	_, _, w, _ := c.opts.plot()

	c.layout.Resize(w)
	for _, ax := range c.axes {
		ax.scale.SetRange(r0, r1)
		if lo, hi, ok := ax.brush.Extent(); ok {
			ax.brush.SetExtent(remap(lo, oldR0, oldR1, r0, r1), remap(hi, oldR0, oldR1, r0, r1))
			ax.brush.Revalidate(r0, r1)
		}
	}
	c.invalidatePaths()
	c.update("resize", brush.Unknown)
	c.mu.Unlock()

	c.notifyNow("resize")
}

// remap carries px from the range [a0, a1] onto [b0, b1].
func remap(px, a0, a1, b0, b1 float64) float64 {
	if a0 == a1 {
		return (b0 + b1) / 2
	}
	return b0 + (px-a0)/(a1-a0)*(b1-b0)
}
