package chart

import (
	"slices"

	"github.com/matzehuels/parcoords/pkg/throttle"
)

// OnSelectionChanged registers fn to receive the selected item IDs after
// brush changes. Calls are throttled per brush source.
func (c *Chart) OnSelectionChanged(fn func(ids []int)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSelection = append(c.onSelection, fn)
}

// OnHoverChanged registers fn to receive hover changes. Calls are never
// throttled; ok is false when the hover was cleared.
func (c *Chart) OnHoverChanged(fn func(id int, ok bool)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onHover = append(c.onHover, fn)
}

// Hover marks the item with the given ID as hovered. It reports false for
// an unknown ID.
func (c *Chart) Hover(id int) bool {
	c.mu.Lock()
	if _, ok := c.byID[id]; !ok {
		c.mu.Unlock()
		return false
	}
	changed := !c.hovering || c.hovered != id
	c.hovered, c.hovering = id, true
	fns := slices.Clone(c.onHover)
	c.mu.Unlock()

	if changed {
		for _, fn := range fns {
			fn(id, true)
		}
	}
	return true
}

// ClearHover clears the hovered item.
func (c *Chart) ClearHover() {
	c.mu.Lock()
	was := c.hovering
	c.hovering = false
	fns := slices.Clone(c.onHover)
	c.mu.Unlock()

	if was {
		for _, fn := range fns {
			fn(0, false)
		}
	}
}

// Hovered returns the hovered item ID.
func (c *Chart) Hovered() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered, c.hovering
}

// throttleFor returns the throttle of source, creating it on first use.
// Callers hold c.mu.
func (c *Chart) throttleFor(source string) *throttle.Throttle[string] {
	th, ok := c.throttles[source]
	if !ok {
		var opts []throttle.Option[string]
		if c.opts.Clock != nil {
			opts = append(opts, throttle.WithClock[string](c.opts.Clock))
		}
		th = throttle.New(c.opts.ThrottleInterval, c.deliver, opts...)
		c.throttles[source] = th
	}
	return th
}

// notify schedules a selection notification from source. reset drops any
// pending notification from that source first. Callers must not hold c.mu.
func (c *Chart) notify(source string, reset bool) {
	c.mu.Lock()
	th := c.throttleFor(source)
	c.mu.Unlock()

	if reset {
		th.Cancel()
	}
	th.Trigger(source)
}

// notifyNow cancels every pending notification and delivers immediately.
// Callers must not hold c.mu.
func (c *Chart) notifyNow(source string) {
	c.mu.Lock()
	pending := make([]*throttle.Throttle[string], 0, len(c.throttles))
	for _, th := range c.throttles {
		pending = append(pending, th)
	}
	c.mu.Unlock()

	for _, th := range pending {
		th.Cancel()
	}
	c.deliver(source)
}

// deliver reads the current selection and hands it to every listener.
func (c *Chart) deliver(source string) {
	c.mu.Lock()
	ids := c.selectedIDs()
	fns := slices.Clone(c.onSelection)
	c.mu.Unlock()

	c.log.Debug("Selection changed", "source", source, "selected", len(ids))
	for _, fn := range fns {
		fn(slices.Clone(ids))
	}
}
