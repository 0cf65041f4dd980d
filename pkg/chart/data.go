package chart

import (
	"slices"

	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/dimension"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/layout"
	"github.com/matzehuels/parcoords/pkg/observability"
	"github.com/matzehuels/parcoords/pkg/scale"
)

// DataSource is the notification source name of data updates.
const DataSource = "data"

// staged is a fully validated data update waiting to be committed.
type staged struct {
	model  *dimension.Model
	items  []dataset.Item
	axes   map[string]*axis
	layout *layout.Layout
}

// SetData replaces the dataset. Descriptors are re-inferred from items and
// reconciled with the current model; meta is registered on the result, and
// registered metadata not re-supplied carries forward.
//
// Range brushes persist across the update and are revalidated against the
// pixel range. Attributes that disappear drop their brush; new attributes
// become visible at the end of the axis order.
//
// On error, including any schema violation, the chart is left unchanged.
func (c *Chart) SetData(items []dataset.Item, meta ...dimension.Metadata) error {
	if err := dataset.Validate(items); err != nil {
		return err
	}

	c.mu.Lock()
	next, err := c.stage(items, meta)
	if err != nil {
		c.mu.Unlock()
		if code := errors.GetCode(err); code != "" && errors.IsSchemaViolation(err) {
			observability.Data().OnSchemaViolation(string(code))
		}
		c.log.Error("Rejected data update", "error", err)
		return err
	}
	c.commit(next)
	c.mu.Unlock()

	c.notifyNow(DataSource)
	return nil
}

// stage builds the next state without touching the current one.
// Callers hold c.mu.
func (c *Chart) stage(items []dataset.Item, meta []dimension.Metadata) (*staged, error) {
	inferred, err := dimension.Infer(items, c.model.Names())
	if err != nil {
		return nil, err
	}

	model, err := c.model.Reconcile(inferred)
	if err != nil {
		return nil, err
	}
	model.Register(meta, c.log)

	r0, r1 := c.opts.yRange()
	axes := make(map[string]*axis, model.Len())
	for _, desc := range model.Descriptors() {
		sc, err := scale.New(desc, r0, r1, scale.WithPadding(c.opts.NominalPadding))
		if err != nil {
			return nil, err
		}
		ax := &axis{desc: desc, scale: sc}
		if old, ok := c.axes[desc.Name]; ok {
			ax.brush = old.brush
			ax.brush.Revalidate(r0, r1)
		}
		axes[desc.Name] = ax
	}

	var visible []string
	for _, name := range c.layout.Order() {
		if model.Has(name) {
			visible = append(visible, name)
		}
	}
	for _, name := range model.Names() {
		if !c.model.Has(name) && !slices.Contains(visible, name) {
			visible = append(visible, name)
		}
	}
	_, _, w, _ := c.opts.plot()
	lay, err := layout.New(visible, w, c.opts.AxisPadding)
	if err != nil {
		return nil, err
	}

	return &staged{model: model, items: slices.Clone(items), axes: axes, layout: lay}, nil
}

// commit installs a staged update and re-tests every item.
// Callers hold c.mu.
func (c *Chart) commit(s *staged) {
	c.model, c.items, c.axes, c.layout = s.model, s.items, s.axes, s.layout

	c.byID = make(map[int]int, len(c.items))
	for i, it := range c.items {
		c.byID[it.ID] = i
	}
	c.paths = make([]*gg.Path, len(c.items))
	if _, ok := c.byID[c.hovered]; !ok {
		c.hovering = false
	}

	c.engine.Reset(len(c.items))
	st := c.engine.Recompute(c.predicate())
	c.log.Info("Data updated", "items", len(c.items), "dimensions", c.model.Len(), "visible", c.layout.Len(), "selected", c.engine.Count())
	observability.Selection().OnSelectionUpdate(DataSource, "unknown", st.Tested, st.Changed, 0)
}

// Register applies dimension metadata to the current model. Entries that
// cannot be applied are returned and logged; the rest still apply.
func (c *Chart) Register(meta ...dimension.Metadata) []dimension.Warning {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model == nil {
		c.model, _ = dimension.NewModel()
	}
	warnings := c.model.Register(meta, c.log)
	for _, desc := range c.model.Descriptors() {
		if ax, ok := c.axes[desc.Name]; ok {
			ax.desc = desc
			ax.scale.SetUnit(desc.Unit)
		}
	}
	return warnings
}

// SetVisibleDimensions lays out exactly names. Axes that stay visible keep
// their relative order; newly shown axes are appended. Hidden axes lose
// their brush. Every name must exist in the data.
func (c *Chart) SetVisibleDimensions(names []string) error {
	c.mu.Lock()
	if err := c.model.Select(names); err != nil {
		c.mu.Unlock()
		return err
	}
	before := c.layout.Order()
	if err := c.layout.SetVisible(names); err != nil {
		c.mu.Unlock()
		return err
	}

	dir := c.geometryChanged()
	for _, name := range before {
		if !c.layout.Has(name) {
			dir = dir.Merge(c.axes[name].brush.Clear())
		}
	}
	c.update("visible", dir)
	order := c.layout.Order()
	c.mu.Unlock()

	observability.Selection().OnReorder(order)
	c.notifyNow("visible")
	return nil
}
