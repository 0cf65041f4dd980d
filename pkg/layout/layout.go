// Package layout positions axes along the horizontal canvas dimension and
// implements drag-to-reorder.
//
// Axes sit on a point scale whose domain is the current order of axis
// names. While an axis is dragged its position follows the pointer and
// the whole order is re-sorted by effective position on every move, so
// neighbouring axes reflow continuously during the drag.
package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/dimension"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/scale"
)

// Layout owns the axis order and the drag anchors. It is not safe for
// concurrent use.
type Layout struct {
	width   float64
	padding float64
	order   []string
	points  *scale.Scale // nil while order is empty
	drag    map[string]float64
}

// New lays out names over [0, width] with the given outer padding in steps.
func New(names []string, width, padding float64) (*Layout, error) {
	if err := checkUnique(names); err != nil {
		return nil, err
	}
	l := &Layout{width: width, padding: padding, drag: make(map[string]float64)}
	if err := l.assign(slices.Clone(names)); err != nil {
		return nil, err
	}
	return l, nil
}

// assign replaces the order and rebuilds the point scale.
func (l *Layout) assign(order []string) error {
	if len(order) == 0 {
		l.order, l.points = order, nil
		return nil
	}
	desc := dimension.Descriptor{
		Kind:   dimension.Nominal,
		Domain: dimension.Domain{Categories: order},
	}
	points, err := scale.New(desc, 0, l.width, scale.WithPadding(l.padding))
	if err != nil {
		return err
	}
	l.order, l.points = order, points
	return nil
}

// Order returns the current axis order.
func (l *Layout) Order() []string { return slices.Clone(l.order) }

// Len returns the number of laid out axes.
func (l *Layout) Len() int { return len(l.order) }

// Width returns the canvas width.
func (l *Layout) Width() float64 { return l.width }

// Has reports whether name is laid out.
func (l *Layout) Has(name string) bool { return slices.Contains(l.order, name) }

// Position returns the x of name: the drag position while it is dragged,
// otherwise its slot on the point scale.
func (l *Layout) Position(name string) (float64, bool) {
	if x, ok := l.drag[name]; ok {
		return x, true
	}
	return l.slot(name)
}

func (l *Layout) slot(name string) (float64, bool) {
	if l.points == nil {
		return 0, false
	}
	return l.points.DomainToRange(dataset.String(name))
}

// Step returns the distance between adjacent axis slots.
func (l *Layout) Step() float64 {
	if l.points == nil {
		return 0
	}
	return l.points.Step()
}

// Resize changes the canvas width. Drag positions are clamped to it.
func (l *Layout) Resize(width float64) {
	l.width = width
	if l.points != nil {
		l.points.SetRange(0, width)
	}
	for name, x := range l.drag {
		l.drag[name] = l.clamp(x)
	}
}

// DragStart anchors name at its current position.
func (l *Layout) DragStart(name string) error {
	x, ok := l.Position(name)
	if !ok {
		return unknownAxis(name)
	}
	l.drag[name] = x
	return nil
}

// DragMove moves a dragged axis to x, clamped to the canvas, and re-sorts
// the order by effective position. It reports whether the order changed.
func (l *Layout) DragMove(name string, x float64) (bool, error) {
	if _, ok := l.drag[name]; !ok {
		if err := l.DragStart(name); err != nil {
			return false, err
		}
	}
	l.drag[name] = l.clamp(x)

	pos := make(map[string]float64, len(l.order))
	for _, n := range l.order {
		pos[n], _ = l.Position(n)
	}
	next := slices.Clone(l.order)
	slices.SortStableFunc(next, func(a, b string) int { return cmp.Compare(pos[a], pos[b]) })
	if slices.Equal(next, l.order) {
		return false, nil
	}
	return true, l.assign(next)
}

// DragEnd releases the anchor; the axis snaps to its slot in the final order.
func (l *Layout) DragEnd(name string) error {
	if _, ok := l.drag[name]; !ok {
		if !l.Has(name) {
			return unknownAxis(name)
		}
		return nil
	}
	delete(l.drag, name)
	return nil
}

// Dragging returns the axes currently being dragged, in order.
func (l *Layout) Dragging() []string {
	var out []string
	for _, n := range l.order {
		if _, ok := l.drag[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// SetOrder replaces the order. names must be a permutation of the current
// order; otherwise the order is left untouched.
func (l *Layout) SetOrder(names []string) error {
	if len(names) != len(l.order) {
		return errors.New(errors.ErrCodeUnknownAxis, "order has %d axes, layout has %d", len(names), len(l.order))
	}
	if err := checkUnique(names); err != nil {
		return err
	}
	for _, n := range names {
		if !l.Has(n) {
			return unknownAxis(n)
		}
	}
	return l.assign(slices.Clone(names))
}

// SetVisible replaces the set of laid out axes. Axes that remain keep
// their relative order; new axes are appended in the order given.
func (l *Layout) SetVisible(names []string) error {
	if err := checkUnique(names); err != nil {
		return err
	}
	next := make([]string, 0, len(names))
	for _, n := range l.order {
		if slices.Contains(names, n) {
			next = append(next, n)
		}
	}
	for _, n := range names {
		if !slices.Contains(next, n) {
			next = append(next, n)
		}
	}
	if err := l.assign(next); err != nil {
		return err
	}
	for n := range l.drag {
		if !l.Has(n) {
			delete(l.drag, n)
		}
	}
	return nil
}

// Polyline returns one vertex per axis in the current order, with y
// supplied by the caller.
func (l *Layout) Polyline(y func(name string) float64) []gg.Point {
	pts := make([]gg.Point, 0, len(l.order))
	for _, n := range l.order {
		x, _ := l.Position(n)
		pts = append(pts, gg.Pt(x, y(n)))
	}
	return pts
}

func (l *Layout) clamp(x float64) float64 {
	return math.Max(0, math.Min(l.width, x))
}

func checkUnique(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return errors.New(errors.ErrCodeInvalidInput, "axis %q listed twice", n)
		}
		seen[n] = true
	}
	return nil
}

func unknownAxis(name string) error {
	return errors.New(errors.ErrCodeUnknownAxis, "no axis named %q", name)
}
