package brush

import (
	"math"

	"github.com/matzehuels/parcoords/pkg/dataset"
)

// Projector maps a value to an axis pixel. *scale.Scale implements it.
type Projector interface {
	DomainToRange(v dataset.Value) (px float64, ok bool)
}

// Range is a range brush over one axis, stored in pixel space.
// The zero Range is inactive and selects everything.
type Range struct {
	active bool
	lo, hi float64
}

// Active reports whether the brush constrains its axis.
func (r *Range) Active() bool { return r.active }

// Extent returns the sorted pixel bounds. ok is false when inactive.
func (r *Range) Extent() (lo, hi float64, ok bool) {
	return r.lo, r.hi, r.active
}

// SetExtent sets the brush to [a, b] (in either order) and classifies the
// change against the previous extent.
func (r *Range) SetExtent(a, b float64) Direction {
	lo, hi := math.Min(a, b), math.Max(a, b)
	prev := *r
	r.active, r.lo, r.hi = true, lo, hi
	return classify(prev, *r)
}

// Clear removes the constraint. Clearing an inactive brush is a no-op.
func (r *Range) Clear() Direction {
	if !r.active {
		return Unchanged
	}
	*r = Range{}
	return Extend
}

// Revalidate clamps the extent into the pixel range [r0, r1]. A brush that
// collapses to zero width, having had positive width, is cleared.
func (r *Range) Revalidate(r0, r1 float64) Direction {
	if !r.active {
		return Unchanged
	}
	min, max := math.Min(r0, r1), math.Max(r0, r1)
	lo, hi := clamp(r.lo, min, max), clamp(r.hi, min, max)
	if lo == hi && r.lo != r.hi {
		return r.Clear()
	}
	return r.SetExtent(lo, hi)
}

// IsSelected reports whether v passes the brush. An inactive brush selects
// every value including the invalid marker; an active brush never selects
// a value the projector cannot place.
func (r *Range) IsSelected(p Projector, v dataset.Value) bool {
	if !r.active {
		return true
	}
	px, ok := p.DomainToRange(v)
	if !ok {
		return false
	}
	px = Round(px)
	return Round(r.lo) <= px && px <= Round(r.hi)
}

// Round rounds f to six decimal places, the precision used by IsSelected.
func Round(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// classify compares two brush states.
//
//   - identical → Unchanged
//   - inactive → active → Shrink
//   - same width, moved → Unknown
//   - both bounds inward → Shrink
//   - bounds outward only → Extend
//   - one outward, one inward → Unknown
func classify(prev, next Range) Direction {
	switch {
	case prev == next:
		return Unchanged
	case !prev.active && next.active:
		return Shrink
	case prev.active && !next.active:
		return Extend
	}

	if Round(prev.hi-prev.lo) == Round(next.hi-next.lo) {
		return Unknown
	}

	inward := next.lo > prev.lo || next.hi < prev.hi
	outward := next.lo < prev.lo || next.hi > prev.hi
	switch {
	case inward && !outward:
		return Shrink
	case outward && !inward:
		return Extend
	default:
		return Unknown
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
