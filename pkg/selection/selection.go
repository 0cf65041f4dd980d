// Package selection tracks which items pass every active brush.
//
// The engine keeps one bit per item. Brush mutations hand it a
// [brush.Direction] and the conjunction of all brush predicates; the
// direction bounds which items are re-evaluated:
//
//	Unchanged  nothing
//	Extend     currently unselected items only
//	Shrink     currently selected items only
//	Unknown    every item
//
// The result is always identical to a full re-evaluation, provided the
// direction correctly describes the mutation.
package selection

import (
	"github.com/matzehuels/parcoords/pkg/brush"
)

// Predicate reports whether item i passes every active brush.
type Predicate func(i int) bool

// Stats describes the work done by one update.
type Stats struct {
	Tested  int // items the predicate was evaluated for
	Changed int // items whose state flipped
}

// Engine holds the selection state of n items, indexed 0..n-1.
type Engine struct {
	selected []bool
	count    int
}

// New returns an engine over n items, all selected.
func New(n int) *Engine {
	e := &Engine{}
	e.Reset(n)
	return e
}

// Reset resizes the engine to n items and selects all of them.
func (e *Engine) Reset(n int) {
	if cap(e.selected) >= n {
		e.selected = e.selected[:n]
	} else {
		e.selected = make([]bool, n)
	}
	for i := range e.selected {
		e.selected[i] = true
	}
	e.count = n
}

// Len returns the number of tracked items.
func (e *Engine) Len() int { return len(e.selected) }

// Count returns the number of selected items.
func (e *Engine) Count() int { return e.count }

// Selected reports whether item i is selected. Out-of-range indices are not.
func (e *Engine) Selected(i int) bool {
	return i >= 0 && i < len(e.selected) && e.selected[i]
}

// SelectedIndices returns the indices of selected items in ascending order.
func (e *Engine) SelectedIndices() []int {
	out := make([]int, 0, e.count)
	for i, sel := range e.selected {
		if sel {
			out = append(out, i)
		}
	}
	return out
}

// Update re-evaluates the items dir says can have changed.
func (e *Engine) Update(dir brush.Direction, pass Predicate) Stats {
	var st Stats
	if dir == brush.Unchanged {
		return st
	}
	for i, sel := range e.selected {
		switch {
		case dir == brush.Extend && sel:
			continue
		case dir == brush.Shrink && !sel:
			continue
		}
		st.Tested++
		if next := pass(i); next != sel {
			e.selected[i] = next
			st.Changed++
			if next {
				e.count++
			} else {
				e.count--
			}
		}
	}
	return st
}

// Recompute re-evaluates every item.
func (e *Engine) Recompute(pass Predicate) Stats {
	return e.Update(brush.Unknown, pass)
}
