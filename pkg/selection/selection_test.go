package selection

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/matzehuels/parcoords/pkg/brush"
)

// within builds a predicate over values for a single [lo, hi] brush.
func within(values []float64, lo, hi float64) Predicate {
	return func(i int) bool { return lo <= values[i] && values[i] <= hi }
}

func TestResetSelectsAll(t *testing.T) {
	e := New(4)
	if e.Count() != 4 || !e.Selected(3) || e.Selected(4) || e.Selected(-1) {
		t.Fatalf("New(4) state: count=%d", e.Count())
	}
	e.Update(brush.Unknown, func(int) bool { return false })
	e.Reset(2)
	if e.Count() != 2 || e.Len() != 2 || !e.Selected(1) {
		t.Errorf("Reset(2) state: count=%d len=%d", e.Count(), e.Len())
	}
}

func TestUpdateTestsOnlyAffectedItems(t *testing.T) {
	values := []float64{10, 50, 90}
	e := New(len(values))

	st := e.Update(brush.Shrink, within(values, 50, 100))
	if st.Tested != 3 || st.Changed != 1 {
		t.Errorf("shrink from all selected: %+v", st)
	}
	if got := e.SelectedIndices(); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("SelectedIndices() = %v", got)
	}

	st = e.Update(brush.Extend, within(values, 0, 100))
	if st.Tested != 1 || st.Changed != 1 {
		t.Errorf("extend should test only unselected items: %+v", st)
	}

	st = e.Update(brush.Unchanged, within(values, 1000, 1000))
	if st.Tested != 0 || e.Count() != 3 {
		t.Errorf("unchanged should do nothing: %+v count=%d", st, e.Count())
	}
}

// TestHintsMatchFullRecompute drives a random sequence of range brush
// mutations and checks the hinted result against a fresh recompute.
func TestHintsMatchFullRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 200)
	for i := range values {
		values[i] = rng.Float64() * 300
	}

	var b brush.Range
	e := New(len(values))
	pass := func(i int) bool {
		lo, hi, ok := b.Extent()
		return !ok || (lo <= values[i] && values[i] <= hi)
	}

	for step := 0; step < 500; step++ {
		var dir brush.Direction
		if rng.Intn(10) == 0 {
			dir = b.Clear()
		} else {
			dir = b.SetExtent(rng.Float64()*300, rng.Float64()*300)
		}
		e.Update(dir, pass)

		fresh := New(len(values))
		fresh.Recompute(pass)
		if !slices.Equal(e.SelectedIndices(), fresh.SelectedIndices()) {
			t.Fatalf("step %d (%s): hinted selection diverged from recompute", step, dir)
		}
		if e.Count() != fresh.Count() {
			t.Fatalf("step %d: count %d != %d", step, e.Count(), fresh.Count())
		}
	}
}
