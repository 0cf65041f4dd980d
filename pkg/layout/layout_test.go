package layout

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/parcoords/pkg/errors"
)

func newABC(t *testing.T) *Layout {
	t.Helper()
	l, err := New([]string{"A", "B", "C"}, 300, 0.5)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return l
}

func TestPositions(t *testing.T) {
	l := newABC(t)
	for name, want := range map[string]float64{"A": 50, "B": 150, "C": 250} {
		if got, ok := l.Position(name); !ok || math.Abs(got-want) > 1e-9 {
			t.Errorf("Position(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := l.Position("Z"); ok {
		t.Error("unknown axis should have no position")
	}

	l.Resize(600)
	if got, _ := l.Position("B"); got != 300 {
		t.Errorf("after Resize(600) Position(B) = %v, want 300", got)
	}
}

func TestDragReorder(t *testing.T) {
	tests := []struct {
		name    string
		axis    string
		x       float64
		want    []string
		changed bool
	}{
		{"drag C left of A", "C", 40, []string{"C", "A", "B"}, true},
		{"drag B without crossing", "B", 160, []string{"A", "B", "C"}, false},
		{"drag A past B", "A", 200, []string{"B", "A", "C"}, true},
		{"drag beyond canvas", "A", 1e6, []string{"B", "C", "A"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newABC(t)
			if err := l.DragStart(tt.axis); err != nil {
				t.Fatalf("DragStart() error: %v", err)
			}
			changed, err := l.DragMove(tt.axis, tt.x)
			if err != nil {
				t.Fatalf("DragMove() error: %v", err)
			}
			if changed != tt.changed {
				t.Errorf("DragMove() changed = %v, want %v", changed, tt.changed)
			}
			if got := l.Order(); !slices.Equal(got, tt.want) {
				t.Errorf("Order() = %v, want %v", got, tt.want)
			}
			if got, _ := l.Position(tt.axis); got != math.Min(tt.x, 300) {
				t.Errorf("dragged axis should follow the pointer, got %v", got)
			}
			if got := l.Dragging(); !slices.Equal(got, []string{tt.axis}) {
				t.Errorf("Dragging() = %v", got)
			}

			if err := l.DragEnd(tt.axis); err != nil {
				t.Fatalf("DragEnd() error: %v", err)
			}
			if len(l.Dragging()) != 0 {
				t.Error("DragEnd() should release the anchor")
			}
			if got := l.Order(); !slices.Equal(got, tt.want) {
				t.Errorf("Order() after DragEnd = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragContinuousReflow(t *testing.T) {
	l := newABC(t)
	_ = l.DragStart("A")
	for _, x := range []float64{100, 160, 220, 260} {
		if _, err := l.DragMove("A", x); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.Order(); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Errorf("Order() = %v", got)
	}
	// Non-dragged axes sit on their new slots.
	if got, _ := l.Position("B"); got != 50 {
		t.Errorf("Position(B) = %v, want 50", got)
	}
}

func TestDragUnknownAxis(t *testing.T) {
	l := newABC(t)
	if err := l.DragStart("Z"); !errors.Is(err, errors.ErrCodeUnknownAxis) {
		t.Errorf("DragStart(Z) error = %v", err)
	}
	if _, err := l.DragMove("Z", 10); !errors.Is(err, errors.ErrCodeUnknownAxis) {
		t.Errorf("DragMove(Z) error = %v", err)
	}
	if err := l.DragEnd("Z"); !errors.Is(err, errors.ErrCodeUnknownAxis) {
		t.Errorf("DragEnd(Z) error = %v", err)
	}
}

func TestSetOrder(t *testing.T) {
	l := newABC(t)
	if err := l.SetOrder([]string{"C", "B", "A"}); err != nil {
		t.Fatalf("SetOrder() error: %v", err)
	}
	if got, _ := l.Position("C"); got != 50 {
		t.Errorf("Position(C) = %v, want 50", got)
	}

	bad := [][]string{
		{"A", "B"},
		{"A", "B", "Z"},
		{"A", "A", "B"},
	}
	for _, names := range bad {
		if err := l.SetOrder(names); err == nil {
			t.Errorf("SetOrder(%v) should fail", names)
		}
		if got := l.Order(); !slices.Equal(got, []string{"C", "B", "A"}) {
			t.Errorf("failed SetOrder(%v) changed order to %v", names, got)
		}
	}
	if err := l.SetOrder([]string{"A", "B", "Z"}); !errors.IsSchemaViolation(err) {
		t.Errorf("unknown axis should be a schema violation, got %v", err)
	}
}

func TestSetVisible(t *testing.T) {
	l := newABC(t)
	_ = l.SetOrder([]string{"C", "A", "B"})

	if err := l.SetVisible([]string{"B", "D", "C"}); err != nil {
		t.Fatalf("SetVisible() error: %v", err)
	}
	if got := l.Order(); !slices.Equal(got, []string{"C", "B", "D"}) {
		t.Errorf("Order() = %v, want [C B D]", got)
	}

	if err := l.SetVisible(nil); err != nil {
		t.Fatalf("SetVisible(nil) error: %v", err)
	}
	if l.Len() != 0 || l.Step() != 0 {
		t.Errorf("empty layout Len=%d Step=%v", l.Len(), l.Step())
	}
	if _, ok := l.Position("C"); ok {
		t.Error("hidden axis should have no position")
	}
}

func TestPolyline(t *testing.T) {
	l := newABC(t)
	ys := map[string]float64{"A": 1, "B": 2, "C": 3}
	pts := l.Polyline(func(n string) float64 { return ys[n] })
	if len(pts) != 3 || pts[0].X != 50 || pts[2].Y != 3 {
		t.Errorf("Polyline() = %v", pts)
	}
}
