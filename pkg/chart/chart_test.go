package chart

import (
	"bytes"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/brush"
	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/dimension"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/geom"
	"github.com/matzehuels/parcoords/pkg/linebrush"
	"github.com/matzehuels/parcoords/pkg/throttle"
)

// testOptions gives a 300x300 plot with no margins and minimums at the top,
// so axis pixels equal plot pixels.
func testOptions() Options {
	return Options{
		Width:         300,
		Height:        300,
		AxisPadding:   0.5,
		InvalidOffset: 20,
		Curve:         geom.CurveLinear,
		TopDown:       true,
	}
}

func newChart(t *testing.T, items []dataset.Item) *Chart {
	t.Helper()
	c := New(testOptions())
	if err := c.SetData(items); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	return c
}

// rows builds items from column-major values; nil entries are invalid.
func rows(cols map[string][]any) []dataset.Item {
	var n int
	for _, vs := range cols {
		n = max(n, len(vs))
	}
	items := make([]dataset.Item, n)
	for i := range items {
		items[i] = dataset.Item{ID: i, Values: map[string]dataset.Value{}}
	}
	for name, vs := range cols {
		for i, v := range vs {
			switch v := v.(type) {
			case float64:
				items[i].Values[name] = dataset.Number(v)
			case int:
				items[i].Values[name] = dataset.Number(float64(v))
			case string:
				items[i].Values[name] = dataset.String(v)
			default:
				items[i].Values[name] = dataset.Invalid()
			}
		}
	}
	return items
}

func TestEndToEndRangeBrush(t *testing.T) {
	c := newChart(t, rows(map[string][]any{"Speed": {10, 50, 90}}))

	var got [][]int
	c.OnSelectionChanged(func(ids []int) { got = append(got, ids) })

	dir, err := c.SetRangeBrush("Speed", 150, 300)
	if err != nil {
		t.Fatalf("SetRangeBrush() error: %v", err)
	}
	if dir != brush.Shrink {
		t.Errorf("new brush direction = %s, want shrink", dir)
	}
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{1, 2}) {
		t.Errorf("SelectedIDs() = %v, want [1 2]", ids)
	}
	if len(got) != 1 || !slices.Equal(got[0], []int{1, 2}) {
		t.Errorf("selection notifications = %v", got)
	}

	if _, err := c.ClearRangeBrush("Speed"); err != nil {
		t.Fatal(err)
	}
	if n := len(c.SelectedIDs()); n != 3 {
		t.Errorf("after clear %d selected, want 3", n)
	}
	if len(got) != 2 {
		t.Errorf("clear should notify, got %d notifications", len(got))
	}
}

func TestBrushesCombineWithAnd(t *testing.T) {
	c := newChart(t, rows(map[string][]any{
		"A": {0, 50, 100, 100},
		"B": {0, 100, 0, 100},
	}))

	// TopDown: value v on [0,100] maps to 3v.
	c.SetRangeBrush("A", 150, 300) // A >= 50
	c.SetRangeBrush("B", 0, 150)   // B <= 50
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{2}) {
		t.Errorf("SelectedIDs() = %v, want [2]", ids)
	}

	c.SetRangeBrush("B", 0, 300) // widen B
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{1, 2, 3}) {
		t.Errorf("after widening SelectedIDs() = %v", ids)
	}

	if dir := c.ClearAllBrushes(); dir != brush.Extend {
		t.Errorf("ClearAllBrushes() = %s", dir)
	}
	if n := len(c.SelectedIDs()); n != 4 {
		t.Errorf("after ClearAllBrushes %d selected", n)
	}
}

func TestInvalidValues(t *testing.T) {
	c := newChart(t, rows(map[string][]any{
		"A": {10, nil, 90},
		"B": {1, 2, 3},
	}))

	if !c.IsSelected(1) {
		t.Error("unbrushed axes must select items with invalid values")
	}
	c.SetRangeBrush("B", 0, 300)
	if !c.IsSelected(1) {
		t.Error("a brush on another axis should not exclude the invalid marker on A")
	}
	c.SetRangeBrush("A", 0, 300)
	if c.IsSelected(1) {
		t.Error("an active brush must never select the invalid marker")
	}

	snap := c.Snapshot()
	v := snap.Lines[1].Vertices[0]
	if !v.Invalid || v.Y != 320 {
		t.Errorf("invalid vertex = %+v, want Invalid at y=320", v)
	}
}

func TestTypeChangeRejected(t *testing.T) {
	c := newChart(t, rows(map[string][]any{"X": {1, 2, 3}}))
	c.SetRangeBrush("X", 0, 150)
	before := c.Model()
	selected := c.SelectedIDs()

	err := c.SetData(rows(map[string][]any{"X": {"a", "b"}}))
	if !errors.Is(err, errors.ErrCodeTypeChanged) || !errors.IsSchemaViolation(err) {
		t.Fatalf("SetData() error = %v, want %s", err, errors.ErrCodeTypeChanged)
	}

	after := c.Model()
	if len(after) != 1 || after[0].Kind != dimension.Numerical || after[0].Domain.Min != before[0].Domain.Min || after[0].Domain.Max != before[0].Domain.Max {
		t.Errorf("model changed after rejected update: %+v", after)
	}
	if c.Len() != 3 || !slices.Equal(c.SelectedIDs(), selected) {
		t.Error("items or selection changed after rejected update")
	}
	if _, _, ok := c.RangeBrush("X"); !ok {
		t.Error("brush lost after rejected update")
	}
}

func TestMixedColumnRejected(t *testing.T) {
	c := New(testOptions())
	err := c.SetData(rows(map[string][]any{"X": {1, "b"}}))
	if !errors.Is(err, errors.ErrCodeMixedColumn) {
		t.Errorf("SetData() error = %v, want %s", err, errors.ErrCodeMixedColumn)
	}
	if c.Len() != 0 {
		t.Error("rejected data should not be installed")
	}
}

func TestDataUpdateKeepsBrushesAndMetadata(t *testing.T) {
	c := New(testOptions())
	err := c.SetData(rows(map[string][]any{"A": {0, 100}, "B": {0, 100}}),
		dimension.Metadata{Name: "A", Unit: "kg", Objective: "max"})
	if err != nil {
		t.Fatal(err)
	}
	c.SetRangeBrush("A", 150, 300)
	c.SetRangeBrush("B", 0, 300)

	err = c.SetData(rows(map[string][]any{"A": {0, 25, 100}, "C": {"x", "y", "z"}}))
	if err != nil {
		t.Fatalf("SetData() error: %v", err)
	}

	if got := c.Order(); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("Order() = %v, want [A C]", got)
	}
	if lo, hi, ok := c.RangeBrush("A"); !ok || lo != 150 || hi != 300 {
		t.Errorf("brush on A = %v, %v, %v", lo, hi, ok)
	}
	if _, _, ok := c.RangeBrush("B"); ok {
		t.Error("removed dimension should drop its brush")
	}
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{2}) {
		t.Errorf("SelectedIDs() = %v, want [2]", ids)
	}

	model := c.Model()
	if model[0].Unit != "kg" || !model[0].IsCriterion() {
		t.Errorf("metadata not carried forward: %+v", model[0])
	}
}

func TestDataUpdateMergesCriterionMetadata(t *testing.T) {
	data := rows(map[string][]any{"X": {1, 2}})
	objective := func(c *Chart) *dimension.Objective {
		t.Helper()
		d := c.Model()[0]
		if !d.IsCriterion() {
			t.Fatalf("X should stay a criterion: %+v", d)
		}
		return d.Objective
	}

	t.Run("color on earlier criterion", func(t *testing.T) {
		c := New(testOptions())
		if err := c.SetData(data, dimension.Metadata{Name: "X", Objective: "max"}); err != nil {
			t.Fatal(err)
		}
		if err := c.SetData(data, dimension.Metadata{Name: "X", Color: "#ff0000"}); err != nil {
			t.Fatal(err)
		}
		if obj := objective(c); obj.Direction != dimension.Maximize || obj.Color != "#ff0000" {
			t.Errorf("objective = %+v, want max #ff0000", obj)
		}
	})

	t.Run("direction only keeps color", func(t *testing.T) {
		c := New(testOptions())
		if err := c.SetData(data, dimension.Metadata{Name: "X", Objective: "max", Color: "#00ff00"}); err != nil {
			t.Fatal(err)
		}
		if err := c.SetData(data, dimension.Metadata{Name: "X", Objective: "min"}); err != nil {
			t.Fatal(err)
		}
		if obj := objective(c); obj.Direction != dimension.Minimize || obj.Color != "#00ff00" {
			t.Errorf("objective = %+v, want min #00ff00", obj)
		}
	})
}

func TestRegisterWarnings(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions()
	opts.Logger = log.NewWithOptions(&buf, log.Options{})
	c := New(opts)
	if err := c.SetData(rows(map[string][]any{"A": {1, 2}})); err != nil {
		t.Fatal(err)
	}

	warnings := c.Register(
		dimension.Metadata{Name: "A", Unit: "m", Color: "#ff0000"},
		dimension.Metadata{Name: "Z", Unit: "s"},
	)
	if len(warnings) != 2 {
		t.Fatalf("Register() warnings = %v, want 2", warnings)
	}
	if !strings.Contains(buf.String(), "Ignoring dimension metadata") {
		t.Errorf("warnings should be logged, got %q", buf.String())
	}
	if got := c.Snapshot().Axes[0].Title; got != "A [m]" {
		t.Errorf("unit should still apply, title = %q", got)
	}
}

func TestRegisterUnitLabelsBrush(t *testing.T) {
	c := newChart(t, rows(map[string][]any{"A": {0, 100}}))
	c.Register(dimension.Metadata{Name: "A", Unit: "kg"})
	c.SetRangeBrush("A", 300, 150)

	lo, hi, ok := c.RangeBrushLabels("A")
	if !ok || lo != "50 kg" || hi != "100 kg" {
		t.Errorf("RangeBrushLabels() = %q, %q, %v, want 50 kg, 100 kg", lo, hi, ok)
	}
	if _, _, ok := c.RangeBrushLabels("missing"); ok {
		t.Error("unknown axis should report no labels")
	}
}

func TestLineBrushSelection(t *testing.T) {
	// Axes at x=75 and x=225; item 0 runs along y=0, item 1 along y=300.
	c := newChart(t, rows(map[string][]any{"A": {0, 100}, "B": {0, 100}}))

	if dir := c.ProcessLinePoint(gg.Pt(150, -10)); dir != brush.Unchanged {
		t.Errorf("first point = %s", dir)
	}
	if n := len(c.SelectedIDs()); n != 2 {
		t.Errorf("started line brush should not constrain, %d selected", n)
	}
	c.TrackLinePoint(gg.Pt(150, 5))
	if seg := c.Snapshot().LineBrush; seg == nil || seg.Completed || seg.Y2 != 5 {
		t.Errorf("preview segment = %+v", seg)
	}

	if dir := c.ProcessLinePoint(gg.Pt(150, 10)); dir != brush.Shrink {
		t.Errorf("second point = %s", dir)
	}
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{0}) {
		t.Errorf("SelectedIDs() = %v, want [0]", ids)
	}

	if dir := c.MoveLineHandle(linebrush.HandleEnd, gg.Pt(150, 310)); dir != brush.Unknown {
		t.Errorf("MoveLineHandle() = %s", dir)
	}
	if n := len(c.SelectedIDs()); n != 2 {
		t.Errorf("segment spanning both lines should select both, got %d", n)
	}

	if dir := c.CancelLineBrush(); dir != brush.Extend {
		t.Errorf("CancelLineBrush() = %s", dir)
	}
	if c.LineBrushState() != linebrush.Idle || c.Snapshot().LineBrush != nil {
		t.Error("cancel should return the line brush to idle")
	}
}

func TestLineBrushFollowsAxisMoves(t *testing.T) {
	// Item 0 rises from A=0 to B=100; item 1 falls.
	c := newChart(t, rows(map[string][]any{"A": {0, 100}, "B": {100, 0}}))
	// A short horizontal stroke just below the top, next to the first axis.
	c.ProcessLinePoint(gg.Pt(60, 5))
	c.ProcessLinePoint(gg.Pt(90, 5))
	// Item 0 leaves the first axis at y=0 and crosses y=5 at x=77.5.
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{0}) {
		t.Fatalf("SelectedIDs() = %v, want [0]", ids)
	}

	// After the swap item 1 starts at the top of the first axis instead.
	if err := c.SetAxisOrder([]string{"B", "A"}); err != nil {
		t.Fatal(err)
	}
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{1}) {
		t.Errorf("after reorder SelectedIDs() = %v, want [1]", ids)
	}
}

func TestDragReorder(t *testing.T) {
	c := newChart(t, rows(map[string][]any{"A": {1}, "B": {2}, "C": {3}}))
	if got := c.Order(); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("Order() = %v", got)
	}

	if err := c.DragStart("C"); err != nil {
		t.Fatal(err)
	}
	if err := c.DragMove("C", 40); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if snap.Axes[0].Name != "C" || !snap.Axes[0].Dragging || snap.Axes[0].X != 40 {
		t.Errorf("dragged axis = %+v", snap.Axes[0])
	}
	if err := c.DragEnd("C"); err != nil {
		t.Fatal(err)
	}
	if got := c.Order(); !slices.Equal(got, []string{"C", "A", "B"}) {
		t.Errorf("Order() = %v, want [C A B]", got)
	}
	if x := c.Snapshot().Axes[0].X; x != 50 {
		t.Errorf("released axis should snap to its slot, x=%v", x)
	}

	if err := c.DragMove("Z", 10); !errors.Is(err, errors.ErrCodeUnknownAxis) {
		t.Errorf("DragMove(Z) error = %v", err)
	}
	if err := c.SetAxisOrder([]string{"A", "B"}); err == nil {
		t.Error("SetAxisOrder() with a subset should fail")
	}
	if got := c.Order(); !slices.Equal(got, []string{"C", "A", "B"}) {
		t.Errorf("failed SetAxisOrder changed order to %v", got)
	}
}

func TestSetVisibleDimensions(t *testing.T) {
	c := newChart(t, rows(map[string][]any{"A": {0, 100}, "B": {0, 100}, "C": {0, 100}}))
	c.SetRangeBrush("B", 0, 1)
	if n := len(c.SelectedIDs()); n != 1 {
		t.Fatalf("%d selected, want 1", n)
	}

	if err := c.SetVisibleDimensions([]string{"C", "A"}); err != nil {
		t.Fatalf("SetVisibleDimensions() error: %v", err)
	}
	if got := c.Order(); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("Order() = %v, want [A C]", got)
	}
	if n := len(c.SelectedIDs()); n != 2 {
		t.Errorf("hiding the brushed axis should release its constraint, %d selected", n)
	}
	if _, err := c.SetRangeBrush("B", 0, 1); !errors.Is(err, errors.ErrCodeUnknownAxis) {
		t.Errorf("brushing a hidden axis error = %v", err)
	}

	err := c.SetVisibleDimensions([]string{"A", "nope"})
	if !errors.IsSchemaViolation(err) {
		t.Errorf("unknown dimension error = %v", err)
	}
	if got := c.Order(); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("failed SetVisibleDimensions changed order to %v", got)
	}
}

func TestResizeMapsBrushes(t *testing.T) {
	c := newChart(t, rows(map[string][]any{"A": {10, 50, 90}}))
	c.SetRangeBrush("A", 150, 300)
	c.Resize(600, 600)

	lo, hi, ok := c.RangeBrush("A")
	if !ok || lo != 300 || hi != 600 {
		t.Errorf("brush after resize = %v, %v, %v; want 300, 600", lo, hi, ok)
	}
	if ids := c.SelectedIDs(); !slices.Equal(ids, []int{1, 2}) {
		t.Errorf("SelectedIDs() = %v", ids)
	}
}

func TestSnapshotAxes(t *testing.T) {
	c := New(testOptions())
	err := c.SetData(rows(map[string][]any{"Cost": {1, 9}, "Make": {"bmw", "audi"}}),
		dimension.Metadata{Name: "Cost", Unit: "$", Objective: "min", Color: "#00ff00"})
	if err != nil {
		t.Fatal(err)
	}
	c.SetRangeBrushValues("Cost", 1, 5)

	snap := c.Snapshot()
	if snap.ID == "" || snap.ID != c.ID() {
		t.Errorf("snapshot ID = %q", snap.ID)
	}
	cost, mk := snap.Axes[0], snap.Axes[1]
	if cost.Role != "criterion" || cost.Color != "#00ff00" || cost.Handles.Low || !cost.Handles.High {
		t.Errorf("criterion axis = %+v", cost)
	}
	if cost.Brush == nil || cost.Brush.Lo != 0 || cost.Brush.Hi != 150 {
		t.Errorf("brush = %+v", cost.Brush)
	}
	if lo, hi, ok := c.RangeBrushValues("Cost"); !ok || lo != 1 || hi != 5 {
		t.Errorf("RangeBrushValues() = %v, %v, %v, want 1, 5", lo, hi, ok)
	}
	if mk.Kind != "nominal" || len(mk.Ticks) != 2 || mk.Ticks[0].Label != "audi" {
		t.Errorf("nominal axis = %+v", mk)
	}
	if !mk.Handles.Low || !mk.Handles.High {
		t.Error("parameter axes offer both handles")
	}
	if _, err := c.SetRangeBrushValues("Make", 0, 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("value brush on nominal axis error = %v", err)
	}

	if p, ok := c.Path(0); !ok || len(p.Elements()) != 2 {
		t.Errorf("Path(0) = %v, %v", p, ok)
	}
	if _, ok := c.Path(99); ok {
		t.Error("Path() of an unknown ID should fail")
	}
}

func TestHoverNotifiesImmediately(t *testing.T) {
	opts := testOptions()
	opts.ThrottleInterval = time.Hour
	c := New(opts)
	if err := c.SetData(rows(map[string][]any{"A": {1, 2}})); err != nil {
		t.Fatal(err)
	}

	type event struct {
		id int
		ok bool
	}
	var events []event
	c.OnHoverChanged(func(id int, ok bool) { events = append(events, event{id, ok}) })

	if !c.Hover(1) || c.Hover(42) {
		t.Error("Hover() should accept known IDs only")
	}
	c.Hover(1) // unchanged
	c.ClearHover()
	c.ClearHover()

	want := []event{{1, true}, {0, false}}
	if !slices.Equal(events, want) {
		t.Errorf("hover events = %v, want %v", events, want)
	}
}

// manualClock fires timers only when Advance is called.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool { t.stopped = true; return true }

func (c *manualClock) AfterFunc(_ time.Duration, f func()) throttle.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance() {
	c.mu.Lock()
	due := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, t := range due {
		if !t.stopped {
			t.f()
		}
	}
}

func TestSelectionNotificationsThrottled(t *testing.T) {
	clock := &manualClock{}
	opts := testOptions()
	opts.ThrottleInterval = 200 * time.Millisecond
	opts.Clock = clock
	c := New(opts)
	if err := c.SetData(rows(map[string][]any{"A": {0, 50, 100}})); err != nil {
		t.Fatal(err)
	}

	var got [][]int
	c.OnSelectionChanged(func(ids []int) { got = append(got, ids) })

	c.SetRangeBrush("A", 0, 300)
	c.SetRangeBrush("A", 0, 200)
	c.SetRangeBrush("A", 0, 100)
	if len(got) != 1 {
		t.Fatalf("only the leading call should fire inside the window, got %v", got)
	}

	clock.Advance()
	if len(got) != 2 || !slices.Equal(got[1], []int{0}) {
		t.Fatalf("trailing call should carry the latest selection, got %v", got)
	}

	c.SetRangeBrush("A", 0, 50)
	c.ClearRangeBrush("A")
	clock.Advance()
	last := got[len(got)-1]
	if len(last) != 3 {
		t.Errorf("final notification = %v, want all items", last)
	}
}

func TestConcurrentUse(t *testing.T) {
	c := newChart(t, rows(map[string][]any{"A": {0, 25, 50, 75, 100}, "B": {5, 4, 3, 2, 1}}))
	c.OnSelectionChanged(func([]int) {})

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				switch (w + i) % 4 {
				case 0:
					c.SetRangeBrush("A", float64(i), 300)
				case 1:
					c.ClearRangeBrush("B")
				case 2:
					_ = c.Snapshot()
				default:
					c.Hover(i % 5)
				}
			}
		}()
	}
	wg.Wait()
}
