package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Selection hooks
	s := NoopSelectionHooks{}
	s.OnSelectionUpdate("Speed", "shrink", 10, 3, time.Millisecond)
	s.OnReorder([]string{"A", "B"})

	// Data hooks
	d := NoopDataHooks{}
	d.OnLoadStart(ctx, "cars.csv")
	d.OnLoadComplete(ctx, "cars.csv", 406, time.Second, nil)
	d.OnSchemaViolation("SCHEMA_TYPE_CHANGED")

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg")
	r.OnRenderComplete(ctx, "svg", 2048, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Selection().(NoopSelectionHooks); !ok {
		t.Error("Selection() should return NoopSelectionHooks by default")
	}
	if _, ok := Data().(NoopDataHooks); !ok {
		t.Error("Data() should return NoopDataHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	customSelection := &testSelectionHooks{}
	SetSelectionHooks(customSelection)
	if Selection() != customSelection {
		t.Error("SetSelectionHooks should set custom hooks")
	}

	customData := &testDataHooks{}
	SetDataHooks(customData)
	if Data() != customData {
		t.Error("SetDataHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Selection().(NoopSelectionHooks); !ok {
		t.Error("Reset() should restore NoopSelectionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSelectionHooks{}
	SetSelectionHooks(custom)

	// Setting nil should be ignored
	SetSelectionHooks(nil)

	if Selection() != custom {
		t.Error("SetSelectionHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSelectionHooks struct{ NoopSelectionHooks }
type testDataHooks struct{ NoopDataHooks }
type testRenderHooks struct{ NoopRenderHooks }
