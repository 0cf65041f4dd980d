// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about selection updates, data loading, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSelectionHooks(&mySelectionHooks{})
//	    observability.SetDataHooks(&myDataHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	st := engine.Update(dir, pass)
//	observability.Selection().OnSelectionUpdate("Speed", dir.String(), st.Tested, st.Changed, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Selection Hooks
// =============================================================================

// SelectionHooks receives events from the selection engine. Selection updates
// run synchronously inside input handlers, so these hooks carry no context.
type SelectionHooks interface {
	// OnSelectionUpdate records one incremental re-evaluation. source is the
	// axis name, or "line" for the line brush; hint is the direction name.
	OnSelectionUpdate(source, hint string, tested, changed int, duration time.Duration)

	// OnReorder records an axis order change.
	OnReorder(order []string)
}

// =============================================================================
// Data Hooks
// =============================================================================

// DataHooks receives events from dataset ingestion and model reconciliation.
type DataHooks interface {
	// OnLoadStart records the start of reading a data file.
	OnLoadStart(ctx context.Context, path string)

	// OnLoadComplete records the end of reading a data file.
	OnLoadComplete(ctx context.Context, path string, rows int, duration time.Duration, err error)

	// OnSchemaViolation records a rejected data update.
	OnSchemaViolation(code string)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the output sinks.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSelectionHooks is a no-op implementation of SelectionHooks.
type NoopSelectionHooks struct{}

func (NoopSelectionHooks) OnSelectionUpdate(string, string, int, int, time.Duration) {}
func (NoopSelectionHooks) OnReorder([]string)                                        {}

// NoopDataHooks is a no-op implementation of DataHooks.
type NoopDataHooks struct{}

func (NoopDataHooks) OnLoadStart(context.Context, string)                                {}
func (NoopDataHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopDataHooks) OnSchemaViolation(string)                                           {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                                {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	selectionHooks SelectionHooks = NoopSelectionHooks{}
	dataHooks      DataHooks      = NoopDataHooks{}
	renderHooks    RenderHooks    = NoopRenderHooks{}
	hooksMu        sync.RWMutex
)

// SetSelectionHooks registers custom selection hooks.
// This should be called once at application startup before any chart is built.
func SetSelectionHooks(h SelectionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		selectionHooks = h
	}
}

// SetDataHooks registers custom data hooks.
func SetDataHooks(h DataHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dataHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Selection returns the registered selection hooks.
func Selection() SelectionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return selectionHooks
}

// Data returns the registered data hooks.
func Data() DataHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dataHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	selectionHooks = NoopSelectionHooks{}
	dataHooks = NoopDataHooks{}
	renderHooks = NoopRenderHooks{}
}
