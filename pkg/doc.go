// Package pkg provides the core libraries for parcoords, an interactive
// parallel-coordinates filtering engine.
//
// # Overview
//
// Every data item is drawn as a polyline crossing one vertical axis per
// dimension. Users filter items by brushing value ranges on axes or by
// drawing a line brush across polylines; the selection is the set of items
// that satisfy every active brush. The pkg directory is organized into
// three main areas:
//
//  1. Model - items, values and per-dimension descriptors
//  2. Interaction - scales, brushes, selection and axis layout
//  3. Surfaces - data import, configuration and rendering
//
// # Architecture
//
// The typical data flow through parcoords:
//
//	CSV / XLSX / JSON file
//	         ↓
//	    [ingest] package (read a table of values)
//	         ↓
//	    [chart] package (scales, layout, brushes, selection)
//	         ↓
//	    [render] package (snapshot to SVG/PNG/PDF/JSON)
//
// # Quick Start
//
// Load a file, brush an axis and render it:
//
//	tbl, _ := ingest.Import(ctx, "cars.csv")
//
//	c := chart.New(chart.DefaultOptions())
//	c.OnSelectionChanged(func(ids []int) {
//	    fmt.Println(len(ids), "selected")
//	})
//	_ = c.SetData(tbl.Items())
//	_, _ = c.SetRangeBrushValues("power", 100, 150)
//
//	svg, _ := render.Render(ctx, c.Snapshot(), render.FormatSVG)
//
// # Main Packages
//
// ## Model
//
// [dataset] - Items, typed values (number, string, invalid) and column
// discovery.
//
// [dimension] - Descriptors: numerical or nominal kind, domain, titles and
// optional criterion objectives.
//
// ## Interaction
//
// [scale] - Maps domain values to axis pixels and back, with tick generation.
//
// [brush] - One-dimensional range brushes and the direction of each change.
//
// [selection] - Incremental selection over all range brushes and the line
// brush, using the change direction to rescan only what is needed.
//
// [linebrush] - Two-click line brush with preview and handle dragging.
//
// [geom] - Polyline paths (linear or monotone) and segment intersection.
//
// [layout] - Horizontal axis positions and drag-to-reorder.
//
// [throttle] - Per-source trailing-edge notification throttling.
//
// [chart] - The engine tying the above together behind one mutex.
//
// ## Surfaces
//
// [ingest] - CSV, XLSX and JSON readers producing a table of values.
//
// [config] - TOML/YAML chart configuration with environment overrides.
//
// [render] - Snapshot sinks for SVG, PNG, PDF and JSON.
//
// [observability] - Hooks for loads, renders and selection changes.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/chart/...  # Specific package
//	go test -run Example     # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/dataset
// [dimension]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/dimension
// [scale]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/scale
// [brush]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/brush
// [selection]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/selection
// [linebrush]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/linebrush
// [geom]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/geom
// [layout]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/layout
// [throttle]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/throttle
// [chart]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/chart
// [ingest]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/ingest
// [config]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/config
// [render]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/parcoords/pkg/errors
package pkg
