// Package render turns chart snapshots into output files.
//
// # Overview
//
// Every sink consumes a [chart.Snapshot], the same frame description an
// interactive front end would draw from, so a rendered file shows exactly
// what the chart state says: axis positions, ticks, brush extents, the line
// brush and per-polyline selection.
//
//   - [RenderSVG]: vector output with labels and class names for styling
//   - [RenderPNG]: raster output drawn with gogpu/gg, labels omitted
//   - [RenderJSON]: the snapshot itself, indented
//   - [ToPDF]: converts SVG output with the external rsvg-convert tool
//
// [Render] dispatches by format name and reports timing through
// [observability.Render].
//
//	snap := c.Snapshot()
//	svg := render.RenderSVG(snap, render.WithTitle("cars"))
//	png, err := render.RenderPNG(snap, render.WithScale(2))
//
// Polylines are rebuilt from snapshot vertices with [geom.Build] using the
// snapshot's curve, the same construction the line brush tests against.
package render
