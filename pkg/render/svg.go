package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/geom"
)

const (
	tickLength   = 5.0
	brushWidth   = 14.0
	handleRadius = 4.0
	titleOffset  = 14.0
	fontSize     = 11.0
)

const svgCSS = `
    .line { fill: none; }
    .line.deselected { stroke-opacity: 0.6; }
    .axis text { font-family: sans-serif; font-size: %.0fpx; }
    .axis .title { font-weight: bold; text-anchor: middle; }
    .brush { fill-opacity: 0.25; stroke-width: 1; }
    .line-brush { stroke-width: 2; }`

// RenderSVG draws snap as an SVG document. Deselected polylines are drawn
// first so selected ones stay on top; the hovered polyline is drawn last.
func RenderSVG(snap chart.Snapshot, opts ...Option) []byte {
	r := newRenderer(opts...)
	pal := r.palette

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(snap.Width), num(snap.Height), snap.Width, snap.Height)
	fmt.Fprintf(&buf, "  <style>"+svgCSS+"\n  </style>\n", fontSize)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", pal.Background)
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%s" y="%s" font-family="sans-serif" font-size="14" fill="%s">%s</text>`+"\n",
			num(8), num(18), pal.Text, escapeXML(r.title))
	}

	var hovered *chart.Polyline
	for _, pass := range []bool{false, true} {
		class, color := "deselected", pal.Deselected
		if pass {
			class, color = "selected", pal.Selected
		}
		fmt.Fprintf(&buf, `  <g class="lines %s" stroke="%s" stroke-width="%s">`+"\n", class, color, num(r.stroke))
		for i, line := range snap.Lines {
			if line.Selected != pass {
				continue
			}
			if snap.Hovered != nil && *snap.Hovered == line.ID {
				hovered = &snap.Lines[i]
			}
			fmt.Fprintf(&buf, `    <path id="line-%d" class="line %s" d="%s"/>`+"\n",
				line.ID, class, pathData(geom.Build(line.Points(), snap.Curve)))
		}
		buf.WriteString("  </g>\n")
	}
	if hovered != nil {
		fmt.Fprintf(&buf, `  <path class="line hovered" stroke="%s" stroke-width="%s" d="%s"/>`+"\n",
			pal.Hovered, num(r.stroke*2), pathData(geom.Build(hovered.Points(), snap.Curve)))
	}

	for _, ax := range snap.Axes {
		renderAxis(&buf, ax, pal)
	}
	if seg := snap.LineBrush; seg != nil {
		renderLineBrush(&buf, *seg, pal)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderAxis(buf *bytes.Buffer, ax chart.Axis, pal Palette) {
	stroke := pal.Axis
	if ax.Color != "" {
		stroke = ax.Color
	}
	x := ax.X
	class := "axis " + strings.ToLower(ax.Role)
	if ax.Dragging {
		class += " dragging"
	}

	fmt.Fprintf(buf, `  <g class="%s" data-name="%s" data-kind="%s">`+"\n", class, escapeXML(ax.Name), ax.Kind)
	fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		num(x), num(ax.Y0), num(x), num(ax.Y1), stroke)
	for _, tk := range ax.Ticks {
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			num(x-tickLength), num(tk.Y), num(x), num(tk.Y), stroke)
		fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="end" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
			num(x-tickLength-2), num(tk.Y), pal.Text, escapeXML(tk.Label))
	}
	fmt.Fprintf(buf, `    <text class="title" x="%s" y="%s" fill="%s">%s</text>`+"\n",
		num(x), num(min(ax.Y0, ax.Y1)-titleOffset), pal.Text, escapeXML(ax.Title))

	if b := ax.Brush; b != nil {
		fmt.Fprintf(buf, `    <rect class="brush" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s"/>`+"\n",
			num(x-brushWidth/2), num(b.Lo), num(brushWidth), num(b.Hi-b.Lo), pal.Brush, pal.Brush)
		for _, h := range brushHandles(ax) {
			fmt.Fprintf(buf, `    <rect class="handle" x="%s" y="%s" width="%s" height="2" fill="%s"/>`+"\n",
				num(x-brushWidth/2), num(h-1), num(brushWidth), pal.Brush)
		}
	}
	buf.WriteString("  </g>\n")
}

// brushHandles returns the pixel rows of the handles an axis offers.
// Low and High refer to domain sides, which map to either pixel end.
func brushHandles(ax chart.Axis) []float64 {
	b := ax.Brush
	lowPx, highPx := b.Lo, b.Hi
	if ax.Y0 > ax.Y1 {
		lowPx, highPx = b.Hi, b.Lo
	}
	var out []float64
	if ax.Handles.Low {
		out = append(out, lowPx)
	}
	if ax.Handles.High {
		out = append(out, highPx)
	}
	return out
}

func renderLineBrush(buf *bytes.Buffer, seg chart.Segment, pal Palette) {
	dash := ` stroke-dasharray="4 3"`
	if seg.Completed {
		dash = ""
	}
	fmt.Fprintf(buf, `  <line class="line-brush" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"%s/>`+"\n",
		num(seg.X1), num(seg.Y1), num(seg.X2), num(seg.Y2), pal.LineBrush, dash)
	if seg.Completed {
		for _, p := range [][2]float64{{seg.X1, seg.Y1}, {seg.X2, seg.Y2}} {
			fmt.Fprintf(buf, `  <circle class="line-brush-handle" cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
				num(p[0]), num(p[1]), num(handleRadius), pal.LineBrush)
		}
	}
}

// pathData serializes p as an SVG path "d" attribute.
func pathData(p *gg.Path) string {
	var sb strings.Builder
	for _, el := range p.Elements() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch e := el.(type) {
		case gg.MoveTo:
			sb.WriteString("M" + pt(e.Point))
		case gg.LineTo:
			sb.WriteString("L" + pt(e.Point))
		case gg.QuadTo:
			sb.WriteString("Q" + pt(e.Control) + " " + pt(e.Point))
		case gg.CubicTo:
			sb.WriteString("C" + pt(e.Control1) + " " + pt(e.Control2) + " " + pt(e.Point))
		case gg.Close:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func pt(p gg.Point) string { return num(p.X) + "," + num(p.Y) }

// num formats f with at most two decimals and no trailing zeros.
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
