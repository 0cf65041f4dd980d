package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/geom"
)

// brushAlpha is the fill opacity of range brush rectangles.
const brushAlpha = 0.25

// RenderPNG rasterizes snap. Text is not drawn; use SVG or PDF output for
// labelled figures.
func RenderPNG(snap chart.Snapshot, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	w := int(math.Ceil(snap.Width * r.scale))
	h := int(math.Ceil(snap.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	cv := canvas{dc: dc, s: r.scale}
	pal := r.palette

	dc.ClearWithColor(gg.Hex(pal.Background))

	var hovered *chart.Polyline
	for _, pass := range []bool{false, true} {
		color := pal.Deselected
		if pass {
			color = pal.Selected
		}
		for i, line := range snap.Lines {
			if line.Selected != pass {
				continue
			}
			if snap.Hovered != nil && *snap.Hovered == line.ID {
				hovered = &snap.Lines[i]
			}
			if err := cv.stroke(geom.Build(line.Points(), snap.Curve), color, r.stroke); err != nil {
				return nil, err
			}
		}
	}
	if hovered != nil {
		if err := cv.stroke(geom.Build(hovered.Points(), snap.Curve), pal.Hovered, r.stroke*2); err != nil {
			return nil, err
		}
	}

	for _, ax := range snap.Axes {
		if err := cv.axis(ax, pal); err != nil {
			return nil, err
		}
	}
	if seg := snap.LineBrush; seg != nil {
		if err := cv.lineBrush(*seg, pal); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// canvas draws in snapshot coordinates onto a context scaled by s.
type canvas struct {
	dc *gg.Context
	s  float64
}

func (c canvas) stroke(p *gg.Path, color string, width float64) error {
	if len(p.Elements()) < 2 {
		return nil
	}
	s := c.s
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			c.dc.MoveTo(e.Point.X*s, e.Point.Y*s)
		case gg.LineTo:
			c.dc.LineTo(e.Point.X*s, e.Point.Y*s)
		case gg.QuadTo:
			c.dc.QuadraticTo(e.Control.X*s, e.Control.Y*s, e.Point.X*s, e.Point.Y*s)
		case gg.CubicTo:
			c.dc.CubicTo(e.Control1.X*s, e.Control1.Y*s, e.Control2.X*s, e.Control2.Y*s, e.Point.X*s, e.Point.Y*s)
		case gg.Close:
			c.dc.ClosePath()
		}
	}
	c.dc.SetHexColor(color)
	c.dc.SetLineWidth(width * s)
	return c.dc.Stroke()
}

func (c canvas) line(x1, y1, x2, y2 float64, color string, width float64) error {
	s := c.s
	c.dc.DrawLine(x1*s, y1*s, x2*s, y2*s)
	c.dc.SetHexColor(color)
	c.dc.SetLineWidth(width * s)
	return c.dc.Stroke()
}

func (c canvas) axis(ax chart.Axis, pal Palette) error {
	color := pal.Axis
	if ax.Color != "" {
		color = ax.Color
	}
	if err := c.line(ax.X, ax.Y0, ax.X, ax.Y1, color, 1); err != nil {
		return err
	}
	for _, tk := range ax.Ticks {
		if err := c.line(ax.X-tickLength, tk.Y, ax.X, tk.Y, color, 1); err != nil {
			return err
		}
	}

	b := ax.Brush
	if b == nil {
		return nil
	}
	s := c.s
	fill := gg.Hex(pal.Brush)
	c.dc.DrawRectangle((ax.X-brushWidth/2)*s, b.Lo*s, brushWidth*s, (b.Hi-b.Lo)*s)
	c.dc.SetRGBA(fill.R, fill.G, fill.B, brushAlpha)
	if err := c.dc.Fill(); err != nil {
		return err
	}
	for _, y := range brushHandles(ax) {
		if err := c.line(ax.X-brushWidth/2, y, ax.X+brushWidth/2, y, pal.Brush, 2); err != nil {
			return err
		}
	}
	return nil
}

func (c canvas) lineBrush(seg chart.Segment, pal Palette) error {
	if !seg.Completed {
		c.dc.SetDash(4*c.s, 3*c.s)
		defer c.dc.ClearDash()
	}
	if err := c.line(seg.X1, seg.Y1, seg.X2, seg.Y2, pal.LineBrush, 2); err != nil {
		return err
	}
	if !seg.Completed {
		return nil
	}
	s := c.s
	for _, p := range []gg.Point{gg.Pt(seg.X1, seg.Y1), gg.Pt(seg.X2, seg.Y2)} {
		c.dc.DrawCircle(p.X*s, p.Y*s, handleRadius*s)
		c.dc.SetHexColor(pal.LineBrush)
		if err := c.dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}
