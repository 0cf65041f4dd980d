// Package geom builds polyline paths and tests them against brush segments.
//
// Paths are [gg.Path] values, the same representation the PNG sink strokes,
// so hit-testing runs on exactly the geometry that is drawn.
package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/errors"
)

// Curve selects how consecutive vertices are joined.
type Curve uint8

const (
	// CurveLinear joins vertices with straight segments.
	CurveLinear Curve = iota
	// CurveMonotoneX joins vertices with cubic Bézier pieces that preserve
	// monotonicity in y between vertices ordered by x.
	CurveMonotoneX
)

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveMonotoneX:
		return "monotone"
	default:
		return fmt.Sprintf("Curve(%d)", uint8(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Curve) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Curve) UnmarshalText(b []byte) error {
	v, err := ParseCurve(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCurve accepts "linear" and "monotone" (or "monotonex").
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return CurveLinear, nil
	case "monotone", "monotonex", "monotone-x":
		return CurveMonotoneX, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown curve %q (want linear or monotone)", s)
	}
}

// Build returns the path through points. Fewer than two points yield a
// path holding at most a MoveTo.
func Build(points []gg.Point, curve Curve) *gg.Path {
	p := gg.NewPath()
	if len(points) == 0 {
		return p
	}
	p.MoveTo(points[0].X, points[0].Y)
	if curve == CurveLinear || len(points) <= 2 {
		for _, pt := range points[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		return p
	}

	m := tangents(points)
	for i := 0; i < len(points)-1; i++ {
		p0, p1 := points[i], points[i+1]
		dx := (p1.X - p0.X) / 3
		p.CubicTo(
			p0.X+dx, p0.Y+dx*m[i],
			p1.X-dx, p1.Y-dx*m[i+1],
			p1.X, p1.Y,
		)
	}
	return p
}

// tangents computes the Steffen-style limited slopes used by monotone
// cubic interpolation. Interior slopes are the harmonic-limited average of
// the adjacent secants; end slopes use the one-sided estimate.
func tangents(pts []gg.Point) []float64 {
	n := len(pts)
	m := make([]float64, n)
	for i := 1; i < n-1; i++ {
		m[i] = interiorSlope(pts[i-1], pts[i], pts[i+1])
	}
	m[0] = endSlope(pts[0], pts[1], m[1])
	m[n-1] = endSlope(pts[n-2], pts[n-1], m[n-2])
	return m
}

func interiorSlope(a, b, c gg.Point) float64 {
	h0, h1 := b.X-a.X, c.X-b.X
	s0, s1 := div(b.Y-a.Y, h0), div(c.Y-b.Y, h1)
	p := div(s0*h1+s1*h0, h0+h1)
	t := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return t
}

func endSlope(a, b gg.Point, t float64) float64 {
	h := b.X - a.X
	if h == 0 {
		return t
	}
	return (3*(b.Y-a.Y)/h - t) / 2
}

// div returns 0 instead of ±Inf or NaN for a zero denominator.
func div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}
