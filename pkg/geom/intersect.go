package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// eps absorbs floating-point error in parameter and orientation tests.
const eps = 1e-9

// SegmentIntersects reports whether the segment a-b touches path. Straight
// pieces use an orientation test; quadratic and cubic pieces are solved
// analytically by substituting the curve into the implicit line equation,
// so curved paths are tested on the drawn curve rather than the control
// polygon. A zero-length segment intersects nothing.
func SegmentIntersects(a, b gg.Point, path *gg.Path) bool {
	if path == nil || a == b {
		return false
	}
	seg := box{a, a}.extend(b)

	var cur, start gg.Point
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			cur, start = e.Point, e.Point
		case gg.LineTo:
			if seg.overlaps(box{cur, cur}.extend(e.Point)) && segmentsIntersect(a, b, cur, e.Point) {
				return true
			}
			cur = e.Point
		case gg.QuadTo:
			q := gg.QuadBez{P0: cur, P1: e.Control, P2: e.Point}
			if seg.overlaps(box{cur, cur}.extend(e.Control).extend(e.Point)) && quadIntersects(a, b, q) {
				return true
			}
			cur = e.Point
		case gg.CubicTo:
			c := gg.CubicBez{P0: cur, P1: e.Control1, P2: e.Control2, P3: e.Point}
			if seg.overlaps(box{cur, cur}.extend(e.Control1).extend(e.Control2).extend(e.Point)) && cubicIntersects(a, b, c) {
				return true
			}
			cur = e.Point
		case gg.Close:
			if segmentsIntersect(a, b, cur, start) {
				return true
			}
			cur = start
		}
	}
	return false
}

// PathIntersects is SegmentIntersects for a vertex list, building the path
// with curve first.
func PathIntersects(a, b gg.Point, points []gg.Point, curve Curve) bool {
	return SegmentIntersects(a, b, Build(points, curve))
}

func segmentsIntersect(p1, p2, q1, q2 gg.Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if ((d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps)) &&
		((d3 > eps && d4 < -eps) || (d3 < -eps && d4 > eps)) {
		return true
	}
	return (near(d1) && onSegment(q1, q2, p1)) ||
		(near(d2) && onSegment(q1, q2, p2)) ||
		(near(d3) && onSegment(p1, p2, q1)) ||
		(near(d4) && onSegment(p1, p2, q2))
}

// orient is the signed area of the triangle a, b, c, normalised by |b-a|
// so the tolerance is a distance.
func orient(a, b, c gg.Point) float64 {
	ab := b.Sub(a)
	l := ab.Length()
	if l == 0 {
		return c.Distance(a)
	}
	return ab.Cross(c.Sub(a)) / l
}

func near(f float64) bool { return math.Abs(f) <= eps }

func onSegment(a, b, p gg.Point) bool {
	return math.Min(a.X, b.X)-eps <= p.X && p.X <= math.Max(a.X, b.X)+eps &&
		math.Min(a.Y, b.Y)-eps <= p.Y && p.Y <= math.Max(a.Y, b.Y)+eps
}

func cubicIntersects(a, b gg.Point, c gg.CubicBez) bool {
	u := b.Sub(a)
	d0 := u.Cross(c.P0.Sub(a))
	d1 := u.Cross(c.P1.Sub(a))
	d2 := u.Cross(c.P2.Sub(a))
	d3 := u.Cross(c.P3.Sub(a))
	if collinear(u, d0, d1, d2, d3) {
		return collinearOverlap(a, b, c.P0, c.P1, c.P2, c.P3)
	}

	// Bernstein to power basis for d(t) = cross(u, B(t) - a).
	roots := gg.SolveCubicInUnitInterval(
		-d0+3*d1-3*d2+d3,
		3*d0-6*d1+3*d2,
		-3*d0+3*d1,
		d0,
	)
	for _, t := range roots {
		if withinSegment(a, u, c.Eval(t)) {
			return true
		}
	}
	return false
}

func quadIntersects(a, b gg.Point, q gg.QuadBez) bool {
	u := b.Sub(a)
	d0 := u.Cross(q.P0.Sub(a))
	d1 := u.Cross(q.P1.Sub(a))
	d2 := u.Cross(q.P2.Sub(a))
	if collinear(u, d0, d1, d2) {
		return collinearOverlap(a, b, q.P0, q.P1, q.P2)
	}

	roots := gg.SolveQuadraticInUnitInterval(d0-2*d1+d2, 2*(d1-d0), d0)
	for _, t := range roots {
		if withinSegment(a, u, q.Eval(t)) {
			return true
		}
	}
	return false
}

// withinSegment reports whether p, known to lie on the line through a with
// direction u, projects inside the segment.
func withinSegment(a, u, p gg.Point) bool {
	s := p.Sub(a).Dot(u) / u.LengthSquared()
	return s >= -eps && s <= 1+eps
}

func collinear(u gg.Point, ds ...float64) bool {
	tol := eps * u.Length()
	for _, d := range ds {
		if math.Abs(d) > tol {
			return false
		}
	}
	return true
}

// collinearOverlap handles a curve lying on the brush line: the curve's
// trace is within the projection range of its control points.
func collinearOverlap(a, b gg.Point, ctrl ...gg.Point) bool {
	u := b.Sub(a)
	l2 := u.LengthSquared()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range ctrl {
		s := p.Sub(a).Dot(u) / l2
		lo, hi = math.Min(lo, s), math.Max(hi, s)
	}
	return hi >= -eps && lo <= 1+eps
}

// box is an axis-aligned bounding box used to skip pieces the segment
// cannot reach. A Bézier piece lies inside the box of its control points.
type box struct{ min, max gg.Point }

func (b box) extend(p gg.Point) box {
	return box{
		gg.Pt(math.Min(b.min.X, p.X), math.Min(b.min.Y, p.Y)),
		gg.Pt(math.Max(b.max.X, p.X), math.Max(b.max.Y, p.Y)),
	}
}

func (b box) overlaps(o box) bool {
	return b.min.X <= o.max.X+eps && o.min.X <= b.max.X+eps &&
		b.min.Y <= o.max.Y+eps && o.min.Y <= b.max.Y+eps
}
