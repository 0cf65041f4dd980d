// Package linebrush implements the free-form two-point brush.
//
// The brush is independent of the axes and lives in canvas pixel space.
// Its lifecycle is
//
//	Idle --Process--> Started --Process--> Completed --Cancel--> Idle
//
// While Started the pointer position is tracked for preview only and does
// not constrain the selection. A Completed brush selects the polylines
// whose rendered path touches its segment; either endpoint can then be
// moved with [Brush.MoveHandle].
package linebrush

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/matzehuels/parcoords/pkg/brush"
	"github.com/matzehuels/parcoords/pkg/geom"
)

// State is the lifecycle stage of a Brush.
type State uint8

const (
	Idle State = iota
	Started
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Started:
		return "started"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Handle names an endpoint of a completed brush.
type Handle uint8

const (
	HandleStart Handle = iota
	HandleEnd
)

// Brush is a line brush. The zero Brush is idle.
type Brush struct {
	state   State
	start   gg.Point
	end     gg.Point
	preview gg.Point
}

// State returns the lifecycle stage.
func (b *Brush) State() State { return b.state }

// Process handles a click at p.
//
// From Idle it records the start point. From Started it completes the
// segment unless p repeats the start point, which is ignored. From
// Completed it discards the segment and starts a new one at p.
func (b *Brush) Process(p gg.Point) brush.Direction {
	switch b.state {
	case Idle:
		b.state, b.start, b.preview = Started, p, p
		return brush.Unchanged
	case Started:
		if p == b.start {
			return brush.Unchanged
		}
		b.state, b.end = Completed, p
		return brush.Shrink
	default:
		b.state, b.start, b.end, b.preview = Started, p, gg.Point{}, p
		return brush.Extend
	}
}

// Track moves the provisional endpoint while Started.
func (b *Brush) Track(p gg.Point) {
	if b.state == Started {
		b.preview = p
	}
}

// MoveHandle moves one endpoint of a completed brush. A move that would
// collapse the segment to a point is ignored.
func (b *Brush) MoveHandle(h Handle, p gg.Point) brush.Direction {
	if b.state != Completed {
		return brush.Unchanged
	}
	target, other := &b.start, b.end
	if h == HandleEnd {
		target, other = &b.end, b.start
	}
	if p == *target || p == other {
		return brush.Unchanged
	}
	*target = p
	return brush.Unknown
}

// Cancel returns the brush to Idle and clears both endpoints.
func (b *Brush) Cancel() brush.Direction {
	was := b.state
	*b = Brush{}
	if was == Completed {
		return brush.Extend
	}
	return brush.Unchanged
}

// Active reports whether the brush constrains the selection.
func (b *Brush) Active() bool { return b.state == Completed }

// IsSelected reports whether path passes the brush. Only a completed
// brush constrains; it selects paths touching its segment.
func (b *Brush) IsSelected(path *gg.Path) bool {
	if b.state != Completed {
		return true
	}
	return geom.SegmentIntersects(b.start, b.end, path)
}

// Segment returns the committed segment of a completed brush.
func (b *Brush) Segment() (start, end gg.Point, ok bool) {
	if b.state != Completed {
		return gg.Point{}, gg.Point{}, false
	}
	return b.start, b.end, true
}

// Preview returns the provisional segment while Started.
func (b *Brush) Preview() (start, end gg.Point, ok bool) {
	if b.state != Started {
		return gg.Point{}, gg.Point{}, false
	}
	return b.start, b.preview, true
}

// Handles returns the draggable endpoints, start first. Only a completed
// brush has handles.
func (b *Brush) Handles() []gg.Point {
	if b.state != Completed {
		return nil
	}
	return []gg.Point{b.start, b.end}
}
