// Package brush implements the per-axis range brush.
//
// Every mutation returns a [Direction] describing how the brush's selection
// set changed. The selection engine uses it to re-test only the items whose
// state can have changed.
package brush

// Direction classifies a brush mutation.
type Direction uint8

const (
	// Unchanged means the selection set is identical; nothing to re-test.
	Unchanged Direction = iota
	// Extend means the set grew or became unconstrained; only unselected
	// items need re-testing.
	Extend
	// Shrink means the set shrank; only selected items need re-testing.
	Shrink
	// Unknown means the change cannot be classified; re-test everything.
	Unknown
)

func (d Direction) String() string {
	switch d {
	case Unchanged:
		return "unchanged"
	case Extend:
		return "extend"
	case Shrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// Merge combines the directions of two mutations applied in sequence.
func (d Direction) Merge(other Direction) Direction {
	switch {
	case d == Unchanged:
		return other
	case other == Unchanged, d == other:
		return d
	default:
		return Unknown
	}
}
