// Package dimension describes the attributes of a dataset and reconciles
// those descriptions across data updates.
//
// Every attribute is a parameter. An attribute carrying an optimisation
// [Objective] is additionally a criterion. The attribute [Kind] is derived
// from the data and is immutable per name: a data update that changes it is
// a schema violation.
package dimension

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is the value type of an attribute.
type Kind uint8

const (
	KindUnknown Kind = iota
	Numerical
	Nominal
)

func (k Kind) String() string {
	switch k {
	case Numerical:
		return "numerical"
	case Nominal:
		return "nominal"
	default:
		return "unknown"
	}
}

// Direction is the optimisation direction of a criterion.
type Direction uint8

const (
	Minimize Direction = iota + 1
	Maximize
)

func (d Direction) String() string {
	switch d {
	case Minimize:
		return "min"
	case Maximize:
		return "max"
	default:
		return ""
	}
}

// ParseDirection accepts "min", "minimize", "max" and "maximize" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "minimize", "minimise":
		return Minimize, true
	case "max", "maximize", "maximise":
		return Maximize, true
	default:
		return 0, false
	}
}

// Objective turns a parameter into a criterion.
type Objective struct {
	Direction Direction
	Color     string // optional hex color
}

// Role distinguishes plain parameters from criteria.
type Role uint8

const (
	RoleParameter Role = iota
	RoleCriterion
)

func (r Role) String() string {
	if r == RoleCriterion {
		return "criterion"
	}
	return "parameter"
}

// Domain holds the statistics of an attribute.
// Numerical attributes use Min and Max, nominal attributes use Categories.
type Domain struct {
	Min, Max   float64
	Categories []string
}

// Degenerate reports whether a numerical domain has zero width.
func (d Domain) Degenerate() bool { return d.Min == d.Max }

// Descriptor describes one attribute.
type Descriptor struct {
	Name      string
	Kind      Kind
	Unit      string
	Domain    Domain
	Objective *Objective
}

// Role reports whether d is a criterion or a plain parameter.
func (d Descriptor) Role() Role {
	if d.Objective != nil {
		return RoleCriterion
	}
	return RoleParameter
}

// IsCriterion reports whether d has an objective.
func (d Descriptor) IsCriterion() bool { return d.Objective != nil }

// Title returns the display title, including the unit when present.
func (d Descriptor) Title() string {
	if d.Unit == "" {
		return d.Name
	}
	return fmt.Sprintf("%s [%s]", d.Name, d.Unit)
}

// clone returns a deep copy so models never share slices or objectives.
func (d Descriptor) clone() Descriptor {
	out := d
	out.Domain.Categories = slices.Clone(d.Domain.Categories)
	if d.Objective != nil {
		obj := *d.Objective
		out.Objective = &obj
	}
	return out
}
