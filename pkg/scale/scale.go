// Package scale maps attribute values onto axis pixels.
//
// A [Scale] is one of two variants selected by the attribute kind:
//
//   - Numerical: a continuous linear map from [min, max] onto the pixel
//     range. A degenerate domain (min == max) maps every value to the
//     midpoint of the pixel range.
//   - Nominal: evenly spaced points over an ordered category list, with
//     outer padding so marks are not flush against the axis ends.
//
// Only numerical scales are invertible. Point positions on a nominal axis
// do not correspond to a measured value, so [Scale.RangeToDomain] reports
// ok=false for them.
package scale

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/dimension"
	"github.com/matzehuels/parcoords/pkg/errors"
)

// DefaultPadding is the outer padding of nominal scales, in steps.
const DefaultPadding = 0.5

// Scale is a bidirectional mapping between a domain and a pixel range.
// A Scale is owned by one axis and is not safe for concurrent use.
type Scale struct {
	kind    dimension.Kind
	unit    string
	r0, r1  float64
	padding float64

	// numerical
	min, max float64

	// nominal
	categories []string
	index      map[string]int
}

// Option configures a Scale.
type Option func(*Scale)

// WithPadding sets the outer padding of a nominal scale, in steps.
func WithPadding(p float64) Option {
	return func(s *Scale) {
		if p >= 0 {
			s.padding = p
		}
	}
}

// New builds the scale variant for desc over the pixel range [r0, r1].
func New(desc dimension.Descriptor, r0, r1 float64, opts ...Option) (*Scale, error) {
	s := &Scale{kind: desc.Kind, unit: desc.Unit, padding: DefaultPadding}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.SetScale(r0, r1, desc.Domain); err != nil {
		return nil, fmt.Errorf("scale for %q: %w", desc.Name, err)
	}
	return s, nil
}

// SetScale replaces the pixel range and the domain together. On error the
// scale keeps its previous state.
func (s *Scale) SetScale(r0, r1 float64, domain dimension.Domain) error {
	switch s.kind {
	case dimension.Numerical:
		if math.IsNaN(domain.Min) || math.IsNaN(domain.Max) {
			return errors.New(errors.ErrCodeInvalidInput, "numerical domain is NaN")
		}
		lo, hi := domain.Min, domain.Max
		if lo > hi {
			lo, hi = hi, lo
		}
		s.r0, s.r1 = r0, r1
		s.min, s.max = lo, hi
	case dimension.Nominal:
		if len(domain.Categories) == 0 {
			return errors.New(errors.ErrCodeEmptyDomain, "nominal domain has no categories")
		}
		index := make(map[string]int, len(domain.Categories))
		for i, c := range domain.Categories {
			if _, dup := index[c]; dup {
				return errors.New(errors.ErrCodeInvalidInput, "duplicate category %q", c)
			}
			index[c] = i
		}
		s.r0, s.r1 = r0, r1
		s.categories = slices.Clone(domain.Categories)
		s.index = index
	default:
		return errors.New(errors.ErrCodeUnknownKind, "cannot build a scale for kind %s", s.kind)
	}
	return nil
}

// SetRange replaces the pixel range and keeps the domain.
func (s *Scale) SetRange(r0, r1 float64) {
	s.r0, s.r1 = r0, r1
}

// Kind returns the variant tag.
func (s *Scale) Kind() dimension.Kind { return s.kind }

// Range returns the pixel range as configured; r0 may exceed r1.
func (s *Scale) Range() (r0, r1 float64) { return s.r0, s.r1 }

// Extent returns the pixel range sorted ascending.
func (s *Scale) Extent() (lo, hi float64) {
	return math.Min(s.r0, s.r1), math.Max(s.r0, s.r1)
}

// Domain returns a copy of the current domain.
func (s *Scale) Domain() dimension.Domain {
	if s.kind == dimension.Nominal {
		return dimension.Domain{Categories: slices.Clone(s.categories)}
	}
	return dimension.Domain{Min: s.min, Max: s.max}
}

// DomainToRange maps v to a pixel. ok is false for the invalid marker, for
// values of the wrong kind, and for strings outside a nominal domain.
func (s *Scale) DomainToRange(v dataset.Value) (px float64, ok bool) {
	switch s.kind {
	case dimension.Numerical:
		f, isNum := v.Float()
		if !isNum {
			return 0, false
		}
		return s.linear(f), true
	case dimension.Nominal:
		str, isStr := v.Text()
		if !isStr {
			return 0, false
		}
		i, found := s.index[str]
		if !found {
			return 0, false
		}
		return s.point(i), true
	default:
		return 0, false
	}
}

func (s *Scale) linear(f float64) float64 {
	if s.min == s.max {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (f-s.min)/(s.max-s.min)*(s.r1-s.r0)
}

// Step returns the distance between adjacent nominal points.
func (s *Scale) Step() float64 {
	n := float64(len(s.categories))
	return (s.r1 - s.r0) / math.Max(1, n-1+2*s.padding)
}

func (s *Scale) point(i int) float64 {
	step := s.Step()
	n := float64(len(s.categories))
	start := s.r0 + ((s.r1-s.r0)-step*(n-1))/2
	return start + step*float64(i)
}

// RangeToDomain inverts a pixel on a numerical scale. Nominal scales and
// a zero-width pixel range report ok=false.
func (s *Scale) RangeToDomain(px float64) (v float64, ok bool) {
	if s.kind != dimension.Numerical {
		return 0, false
	}
	if s.min == s.max {
		return s.min, true
	}
	if s.r0 == s.r1 {
		return 0, false
	}
	return s.min + (px-s.r0)/(s.r1-s.r0)*(s.max-s.min), true
}

// Label formats the domain value at px, including the unit.
func (s *Scale) Label(px float64) (string, bool) {
	v, ok := s.RangeToDomain(px)
	if !ok {
		return "", false
	}
	label := strconv.FormatFloat(v, 'g', 4, 64)
	if s.unit != "" {
		label += " " + s.unit
	}
	return label, true
}

// SetUnit replaces the unit appended by [Scale.Label].
func (s *Scale) SetUnit(unit string) { s.unit = unit }

// Categories returns the nominal categories in axis order.
func (s *Scale) Categories() []string {
	return slices.Clone(s.categories)
}
