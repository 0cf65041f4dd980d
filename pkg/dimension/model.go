package dimension

import (
	"math"
	"slices"

	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/errors"
)

// Model is an ordered set of descriptors keyed by name.
// A Model is not safe for concurrent use.
type Model struct {
	descs []Descriptor
	index map[string]int
}

// NewModel builds a model from descriptors. Names must be unique.
func NewModel(descs ...Descriptor) (*Model, error) {
	m := &Model{index: make(map[string]int, len(descs))}
	for _, d := range descs {
		if err := errors.ValidateDimensionName(d.Name); err != nil {
			return nil, err
		}
		if _, dup := m.index[d.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate dimension %q", d.Name)
		}
		if d.Kind != Numerical && d.Kind != Nominal {
			return nil, errors.New(errors.ErrCodeUnknownKind, "dimension %q has unknown kind %s", d.Name, d.Kind)
		}
		m.index[d.Name] = len(m.descs)
		m.descs = append(m.descs, d.clone())
	}
	return m, nil
}

// Infer derives descriptors from items. order fixes the leading columns;
// remaining columns follow in order of first appearance.
//
// A column is numerical iff every value is a number or the invalid marker,
// and nominal iff every value is a string. Any other mixture is a schema
// violation.
func Infer(items []dataset.Item, order []string) (*Model, error) {
	cols := dataset.Columns(items, order)
	descs := make([]Descriptor, 0, len(cols))
	for _, name := range cols {
		d, err := inferColumn(name, items)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return NewModel(descs...)
}

func inferColumn(name string, items []dataset.Item) (Descriptor, error) {
	var numbers, strs, invalid int
	lo, hi := math.Inf(1), math.Inf(-1)
	cats := make(map[string]bool)

	for _, it := range items {
		v := it.Get(name)
		switch v.Kind() {
		case dataset.KindNumber:
			numbers++
			f, _ := v.Float()
			lo, hi = math.Min(lo, f), math.Max(hi, f)
		case dataset.KindString:
			strs++
			s, _ := v.Text()
			cats[s] = true
		default:
			invalid++
		}
	}

	if strs > 0 {
		if numbers > 0 || invalid > 0 {
			return Descriptor{}, errors.New(errors.ErrCodeMixedColumn,
				"attribute %q mixes %d strings with %d numbers and %d invalid values", name, strs, numbers, invalid)
		}
		categories := make([]string, 0, len(cats))
		for c := range cats {
			categories = append(categories, c)
		}
		slices.Sort(categories)
		return Descriptor{Name: name, Kind: Nominal, Domain: Domain{Categories: categories}}, nil
	}

	if numbers == 0 {
		lo, hi = 0, 0
	}
	return Descriptor{Name: name, Kind: Numerical, Domain: Domain{Min: lo, Max: hi}}, nil
}

// Reconcile merges next onto m and returns the result; m and next are not
// modified. Attributes present in both must have the same kind. Unit,
// objective direction and color registered on m carry forward field by
// field unless next supplies them.
func (m *Model) Reconcile(next *Model) (*Model, error) {
	out := &Model{index: make(map[string]int, len(next.descs))}
	for _, nd := range next.descs {
		d := nd.clone()
		if m != nil {
			if old, ok := m.Descriptor(nd.Name); ok {
				if old.Kind != nd.Kind {
					return nil, errors.New(errors.ErrCodeTypeChanged,
						"attribute %q changed type from %s to %s", nd.Name, old.Kind, nd.Kind)
				}
				if d.Unit == "" {
					d.Unit = old.Unit
				}
				switch {
				case old.Objective == nil:
				case d.Objective == nil:
					obj := *old.Objective
					d.Objective = &obj
				case d.Objective.Color == "":
					d.Objective.Color = old.Objective.Color
				}
			}
		}
		out.index[d.Name] = len(out.descs)
		out.descs = append(out.descs, d)
	}
	return out, nil
}

// Descriptor returns a copy of the named descriptor.
func (m *Model) Descriptor(name string) (Descriptor, bool) {
	if m == nil {
		return Descriptor{}, false
	}
	i, ok := m.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return m.descs[i].clone(), true
}

// Has reports whether the model contains name.
func (m *Model) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[name]
	return ok
}

// Names returns attribute names in model order.
func (m *Model) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.descs))
	for i, d := range m.descs {
		names[i] = d.Name
	}
	return names
}

// Descriptors returns copies of all descriptors in model order.
func (m *Model) Descriptors() []Descriptor {
	if m == nil {
		return nil
	}
	out := make([]Descriptor, len(m.descs))
	for i, d := range m.descs {
		out[i] = d.clone()
	}
	return out
}

// Criteria returns the names of attributes with an objective.
func (m *Model) Criteria() []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, d := range m.descs {
		if d.IsCriterion() {
			out = append(out, d.Name)
		}
	}
	return out
}

// Len returns the number of attributes.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.descs)
}

// Select validates that every name exists in the model.
func (m *Model) Select(names []string) error {
	for _, n := range names {
		if !m.Has(n) {
			return errors.New(errors.ErrCodeUnknownAxis, "requested dimension %q is not present in the data", n)
		}
	}
	return nil
}
