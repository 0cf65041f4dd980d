package dataset

import (
	"fmt"
	"slices"

	"github.com/matzehuels/parcoords/pkg/errors"
)

// Item is one row of the dataset, drawn as one polyline.
type Item struct {
	ID     int              `json:"id"`
	Values map[string]Value `json:"values"`
}

// Get returns the value for name. Absent attributes read as the invalid marker.
func (it Item) Get(name string) Value {
	return it.Values[name]
}

// Columns returns the attribute names present in items. Names listed in
// order come first; the rest follow in order of first appearance. Names in
// order that no item carries are dropped.
func Columns(items []Item, order []string) []string {
	present := make(map[string]bool)
	var appearance []string
	for _, it := range items {
		var fresh []string
		for name := range it.Values {
			if !present[name] {
				present[name] = true
				fresh = append(fresh, name)
			}
		}
		// Map iteration is unordered; names new to the same item sort by name.
		slices.Sort(fresh)
		appearance = append(appearance, fresh...)
	}

	seen := make(map[string]bool, len(present))
	cols := make([]string, 0, len(present))
	for _, name := range append(slices.Clone(order), appearance...) {
		if present[name] && !seen[name] {
			seen[name] = true
			cols = append(cols, name)
		}
	}
	return cols
}

// Validate checks that item IDs are unique and attribute names are usable.
func Validate(items []Item) error {
	ids := make(map[int]bool, len(items))
	for _, it := range items {
		if ids[it.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate item id %d", it.ID)
		}
		ids[it.ID] = true
		for name := range it.Values {
			if err := errors.ValidateDimensionName(name); err != nil {
				return fmt.Errorf("item %d: %w", it.ID, err)
			}
		}
	}
	return nil
}

// Table is a rectangular grid of parsed cells with a header row.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// Items converts the table into items with sequential IDs.
// Short rows are padded with the invalid marker.
func (t Table) Items() []Item {
	items := make([]Item, len(t.Rows))
	for i, row := range t.Rows {
		vals := make(map[string]Value, len(t.Columns))
		for j, col := range t.Columns {
			if j < len(row) {
				vals[col] = row[j]
			} else {
				vals[col] = Invalid()
			}
		}
		items[i] = Item{ID: i, Values: vals}
	}
	return items
}
