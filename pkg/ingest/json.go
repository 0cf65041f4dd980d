package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/errors"
)

// ReadJSON decodes an array of flat objects from r:
//
//	[
//	  {"name": "audi", "power": 110, "price": null},
//	  {"name": "bmw", "power": 140, "price": 31000}
//	]
//
// Numbers and strings keep their JSON type. null, booleans and nested
// values become the invalid marker. Column order is the sorted key set of
// the first object followed by keys first seen in later objects.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (dataset.Table, error) {
	var rows []map[string]dataset.Value
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return dataset.Table{}, fmt.Errorf("decode json: %w", err)
	}

	items := make([]dataset.Item, len(rows))
	for i, vals := range rows {
		for name := range vals {
			if err := errors.ValidateDimensionName(name); err != nil {
				return dataset.Table{}, fmt.Errorf("object %d: %w", i, err)
			}
		}
		items[i] = dataset.Item{ID: i, Values: vals}
	}

	tbl := dataset.Table{Columns: dataset.Columns(items, nil)}
	tbl.Rows = make([][]dataset.Value, len(items))
	for i, it := range items {
		row := make([]dataset.Value, len(tbl.Columns))
		for j, col := range tbl.Columns {
			row[j] = it.Get(col)
		}
		tbl.Rows[i] = row
	}
	return tbl, nil
}
