package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/matzehuels/parcoords/pkg/dataset"
)

// ReadCSV decodes comma-separated data from r. The first record names the
// columns. Records may be shorter or longer than the header: missing cells
// read as invalid and extra cells are dropped. ReadCSV does not close r.
func ReadCSV(r io.Reader) (dataset.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("decode csv: %w", err)
	}
	return fromRecords(records)
}
