package ingest

import (
	"strings"

	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/errors"
)

// fromRecords turns a header record plus data records into a table.
// Records whose cells are all blank are skipped.
func fromRecords(records [][]string) (dataset.Table, error) {
	if len(records) == 0 {
		return dataset.Table{}, errors.New(errors.ErrCodeInvalidFormat, "missing header row")
	}

	header, err := parseHeader(records[0])
	if err != nil {
		return dataset.Table{}, err
	}

	tbl := dataset.Table{Columns: header}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := make([]dataset.Value, len(header))
		for j := range header {
			if j < len(rec) {
				row[j] = dataset.ParseValue(rec[j])
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

func parseHeader(rec []string) ([]string, error) {
	seen := make(map[string]bool, len(rec))
	names := make([]string, len(rec))
	for i, cell := range rec {
		name := strings.TrimSpace(cell)
		if err := errors.ValidateDimensionName(name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "header column %d", i+1)
		}
		if seen[name] {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate column %q", name)
		}
		seen[name] = true
		names[i] = name
	}
	return names, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
