// Package ingest reads tabular data files into [dataset.Table] values.
//
// # Formats
//
// Three file types are recognised by extension:
//
//   - .csv: comma-separated, first record is the header
//   - .xlsx: Excel workbook, first row of the chosen sheet is the header
//   - .json: an array of flat objects, one per item
//
// Cells go through [dataset.ParseValue]: empty cells and "NaN" become the
// invalid marker, cells that parse as numbers become numbers, everything
// else is kept as a string. JSON values keep their JSON type; null becomes
// the invalid marker.
//
// # Usage
//
//	tbl, err := ingest.Import(ctx, "cars.csv")
//	if err != nil {
//	    return err
//	}
//	items := tbl.Items()
//
// Import reports through [observability.Data] so load timing can be
// collected without wiring anything into the caller.
package ingest
