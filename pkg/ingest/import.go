package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/parcoords/pkg/dataset"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/observability"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
	ExtJSON = ".json"
)

// Option configures [Import].
type Option func(*importer)

type importer struct {
	sheet string
}

// WithSheet selects the workbook sheet read from .xlsx files.
func WithSheet(name string) Option { return func(i *importer) { i.sheet = name } }

// Import reads the data file at path, choosing the decoder by extension.
//
// Errors carry codes from [errors]: INVALID_PATH or INVALID_FORMAT for a bad
// path or extension, FILE_NOT_FOUND when nothing exists at path.
func Import(ctx context.Context, path string, opts ...Option) (tbl dataset.Table, err error) {
	if err := errors.ValidateExtension(path, ExtCSV, ExtXLSX, ExtJSON); err != nil {
		return dataset.Table{}, err
	}
	var imp importer
	for _, opt := range opts {
		opt(&imp)
	}

	hooks := observability.Data()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	defer func() {
		hooks.OnLoadComplete(ctx, path, len(tbl.Rows), time.Since(start), err)
	}()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataset.Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return dataset.Table{}, err
	}
	defer f.Close()

	return imp.read(f, strings.ToLower(filepath.Ext(path)))
}

func (imp importer) read(r io.Reader, ext string) (dataset.Table, error) {
	switch ext {
	case ExtCSV:
		return ReadCSV(r)
	case ExtXLSX:
		return ReadXLSX(r, imp.sheet)
	default:
		return ReadJSON(r)
	}
}
