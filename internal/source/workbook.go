package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/smallbiznis/petrel/internal/dataset"
)

// ErrSourceNotFound reports that the workbook path does not exist. Callers
// match it with errors.Is to distinguish a missing input from a corrupt one.
var ErrSourceNotFound = errors.New("source workbook not found")

// Reader yields one sheet of a workbook as a raw string table.
type Reader interface {
	Sheet(name string) (dataset.Table, error)
	Close() error
}

// Workbook reads sheets from an xlsx file. The first row of a sheet is the
// header; everything below it is data.
type Workbook struct {
	file *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat workbook %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

// Sheet reads the named sheet. Trailing blank cells are absent from the rows
// excelize returns; dataset.Table treats them as empty.
func (w *Workbook) Sheet(name string) (dataset.Table, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("read sheet %q from %s: %w", name, w.path, err)
	}
	if len(rows) == 0 {
		return dataset.New(nil, nil), nil
	}
	return dataset.New(rows[0], rows[1:]), nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}
