package dataset

import (
	"fmt"
	"strings"
)

// Table is an in-memory row-set with named columns, the unit of exchange
// between the workbook reader, the column mapper and the entity transforms.
// Cells are raw text as read from the source; the empty string stands for a
// blank cell. Rows may be shorter than the header (trailing blank cells are
// dropped by the workbook reader) and are padded on access.
type Table struct {
	Columns []string
	Rows    [][]string
}

// MissingColumnError reports a mapping key absent from the source header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("source column %q not found", e.Column)
}

// Mapping renames one source column to its canonical target name.
type Mapping struct {
	Source string
	Target string
}

// New builds a Table from a header row and data rows. Header cells are
// trimmed; rows are kept as-is.
func New(columns []string, rows [][]string) Table {
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.TrimSpace(c)
	}
	return Table{Columns: header, Rows: rows}
}

// Index returns the position of a column in the header, or -1 when absent.
func (t Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell text at (row, col), or the empty string for
// a ragged row that ends before col.
func (t Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Select projects the table onto the mapped columns, renaming each source
// column to its target name. Row order and row count are preserved. It fails
// with MissingColumnError when any mapping source is absent from the header.
func Select(t Table, mappings []Mapping) (Table, error) {
	indexes := make([]int, len(mappings))
	columns := make([]string, len(mappings))
	for i, m := range mappings {
		idx := t.Index(m.Source)
		if idx < 0 {
			return Table{}, &MissingColumnError{Column: m.Source}
		}
		indexes[i] = idx
		columns[i] = m.Target
	}

	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, len(indexes))
		for i, idx := range indexes {
			row[i] = t.Cell(r, idx)
		}
		rows[r] = row
	}

	return Table{Columns: columns, Rows: rows}, nil
}

// DropRow returns a copy of the table without the row at the given index.
// Out-of-range indexes leave the table unchanged.
func DropRow(t Table, index int) Table {
	if index < 0 || index >= len(t.Rows) {
		return t
	}
	rows := make([][]string, 0, len(t.Rows)-1)
	rows = append(rows, t.Rows[:index]...)
	rows = append(rows, t.Rows[index+1:]...)
	return Table{Columns: t.Columns, Rows: rows}
}
