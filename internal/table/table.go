package table

import (
	"fmt"
	"strconv"
)

// CellKind identifies the variant held by a Cell.
type CellKind int

const (
	KindMissing CellKind = iota
	KindText
	KindNumber
	KindBool
)

// Cell is a closed tagged variant for one table value. Raw always carries the
// original string representation for non-missing cells; profiling tallies
// distinct values by Raw, not by the parsed form.
type Cell struct {
	Kind CellKind
	Raw  string
	Num  float64
	Bool bool
}

// Missing returns the missing-sentinel cell.
func Missing() Cell { return Cell{Kind: KindMissing} }

// Text returns a text cell. An empty string is the missing sentinel, never a
// text value.
func Text(s string) Cell {
	if s == "" {
		return Missing()
	}
	return Cell{Kind: KindText, Raw: s}
}

// Number returns a numeric cell with its original string form.
func Number(v float64, raw string) Cell {
	if raw == "" {
		raw = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return Cell{Kind: KindNumber, Raw: raw, Num: v}
}

// Bool returns a boolean cell with its original string form.
func Bool(v bool, raw string) Cell {
	if raw == "" {
		raw = strconv.FormatBool(v)
	}
	return Cell{Kind: KindBool, Raw: raw, Bool: v}
}

// IsMissing reports whether the cell is the missing sentinel.
func (c Cell) IsMissing() bool { return c.Kind == KindMissing }

// Float returns the cell's numeric interpretation. Number cells return their
// value directly; text and bool cells are parsed from Raw.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Num, true
	case KindText, KindBool:
		f, err := strconv.ParseFloat(c.Raw, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Column is an ordered sequence of cells under one name.
type Column struct {
	Name  string
	Cells []Cell
}

// Table is an ordered sequence of named, equal-length columns. Tables are
// built once by an ingestion boundary and never mutated afterwards.
type Table struct {
	Source  string
	Columns []Column
}

// New validates column shape and builds a Table. All columns must share one
// length and column names must be unique.
func New(source string, columns []Column) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	rows := -1
	for _, col := range columns {
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate column %q", source, col.Name)
		}
		seen[col.Name] = struct{}{}
		if rows == -1 {
			rows = len(col.Cells)
		} else if len(col.Cells) != rows {
			return nil, fmt.Errorf("%s: column %q has %d rows, want %d", source, col.Name, len(col.Cells), rows)
		}
	}
	return &Table{Source: source, Columns: columns}, nil
}

// FromRecords builds a Table from a header and row-major string records, the
// shape produced by CSV/spreadsheet decoding. Short records are padded with
// missing cells; empty strings become the missing sentinel.
func FromRecords(source string, header []string, records [][]string) (*Table, error) {
	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Cells: make([]Cell, len(records))}
	}
	for r, rec := range records {
		for i := range header {
			if i < len(rec) {
				columns[i].Cells[r] = Text(rec[i])
			} else {
				columns[i].Cells[r] = Missing()
			}
		}
	}
	return New(source, columns)
}

// RowCount returns the shared column length.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, error) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], nil
		}
	}
	return nil, &MissingColumnError{Source: t.Source, Column: name}
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, err := t.Column(name)
	return err == nil
}
