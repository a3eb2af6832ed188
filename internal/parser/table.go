package parser

import (
	"strconv"
	"strings"
)

// Table is a rectangular block of cell values read from one sheet.
// Header holds column names (empty in headerless mode); Rows are data rows,
// padded to equal width, with blank cells normalized to "0" so downstream
// numeric comparisons behave deterministically.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadOptions declares how an adapter wants its sheet sliced: how many
// leading rows to skip before the header, which columns to keep, and whether
// the sheet has a header row at all. Keeping these declarative per adapter
// isolates the format quirks from the navigation code.
type ReadOptions struct {
	// SkipRows are dropped before the header row is interpreted.
	SkipRows int
	// Columns, when non-empty, restricts the table to the named header
	// columns. A missing column makes the whole file unreadable.
	Columns []string
	// NoHeader reads every row as data; cells are addressed by position.
	NoHeader bool
}

// newTable builds a Table from raw sheet rows according to opts.
// Raw rows come in ragged (trailing blank cells omitted); they are squared
// off against the widest known row before use.
func newTable(raw [][]string, opts ReadOptions) (*Table, error) {
	if opts.SkipRows < len(raw) {
		raw = raw[opts.SkipRows:]
	} else {
		raw = nil
	}

	t := &Table{}
	if !opts.NoHeader {
		if len(raw) == 0 {
			return t, nil
		}
		for _, h := range raw[0] {
			t.Header = append(t.Header, strings.TrimSpace(h))
		}
		raw = raw[1:]
	}

	width := len(t.Header)
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}

	for _, r := range raw {
		row := make([]string, width)
		for i := 0; i < width; i++ {
			v := ""
			if i < len(r) {
				v = strings.TrimSpace(r[i])
			}
			if v == "" {
				v = "0" // fill blanks with a zero value
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}

	if len(opts.Columns) > 0 {
		if err := t.restrict(opts.Columns); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// restrict keeps only the named columns, in the given order.
func (t *Table) restrict(columns []string) error {
	idx := make([]int, 0, len(columns))
	for _, name := range columns {
		i := t.Col(name)
		if i < 0 {
			return &columnError{name: name}
		}
		idx = append(idx, i)
	}
	header := make([]string, len(idx))
	for j, i := range idx {
		header[j] = t.Header[i]
	}
	rows := make([][]string, len(t.Rows))
	for n, r := range t.Rows {
		row := make([]string, len(idx))
		for j, i := range idx {
			if i < len(r) {
				row[j] = r[i]
			} else {
				row[j] = "0"
			}
		}
		rows[n] = row
	}
	t.Header = header
	t.Rows = rows
	return nil
}

type columnError struct{ name string }

func (e *columnError) Error() string { return "required column not found: " + e.name }
func (e *columnError) Unwrap() error { return ErrUnreadableFile }

// Col returns the index of the named header column, or -1.
func (t *Table) Col(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col); out-of-range access yields "0",
// consistent with blank-cell filling.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return "0"
	}
	return t.Rows[row][col]
}

// Number reads a cell as float64. Cells that do not parse as a number
// (arbitrary text) count as zero, mirroring how blank cells behave.
// A single comma in a cell without a dot is a decimal comma ("3,5");
// anything else ("1,234", "1,2,3") is left alone for ParseFloat to judge.
func (t *Table) Number(row, col int) float64 {
	v := t.Cell(row, col)
	if strings.Count(v, ",") == 1 && !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// Empty reports whether the table carries no data rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }
