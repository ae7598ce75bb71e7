// Package table provides a minimal column-addressed tabular container.
//
// A [Frame] holds rows of string cells under named columns. It supports the
// operations the preparation pipeline needs: column lookup, typed cell
// access, stable sorting, and first-seen group enumeration. Cells are kept
// as strings so a Frame can be populated directly from CSV without guessing
// column types up front; numeric interpretation happens at access time.
package table

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/statviz/forestplot/pkg/errors"
)

// Frame is a column-addressed table of string cells.
// The zero value is not usable; construct with [New].
type Frame struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// New creates an empty Frame with the given column names.
// Duplicate column names keep the first position.
func New(columns ...string) *Frame {
	f := &Frame{
		cols:  make([]string, 0, len(columns)),
		index: make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, ok := f.index[c]; ok {
			continue
		}
		f.index[c] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	copy(out, f.cols)
	return out
}

// HasColumn reports whether the frame has a column with the given name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// AppendRow adds a row of cells. The number of cells must match the number
// of columns.
func (f *Frame) AppendRow(cells ...string) error {
	if len(cells) != len(f.cols) {
		return errors.New(errors.ErrCodeInvalidData,
			"row has %d cells, expected %d", len(cells), len(f.cols))
	}
	row := make([]string, len(cells))
	copy(row, cells)
	f.rows = append(f.rows, row)
	return nil
}

// Cell returns the cell at (row, col). The second return value is false if
// the column does not exist or the row index is out of range.
func (f *Frame) Cell(row int, col string) (string, bool) {
	i, ok := f.index[col]
	if !ok || row < 0 || row >= len(f.rows) {
		return "", false
	}
	return f.rows[row][i], true
}

// String returns the cell at (row, col), or "" when absent.
func (f *Frame) String(row int, col string) string {
	s, _ := f.Cell(row, col)
	return s
}

// Float parses the cell at (row, col) as a float64.
// Empty cells and the literal "nan"/"NA" parse to NaN without error;
// anything else unparseable is a data error naming the column and row.
func (f *Frame) Float(row int, col string) (float64, error) {
	s, ok := f.Cell(row, col)
	if !ok {
		return math.NaN(), errors.New(errors.ErrCodeMissingColumn, "column %q not found", col)
	}
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), errors.New(errors.ErrCodeInvalidData,
			"column %q row %d: %q is not numeric", col, row, s)
	}
	return v, nil
}

// Column returns a copy of the named column's cells, or nil when absent.
func (f *Frame) Column(col string) []string {
	i, ok := f.index[col]
	if !ok {
		return nil
	}
	out := make([]string, len(f.rows))
	for r, row := range f.rows {
		out[r] = row[i]
	}
	return out
}

// Unique returns the distinct non-blank values of col in first-seen order.
// Values are trimmed of surrounding whitespace before comparison, so
// "labor" and "labor " count as one value. Spreadsheet exports pad cells.
func (f *Frame) Unique(col string) []string {
	i, ok := f.index[col]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, row := range f.rows {
		v := strings.TrimSpace(row[i])
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := New(f.cols...)
	c.rows = make([][]string, len(f.rows))
	for i, row := range f.rows {
		r := make([]string, len(row))
		copy(r, row)
		c.rows[i] = r
	}
	return c
}

// SortStable reorders rows using the given comparison. less receives row
// indices into the current ordering. The sort is stable so rows that compare
// equal keep their relative order.
func (f *Frame) SortStable(less func(i, j int) bool) {
	sort.SliceStable(f.rows, less)
}

// Row returns a copy of the cells in the given row.
func (f *Frame) Row(row int) []string {
	if row < 0 || row >= len(f.rows) {
		return nil
	}
	out := make([]string, len(f.rows[row]))
	copy(out, f.rows[row])
	return out
}
