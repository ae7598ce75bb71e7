package prep

import (
	"math"
	"strconv"
)

// RowKind distinguishes plotted variable rows from the synthetic text-only
// rows inserted during preparation.
type RowKind string

const (
	// KindVariable is a plotted row: marker, CI line, and labels.
	KindVariable RowKind = "variable"
	// KindGroupHeader is a synthetic row carrying a group label.
	KindGroupHeader RowKind = "group"
	// KindTableHeader is the synthetic column-header row at the top.
	KindTableHeader RowKind = "header"
)

// Row is one prepared row: the input values plus every derived field the
// renderer needs. Numeric fields are NaN on non-variable rows.
type Row struct {
	Kind  RowKind
	Label string // variable or group label after normalization and indenting
	Group string // formatted group label ("" when ungrouped)

	Estimate float64
	Lower    float64
	Upper    float64
	PValue   float64 // NaN when absent

	FormattedEstimate string // estimate at the configured precision, unpadded
	CIRange           string // "(ll to hl)"
	EstCI             string // "est(ll to hl)"
	FormattedPValue   string // rounded p-value, optionally starred

	YLabel  string // left-hand text: label plus est(CI) or annotations
	YLabel2 string // right-hand text: right annotations ("" when unused)

	// Y is the vertical position: 0 at the bottom of the chart, issued in
	// reverse of reading order so the first prepared row draws at the top.
	Y int

	// annotations holds the raw input cells of referenced annotation
	// columns, keyed by column name.
	annotations map[string]string
}

// Table is the prepared table handed to the renderer. Rows are in reading
// order (first row at the top of the chart).
type Table struct {
	Rows   []Row
	Groups []string // group labels in final order; empty when ungrouped

	HasCI      bool // est(CI) strings were formed
	HasPValues bool // a p-value column was bound
	HasRight   bool // right annotation text was built
	HasHeader  bool // a table-header row was inserted
	Precision  int
}

// Variables returns only the plotted rows, in reading order.
func (t *Table) Variables() []Row {
	out := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Kind == KindVariable {
			out = append(out, r)
		}
	}
	return out
}

// XRange returns the minimum lower limit and maximum upper limit across all
// variable rows. Returns (NaN, NaN) when the table has no variable rows.
func (t *Table) XRange() (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, r := range t.Rows {
		if r.Kind != KindVariable {
			continue
		}
		if math.IsNaN(lo) || r.Lower < lo {
			lo = r.Lower
		}
		if math.IsNaN(hi) || r.Upper > hi {
			hi = r.Upper
		}
	}
	return lo, hi
}

// Records flattens the prepared table into a header plus string records,
// suitable for CSV, JSON, or YAML export.
func (t *Table) Records() (header []string, records [][]string) {
	header = []string{
		"kind", "label", "group", "estimate", "ll", "hl",
		"formatted_estimate", "ci_range", "est_ci", "formatted_pval",
		"yticklabel", "yticklabel2", "y",
	}
	records = make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		records = append(records, []string{
			string(r.Kind), r.Label, r.Group,
			naNBlank(r.Estimate, t.Precision),
			naNBlank(r.Lower, t.Precision),
			naNBlank(r.Upper, t.Precision),
			r.FormattedEstimate, r.CIRange, r.EstCI, r.FormattedPValue,
			r.YLabel, r.YLabel2,
			strconv.Itoa(r.Y),
		})
	}
	return header, records
}
