// Package prep transforms a raw table of estimates and confidence intervals
// into the fully annotated, ordered table the renderer draws from.
//
// Preparation is a pure, single-pass pipeline: validate the column bindings,
// derive missing confidence limits from a margin of error, format numbers and
// p-values, group and sort rows, build the flush-padded text columns, and
// assign vertical positions. The same input and configuration always yield
// the same prepared table.
package prep

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/table"
)

// workRow carries one input row through the preparation pipeline.
type workRow struct {
	label  string
	group  string
	est    float64
	ll     float64
	hl     float64
	pval   float64
	cells  map[string]string // raw annotation cells by column
	srcRow int               // index into the input frame, for error messages
}

// Prepare validates the input against cfg and produces the prepared table.
// The input frame is not modified. All errors surface here, before any
// rendering call is made.
func Prepare(f *table.Frame, cfg Config) (*Table, error) {
	if err := cfg.Validate(f); err != nil {
		return nil, err
	}

	work, err := extractRows(f, cfg)
	if err != nil {
		return nil, err
	}

	groups, grouped, err := partition(work, f, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Sort || cfg.SortBy != "" {
		sortWithinGroups(grouped, f, cfg)
	}

	t := &Table{
		Groups:     normalizeGroups(groups, cfg.Capitalize),
		HasCI:      cfg.CIReport,
		HasPValues: cfg.PValue != "",
		HasRight:   len(cfg.RightAnnote) > 0,
		Precision:  cfg.Precision,
	}

	rows := assemble(groups, grouped, cfg)
	deriveStrings(rows, cfg)
	buildLabels(rows, t, cfg)

	if t.HasHeader = wantsHeader(cfg); t.HasHeader {
		rows = append([]Row{headerRow(rows, cfg)}, rows...)
	}

	for i := range rows {
		rows[i].Y = len(rows) - 1 - i
	}
	t.Rows = rows
	return t, nil
}

// extractRows pulls the bound columns out of the frame, deriving confidence
// limits from the margin of error where needed and enforcing the numeric
// invariants row by row.
func extractRows(f *table.Frame, cfg Config) ([]workRow, error) {
	rows := make([]workRow, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		w := workRow{
			label:  f.String(i, cfg.VarLabel),
			pval:   math.NaN(),
			srcRow: i,
		}
		if cfg.Group != "" {
			w.group = strings.TrimSpace(f.String(i, cfg.Group))
			if w.group == "" {
				return nil, errors.New(errors.ErrCodeInvalidData,
					"row %d has an empty group label", i)
			}
		}

		est, err := f.Float(i, cfg.Estimate)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(est) || math.IsInf(est, 0) {
			return nil, errors.New(errors.ErrCodeInvalidData,
				"column %q row %d: estimate must be finite", cfg.Estimate, i)
		}
		w.est = est

		if w.ll, w.hl, err = confidenceLimits(f, cfg, i, est); err != nil {
			return nil, err
		}
		if w.ll > est || w.hl < est {
			return nil, errors.New(errors.ErrCodeInvalidData,
				"row %d: confidence interval [%g, %g] does not contain estimate %g", i, w.ll, w.hl, est)
		}

		if cfg.PValue != "" {
			if w.pval, err = f.Float(i, cfg.PValue); err != nil {
				return nil, err
			}
		}

		w.cells = annotationCells(f, cfg, i)
		rows = append(rows, w)
	}
	return rows, nil
}

// confidenceLimits resolves the CI for one row. Bound limits take precedence;
// the margin of error fills in when limits are unbound or blank for the row.
func confidenceLimits(f *table.Frame, cfg Config, row int, est float64) (ll, hl float64, err error) {
	if cfg.Lower != "" {
		if ll, err = f.Float(row, cfg.Lower); err != nil {
			return 0, 0, err
		}
		if hl, err = f.Float(row, cfg.Upper); err != nil {
			return 0, 0, err
		}
		if !math.IsNaN(ll) && !math.IsNaN(hl) {
			return ll, hl, nil
		}
		if cfg.MarginOfError == "" {
			return 0, 0, errors.New(errors.ErrCodeInvalidData,
				"row %d: confidence limits are blank and no margin of error is bound", row)
		}
	}

	moe, err := f.Float(row, cfg.MarginOfError)
	if err != nil {
		return 0, 0, err
	}
	if math.IsNaN(moe) {
		return 0, 0, errors.New(errors.ErrCodeInvalidData,
			"column %q row %d: margin of error is blank", cfg.MarginOfError, row)
	}
	if moe < 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidData,
			"column %q row %d: margin of error must be >= 0, got %g", cfg.MarginOfError, row, moe)
	}
	return est - moe, est + moe, nil
}

// annotationCells snapshots the raw cells of every referenced annotation
// column. Derived names are resolved later, once the strings exist.
func annotationCells(f *table.Frame, cfg Config, row int) map[string]string {
	cols := make([]string, 0, len(cfg.Annote)+len(cfg.RightAnnote))
	cols = append(cols, cfg.Annote...)
	cols = append(cols, cfg.RightAnnote...)
	if len(cols) == 0 {
		return nil
	}
	cells := make(map[string]string, len(cols))
	for _, col := range cols {
		if f.HasColumn(col) {
			cells[col] = f.String(row, col)
		}
	}
	return cells
}

// partition splits the rows into groups. The group order is the explicit
// cfg.GroupOrder when given, otherwise first-seen order. Ungrouped input
// yields a single anonymous group.
func partition(work []workRow, f *table.Frame, cfg Config) (groups []string, grouped map[string][]workRow, err error) {
	grouped = make(map[string][]workRow)
	if cfg.Group == "" {
		grouped[""] = work
		return []string{""}, grouped, nil
	}

	if len(cfg.GroupOrder) > 0 {
		groups = cfg.GroupOrder
	} else {
		groups = f.Unique(cfg.Group)
	}
	for _, w := range work {
		grouped[w.group] = append(grouped[w.group], w)
	}
	return groups, grouped, nil
}

// sortWithinGroups sorts each group's rows independently by the configured
// column, so group partitioning is preserved. The sort key is numeric when
// every cell in the sort column parses as a number, string otherwise.
func sortWithinGroups(grouped map[string][]workRow, f *table.Frame, cfg Config) {
	sortBy := cfg.SortBy
	if sortBy == "" {
		sortBy = cfg.Estimate
	}

	numeric := true
	keys := make(map[int]float64, f.Len())
	for i := 0; i < f.Len(); i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.String(i, sortBy)), 64)
		if err != nil {
			numeric = false
			break
		}
		keys[i] = v
	}

	for _, rows := range grouped {
		sort.SliceStable(rows, func(i, j int) bool {
			var less bool
			if numeric {
				less = keys[rows[i].srcRow] < keys[rows[j].srcRow]
			} else {
				less = f.String(rows[i].srcRow, sortBy) < f.String(rows[j].srcRow, sortBy)
			}
			if cfg.SortDescending {
				return !less
			}
			return less
		})
	}
}

// assemble flattens the grouped rows into prepared rows in reading order,
// inserting a synthetic header row before each named group and applying
// label normalization and indenting.
func assemble(groups []string, grouped map[string][]workRow, cfg Config) []Row {
	indent := strings.Repeat(" ", cfg.VarIndent)

	var rows []Row
	for _, g := range groups {
		groupLabel := normalizeLabel(g, cfg.Capitalize)
		if g != "" {
			rows = append(rows, Row{
				Kind:     KindGroupHeader,
				Label:    groupLabel,
				Group:    groupLabel,
				Estimate: math.NaN(), Lower: math.NaN(), Upper: math.NaN(), PValue: math.NaN(),
			})
		}
		for _, w := range grouped[g] {
			label := normalizeLabel(w.label, cfg.Capitalize)
			if g != "" {
				label = indent + label
			}
			rows = append(rows, Row{
				Kind:     KindVariable,
				Label:    label,
				Group:    groupLabel,
				Estimate: w.est,
				Lower:    w.ll,
				Upper:    w.hl,
				PValue:   w.pval,
				YLabel:   label, // rebuilt by buildLabels
			})
			rows[len(rows)-1].annotations = w.cells
		}
	}
	return rows
}

// deriveStrings formats the numeric columns at the configured precision and
// forms the CI range, combined est(CI), and starred p-value strings.
func deriveStrings(rows []Row, cfg Config) {
	for ri := range rows {
		r := &rows[ri]
		if r.Kind != KindVariable {
			continue
		}
		r.FormattedEstimate = formatFloat(r.Estimate, cfg.Precision)
		ll := formatFloat(r.Lower, cfg.Precision)
		hl := formatFloat(r.Upper, cfg.Precision)
		r.CIRange = formCIRange(ll, hl, cfg.Caps, cfg.Connector)
		r.EstCI = r.FormattedEstimate + r.CIRange
		r.FormattedPValue = starPValue(r.PValue, cfg.Precision, cfg.StarPValues, cfg.Thresholds, cfg.Symbols)
	}
}

// annotationValue resolves one annotation reference for a row: an input cell
// when the column exists in the frame, otherwise a derived string.
func annotationValue(r *Row, col string) string {
	switch col {
	case derivedEstCI:
		return r.EstCI
	case derivedCIRange:
		return r.CIRange
	case derivedPVal:
		return r.FormattedPValue
	}
	return r.annotations[col]
}

// buildLabels composes the left (YLabel) and right (YLabel2) text columns.
// Without annotations the left text is the flush-padded label plus the
// est(CI) string; with annotations each referenced column is padded to its
// own width (headers included) and joined with the configured spacing.
func buildLabels(rows []Row, t *Table, cfg Config) {
	spacing := strings.Repeat(" ", cfg.ColSpacing)

	var labels []string
	for _, r := range rows {
		labels = append(labels, r.Label)
	}

	if len(cfg.Annote) == 0 {
		flushPad := maxWidth(labels) + DefaultPadding
		for i := range rows {
			r := &rows[i]
			if r.Kind != KindVariable || !cfg.CIReport {
				r.YLabel = r.Label
				continue
			}
			pad := displayWidth(r.Label) + DefaultPadding
			if cfg.Flush {
				pad = flushPad
			}
			r.YLabel = ljust(r.Label, pad) + r.EstCI
		}
	} else {
		labelPad := maxWidth(labels)
		if cfg.VariableHeader != "" && displayWidth(cfg.VariableHeader) > labelPad {
			labelPad = displayWidth(cfg.VariableHeader)
		}
		pads := annotationPads(rows, cfg.Annote, cfg.AnnoteHeaders)
		for i := range rows {
			r := &rows[i]
			if r.Kind != KindVariable {
				r.YLabel = r.Label
				continue
			}
			parts := []string{ljust(r.Label, labelPad)}
			for ai, col := range cfg.Annote {
				parts = append(parts, ljust(annotationValue(r, col), pads[ai]))
			}
			r.YLabel = strings.Join(parts, spacing)
		}
	}

	if len(cfg.RightAnnote) > 0 {
		pads := annotationPads(rows, cfg.RightAnnote, cfg.RightAnnoteHeaders)
		for i := range rows {
			r := &rows[i]
			if r.Kind != KindVariable {
				continue
			}
			parts := make([]string, 0, len(cfg.RightAnnote))
			for ai, col := range cfg.RightAnnote {
				parts = append(parts, ljust(annotationValue(r, col), pads[ai]))
			}
			r.YLabel2 = strings.Join(parts, spacing)
		}
	}
}

// annotationPads computes the flush width of each annotation column: the
// widest cell, or the header when that is wider.
func annotationPads(rows []Row, cols, headers []string) []int {
	pads := make([]int, len(cols))
	for i, col := range cols {
		for ri := range rows {
			if rows[ri].Kind != KindVariable {
				continue
			}
			if w := displayWidth(annotationValue(&rows[ri], col)); w > pads[i] {
				pads[i] = w
			}
		}
		if len(headers) > 0 {
			if w := displayWidth(headers[i]); w > pads[i] {
				pads[i] = w
			}
		}
	}
	return pads
}

// wantsHeader reports whether a table-header row should be inserted.
func wantsHeader(cfg Config) bool {
	return len(cfg.AnnoteHeaders) > 0 || len(cfg.RightAnnoteHeaders) > 0 || cfg.VariableHeader != ""
}

// headerRow builds the synthetic column-header row placed at the top.
func headerRow(rows []Row, cfg Config) Row {
	spacing := strings.Repeat(" ", cfg.ColSpacing)

	varHeader := cfg.VariableHeader
	if varHeader == "" {
		varHeader = DefaultVarHeader
	}

	var labels []string
	for _, r := range rows {
		labels = append(labels, r.Label)
	}
	labelPad := maxWidth(labels)
	if w := displayWidth(varHeader); w > labelPad {
		labelPad = w
	}

	left := ljust(varHeader, labelPad)
	if len(cfg.AnnoteHeaders) > 0 {
		pads := annotationPads(rows, cfg.Annote, cfg.AnnoteHeaders)
		parts := []string{left}
		for i, h := range cfg.AnnoteHeaders {
			parts = append(parts, ljust(h, pads[i]))
		}
		left = strings.Join(parts, spacing)
	}

	var right string
	if len(cfg.RightAnnoteHeaders) > 0 {
		pads := annotationPads(rows, cfg.RightAnnote, cfg.RightAnnoteHeaders)
		parts := make([]string, 0, len(cfg.RightAnnoteHeaders))
		for i, h := range cfg.RightAnnoteHeaders {
			parts = append(parts, ljust(h, pads[i]))
		}
		right = strings.Join(parts, spacing)
	}

	return Row{
		Kind:     KindTableHeader,
		Label:    varHeader,
		YLabel:   left,
		YLabel2:  right,
		Estimate: math.NaN(), Lower: math.NaN(), Upper: math.NaN(), PValue: math.NaN(),
	}
}

func normalizeGroups(groups []string, mode string) []string {
	if len(groups) == 1 && groups[0] == "" {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = normalizeLabel(g, mode)
	}
	return out
}
