// Package layout maps a prepared table onto a 2-D canvas.
//
// Build produces a [Layout]: the set of primitive drawing calls (markers,
// confidence-interval segments, text spans, bands, guide lines, and axis
// ticks) with resolved canvas coordinates. The layout is pure data; the
// styles and sink packages turn it into actual output. Canvas coordinates
// follow the SVG convention of y growing downward, so the first prepared row
// (largest vertical rank) lands at the top.
package layout

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/prep"
)

// Canvas geometry defaults. Width and height options size the dot-and-whisker
// region only; the text columns grow the canvas around it.
const (
	DefaultPlotWidth = 480.0
	DefaultRowHeight = 28.0
	DefaultMarker    = 5.0
	DefaultFontSize  = 13.0

	charWidthRatio = 0.62 // monospace advance as a fraction of font size
	marginOuter    = 10.0
	marginTop      = 16.0
	marginBottom   = 58.0
	gutter         = 14.0
	tickTextDrop   = 18.0
	axisTitleDrop  = 42.0
)

// Options configures the layout pass.
type Options struct {
	Width      float64   // plot region width; 0 uses DefaultPlotWidth
	Height     float64   // plot region height; 0 derives from the row count
	MarkerSize float64   // marker radius; 0 uses DefaultMarker
	FontSize   float64   // base font size; 0 uses DefaultFontSize
	XTicks     []float64 // explicit tick values; nil derives from the range
	LogScale   bool      // log10 x axis
	XLabel     string
	YLabel     string
	Table      bool // draw horizontal table rules
	AltRows    bool // shade every other row
	NoRefLine  bool // suppress the vertical reference line
}

func (o *Options) setDefaults(rows int) {
	if o.Width <= 0 {
		o.Width = DefaultPlotWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultRowHeight * float64(rows)
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = DefaultMarker
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
}

// Layout is the complete set of primitives for one figure.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	PlotLeft   float64 `json:"plot_left"`
	PlotRight  float64 `json:"plot_right"`
	PlotTop    float64 `json:"plot_top"`
	PlotBottom float64 `json:"plot_bottom"`
	RowHeight  float64 `json:"row_height"`

	MarkerSize float64 `json:"marker_size"`
	FontSize   float64 `json:"font_size"`
	LogScale   bool    `json:"log_scale,omitempty"`

	Bands    []Band    `json:"bands,omitempty"`
	Segments []Segment `json:"segments"`
	Markers  []Marker  `json:"markers"`
	Lines    []Line    `json:"lines,omitempty"`
	Texts    []Text    `json:"texts,omitempty"`
	Ticks    []Tick    `json:"ticks,omitempty"`
}

// Build computes the layout for a prepared table.
func Build(t *prep.Table, opts Options) (Layout, error) {
	if t == nil || len(t.Rows) == 0 {
		return Layout{}, errors.New(errors.ErrCodeEmptyTable, "prepared table has no rows")
	}
	opts.setDefaults(len(t.Rows))

	lo, hi, err := xRange(t, opts)
	if err != nil {
		return Layout{}, err
	}

	charW := opts.FontSize * charWidthRatio
	leftW := textColumnWidth(leftTexts(t), charW)
	rightW := textColumnWidth(rightTexts(t), charW)
	if rightW > 0 {
		rightW += gutter
	}

	l := Layout{
		MarkerSize: opts.MarkerSize,
		FontSize:   opts.FontSize,
		LogScale:   opts.LogScale,
		RowHeight:  opts.Height / float64(len(t.Rows)),
	}
	l.PlotLeft = marginOuter + leftW + gutter
	l.PlotRight = l.PlotLeft + opts.Width
	l.PlotTop = marginTop
	l.PlotBottom = l.PlotTop + opts.Height
	l.Width = l.PlotRight + rightW + marginOuter
	l.Height = l.PlotBottom + marginBottom

	scale := scaleFunc(&l, lo, hi, opts.LogScale)

	placeRows(&l, t, opts, scale)
	placeGuides(&l, t, opts, scale, lo, hi)
	placeTicks(&l, opts, scale, lo, hi)
	placeAxisTitles(&l, opts)

	return l, nil
}

// xRange resolves the horizontal data range: the union of all confidence
// limits and any explicit ticks, padded by 5% on each side.
func xRange(t *prep.Table, opts Options) (lo, hi float64, err error) {
	lo, hi = t.XRange()
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, 0, errors.New(errors.ErrCodeEmptyTable, "prepared table has no variable rows")
	}
	for _, v := range opts.XTicks {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if opts.LogScale {
		if lo <= 0 {
			return 0, 0, errors.New(errors.ErrCodeInvalidData,
				"log scale requires positive values, range starts at %g", lo)
		}
		// Pad multiplicatively in log space.
		ratio := math.Pow(hi/lo, 0.05)
		return lo / ratio, hi * ratio, nil
	}

	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad, nil
}

// scaleFunc maps a data value to a canvas x coordinate.
func scaleFunc(l *Layout, lo, hi float64, logScale bool) func(float64) float64 {
	width := l.PlotRight - l.PlotLeft
	if logScale {
		ulo, uhi := math.Log10(lo), math.Log10(hi)
		return func(v float64) float64 {
			return l.PlotLeft + (math.Log10(v)-ulo)/(uhi-ulo)*width
		}
	}
	return func(v float64) float64 {
		return l.PlotLeft + (v-lo)/(hi-lo)*width
	}
}

// placeRows emits the per-row primitives: bands, CI segments, markers, and
// the left/right text columns.
func placeRows(l *Layout, t *prep.Table, opts Options, scale func(float64) float64) {
	shade := false
	for i, r := range t.Rows {
		yC := l.PlotTop + (float64(i)+0.5)*l.RowHeight

		if opts.AltRows && r.Kind != prep.KindTableHeader {
			if shade {
				l.Bands = append(l.Bands, Band{
					X: 0, Y: yC - l.RowHeight/2,
					W: l.Width, H: l.RowHeight,
					Row: i,
				})
			}
			shade = !shade
		}

		if r.YLabel != "" {
			l.Texts = append(l.Texts, Text{
				Value: r.YLabel, X: marginOuter, Y: yC,
				Role: roleFor(r.Kind), Anchor: "start", Mono: true,
			})
		}
		if right := rightText(t, r); right != "" {
			l.Texts = append(l.Texts, Text{
				Value: right, X: l.PlotRight + gutter, Y: yC,
				Role: rightRoleFor(r.Kind), Anchor: "start", Mono: true,
			})
		}

		if r.Kind != prep.KindVariable {
			continue
		}
		l.Segments = append(l.Segments, Segment{
			X1: scale(r.Lower), X2: scale(r.Upper), Y: yC, Row: i,
		})
		l.Markers = append(l.Markers, Marker{X: scale(r.Estimate), Y: yC, Row: i})
	}
}

// placeGuides emits the reference line and, in table mode, the horizontal
// rules around the header row and at the bottom.
func placeGuides(l *Layout, t *prep.Table, opts Options, scale func(float64) float64, lo, hi float64) {
	ref := 0.0
	if opts.LogScale {
		ref = 1.0
	}
	if !opts.NoRefLine && ref > lo && ref < hi {
		x := scale(ref)
		l.Lines = append(l.Lines, Line{X1: x, Y1: l.PlotTop, X2: x, Y2: l.PlotBottom, Dashed: true})
	}

	// Bottom spine carries the ticks.
	l.Lines = append(l.Lines, Line{X1: l.PlotLeft, Y1: l.PlotBottom, X2: l.PlotRight, Y2: l.PlotBottom})

	if opts.Table {
		x1, x2 := marginOuter, l.Width-marginOuter
		l.Lines = append(l.Lines, Line{X1: x1, Y1: l.PlotTop, X2: x2, Y2: l.PlotTop})
		if t.HasHeader {
			y := l.PlotTop + l.RowHeight
			l.Lines = append(l.Lines, Line{X1: x1, Y1: y, X2: x2, Y2: y})
		}
		l.Lines = append(l.Lines, Line{X1: x1, Y1: l.PlotBottom, X2: x2, Y2: l.PlotBottom})
	}
}

// placeTicks emits tick marks and labels along the bottom spine.
func placeTicks(l *Layout, opts Options, scale func(float64) float64, lo, hi float64) {
	values := opts.XTicks
	if len(values) == 0 {
		if opts.LogScale {
			values = deriveLogTicks(lo, hi)
		} else {
			values = deriveTicks(lo, hi, defaultTickCount)
		}
	}

	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		x := scale(v)
		l.Ticks = append(l.Ticks, Tick{Value: v, X: x, Label: tickLabel(v)})
		l.Texts = append(l.Texts, Text{
			Value: tickLabel(v), X: x, Y: l.PlotBottom + tickTextDrop,
			Role: RoleTick, Anchor: "middle",
		})
	}
}

// placeAxisTitles emits the x and y axis titles when configured.
func placeAxisTitles(l *Layout, opts Options) {
	if opts.XLabel != "" {
		l.Texts = append(l.Texts, Text{
			Value: opts.XLabel,
			X:     (l.PlotLeft + l.PlotRight) / 2, Y: l.PlotBottom + axisTitleDrop,
			Role: RoleAxisTitle, Anchor: "middle",
		})
	}
	if opts.YLabel != "" {
		l.Texts = append(l.Texts, Text{
			Value: opts.YLabel,
			X:     marginOuter, Y: marginTop - 4,
			Role: RoleAxisTitle, Anchor: "start",
		})
	}
}

// leftTexts collects the strings of the left text column.
func leftTexts(t *prep.Table) []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.YLabel)
	}
	return out
}

// rightTexts collects the strings of the right text column: the right
// annotations when present, otherwise formatted p-values with their header.
func rightTexts(t *prep.Table) []string {
	var out []string
	for _, r := range t.Rows {
		if s := rightText(t, r); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// rightText resolves the right-hand string for one row.
func rightText(t *prep.Table, r prep.Row) string {
	if t.HasRight {
		return r.YLabel2
	}
	if !t.HasPValues {
		return ""
	}
	if r.Kind == prep.KindTableHeader {
		return "P-value"
	}
	return r.FormattedPValue
}

// textColumnWidth returns the canvas width of a monospaced text column.
func textColumnWidth(texts []string, charW float64) float64 {
	w := 0
	for _, s := range texts {
		if n := runewidth.StringWidth(s); n > w {
			w = n
		}
	}
	return float64(w) * charW
}

func roleFor(k prep.RowKind) TextRole {
	switch k {
	case prep.KindGroupHeader:
		return RoleGroup
	case prep.KindTableHeader:
		return RoleHeader
	}
	return RoleLabel
}

func rightRoleFor(k prep.RowKind) TextRole {
	if k == prep.KindTableHeader {
		return RoleHeader
	}
	return RoleRightLabel
}
