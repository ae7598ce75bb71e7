// Package plot assembles prepared tables into renderable figures.
//
// A [Figure] binds a prepared table to layout options and a visual style.
// Construction runs the layout pass once; the SVG, JSON, PNG, and PDF
// methods render the cached layout through the sink package.
package plot

import (
	"github.com/statviz/forestplot/pkg/plot/layout"
	"github.com/statviz/forestplot/pkg/plot/sink"
	"github.com/statviz/forestplot/pkg/plot/styles"
	"github.com/statviz/forestplot/pkg/prep"
)

// Option configures figure construction.
type Option func(*figureConfig)

type figureConfig struct {
	layout layout.Options
	style  styles.Style
}

// WithSize sets the plot region size in canvas units. Zero values keep the
// defaults (width 480, height derived from the row count).
func WithSize(width, height float64) Option {
	return func(c *figureConfig) { c.layout.Width, c.layout.Height = width, height }
}

// WithMarkerSize sets the estimate marker radius.
func WithMarkerSize(r float64) Option {
	return func(c *figureConfig) { c.layout.MarkerSize = r }
}

// WithFontSize sets the base font size.
func WithFontSize(s float64) Option {
	return func(c *figureConfig) { c.layout.FontSize = s }
}

// WithXTicks sets explicit x-axis tick values. The x range extends to cover
// them.
func WithXTicks(ticks []float64) Option {
	return func(c *figureConfig) { c.layout.XTicks = ticks }
}

// WithLogScale switches the x axis to log10. All confidence limits and ticks
// must be positive; the reference line moves from 0 to 1.
func WithLogScale() Option {
	return func(c *figureConfig) { c.layout.LogScale = true }
}

// WithXLabel sets the x-axis title.
func WithXLabel(s string) Option {
	return func(c *figureConfig) { c.layout.XLabel = s }
}

// WithYLabel sets the y-axis title.
func WithYLabel(s string) Option {
	return func(c *figureConfig) { c.layout.YLabel = s }
}

// WithTableLook draws horizontal rules around the header row and at the
// bottom of the chart.
func WithTableLook() Option {
	return func(c *figureConfig) { c.layout.Table = true }
}

// WithAltRows shades every other row.
func WithAltRows() Option {
	return func(c *figureConfig) { c.layout.AltRows = true }
}

// WithoutRefLine suppresses the vertical reference line.
func WithoutRefLine() Option {
	return func(c *figureConfig) { c.layout.NoRefLine = true }
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) Option {
	return func(c *figureConfig) { c.style = s }
}

// Figure is a laid-out forest plot ready for rendering.
type Figure struct {
	Table  *prep.Table
	Layout layout.Layout

	style styles.Style
}

// New runs the layout pass over a prepared table and returns the figure.
func New(t *prep.Table, opts ...Option) (*Figure, error) {
	cfg := figureConfig{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	l, err := layout.Build(t, cfg.layout)
	if err != nil {
		return nil, err
	}
	return &Figure{Table: t, Layout: l, style: cfg.style}, nil
}

// Style returns the figure's visual style.
func (f *Figure) Style() styles.Style { return f.style }

// SVG renders the figure as an SVG document.
func (f *Figure) SVG() []byte {
	return sink.RenderSVG(f.Layout, sink.WithStyle(f.style))
}

// JSON exports the figure's layout as a JSON document.
func (f *Figure) JSON() ([]byte, error) {
	return sink.RenderJSON(f.Layout, sink.WithJSONStyle(f.style.Name()))
}

// PNG renders the figure as a PNG at the given scale factor (2.0 for 2x).
// Requires librsvg.
func (f *Figure) PNG(scale float64) ([]byte, error) {
	return sink.RenderPNG(f.Layout,
		sink.WithPNGSVGOptions(sink.WithStyle(f.style)),
		sink.WithScale(scale))
}

// PDF renders the figure as a PDF. Requires librsvg.
func (f *Figure) PDF() ([]byte, error) {
	return sink.RenderPDF(f.Layout, sink.WithPDFSVGOptions(sink.WithStyle(f.style)))
}
