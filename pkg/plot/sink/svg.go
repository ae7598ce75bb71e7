package sink

import (
	"bytes"
	"fmt"

	"github.com/statviz/forestplot/pkg/plot/layout"
	"github.com/statviz/forestplot/pkg/plot/styles"
)

const tickLength = 5.0

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// RenderSVG renders the layout as an SVG document. Drawing order is bands,
// guide lines, whiskers, markers, ticks, then text, so text is never
// occluded.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf, l.Width, l.Height)
	renderContent(&buf, r.style, l)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderContent(buf *bytes.Buffer, s styles.Style, l layout.Layout) {
	for _, b := range l.Bands {
		s.RenderBand(buf, styles.Band{X: b.X, Y: b.Y, W: b.W, H: b.H})
	}
	for _, ln := range l.Lines {
		s.RenderLine(buf, styles.GuideLine{X1: ln.X1, Y1: ln.Y1, X2: ln.X2, Y2: ln.Y2, Dashed: ln.Dashed})
	}

	capH := l.MarkerSize * 0.8
	for _, seg := range l.Segments {
		s.RenderSegment(buf, styles.Segment{X1: seg.X1, X2: seg.X2, Y: seg.Y, CapHeight: capH})
	}
	for _, m := range l.Markers {
		s.RenderMarker(buf, styles.Marker{X: m.X, Y: m.Y, R: l.MarkerSize})
	}
	for _, t := range l.Ticks {
		s.RenderTick(buf, styles.TickMark{X: t.X, Y1: l.PlotBottom, Y2: l.PlotBottom + tickLength})
	}
	for _, t := range l.Texts {
		s.RenderText(buf, buildSpan(t, l.FontSize))
	}
}

func buildSpan(t layout.Text, base float64) styles.Span {
	size := base
	switch t.Role {
	case layout.RoleTick:
		size = base * 0.85
	case layout.RoleAxisTitle:
		size = base * 1.05
	}
	return styles.Span{
		Text: t.Value,
		X:    t.X, Y: t.Y,
		Size:   size,
		Role:   string(t.Role),
		Anchor: t.Anchor,
		Mono:   t.Mono,
	}
}
