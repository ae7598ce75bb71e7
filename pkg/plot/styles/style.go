package styles

import "bytes"

// Style defines the visual appearance for forest plot rendering.
// Implementations control how markers, interval whiskers, guide lines,
// bands, and text are drawn.
type Style interface {
	// Name identifies the style in exported metadata.
	Name() string
	// RenderDefs writes SVG <defs> and background content.
	RenderDefs(buf *bytes.Buffer, width, height float64)
	// RenderBand writes a single alternate-row background stripe.
	RenderBand(buf *bytes.Buffer, b Band)
	// RenderLine writes a guide line: reference line, axis spine, or
	// table rule.
	RenderLine(buf *bytes.Buffer, l GuideLine)
	// RenderSegment writes a single confidence-interval whisker.
	RenderSegment(buf *bytes.Buffer, s Segment)
	// RenderMarker writes a single estimate marker.
	RenderMarker(buf *bytes.Buffer, m Marker)
	// RenderTick writes a single axis tick mark.
	RenderTick(buf *bytes.Buffer, t TickMark)
	// RenderText writes a single text span.
	RenderText(buf *bytes.Buffer, s Span)
}

// Marker contains positioning data for one estimate point.
type Marker struct {
	X, Y float64 // center coordinates
	R    float64 // radius (half-extent for non-circular shapes)
}

// Segment contains positioning data for one confidence-interval whisker.
type Segment struct {
	X1, X2, Y float64
	CapHeight float64 // half-height of the end caps; 0 disables caps
}

// Band is one alternate-row background stripe.
type Band struct {
	X, Y, W, H float64
}

// GuideLine is a straight guide with optional dashing.
type GuideLine struct {
	X1, Y1, X2, Y2 float64
	Dashed         bool
}

// TickMark is one tick on the bottom axis spine.
type TickMark struct {
	X, Y1, Y2 float64
}

// Span contains all data needed to render one text span. Role carries the
// layout classification ("label", "group", "header", "tick", ...) so styles
// can pick fonts and weights.
type Span struct {
	Text   string
	X, Y   float64
	Size   float64
	Role   string
	Anchor string // "start", "middle", or "end"
	Mono   bool
}
