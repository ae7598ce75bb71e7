package styles

import (
	"bytes"
	"fmt"
)

// Simple is the default style: white background, blue markers and whiskers,
// a dashed gray reference line, and light gray alternate-row shading.
type Simple struct{}

// NewSimple returns the default style.
func NewSimple() Simple { return Simple{} }

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, height)
}

func (Simple) RenderBand(buf *bytes.Buffer, b Band) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f2f2f2"/>`+"\n",
		b.X, b.Y, b.W, b.H)
}

func (Simple) RenderLine(buf *bytes.Buffer, l GuideLine) {
	dash := ""
	stroke := "#333333"
	if l.Dashed {
		dash = ` stroke-dasharray="5,4"`
		stroke = "#888888"
	}
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"%s/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, stroke, dash)
}

func (Simple) RenderSegment(buf *bytes.Buffer, s Segment) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#1f4e79" stroke-width="1.6"/>`+"\n",
		s.X1, s.Y, s.X2, s.Y)
	if s.CapHeight > 0 {
		for _, x := range [2]float64{s.X1, s.X2} {
			fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#1f4e79" stroke-width="1.6"/>`+"\n",
				x, s.Y-s.CapHeight, x, s.Y+s.CapHeight)
		}
	}
}

func (Simple) RenderMarker(buf *bytes.Buffer, m Marker) {
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="#1f4e79"/>`+"\n", m.X, m.Y, m.R)
}

func (Simple) RenderTick(buf *bytes.Buffer, t TickMark) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333333" stroke-width="1"/>`+"\n",
		t.X, t.Y1, t.X, t.Y2)
}

func (Simple) RenderText(buf *bytes.Buffer, s Span) {
	family := sansFamily
	if s.Mono {
		family = monoFamily
	}
	fill := "#1a1a1a"
	weight := ""
	switch s.Role {
	case "group", "header":
		weight = "bold"
	case "tick":
		fill = "#444444"
	case "axis_title":
		fill = "#333333"
	}
	writeText(buf, s, family, fill, weight)
}
