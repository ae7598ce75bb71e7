package styles

import (
	"bytes"
	"fmt"
)

// Classic is a grayscale journal style: black square markers, capped
// whiskers, a solid reference line, and serif axis titles.
type Classic struct{}

// NewClassic returns the grayscale journal style.
func NewClassic() Classic { return Classic{} }

func (Classic) Name() string { return "classic" }

func (Classic) RenderDefs(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, height)
}

func (Classic) RenderBand(buf *bytes.Buffer, b Band) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#ebebeb"/>`+"\n",
		b.X, b.Y, b.W, b.H)
}

func (Classic) RenderLine(buf *bytes.Buffer, l GuideLine) {
	width := 1.0
	if !l.Dashed {
		width = 1.2
	}
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000" stroke-width="%.1f"/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, width)
}

func (Classic) RenderSegment(buf *bytes.Buffer, s Segment) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000" stroke-width="1.2"/>`+"\n",
		s.X1, s.Y, s.X2, s.Y)
	cap := s.CapHeight
	if cap <= 0 {
		cap = 3
	}
	for _, x := range [2]float64{s.X1, s.X2} {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000" stroke-width="1.2"/>`+"\n",
			x, s.Y-cap, x, s.Y+cap)
	}
}

func (Classic) RenderMarker(buf *bytes.Buffer, m Marker) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#000000"/>`+"\n",
		m.X-m.R, m.Y-m.R, 2*m.R, 2*m.R)
}

func (Classic) RenderTick(buf *bytes.Buffer, t TickMark) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000" stroke-width="1"/>`+"\n",
		t.X, t.Y1, t.X, t.Y2)
}

func (Classic) RenderText(buf *bytes.Buffer, s Span) {
	family := sansFamily
	if s.Mono {
		family = monoFamily
	}
	weight := ""
	switch s.Role {
	case "group", "header":
		weight = "bold"
	case "axis_title":
		family = serifFamily
	}
	writeText(buf, s, family, "#000000", weight)
}
