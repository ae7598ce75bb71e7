package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	monoFamily  = "Menlo, Consolas, 'DejaVu Sans Mono', monospace"
	sansFamily  = "Helvetica, Arial, sans-serif"
	serifFamily = "Georgia, 'Times New Roman', serif"
)

// EscapeXML escapes s for embedding in SVG text content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// writeText emits one <text> element with the resolved font attributes.
func writeText(buf *bytes.Buffer, s Span, family, fill, weight string) {
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" text-anchor="%s" fill="%s"`,
		s.X, s.Y, family, s.Size, anchorOf(s), fill)
	if weight != "" {
		fmt.Fprintf(buf, ` font-weight="%s"`, weight)
	}
	fmt.Fprintf(buf, ` dominant-baseline="middle" xml:space="preserve">%s</text>`+"\n", EscapeXML(s.Text))
}

func anchorOf(s Span) string {
	switch s.Anchor {
	case "middle", "end":
		return s.Anchor
	}
	return "start"
}
