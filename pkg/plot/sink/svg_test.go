package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/statviz/forestplot/pkg/plot/layout"
	"github.com/statviz/forestplot/pkg/plot/styles"
	"github.com/statviz/forestplot/pkg/prep"
	"github.com/statviz/forestplot/pkg/table"
)

// testLayout builds a real layout from a tiny prepared table.
func testLayout(t *testing.T) layout.Layout {
	t.Helper()
	f := table.New("label", "est", "ll", "hl", "group")
	rows := [][]string{
		{"age", "0.09", "0.02", "0.16", "a"},
		{"black", "-0.03", "-0.10", "0.05", "a"},
	}
	for _, r := range rows {
		if err := f.AppendRow(r...); err != nil {
			t.Fatal(err)
		}
	}
	cfg := prep.DefaultConfig()
	cfg.Estimate = "est"
	cfg.VarLabel = "label"
	cfg.Lower = "ll"
	cfg.Upper = "hl"
	cfg.Group = "group"
	tab, err := prep.Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.Build(tab, layout.Options{AltRows: true, XLabel: "effect"})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(testLayout(t)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root element: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("markers = %d, want 2", n)
	}
	if !strings.Contains(svg, "effect") {
		t.Error("axis title missing from output")
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("reference line missing from output")
	}
}

func TestRenderSVGDrawOrder(t *testing.T) {
	svg := string(RenderSVG(testLayout(t)))

	band := strings.Index(svg, `fill="#f2f2f2"`)
	marker := strings.Index(svg, "<circle")
	text := strings.Index(svg, "<text")
	if band == -1 || marker == -1 || text == -1 {
		t.Fatalf("missing primitives: band=%d marker=%d text=%d", band, marker, text)
	}
	if !(band < marker && marker < text) {
		t.Errorf("draw order wrong: band=%d marker=%d text=%d, want bands before markers before text",
			band, marker, text)
	}
}

func TestRenderSVGWithStyle(t *testing.T) {
	svg := string(RenderSVG(testLayout(t), WithStyle(styles.Classic{})))

	if strings.Contains(svg, "<circle") {
		t.Error("classic style should draw square markers")
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("classic style should be grayscale")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	l := testLayout(t)
	a := RenderSVG(l)
	b := RenderSVG(l)
	if string(a) != string(b) {
		t.Error("RenderSVG() is not deterministic for identical layout")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout(t))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out struct {
		Width    float64           `json:"width"`
		Height   float64           `json:"height"`
		Markers  []json.RawMessage `json:"markers"`
		Segments []json.RawMessage `json:"segments"`
		Style    string            `json:"style"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Width <= 0 || out.Height <= 0 {
		t.Errorf("canvas size = %gx%g, want positive", out.Width, out.Height)
	}
	if len(out.Markers) != 2 || len(out.Segments) != 2 {
		t.Errorf("markers = %d, segments = %d, want 2 each", len(out.Markers), len(out.Segments))
	}
	if out.Style != "" {
		t.Errorf("style = %q, want omitted by default", out.Style)
	}
}

func TestRenderJSONWithStyle(t *testing.T) {
	data, err := RenderJSON(testLayout(t), WithJSONStyle("classic"))
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if string(out["style"]) != `"classic"` {
		t.Errorf("style = %s, want \"classic\"", out["style"])
	}
	if _, ok := out["markers"]; !ok {
		t.Error("layout fields should sit next to the style key")
	}
}
