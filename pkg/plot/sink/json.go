package sink

import (
	"encoding/json"

	"github.com/statviz/forestplot/pkg/plot/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
}

// WithJSONStyle records the style name (e.g. "simple", "classic") in the
// JSON output for documentation or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonOutput struct {
	Style  string `json:"style,omitempty"`
	Layout layout.Layout
}

// MarshalJSON flattens the layout fields next to the style name.
func (o jsonOutput) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(o.Layout)
	if err != nil {
		return nil, err
	}
	if o.Style == "" {
		return raw, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	styleRaw, err := json.Marshal(o.Style)
	if err != nil {
		return nil, err
	}
	m["style"] = styleRaw
	return json.Marshal(m)
}

// RenderJSON exports the layout as a pretty-printed JSON document: the
// resolved canvas geometry plus every primitive drawing call. The output can
// be consumed by external plotting tools or re-rendered identically.
//
// RenderJSON returns an error only if marshaling fails, does not modify l,
// and is safe to call concurrently.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	return json.MarshalIndent(jsonOutput{Style: r.style, Layout: l}, "", "  ")
}
