// Package sink provides output format renderers for forest plots.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics
//   - JSON: Layout data export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws bands, guide lines, whiskers, markers, ticks, and text
// in that order, so text is never occluded. The visual style is pluggable:
//
//	svg := sink.RenderSVG(layout, sink.WithStyle(styles.NewClassic()))
//
// # JSON Output
//
// [RenderJSON] exports the complete layout as JSON: the resolved canvas
// geometry plus every primitive drawing call, enabling integration with
// external plotting tools and round-trip rendering.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the layout as PDF/PNG by first
// generating SVG, then converting via [ToPDF] and [ToPNG]. These require
// librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Layout]: github.com/statviz/forestplot/pkg/plot/layout.Layout
package sink
