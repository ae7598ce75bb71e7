// Package pkg provides the core libraries for forest plot generation.
//
// # Overview
//
// A forest plot draws one marker per variable at its effect-size estimate
// with a horizontal line spanning the confidence interval, next to aligned
// text columns for labels, annotations, and p-values. The pkg directory is
// organized by pipeline stage:
//
//  1. [table] - Minimal column-oriented string frame plus CSV I/O
//  2. [prep] - Table preparation (validation, grouping, sorting, formatting)
//  3. [plot] - Figure assembly: layout geometry, visual styles, output sinks
//  4. [pipeline] - Orchestration (load → prepare → layout → render)
//  5. [dataset] - Embedded example datasets
//
// # Architecture
//
// The typical data flow:
//
//	CSV file / built-in dataset
//	         ↓
//	    [table] package (column frame)
//	         ↓
//	    [prep] package (derived strings, synthetic rows, positions)
//	         ↓
//	    [plot/layout] package (canvas geometry)
//	         ↓
//	    [plot/sink] package (SVG/PNG/PDF/JSON output)
//
// # Quick Start
//
// Prepare a table and render it:
//
//	import (
//	    "github.com/statviz/forestplot/pkg/forestplot"
//	    "github.com/statviz/forestplot/pkg/dataset"
//	    "github.com/statviz/forestplot/pkg/prep"
//	)
//
//	f, _ := dataset.Load("sleep")
//	cfg := prep.DefaultConfig()
//	cfg.Estimate, cfg.VarLabel = "r", "label"
//	cfg.Lower, cfg.Upper = "ll", "hl"
//	cfg.PValue, cfg.Group = "p-val", "group"
//
//	fig, _ := forestplot.Plot(f, cfg)
//	svg := fig.SVG()
//
// # Main Packages
//
// [errors] - Structured errors with machine-readable codes for the whole
// module.
//
// [table] - Column-oriented string frame with typed accessors, CSV reading
// and writing, and stable sorting.
//
// [prep] - The preparation pass: column binding validation, confidence
// interval derivation, group partitioning and ordering, within-group
// sorting, label normalization, and monospace-aligned text column assembly.
//
// [plot/layout] - Maps a prepared table onto canvas coordinates: markers,
// CI segments, bands, guide lines, ticks, and positioned text spans.
//
// [plot/styles] - Pluggable visual styles (simple, classic) rendering
// layout primitives to SVG fragments.
//
// [plot/sink] - Output formats: SVG, JSON layout export, and PNG/PDF via
// rsvg-convert.
//
// [pipeline] - The complete pipeline with artifact caching, shared by the
// CLI and library entry points.
//
// [cache] - File-based cache for converted PNG/PDF artifacts.
//
// [dataset] - Embedded example datasets (sleep, sleep-untruncated,
// mortality).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/prep/...   # Specific package
//	go test -run Example     # Examples only
//
// [errors]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/errors
// [table]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/table
// [prep]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/prep
// [plot]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/plot
// [plot/layout]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/plot/layout
// [plot/styles]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/plot/styles
// [plot/sink]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/plot/sink
// [pipeline]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/cache
// [dataset]: https://pkg.go.dev/github.com/statviz/forestplot/pkg/dataset
package pkg
