// Package pipeline provides the core plotting pipeline.
//
// This package implements the complete load → prepare → layout → render
// pipeline shared by the CLI and library entry points. Centralizing the
// logic keeps behavior consistent and avoids duplicating the caching of
// converted artifacts.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Prepare: Validate column bindings and derive the formatted table
//  2. Layout: Compute canvas positions for every drawing primitive
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Dataset: "sleep",
//	    Prep:    cfg,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/plot/layout"
	"github.com/statviz/forestplot/pkg/plot/styles"
	"github.com/statviz/forestplot/pkg/prep"
)

// Default values shared by the CLI and library entry points.
const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"

	// TTLArtifact bounds how long converted artifacts stay cached.
	TTLArtifact = 30 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	"simple":  true,
	"classic": true,
}

// Options contains all configuration for the plotting pipeline.
// This struct supports JSON serialization so plot manifests and API
// requests share one shape.
type Options struct {
	// Input options: a built-in dataset name or a CSV path. Exactly one
	// must be set when the Runner loads the input itself.
	Dataset string `json:"dataset,omitempty"`
	Input   string `json:"input,omitempty"`

	// Prepare options.
	Prep prep.Config `json:"prep"`

	// Layout options.
	Width      float64   `json:"width,omitempty"`
	Height     float64   `json:"height,omitempty"`
	MarkerSize float64   `json:"marker_size,omitempty"`
	FontSize   float64   `json:"font_size,omitempty"`
	XTicks     []float64 `json:"xticks,omitempty"`
	LogScale   bool      `json:"log_scale,omitempty"`
	XLabel     string    `json:"xlabel,omitempty"`
	YLabel     string    `json:"ylabel,omitempty"`
	TableLook  bool      `json:"table,omitempty"`
	AltRows    bool      `json:"alt_rows,omitempty"`
	NoRefLine  bool      `json:"no_ref_line,omitempty"`

	// Render options.
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG resolution multiplier

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Prepared is the derived table: formatted strings, synthetic rows,
	// vertical positions.
	Prepared *prep.Table

	// Layout contains the resolved drawing primitives.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which conversions hit the artifact cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount   int // prepared rows, synthetic rows included
	GroupCount int
	PrepTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks artifact cache activity for one run.
type CacheInfo struct {
	Hits   int // conversions served from cache
	Misses int // conversions that ran rsvg-convert
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, classic)", style)
	}
	return nil
}

// StyleFor resolves a style name to its implementation. The name must have
// passed [ValidateStyle].
func StyleFor(name string) styles.Style {
	if name == "classic" {
		return styles.NewClassic()
	}
	return styles.NewSimple()
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// LayoutOptions converts the pipeline options to layout options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Width:      o.Width,
		Height:     o.Height,
		MarkerSize: o.MarkerSize,
		FontSize:   o.FontSize,
		XTicks:     o.XTicks,
		LogScale:   o.LogScale,
		XLabel:     o.XLabel,
		YLabel:     o.YLabel,
		Table:      o.TableLook,
		AltRows:    o.AltRows,
		NoRefLine:  o.NoRefLine,
	}
}
