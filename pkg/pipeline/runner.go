package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/statviz/forestplot/pkg/cache"
	"github.com/statviz/forestplot/pkg/dataset"
	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/plot/layout"
	"github.com/statviz/forestplot/pkg/plot/sink"
	"github.com/statviz/forestplot/pkg/prep"
	"github.com/statviz/forestplot/pkg/table"
)

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute loads the input named by opts and runs the complete
// prepare → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	f, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	return r.ExecuteFrame(ctx, f, opts)
}

// ExecuteFrame runs the pipeline over an already-loaded frame.
func (r *Runner) ExecuteFrame(ctx context.Context, f *table.Frame, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Prepare
	prepStart := time.Now()
	t, err := prep.Prepare(f, opts.Prep)
	if err != nil {
		return nil, err
	}
	result.Prepared = t
	result.Stats.PrepTime = time.Since(prepStart)
	result.Stats.RowCount = len(t.Rows)
	result.Stats.GroupCount = len(t.Groups)

	opts.Logger.Info("prepared table",
		"rows", result.Stats.RowCount,
		"groups", result.Stats.GroupCount,
		"duration", result.Stats.PrepTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := layout.Build(t, opts.LayoutOptions())
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Info("computed layout",
		"markers", len(l.Markers),
		"texts", len(l.Texts),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	if err := r.render(ctx, result, opts); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load resolves the input table from the options: a built-in dataset by
// name, or a CSV file by path.
func (r *Runner) Load(opts Options) (*table.Frame, error) {
	switch {
	case opts.Dataset != "" && opts.Input != "":
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"dataset %q and input %q are mutually exclusive", opts.Dataset, opts.Input)
	case opts.Dataset != "":
		return dataset.Load(opts.Dataset)
	case opts.Input != "":
		return table.ReadCSVFile(opts.Input)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "no input: set a dataset name or a CSV path")
}

// render fills result.Artifacts for every requested format. SVG and JSON
// are computed directly; PNG and PDF conversions go through the artifact
// cache keyed by the SVG bytes and conversion parameters.
func (r *Runner) render(ctx context.Context, result *Result, opts Options) error {
	style := StyleFor(opts.Style)
	svg := sink.RenderSVG(result.Layout, sink.WithStyle(style))

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			result.Artifacts[format] = svg
		case FormatJSON:
			data, err := sink.RenderJSON(result.Layout, sink.WithJSONStyle(style.Name()))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
			}
			result.Artifacts[format] = data
		case FormatPNG, FormatPDF:
			data, err := r.convert(ctx, svg, format, opts.Scale, &result.CacheInfo)
			if err != nil {
				return err
			}
			result.Artifacts[format] = data
		}
	}
	return nil
}

// convert runs one cached SVG conversion.
func (r *Runner) convert(ctx context.Context, svg []byte, format string, scale float64, info *CacheInfo) ([]byte, error) {
	key := cache.ArtifactKey(svg, format, scale)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		info.Hits++
		return data, nil
	}
	info.Misses++

	var data []byte
	var err error
	if format == FormatPNG {
		data, err = sink.ToPNG(svg, scale)
	} else {
		data, err = sink.ToPDF(svg)
	}
	if err != nil {
		return nil, err
	}

	_ = r.Cache.Set(ctx, key, data, TTLArtifact)
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
