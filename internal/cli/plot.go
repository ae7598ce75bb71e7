package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/statviz/forestplot/pkg/pipeline"
	"github.com/statviz/forestplot/pkg/prep"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	// Input.
	dataset  string // built-in dataset name
	manifest string // TOML manifest path

	// Column bindings.
	estimate   string
	varlabel   string
	lower      string
	upper      string
	moerror    string
	pvalue     string
	group      string
	groupOrder string // comma-separated

	// Annotations (comma-separated column lists).
	annote             string
	annoteHeaders      string
	rightAnnote        string
	rightAnnoteHeaders string

	// Sorting and normalization.
	sort       bool
	sortBy     string
	sortDesc   bool
	capitalize string

	// Formatting.
	precision int
	noCI      bool
	noStars   bool
	noFlush   bool
	varHeader string

	// Layout.
	width      float64
	height     float64
	markerSize float64
	fontSize   float64
	xticks     string // comma-separated
	logScale   bool
	xlabel     string
	ylabel     string
	tableLook  bool
	altRows    bool
	noRefLine  bool

	// Render.
	output  string
	formats []string
	style   string
	scale   float64
	noCache bool
}

// plotCommand creates the plot command for rendering forest plots.
//
// Default settings:
//   - format: svg
//   - style: simple
//   - precision: 2, est(CI) reporting and p-value starring on
func (c *CLI) plotCommand() *cobra.Command {
	var formatsStr string
	opts := plotOpts{
		precision: prep.DefaultPrecision,
		varHeader: prep.DefaultVarHeader,
		scale:     pipeline.DefaultScale,
		style:     pipeline.DefaultStyle,
	}

	cmd := &cobra.Command{
		Use:   "plot [file.csv]",
		Short: "Render a forest plot from a CSV file or built-in dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" {
				opts.formats = parseFormats(formatsStr)
				if err := pipeline.ValidateFormats(opts.formats); err != nil {
					return err
				}
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPlot(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "", "built-in dataset name (see 'forestplot datasets')")
	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "TOML plot manifest (replaces most flags)")

	cmd.Flags().StringVar(&opts.estimate, "estimate", "", "estimate column (required without manifest)")
	cmd.Flags().StringVar(&opts.varlabel, "varlabel", "", "variable label column (required without manifest)")
	cmd.Flags().StringVar(&opts.lower, "ll", "", "lower confidence limit column")
	cmd.Flags().StringVar(&opts.upper, "hl", "", "upper confidence limit column")
	cmd.Flags().StringVar(&opts.moerror, "moerror", "", "margin of error column (alternative to --ll/--hl)")
	cmd.Flags().StringVar(&opts.pvalue, "pval", "", "p-value column")
	cmd.Flags().StringVar(&opts.group, "group", "", "group column")
	cmd.Flags().StringVar(&opts.groupOrder, "group-order", "", "group display order (comma-separated, must cover all groups)")

	cmd.Flags().StringVar(&opts.annote, "annote", "", "left annotation columns (comma-separated; est_ci, ci_range, formatted_pval allowed)")
	cmd.Flags().StringVar(&opts.annoteHeaders, "annote-headers", "", "headers for left annotation columns")
	cmd.Flags().StringVar(&opts.rightAnnote, "right-annote", "", "right annotation columns")
	cmd.Flags().StringVar(&opts.rightAnnoteHeaders, "right-annote-headers", "", "headers for right annotation columns")

	cmd.Flags().BoolVar(&opts.sort, "sort", false, "sort rows by estimate within each group")
	cmd.Flags().StringVar(&opts.sortBy, "sort-by", "", "sort column (implies --sort)")
	cmd.Flags().BoolVar(&opts.sortDesc, "sort-desc", false, "sort descending")
	cmd.Flags().StringVar(&opts.capitalize, "capitalize", "", "label normalization: capitalize, title, lower, upper")

	cmd.Flags().IntVar(&opts.precision, "precision", opts.precision, "decimal places for formatted numbers")
	cmd.Flags().BoolVar(&opts.noCI, "no-ci", false, "omit the est(CI) text column")
	cmd.Flags().BoolVar(&opts.noStars, "no-stars", false, "disable p-value significance stars")
	cmd.Flags().BoolVar(&opts.noFlush, "no-flush", false, "disable fixed-width text column alignment")
	cmd.Flags().StringVar(&opts.varHeader, "var-header", opts.varHeader, "header above the variable column")

	cmd.Flags().Float64Var(&opts.width, "width", 0, "plot region width (0 = default)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "plot region height (0 = derive from rows)")
	cmd.Flags().Float64Var(&opts.markerSize, "marker-size", 0, "estimate marker radius")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "base font size")
	cmd.Flags().StringVar(&opts.xticks, "xticks", "", "explicit x tick values (comma-separated)")
	cmd.Flags().BoolVar(&opts.logScale, "log-scale", false, "log10 x axis (reference line at 1)")
	cmd.Flags().StringVar(&opts.xlabel, "xlabel", "", "x-axis title")
	cmd.Flags().StringVar(&opts.ylabel, "ylabel", "", "y-axis title")
	cmd.Flags().BoolVar(&opts.tableLook, "table", false, "draw horizontal table rules")
	cmd.Flags().BoolVar(&opts.altRows, "alt-rows", false, "shade every other row")
	cmd.Flags().BoolVar(&opts.noRefLine, "no-ref-line", false, "suppress the vertical reference line")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: simple (default), classic")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// runPlot executes the pipeline and writes every requested artifact.
func (c *CLI) runPlot(ctx context.Context, input string, opts *plotOpts) error {
	pipeOpts, err := buildPipelineOptions(input, opts)
	if err != nil {
		return err
	}
	pipeOpts.Logger = loggerFromContext(ctx)
	if len(pipeOpts.Formats) == 0 {
		pipeOpts.Formats = []string{pipeline.FormatSVG}
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, "Rendering forest plot")
	spin.Start()
	result, err := runner.Execute(ctx, *pipeOpts)
	if err != nil {
		spin.StopWithError(err.Error())
		return err
	}
	spin.Stop()

	base := plotBasePath(opts.output, pipeOpts)
	for _, format := range pipeOpts.Formats {
		path := opts.output
		if path == "" || len(pipeOpts.Formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return err
		}
		printFile(path)
	}

	printSuccess("Rendered %s", strings.Join(pipeOpts.Formats, ", "))
	printStats(result.Stats.RowCount, result.Stats.GroupCount, result.CacheInfo.Hits > 0 && result.CacheInfo.Misses == 0)
	return nil
}

// buildPipelineOptions assembles the pipeline configuration from a manifest
// or from the individual flags.
func buildPipelineOptions(input string, opts *plotOpts) (*pipeline.Options, error) {
	if opts.manifest != "" {
		pipeOpts, err := loadManifest(opts.manifest)
		if err != nil {
			return nil, err
		}
		// Output options stay flag-driven even with a manifest.
		if len(opts.formats) > 0 {
			pipeOpts.Formats = opts.formats
		}
		return pipeOpts, nil
	}

	cfg := prep.DefaultConfig()
	cfg.Estimate = opts.estimate
	cfg.VarLabel = opts.varlabel
	cfg.Lower = opts.lower
	cfg.Upper = opts.upper
	cfg.MarginOfError = opts.moerror
	cfg.PValue = opts.pvalue
	cfg.Group = opts.group
	cfg.GroupOrder = parseList(opts.groupOrder)
	cfg.Annote = parseList(opts.annote)
	cfg.AnnoteHeaders = parseList(opts.annoteHeaders)
	cfg.RightAnnote = parseList(opts.rightAnnote)
	cfg.RightAnnoteHeaders = parseList(opts.rightAnnoteHeaders)
	cfg.Sort = opts.sort || opts.sortBy != ""
	cfg.SortBy = opts.sortBy
	cfg.SortDescending = opts.sortDesc
	cfg.Capitalize = opts.capitalize
	cfg.Precision = opts.precision
	cfg.CIReport = !opts.noCI
	cfg.StarPValues = !opts.noStars
	cfg.Flush = !opts.noFlush
	cfg.VariableHeader = opts.varHeader

	xticks, err := parseFloats(opts.xticks)
	if err != nil {
		return nil, err
	}

	formats := opts.formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}

	return &pipeline.Options{
		Dataset:    opts.dataset,
		Input:      input,
		Prep:       cfg,
		Width:      opts.width,
		Height:     opts.height,
		MarkerSize: opts.markerSize,
		FontSize:   opts.fontSize,
		XTicks:     xticks,
		LogScale:   opts.logScale,
		XLabel:     opts.xlabel,
		YLabel:     opts.ylabel,
		TableLook:  opts.tableLook,
		AltRows:    opts.altRows,
		NoRefLine:  opts.noRefLine,
		Formats:    formats,
		Style:      opts.style,
		Scale:      opts.scale,
	}, nil
}

// plotBasePath derives the output base path: explicit output minus a known
// format extension, the input CSV name, or the dataset name.
func plotBasePath(output string, opts *pipeline.Options) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if opts.Input != "" {
		return strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
	}
	if opts.Dataset != "" {
		return opts.Dataset
	}
	return "forestplot"
}

// parseFloats parses a comma-separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tick value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
