package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/pipeline"
	"github.com/statviz/forestplot/pkg/prep"
)

// manifest is the TOML schema for a plot description. A manifest captures
// everything a plot needs so a figure can be reproduced from one file:
//
//	[input]
//	dataset = "sleep"          # or: csv = "study.csv"
//
//	[columns]
//	estimate = "r"
//	varlabel = "label"
//	ll = "ll"
//	hl = "hl"
//	pvalue = "p-val"
//	group = "group"
//	group_order = ["labor factors", "household factors"]
//	annote = ["n", "est_ci"]
//	annote_headers = ["N", "Est. (95% CI)"]
//
//	[format]
//	precision = 2
//	sort = true
//	capitalize = "capitalize"
//
//	[plot]
//	xlabel = "Pearson correlation"
//	table = true
//	alt_rows = true
//
//	[output]
//	formats = ["svg", "png"]
//	style = "classic"
type manifest struct {
	Input   manifestInput   `toml:"input"`
	Columns manifestColumns `toml:"columns"`
	Format  manifestFormat  `toml:"format"`
	Plot    manifestPlot    `toml:"plot"`
	Output  manifestOutput  `toml:"output"`
}

type manifestInput struct {
	Dataset string `toml:"dataset"`
	CSV     string `toml:"csv"`
}

type manifestColumns struct {
	Estimate           string   `toml:"estimate"`
	VarLabel           string   `toml:"varlabel"`
	Lower              string   `toml:"ll"`
	Upper              string   `toml:"hl"`
	MarginOfError      string   `toml:"moerror"`
	PValue             string   `toml:"pvalue"`
	Group              string   `toml:"group"`
	GroupOrder         []string `toml:"group_order"`
	Annote             []string `toml:"annote"`
	AnnoteHeaders      []string `toml:"annote_headers"`
	RightAnnote        []string `toml:"right_annote"`
	RightAnnoteHeaders []string `toml:"right_annote_headers"`
}

type manifestFormat struct {
	Precision  *int      `toml:"precision"`
	CIReport   *bool     `toml:"ci_report"`
	StarPVals  *bool     `toml:"star_pvalues"`
	Flush      *bool     `toml:"flush"`
	Sort       bool      `toml:"sort"`
	SortBy     string    `toml:"sort_by"`
	SortDesc   bool      `toml:"sort_desc"`
	Capitalize string    `toml:"capitalize"`
	Thresholds []float64 `toml:"thresholds"`
	Symbols    []string  `toml:"symbols"`
	VarHeader  string    `toml:"var_header"`
}

type manifestPlot struct {
	Width      float64   `toml:"width"`
	Height     float64   `toml:"height"`
	MarkerSize float64   `toml:"marker_size"`
	FontSize   float64   `toml:"font_size"`
	XTicks     []float64 `toml:"xticks"`
	LogScale   bool      `toml:"log_scale"`
	XLabel     string    `toml:"xlabel"`
	YLabel     string    `toml:"ylabel"`
	Table      bool      `toml:"table"`
	AltRows    bool      `toml:"alt_rows"`
	NoRefLine  bool      `toml:"no_ref_line"`
}

type manifestOutput struct {
	Formats []string `toml:"formats"`
	Style   string   `toml:"style"`
	Scale   float64  `toml:"scale"`
}

// loadManifest reads a TOML plot manifest into pipeline options.
func loadManifest(path string) (*pipeline.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "manifest %q not found", path)
		}
		return nil, err
	}

	var m manifest
	meta, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest %q", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"manifest %q has unknown key %q", path, undecoded[0].String())
	}

	cfg := prep.DefaultConfig()
	cfg.Estimate = m.Columns.Estimate
	cfg.VarLabel = m.Columns.VarLabel
	cfg.Lower = m.Columns.Lower
	cfg.Upper = m.Columns.Upper
	cfg.MarginOfError = m.Columns.MarginOfError
	cfg.PValue = m.Columns.PValue
	cfg.Group = m.Columns.Group
	cfg.GroupOrder = m.Columns.GroupOrder
	cfg.Annote = m.Columns.Annote
	cfg.AnnoteHeaders = m.Columns.AnnoteHeaders
	cfg.RightAnnote = m.Columns.RightAnnote
	cfg.RightAnnoteHeaders = m.Columns.RightAnnoteHeaders

	if m.Format.Precision != nil {
		cfg.Precision = *m.Format.Precision
	}
	if m.Format.CIReport != nil {
		cfg.CIReport = *m.Format.CIReport
	}
	if m.Format.StarPVals != nil {
		cfg.StarPValues = *m.Format.StarPVals
	}
	if m.Format.Flush != nil {
		cfg.Flush = *m.Format.Flush
	}
	cfg.Sort = m.Format.Sort || m.Format.SortBy != ""
	cfg.SortBy = m.Format.SortBy
	cfg.SortDescending = m.Format.SortDesc
	cfg.Capitalize = m.Format.Capitalize
	if len(m.Format.Thresholds) > 0 {
		cfg.Thresholds = m.Format.Thresholds
	}
	if len(m.Format.Symbols) > 0 {
		cfg.Symbols = m.Format.Symbols
	}
	if m.Format.VarHeader != "" {
		cfg.VariableHeader = m.Format.VarHeader
	}

	return &pipeline.Options{
		Dataset:    m.Input.Dataset,
		Input:      m.Input.CSV,
		Prep:       cfg,
		Width:      m.Plot.Width,
		Height:     m.Plot.Height,
		MarkerSize: m.Plot.MarkerSize,
		FontSize:   m.Plot.FontSize,
		XTicks:     m.Plot.XTicks,
		LogScale:   m.Plot.LogScale,
		XLabel:     m.Plot.XLabel,
		YLabel:     m.Plot.YLabel,
		TableLook:  m.Plot.Table,
		AltRows:    m.Plot.AltRows,
		NoRefLine:  m.Plot.NoRefLine,
		Formats:    m.Output.Formats,
		Style:      m.Output.Style,
		Scale:      m.Output.Scale,
	}, nil
}
