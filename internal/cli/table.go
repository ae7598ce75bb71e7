package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/prep"
	"github.com/statviz/forestplot/pkg/table"
)

// tableOpts holds the command-line flags for the table command.
type tableOpts struct {
	plot   plotOpts // reuses the plot bindings and formatting flags
	output string
	format string // csv, json, or yaml
}

// tableCommand creates the table command: run the preparation pass only and
// export the derived columns, without rendering.
func (c *CLI) tableCommand() *cobra.Command {
	opts := tableOpts{
		plot: plotOpts{
			precision: prep.DefaultPrecision,
			varHeader: prep.DefaultVarHeader,
		},
		format: "csv",
	}

	cmd := &cobra.Command{
		Use:   "table [file.csv]",
		Short: "Prepare a table and export the derived columns",
		Long: `Table runs the preparation pass (validation, grouping, sorting, string
formatting, vertical positions) and exports the result without rendering.
Useful for inspecting exactly what the plot would draw, or for feeding the
prepared strings into another tool.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "csv" && opts.format != "json" && opts.format != "yaml" {
				return errors.New(errors.ErrCodeInvalidFormat,
					"invalid table format: %q (must be one of: csv, json, yaml)", opts.format)
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runTable(cmd.Context(), input, &opts)
		},
	}

	p := &opts.plot
	cmd.Flags().StringVarP(&p.dataset, "dataset", "d", "", "built-in dataset name")
	cmd.Flags().StringVarP(&p.manifest, "manifest", "m", "", "TOML plot manifest")
	cmd.Flags().StringVar(&p.estimate, "estimate", "", "estimate column")
	cmd.Flags().StringVar(&p.varlabel, "varlabel", "", "variable label column")
	cmd.Flags().StringVar(&p.lower, "ll", "", "lower confidence limit column")
	cmd.Flags().StringVar(&p.upper, "hl", "", "upper confidence limit column")
	cmd.Flags().StringVar(&p.moerror, "moerror", "", "margin of error column")
	cmd.Flags().StringVar(&p.pvalue, "pval", "", "p-value column")
	cmd.Flags().StringVar(&p.group, "group", "", "group column")
	cmd.Flags().StringVar(&p.groupOrder, "group-order", "", "group display order (comma-separated)")
	cmd.Flags().StringVar(&p.annote, "annote", "", "left annotation columns (comma-separated)")
	cmd.Flags().StringVar(&p.annoteHeaders, "annote-headers", "", "headers for left annotation columns")
	cmd.Flags().StringVar(&p.rightAnnote, "right-annote", "", "right annotation columns")
	cmd.Flags().StringVar(&p.rightAnnoteHeaders, "right-annote-headers", "", "headers for right annotation columns")
	cmd.Flags().BoolVar(&p.sort, "sort", false, "sort rows by estimate within each group")
	cmd.Flags().StringVar(&p.sortBy, "sort-by", "", "sort column (implies --sort)")
	cmd.Flags().BoolVar(&p.sortDesc, "sort-desc", false, "sort descending")
	cmd.Flags().StringVar(&p.capitalize, "capitalize", "", "label normalization: capitalize, title, lower, upper")
	cmd.Flags().IntVar(&p.precision, "precision", p.precision, "decimal places for formatted numbers")
	cmd.Flags().BoolVar(&p.noCI, "no-ci", false, "omit the est(CI) text column")
	cmd.Flags().BoolVar(&p.noStars, "no-stars", false, "disable p-value significance stars")
	cmd.Flags().BoolVar(&p.noFlush, "no-flush", false, "disable fixed-width text column alignment")
	cmd.Flags().StringVar(&p.varHeader, "var-header", p.varHeader, "header above the variable column")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "export format: csv (default), json, yaml")

	return cmd
}

// runTable loads the input, prepares it, and writes the export.
func (c *CLI) runTable(ctx context.Context, input string, opts *tableOpts) error {
	logger := loggerFromContext(ctx)

	pipeOpts, err := buildPipelineOptions(input, &opts.plot)
	if err != nil {
		return err
	}

	runner := c.newRunner(true)
	defer runner.Close()

	f, err := runner.Load(*pipeOpts)
	if err != nil {
		return err
	}

	track := newProgress(logger)
	t, err := prep.Prepare(f, pipeOpts.Prep)
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Prepared %d rows", len(t.Rows)))

	data, err := encodeTable(t, opts.format)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return err
	}
	printFile(opts.output)
	return nil
}

// encodeTable flattens the prepared table to the requested format.
func encodeTable(t *prep.Table, format string) ([]byte, error) {
	header, records := t.Records()

	switch format {
	case "csv":
		f := table.New(header...)
		for _, rec := range records {
			if err := f.AppendRow(rec...); err != nil {
				return nil, err
			}
		}
		var buf bytes.Buffer
		if err := table.WriteCSV(f, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		return json.MarshalIndent(recordMaps(header, records), "", "  ")
	case "yaml":
		return yaml.Marshal(recordMaps(header, records))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid table format: %q", format)
}

// recordMaps pairs each record with the header for structured encoders.
func recordMaps(header []string, records [][]string) []map[string]string {
	out := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		m := make(map[string]string, len(header))
		for i, key := range header {
			m[key] = rec[i]
		}
		out = append(out, m)
	}
	return out
}
