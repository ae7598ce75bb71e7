// Package forestplot is the convenience entry point: one call from a loaded
// table to a renderable figure.
package forestplot

import (
	"github.com/statviz/forestplot/pkg/plot"
	"github.com/statviz/forestplot/pkg/prep"
	"github.com/statviz/forestplot/pkg/table"
)

// Plot prepares the frame with cfg and assembles the figure.
func Plot(f *table.Frame, cfg prep.Config, opts ...plot.Option) (*plot.Figure, error) {
	t, err := prep.Prepare(f, cfg)
	if err != nil {
		return nil, err
	}
	return plot.New(t, opts...)
}

// PlotTable is Plot but also returns the prepared table, for callers that
// want to inspect or export the derived strings and positions.
func PlotTable(f *table.Frame, cfg prep.Config, opts ...plot.Option) (*plot.Figure, *prep.Table, error) {
	t, err := prep.Prepare(f, cfg)
	if err != nil {
		return nil, nil, err
	}
	fig, err := plot.New(t, opts...)
	if err != nil {
		return nil, nil, err
	}
	return fig, t, nil
}
