// Package dataset provides bundled example tables for quickstarts and tests.
//
// The datasets are embedded directly into the binary using go:embed, making
// them available without network access or external files.
package dataset

import (
	"bytes"
	"embed"
	"sort"
	"strings"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/table"
)

//go:embed data/*.csv
var dataFS embed.FS

// files maps dataset names to their embedded CSV paths.
var files = map[string]string{
	"mortality":         "data/mortality.csv",
	"sleep":             "data/sleep.csv",
	"sleep-untruncated": "data/sleep-untruncated.csv",
}

// descriptions holds a one-line summary per dataset, shown by the CLI.
var descriptions = map[string]string{
	"mortality":         "adjusted and subgroup mortality risk ratios with confidence limits",
	"sleep":             "correlates of weekly sleep duration, truncated to 2 decimals",
	"sleep-untruncated": "correlates of weekly sleep duration at full precision",
}

// Names returns the available dataset names in sorted order.
func Names() []string {
	out := make([]string, 0, len(files))
	for name := range files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Describe returns the one-line description for a dataset, or "".
func Describe(name string) string {
	return descriptions[normalize(name)]
}

// Load returns the named bundled dataset as a Frame.
// Names are case-insensitive and surrounding whitespace is ignored.
// Unknown names fail with a DATASET_NOT_FOUND error listing what exists.
func Load(name string) (*table.Frame, error) {
	path, ok := files[normalize(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeDatasetNotFound,
			"dataset %q not found, should be one of: %s", name, strings.Join(Names(), ", "))
	}

	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read embedded dataset %q", name)
	}
	return table.ReadCSV(bytes.NewReader(raw))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
