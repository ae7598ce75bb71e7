package prep

import (
	"slices"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/table"
)

// Default formatting values applied by DefaultConfig.
const (
	DefaultPrecision  = 2
	DefaultColSpacing = 2
	DefaultVarIndent  = 2
	DefaultCaps       = "()"
	DefaultConnector  = " to "
	DefaultVarHeader  = "Variable"
	DefaultPadding    = 2 // spaces between the label column and the est(CI) string
)

// DefaultThresholds are the significance thresholds used for starring
// p-values, checked in order. A p-value at or below thresholds[i] gets
// symbols[i] appended.
//
//	p <= 0.01 -> ***
//	p <= 0.05 -> **
//	p <= 0.10 -> *
var DefaultThresholds = []float64{0.01, 0.05, 0.1}

// DefaultSymbols are the symbols paired with DefaultThresholds.
var DefaultSymbols = []string{"***", "**", "*"}

// Config names which columns of the input table play which semantic role,
// plus the formatting options for the prepared table. Construct with
// [DefaultConfig] and override fields as needed; the zero value disables
// every optional behavior.
type Config struct {
	// Column bindings. Estimate and VarLabel are required. The confidence
	// interval must come from exactly one source: the Lower/Upper pair or
	// MarginOfError. When both are bound, the limits take precedence.
	Estimate      string
	VarLabel      string
	Lower         string
	Upper         string
	MarginOfError string
	PValue        string
	Group         string

	// Annotation columns printed to the left and right of the plot, with
	// optional header labels (same length as the columns when given).
	// Besides input columns, the derived names "est_ci", "ci_range" and
	// "formatted_pval" may be referenced.
	Annote             []string
	AnnoteHeaders      []string
	RightAnnote        []string
	RightAnnoteHeaders []string

	// GroupOrder lists the groups in the order they should appear.
	// It must cover exactly the groups present in the data: a name with no
	// matching rows, or a data group it omits, is a configuration error.
	GroupOrder []string

	// Sorting. Sort enables sorting by SortBy (default: the estimate
	// column) ascending, independently within each group.
	Sort           bool
	SortBy         string
	SortDescending bool

	// Capitalize normalizes variable and group labels:
	// "", "capitalize", "title", "lower", "upper".
	Capitalize string

	// Formatting options.
	Precision   int       // decimal places for formatted numbers
	CIReport    bool      // append the est(CI) string to the left label
	StarPValues bool      // append significance symbols to p-values
	Thresholds  []float64 // significance thresholds, ascending
	Symbols     []string  // symbols paired with Thresholds
	Flush       bool      // left-flush text columns with fixed-width padding
	ColSpacing  int       // spaces between annotation columns
	VarIndent   int       // indent of variable rows under group headers
	Caps        string    // two runes enclosing the CI range, e.g. "()"
	Connector   string    // joins lower and upper limits, e.g. " to "

	// VariableHeader is the header label above the variable column when a
	// table header row is built. Empty disables the header row unless
	// annotation headers force one.
	VariableHeader string
}

// DefaultConfig returns a Config with the conventional defaults: precision 2,
// CI reporting on, starred p-values, flush alignment, and the standard
// significance thresholds.
func DefaultConfig() Config {
	return Config{
		Precision:   DefaultPrecision,
		CIReport:    true,
		StarPValues: true,
		Thresholds:  slices.Clone(DefaultThresholds),
		Symbols:     slices.Clone(DefaultSymbols),
		Flush:       true,
		ColSpacing:  DefaultColSpacing,
		VarIndent:   DefaultVarIndent,
		Caps:        DefaultCaps,
		Connector:   DefaultConnector,
	}
}

// derived column names accepted as annotation references.
const (
	derivedEstCI   = "est_ci"
	derivedCIRange = "ci_range"
	derivedPVal    = "formatted_pval"
)

func isDerivedColumn(name string) bool {
	switch name {
	case derivedEstCI, derivedCIRange, derivedPVal:
		return true
	}
	return false
}

// Validate checks the configuration against the input frame. It verifies the
// required bindings, the limits-or-margin-of-error rule, annotation arity,
// and the group order policy. The error names the offending column or group.
func (c *Config) Validate(f *table.Frame) error {
	if f == nil || f.Len() == 0 {
		return errors.New(errors.ErrCodeEmptyTable, "input table has no rows")
	}

	if c.Estimate == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "estimate column binding is required")
	}
	if c.VarLabel == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "variable label column binding is required")
	}

	// Limits come as a pair.
	if (c.Lower == "") != (c.Upper == "") {
		return errors.New(errors.ErrCodeConflictingColumns,
			"confidence limits must be bound as a pair: lower=%q upper=%q", c.Lower, c.Upper)
	}
	if c.Lower == "" && c.MarginOfError == "" {
		return errors.New(errors.ErrCodeMissingColumn,
			"confidence interval source required: bind lower/upper limits or a margin of error column")
	}

	for _, col := range []string{c.Estimate, c.VarLabel, c.Lower, c.Upper, c.MarginOfError, c.PValue, c.Group} {
		if col == "" {
			continue
		}
		if err := errors.ValidateColumnName(col); err != nil {
			return err
		}
		if !f.HasColumn(col) {
			return errors.New(errors.ErrCodeMissingColumn, "column %q not found in table", col)
		}
	}

	if len(c.AnnoteHeaders) > 0 && len(c.Annote) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"annotation headers provided but no annotation columns")
	}
	if len(c.RightAnnoteHeaders) > 0 && len(c.RightAnnote) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"right annotation headers provided but no right annotation columns")
	}
	if len(c.AnnoteHeaders) > 0 && len(c.AnnoteHeaders) != len(c.Annote) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"annotation headers (%d) and columns (%d) differ in length",
			len(c.AnnoteHeaders), len(c.Annote))
	}
	if len(c.RightAnnoteHeaders) > 0 && len(c.RightAnnoteHeaders) != len(c.RightAnnote) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"right annotation headers (%d) and columns (%d) differ in length",
			len(c.RightAnnoteHeaders), len(c.RightAnnote))
	}

	for _, col := range append(slices.Clone(c.Annote), c.RightAnnote...) {
		if !f.HasColumn(col) && !isDerivedColumn(col) {
			return errors.New(errors.ErrCodeMissingColumn, "annotation column %q not found in table", col)
		}
	}

	if len(c.Thresholds) != len(c.Symbols) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"thresholds (%d) and symbols (%d) differ in length", len(c.Thresholds), len(c.Symbols))
	}
	if c.Precision < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "precision must be >= 0, got %d", c.Precision)
	}

	switch c.Capitalize {
	case "", "capitalize", "title", "lower", "upper":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"capitalize must be one of capitalize, title, lower, upper; got %q", c.Capitalize)
	}

	if c.SortBy != "" && !f.HasColumn(c.SortBy) {
		return errors.New(errors.ErrCodeMissingColumn, "sort column %q not found in table", c.SortBy)
	}

	return c.validateGroupOrder(f)
}

// validateGroupOrder enforces the group order policy: an explicit order must
// name exactly the groups present in the data. Groups named but absent, or
// present but omitted, are rejected rather than dropped or appended.
func (c *Config) validateGroupOrder(f *table.Frame) error {
	if len(c.GroupOrder) == 0 {
		return nil
	}
	if c.Group == "" {
		return errors.New(errors.ErrCodeInvalidGroupOrder,
			"group order provided but no group column bound")
	}

	present := f.Unique(c.Group)
	for _, g := range c.GroupOrder {
		if !slices.Contains(present, g) {
			return errors.New(errors.ErrCodeInvalidGroupOrder,
				"group %q in group order not found in data", g)
		}
	}
	for _, g := range present {
		if !slices.Contains(c.GroupOrder, g) {
			return errors.New(errors.ErrCodeInvalidGroupOrder,
				"group %q present in data but missing from group order", g)
		}
	}
	return nil
}
