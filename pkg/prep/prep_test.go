package prep

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/statviz/forestplot/pkg/errors"
	"github.com/statviz/forestplot/pkg/table"
)

// makeFrame builds a frame from a header and rows, failing the test on error.
func makeFrame(t *testing.T, header []string, rows ...[]string) *table.Frame {
	t.Helper()
	f := table.New(header...)
	for _, r := range rows {
		if err := f.AppendRow(r...); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

// sleepFrame is a small slice of the sleep dataset used across tests.
func sleepFrame(t *testing.T) *table.Frame {
	t.Helper()
	return makeFrame(t,
		[]string{"var", "r", "moerror", "ll", "hl", "n", "p-val", "label", "group"},
		[]string{"age", "0.090", "0.070", "0.02", "0.16", "706", "0.0167", "in years", "age"},
		[]string{"black", "-0.027", "0.077", "-0.10", "0.05", "706", "0.4768", "=1 if black", "other factors"},
		[]string{"clerical", "0.065", "0.073", "-0.01", "0.14", "706", "0.0841", "=1 if clerical worker", "labor factors"},
		[]string{"construc", "-0.004", "0.074", "-0.08", "0.07", "706", "0.9172", "=1 if construction worker", "labor factors"},
	)
}

func sleepConfig() Config {
	cfg := DefaultConfig()
	cfg.Estimate = "r"
	cfg.VarLabel = "label"
	cfg.Lower = "ll"
	cfg.Upper = "hl"
	cfg.PValue = "p-val"
	return cfg
}

func TestPrepareEstCIStrings(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	vars := tab.Variables()
	if len(vars) != 4 {
		t.Fatalf("Variables() = %d rows, want 4", len(vars))
	}

	if got := vars[0].EstCI; got != "0.09(0.02 to 0.16)" {
		t.Errorf("EstCI = %q, want %q", got, "0.09(0.02 to 0.16)")
	}
	if got := vars[1].EstCI; got != "-0.03(-0.10 to 0.05)" {
		t.Errorf("EstCI = %q, want %q", got, "-0.03(-0.10 to 0.05)")
	}
	if got := vars[0].FormattedEstimate; got != "0.09" {
		t.Errorf("FormattedEstimate = %q, want 0.09", got)
	}
	if got := vars[0].CIRange; got != "(0.02 to 0.16)" {
		t.Errorf("CIRange = %q, want (0.02 to 0.16)", got)
	}
}

func TestPrepareStarsPValues(t *testing.T) {
	f := makeFrame(t,
		[]string{"label", "est", "ll", "hl", "p"},
		[]string{"a", "0.1", "0.0", "0.2", "0.004"},
		[]string{"b", "0.1", "0.0", "0.2", "0.03"},
		[]string{"c", "0.1", "0.0", "0.2", "0.08"},
		[]string{"d", "0.1", "0.0", "0.2", "0.2"},
		[]string{"e", "0.1", "0.0", "0.2", ""},
	)
	cfg := DefaultConfig()
	cfg.Estimate = "est"
	cfg.VarLabel = "label"
	cfg.Lower = "ll"
	cfg.Upper = "hl"
	cfg.PValue = "p"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	want := []string{"0.00***", "0.03**", "0.08*", "0.20", ""}
	for i, r := range tab.Variables() {
		if r.FormattedPValue != want[i] {
			t.Errorf("row %d FormattedPValue = %q, want %q", i, r.FormattedPValue, want[i])
		}
	}
}

func TestPrepareMarginOfError(t *testing.T) {
	f := makeFrame(t,
		[]string{"label", "est", "moe"},
		[]string{"a", "0.5", "0.2"},
	)
	cfg := DefaultConfig()
	cfg.Estimate = "est"
	cfg.VarLabel = "label"
	cfg.MarginOfError = "moe"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r := tab.Variables()[0]
	if r.Lower != 0.3 || r.Upper != 0.7 {
		t.Errorf("limits = [%g, %g], want [0.3, 0.7]", r.Lower, r.Upper)
	}
}

func TestPrepareLimitsTakePrecedenceOverMarginOfError(t *testing.T) {
	f := makeFrame(t,
		[]string{"label", "est", "ll", "hl", "moe"},
		[]string{"a", "0.5", "0.1", "0.9", "0.2"},
	)
	cfg := DefaultConfig()
	cfg.Estimate = "est"
	cfg.VarLabel = "label"
	cfg.Lower = "ll"
	cfg.Upper = "hl"
	cfg.MarginOfError = "moe"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r := tab.Variables()[0]
	if r.Lower != 0.1 || r.Upper != 0.9 {
		t.Errorf("limits = [%g, %g], want bound limits [0.1, 0.9]", r.Lower, r.Upper)
	}
}

func TestPrepareBlankLimitsFallBackToMarginOfError(t *testing.T) {
	f := makeFrame(t,
		[]string{"label", "est", "ll", "hl", "moe"},
		[]string{"a", "0.5", "", "", "0.2"},
		[]string{"b", "0.5", "0.1", "0.9", "0.2"},
	)
	cfg := DefaultConfig()
	cfg.Estimate = "est"
	cfg.VarLabel = "label"
	cfg.Lower = "ll"
	cfg.Upper = "hl"
	cfg.MarginOfError = "moe"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	vars := tab.Variables()
	if vars[0].Lower != 0.3 || vars[0].Upper != 0.7 {
		t.Errorf("row a limits = [%g, %g], want derived [0.3, 0.7]", vars[0].Lower, vars[0].Upper)
	}
	if vars[1].Lower != 0.1 || vars[1].Upper != 0.9 {
		t.Errorf("row b limits = [%g, %g], want bound [0.1, 0.9]", vars[1].Lower, vars[1].Upper)
	}
}

func TestPrepareDataErrors(t *testing.T) {
	cfgLimits := func() Config {
		cfg := DefaultConfig()
		cfg.Estimate = "est"
		cfg.VarLabel = "label"
		cfg.Lower = "ll"
		cfg.Upper = "hl"
		return cfg
	}
	cfgMoe := func() Config {
		cfg := DefaultConfig()
		cfg.Estimate = "est"
		cfg.VarLabel = "label"
		cfg.MarginOfError = "moe"
		return cfg
	}

	tests := []struct {
		name   string
		header []string
		row    []string
		cfg    Config
	}{
		{
			name:   "estimate outside interval",
			header: []string{"label", "est", "ll", "hl"},
			row:    []string{"a", "0.5", "0.6", "0.9"},
			cfg:    cfgLimits(),
		},
		{
			name:   "negative margin of error",
			header: []string{"label", "est", "moe"},
			row:    []string{"a", "0.5", "-0.1"},
			cfg:    cfgMoe(),
		},
		{
			name:   "blank margin of error",
			header: []string{"label", "est", "moe"},
			row:    []string{"a", "0.5", ""},
			cfg:    cfgMoe(),
		},
		{
			name:   "non-finite estimate",
			header: []string{"label", "est", "ll", "hl"},
			row:    []string{"a", "", "0.1", "0.9"},
			cfg:    cfgLimits(),
		},
		{
			name:   "blank limits without margin of error",
			header: []string{"label", "est", "ll", "hl"},
			row:    []string{"a", "0.5", "", ""},
			cfg:    cfgLimits(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := makeFrame(t, tt.header, tt.row)
			_, err := Prepare(f, tt.cfg)
			if !errors.Is(err, errors.ErrCodeInvalidData) {
				t.Errorf("Prepare() error code = %v, want INVALID_DATA (err = %v)", errors.GetCode(err), err)
			}
		})
	}
}

func TestPrepareGrouping(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()
	cfg.Group = "group"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	wantGroups := []string{"age", "other factors", "labor factors"}
	if !reflect.DeepEqual(tab.Groups, wantGroups) {
		t.Errorf("Groups = %v, want first-seen order %v", tab.Groups, wantGroups)
	}

	// Group headers interleave with their variables in reading order.
	wantKinds := []RowKind{
		KindGroupHeader, KindVariable,
		KindGroupHeader, KindVariable,
		KindGroupHeader, KindVariable, KindVariable,
	}
	if len(tab.Rows) != len(wantKinds) {
		t.Fatalf("len(Rows) = %d, want %d", len(tab.Rows), len(wantKinds))
	}
	for i, k := range wantKinds {
		if tab.Rows[i].Kind != k {
			t.Errorf("row %d kind = %v, want %v", i, tab.Rows[i].Kind, k)
		}
	}

	// Variables are indented under their group header.
	for _, r := range tab.Variables() {
		if !strings.HasPrefix(r.Label, strings.Repeat(" ", DefaultVarIndent)) {
			t.Errorf("variable label %q not indented", r.Label)
		}
	}
}

func TestPrepareGroupWhitespace(t *testing.T) {
	f := makeFrame(t,
		[]string{"label", "est", "ll", "hl", "group"},
		[]string{"clerical", "0.065", "-0.01", "0.14", "labor "},
		[]string{"construc", "-0.004", "-0.08", "0.07", "labor"},
	)
	cfg := DefaultConfig()
	cfg.Estimate = "est"
	cfg.VarLabel = "label"
	cfg.Lower = "ll"
	cfg.Upper = "hl"
	cfg.Group = "group"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// Padded group cells collapse onto the trimmed group; no row is lost.
	if got := len(tab.Variables()); got != 2 {
		t.Fatalf("Variables() = %d rows, want 2", got)
	}
	if !reflect.DeepEqual(tab.Groups, []string{"labor"}) {
		t.Errorf("Groups = %v, want [labor]", tab.Groups)
	}

	cfg.GroupOrder = []string{"labor"}
	if _, err := Prepare(f, cfg); err != nil {
		t.Errorf("Prepare() with group order over padded cells error = %v", err)
	}
}

func TestPrepareGroupOrder(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()
	cfg.Group = "group"
	cfg.GroupOrder = []string{"labor factors", "age", "other factors"}

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if !reflect.DeepEqual(tab.Groups, cfg.GroupOrder) {
		t.Errorf("Groups = %v, want explicit order %v", tab.Groups, cfg.GroupOrder)
	}
	if tab.Rows[0].Group != "labor factors" {
		t.Errorf("first group = %q, want labor factors", tab.Rows[0].Group)
	}
}

func TestPrepareSortWithinGroups(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()
	cfg.Group = "group"
	cfg.Sort = true

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// Sorting happens inside each group: group order is unchanged, and the
	// two labor factors rows come out ascending by estimate.
	wantGroups := []string{"age", "other factors", "labor factors"}
	if !reflect.DeepEqual(tab.Groups, wantGroups) {
		t.Errorf("Groups = %v, want %v", tab.Groups, wantGroups)
	}

	var labor []Row
	for _, r := range tab.Variables() {
		if r.Group == "labor factors" {
			labor = append(labor, r)
		}
	}
	if len(labor) != 2 {
		t.Fatalf("labor factors rows = %d, want 2", len(labor))
	}
	if labor[0].Estimate > labor[1].Estimate {
		t.Errorf("labor factors not ascending: %g then %g", labor[0].Estimate, labor[1].Estimate)
	}

	cfg.SortDescending = true
	tab, err = Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	labor = labor[:0]
	for _, r := range tab.Variables() {
		if r.Group == "labor factors" {
			labor = append(labor, r)
		}
	}
	if labor[0].Estimate < labor[1].Estimate {
		t.Errorf("labor factors not descending: %g then %g", labor[0].Estimate, labor[1].Estimate)
	}
}

func TestPrepareIsDeterministic(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()
	cfg.Group = "group"
	cfg.Sort = true

	a, err := Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	ha, ra := a.Records()
	hb, rb := b.Records()
	if !reflect.DeepEqual(ha, hb) || !reflect.DeepEqual(ra, rb) {
		t.Error("Prepare() is not deterministic for identical input")
	}
}

func TestPrepareYPositions(t *testing.T) {
	f := sleepFrame(t)
	tab, err := Prepare(f, sleepConfig())
	if err != nil {
		t.Fatal(err)
	}

	n := len(tab.Rows)
	for i, r := range tab.Rows {
		if want := n - 1 - i; r.Y != want {
			t.Errorf("row %d Y = %d, want %d", i, r.Y, want)
		}
	}
}

func TestPrepareFlushAlignment(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// With flush on, every est(CI) string starts at the same column.
	col := -1
	for _, r := range tab.Variables() {
		idx := strings.Index(r.YLabel, r.EstCI)
		if idx < 0 {
			t.Fatalf("YLabel %q does not contain EstCI %q", r.YLabel, r.EstCI)
		}
		if col == -1 {
			col = idx
		} else if idx != col {
			t.Errorf("EstCI column = %d, want %d (YLabel %q)", idx, col, r.YLabel)
		}
	}

	cfg.Flush = false
	tab, err = Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	vars := tab.Variables()
	short, long := vars[0], vars[2] // "in years" vs "=1 if clerical worker"
	if strings.Index(short.YLabel, short.EstCI) == strings.Index(long.YLabel, long.EstCI) {
		t.Error("without flush, est(CI) columns should follow each label's own width")
	}
}

func TestPrepareNoCIReport(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()
	cfg.CIReport = false

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if tab.HasCI {
		t.Error("HasCI = true with CIReport off")
	}
	for _, r := range tab.Variables() {
		if r.YLabel != r.Label {
			t.Errorf("YLabel = %q, want bare label %q", r.YLabel, r.Label)
		}
	}
}

func TestPrepareAnnotations(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()
	cfg.Annote = []string{"n", "est_ci"}
	cfg.AnnoteHeaders = []string{"N", "Est. (95% Conf. Int.)"}
	cfg.RightAnnote = []string{"formatted_pval"}
	cfg.RightAnnoteHeaders = []string{"P-value"}

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if !tab.HasHeader {
		t.Fatal("HasHeader = false, annotation headers should force a header row")
	}
	head := tab.Rows[0]
	if head.Kind != KindTableHeader {
		t.Fatalf("first row kind = %v, want header", head.Kind)
	}
	if !strings.HasPrefix(head.YLabel, DefaultVarHeader) {
		t.Errorf("header YLabel = %q, want %q prefix", head.YLabel, DefaultVarHeader)
	}
	if !strings.Contains(head.YLabel, "N") || !strings.Contains(head.YLabel, "Est. (95% Conf. Int.)") {
		t.Errorf("header YLabel = %q missing annotation headers", head.YLabel)
	}
	if head.YLabel2 != "P-value" {
		t.Errorf("header YLabel2 = %q, want P-value", head.YLabel2)
	}

	for _, r := range tab.Variables() {
		if !strings.Contains(r.YLabel, "706") {
			t.Errorf("YLabel %q missing n annotation", r.YLabel)
		}
		if !strings.Contains(r.YLabel, r.EstCI) {
			t.Errorf("YLabel %q missing est_ci %q", r.YLabel, r.EstCI)
		}
		if strings.TrimSpace(r.YLabel2) != r.FormattedPValue {
			t.Errorf("YLabel2 = %q, want %q", r.YLabel2, r.FormattedPValue)
		}
	}
}

func TestPrepareCapitalize(t *testing.T) {
	f := makeFrame(t,
		[]string{"label", "est", "ll", "hl", "group"},
		[]string{"in years", "0.1", "0.0", "0.2", "age group"},
	)
	cfg := DefaultConfig()
	cfg.Estimate = "est"
	cfg.VarLabel = "label"
	cfg.Lower = "ll"
	cfg.Upper = "hl"
	cfg.Group = "group"
	cfg.Capitalize = "capitalize"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if tab.Rows[0].Label != "Age group" {
		t.Errorf("group label = %q, want %q", tab.Rows[0].Label, "Age group")
	}
	if got := strings.TrimSpace(tab.Rows[1].Label); got != "In years" {
		t.Errorf("variable label = %q, want %q", got, "In years")
	}
}

func TestValidateErrors(t *testing.T) {
	f := sleepFrame(t)

	tests := []struct {
		name string
		mut  func(*Config)
		code errors.Code
	}{
		{"missing estimate", func(c *Config) { c.Estimate = "" }, errors.ErrCodeInvalidConfig},
		{"missing varlabel", func(c *Config) { c.VarLabel = "" }, errors.ErrCodeInvalidConfig},
		{"lone lower limit", func(c *Config) { c.Upper = "" }, errors.ErrCodeConflictingColumns},
		{"no interval source", func(c *Config) { c.Lower, c.Upper = "", "" }, errors.ErrCodeMissingColumn},
		{"unknown column", func(c *Config) { c.Estimate = "nope" }, errors.ErrCodeMissingColumn},
		{"unknown annotation", func(c *Config) { c.Annote = []string{"nope"} }, errors.ErrCodeMissingColumn},
		{"headers without columns", func(c *Config) { c.AnnoteHeaders = []string{"N"} }, errors.ErrCodeInvalidConfig},
		{"header arity", func(c *Config) {
			c.Annote = []string{"n"}
			c.AnnoteHeaders = []string{"N", "extra"}
		}, errors.ErrCodeInvalidConfig},
		{"threshold arity", func(c *Config) { c.Thresholds = []float64{0.05} }, errors.ErrCodeInvalidConfig},
		{"negative precision", func(c *Config) { c.Precision = -1 }, errors.ErrCodeInvalidConfig},
		{"bad capitalize", func(c *Config) { c.Capitalize = "shout" }, errors.ErrCodeInvalidConfig},
		{"unknown sort column", func(c *Config) { c.SortBy = "nope" }, errors.ErrCodeMissingColumn},
		{"order without group", func(c *Config) { c.GroupOrder = []string{"age"} }, errors.ErrCodeInvalidGroupOrder},
		{"order names absent group", func(c *Config) {
			c.Group = "group"
			c.GroupOrder = []string{"age", "other factors", "labor factors", "ghost"}
		}, errors.ErrCodeInvalidGroupOrder},
		{"order omits present group", func(c *Config) {
			c.Group = "group"
			c.GroupOrder = []string{"age", "other factors"}
		}, errors.ErrCodeInvalidGroupOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sleepConfig()
			tt.mut(&cfg)
			err := cfg.Validate(f)
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error code = %v, want %v (err = %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestValidateEmptyTable(t *testing.T) {
	cfg := sleepConfig()
	if err := cfg.Validate(nil); !errors.Is(err, errors.ErrCodeEmptyTable) {
		t.Errorf("Validate(nil) error code = %v, want EMPTY_TABLE", errors.GetCode(err))
	}
	empty := table.New("r", "label", "ll", "hl", "p-val")
	if err := cfg.Validate(empty); !errors.Is(err, errors.ErrCodeEmptyTable) {
		t.Errorf("Validate(empty) error code = %v, want EMPTY_TABLE", errors.GetCode(err))
	}
}

func TestTableXRange(t *testing.T) {
	f := sleepFrame(t)
	tab, err := Prepare(f, sleepConfig())
	if err != nil {
		t.Fatal(err)
	}

	lo, hi := tab.XRange()
	if lo != -0.10 || hi != 0.16 {
		t.Errorf("XRange() = [%g, %g], want [-0.10, 0.16]", lo, hi)
	}
}

func TestTableXRangeEmpty(t *testing.T) {
	var tab Table
	lo, hi := tab.XRange()
	if !math.IsNaN(lo) || !math.IsNaN(hi) {
		t.Errorf("XRange() of empty table = [%g, %g], want NaNs", lo, hi)
	}
}

func TestTableRecords(t *testing.T) {
	f := sleepFrame(t)
	cfg := sleepConfig()
	cfg.Group = "group"

	tab, err := Prepare(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	header, records := tab.Records()
	if len(records) != len(tab.Rows) {
		t.Fatalf("Records() = %d rows, want %d", len(records), len(tab.Rows))
	}
	for _, rec := range records {
		if len(rec) != len(header) {
			t.Fatalf("record width = %d, header width = %d", len(rec), len(header))
		}
	}

	// Group header rows export blank numerics, not "NaN".
	if records[0][0] != string(KindGroupHeader) {
		t.Fatalf("first record kind = %q, want group header", records[0][0])
	}
	for _, idx := range []int{3, 4, 5} {
		if records[0][idx] != "" {
			t.Errorf("group header record column %d = %q, want blank", idx, records[0][idx])
		}
	}
}
