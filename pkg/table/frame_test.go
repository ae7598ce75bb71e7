package table

import (
	"math"
	"testing"

	"github.com/statviz/forestplot/pkg/errors"
)

func TestNewDeduplicatesColumns(t *testing.T) {
	f := New("a", "b", "a", "c")
	cols := f.Columns()
	want := []string{"a", "b", "c"}
	if len(cols) != len(want) {
		t.Fatalf("Columns() = %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, cols[i], want[i])
		}
	}
}

func TestAppendRow(t *testing.T) {
	f := New("a", "b")

	if err := f.AppendRow("1", "2"); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}

	err := f.AppendRow("1")
	if err == nil {
		t.Fatal("AppendRow() with wrong cell count should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("AppendRow() error code = %v, want INVALID_DATA", errors.GetCode(err))
	}
}

func TestCellAccess(t *testing.T) {
	f := New("x", "y")
	if err := f.AppendRow("1.5", "hello"); err != nil {
		t.Fatal(err)
	}

	if v, ok := f.Cell(0, "y"); !ok || v != "hello" {
		t.Errorf("Cell(0, y) = %q, %v, want hello, true", v, ok)
	}
	if _, ok := f.Cell(0, "missing"); ok {
		t.Error("Cell() with unknown column should return false")
	}
	if _, ok := f.Cell(1, "x"); ok {
		t.Error("Cell() with out-of-range row should return false")
	}
	if got := f.String(0, "missing"); got != "" {
		t.Errorf("String() for missing column = %q, want empty", got)
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    float64
		wantNaN bool
		wantErr bool
	}{
		{"plain number", "1.5", 1.5, false, false},
		{"negative", "-0.03", -0.03, false, false},
		{"whitespace", "  2.0 ", 2.0, false, false},
		{"empty is NaN", "", 0, true, false},
		{"nan literal", "nan", 0, true, false},
		{"NaN mixed case", "NaN", 0, true, false},
		{"NA literal", "NA", 0, true, false},
		{"garbage", "abc", 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New("v")
			if err := f.AppendRow(tt.cell); err != nil {
				t.Fatal(err)
			}
			got, err := f.Float(0, "v")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Float() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantNaN {
				if !math.IsNaN(got) {
					t.Errorf("Float() = %v, want NaN", got)
				}
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Float() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFloatMissingColumn(t *testing.T) {
	f := New("v")
	_, err := f.Float(0, "other")
	if !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("Float() error code = %v, want MISSING_COLUMN", errors.GetCode(err))
	}
}

func TestUnique(t *testing.T) {
	f := New("g")
	for _, v := range []string{"b", "a", "b", "", "c", "a"} {
		if err := f.AppendRow(v); err != nil {
			t.Fatal(err)
		}
	}

	got := f.Unique("g")
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Unique() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Unique()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if f.Unique("missing") != nil {
		t.Error("Unique() for missing column should be nil")
	}
}

func TestUniqueTrimsWhitespace(t *testing.T) {
	f := New("g")
	for _, v := range []string{"labor ", "labor", " labor", "   ", "edu"} {
		if err := f.AppendRow(v); err != nil {
			t.Fatal(err)
		}
	}

	got := f.Unique("g")
	want := []string{"labor", "edu"}
	if len(got) != len(want) {
		t.Fatalf("Unique() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Unique()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := New("a")
	if err := f.AppendRow("1"); err != nil {
		t.Fatal(err)
	}

	c := f.Clone()
	if err := c.AppendRow("2"); err != nil {
		t.Fatal(err)
	}

	if f.Len() != 1 {
		t.Errorf("original Len() = %d after clone mutation, want 1", f.Len())
	}
	if c.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", c.Len())
	}
}

func TestSortStableKeepsEqualOrder(t *testing.T) {
	f := New("k", "id")
	rows := [][]string{
		{"2", "first"},
		{"1", "second"},
		{"2", "third"},
		{"1", "fourth"},
	}
	for _, r := range rows {
		if err := f.AppendRow(r...); err != nil {
			t.Fatal(err)
		}
	}

	f.SortStable(func(i, j int) bool {
		return f.String(i, "k") < f.String(j, "k")
	})

	want := []string{"second", "fourth", "first", "third"}
	for i, id := range want {
		if got := f.String(i, "id"); got != id {
			t.Errorf("row %d id = %q, want %q", i, got, id)
		}
	}
}

func TestRowCopy(t *testing.T) {
	f := New("a", "b")
	if err := f.AppendRow("1", "2"); err != nil {
		t.Fatal(err)
	}

	row := f.Row(0)
	row[0] = "mutated"
	if f.String(0, "a") != "1" {
		t.Error("Row() should return a copy, not a view")
	}

	if f.Row(5) != nil {
		t.Error("Row() out of range should be nil")
	}
}
