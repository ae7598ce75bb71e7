package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/statviz/forestplot/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	in := "var,est,ll,hl\nage,0.09,0.02,0.16\nblack,-0.03,-0.10,0.05\n"

	f, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}
	if got := f.String(1, "est"); got != "-0.03" {
		t.Errorf("String(1, est) = %q, want -0.03", got)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if !errors.Is(err, errors.ErrCodeEmptyTable) {
		t.Errorf("ReadCSV(empty) error code = %v, want EMPTY_TABLE", errors.GetCode(err))
	}
}

func TestReadCSVRaggedRecord(t *testing.T) {
	in := "a,b\n1,2\n3\n"
	_, err := ReadCSV(strings.NewReader(in))
	if err == nil {
		t.Fatal("ReadCSV() should reject records with wrong field count")
	}
	if !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("ReadCSV() error code = %v, want INVALID_DATA", errors.GetCode(err))
	}
}

func TestReadCSVFileNotFound(t *testing.T) {
	_, err := ReadCSVFile("does-not-exist.csv")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadCSVFile() error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	f := New("label", "est")
	if err := f.AppendRow("in years", "0.09"); err != nil {
		t.Fatal(err)
	}
	if err := f.AppendRow("with, comma", "-0.03"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(f, &buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("round trip Len() = %d, want 2", back.Len())
	}
	if got := back.String(1, "label"); got != "with, comma" {
		t.Errorf("round trip label = %q, want %q", got, "with, comma")
	}
}
