package table

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/statviz/forestplot/pkg/errors"
)

// ReadCSV decodes a CSV stream into a Frame. The first record is treated as
// the header row. Records with a different field count than the header are
// rejected by the csv reader.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeEmptyTable, "csv input is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read csv header")
	}

	f := New(header...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read csv record")
		}
		if err := f.AppendRow(rec...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ReadCSVFile decodes the CSV file at path into a Frame.
func ReadCSVFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "open %s", path)
	}
	defer file.Close()
	return ReadCSV(file)
}

// WriteCSV encodes the frame as CSV, header row first.
func WriteCSV(f *Frame, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.cols); err != nil {
		return err
	}
	for _, row := range f.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
