package frameio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/frame"
	"github.com/tablekit/tablekit/pkg/series"
)

// WriteCSV writes the frame to the file at path.
func WriteCSV(f *frame.Frame, path string, opts WriteOptions) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSVTo(f, w, opts) })
}

// WriteCSVTo writes the frame as CSV. Null cells render as opts.NARep.
func WriteCSVTo(f *frame.Frame, w io.Writer, opts WriteOptions) error {
	opts.normalize()
	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter

	if opts.Header {
		if err := cw.Write(f.Names()); err != nil {
			return err
		}
	}
	rows, cols := f.Shape()
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		row, err := f.Row(i)
		if err != nil {
			return err
		}
		for j, v := range row {
			if v.IsNil() {
				record[j] = opts.NARep
			} else {
				record[j] = v.String()
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the frame to the file at path as a JSON records array.
func WriteJSON(f *frame.Frame, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSONTo(f, w) })
}

// WriteJSONTo writes the frame as an array of row objects keyed by column
// name. Null cells become JSON null.
func WriteJSONTo(f *frame.Frame, w io.Writer) error {
	records, err := rowRecords(f)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteYAML writes the frame to the file at path as a YAML records list.
func WriteYAML(f *frame.Frame, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteYAMLTo(f, w) })
}

// WriteYAMLTo writes the frame as a YAML list of row mappings keyed by
// column name. Null cells become YAML null.
func WriteYAMLTo(f *frame.Frame, w io.Writer) error {
	records, err := rowRecords(f)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(records)
}

// rowRecords flattens the frame into one map per row, preserving row order.
// Map key order inside a record is up to the encoder.
func rowRecords(f *frame.Frame) ([]map[string]any, error) {
	names := f.Names()
	rows := f.Height()
	records := make([]map[string]any, 0, rows)
	for i := 0; i < rows; i++ {
		row, err := f.Row(i)
		if err != nil {
			return nil, err
		}
		record := make(map[string]any, len(names))
		for j, name := range names {
			record[name] = cellValue(row[j])
		}
		records = append(records, record)
	}
	return records, nil
}

func cellValue(v series.Value) any {
	switch {
	case v.IsNil():
		return nil
	case v.Kind() == datatype.KindBool:
		return v.Bool()
	case v.Kind() == datatype.KindString:
		return v.Str()
	case v.Kind().IsSigned():
		return v.Int64()
	case v.Kind().IsUnsigned():
		return v.Uint64()
	default:
		return v.Float64()
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := write(out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
