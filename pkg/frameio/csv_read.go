package frameio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/frame"
	"github.com/tablekit/tablekit/pkg/series"
)

// Reader reads CSV input into frames.
type Reader struct {
	logger log.Logger
	opts   ReadOptions
}

// NewReader builds a Reader with the given options. A nil logger is
// replaced with a no-op one.
func NewReader(logger log.Logger, opts ReadOptions) *Reader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	opts.normalize()
	return &Reader{logger: logger, opts: opts}
}

// ReadCSV reads the file at path into a frame.
func ReadCSV(path string, opts ReadOptions) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	defer f.Close()
	return NewReader(nil, opts).Read(f)
}

// Read materializes the CSV stream as a frame. Column kinds come from
// TypeOverrides where given and are otherwise inferred from a sample of
// each column, trying int64, float64, and bool before falling back to
// string. A cell outside the resolved kind fails with ErrParse.
func (r *Reader) Read(src io.Reader) (*frame.Frame, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.opts.Delimiter

	for i := 0; i < r.opts.SkipRows; i++ {
		if _, err := cr.Read(); err == io.EOF {
			return frame.NewEmpty(), nil
		} else if err != nil {
			return nil, fmt.Errorf("%w: skipping row %d: %v", ErrParse, i, err)
		}
	}

	var names []string
	if r.opts.Header {
		record, err := cr.Read()
		if err == io.EOF {
			return frame.NewEmpty(), nil
		} else if err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrParse, err)
		}
		names = append(names, record...)
	}

	var cells [][]string
	var valid [][]bool
	rows := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrParse, rows, err)
		}
		if names == nil {
			names = make([]string, len(record))
			for i := range record {
				names[i] = fmt.Sprintf("column_%d", i)
			}
		}
		if len(record) != len(names) {
			return nil, fmt.Errorf("%w: record %d has %d fields, want %d", ErrParse, rows, len(record), len(names))
		}
		if cells == nil {
			cells = make([][]string, len(names))
			valid = make([][]bool, len(names))
		}
		for i, cell := range record {
			cells[i] = append(cells[i], cell)
			valid[i] = append(valid[i], !r.isNA(cell))
		}
		rows++
	}
	if names == nil {
		return frame.NewEmpty(), nil
	}

	out := frame.NewEmpty()
	for i, name := range names {
		var col []string
		var ok []bool
		if i < len(cells) {
			col, ok = cells[i], valid[i]
		}
		kind, inferred := r.opts.TypeOverrides[name]
		if !inferred {
			kind = r.inferKind(col, ok)
		}
		s, err := buildColumn(name, kind, col, ok)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(s); err != nil {
			return nil, err
		}
	}
	level.Debug(r.logger).Log("msg", "read csv", "rows", rows, "columns", len(names))

	if len(r.opts.UseColumns) > 0 {
		return out.Select(r.opts.UseColumns...)
	}
	return out, nil
}

func (r *Reader) isNA(cell string) bool {
	for _, na := range r.opts.NAValues {
		if cell == na {
			return true
		}
	}
	return false
}

// inferKind samples up to InferSchemaLength non-null cells and picks the
// narrowest kind every sampled cell parses as.
func (r *Reader) inferKind(cells []string, valid []bool) datatype.Kind {
	var sample []string
	for i, cell := range cells {
		if !valid[i] {
			continue
		}
		sample = append(sample, cell)
		if r.opts.InferSchemaLength > 0 && len(sample) >= r.opts.InferSchemaLength {
			break
		}
	}
	if len(sample) == 0 {
		return datatype.KindString
	}

	for _, kind := range []datatype.Kind{datatype.KindInt64, datatype.KindFloat64, datatype.KindBool} {
		all := true
		for _, cell := range sample {
			if _, err := parseCell(cell, kind); err != nil {
				all = false
				break
			}
		}
		if all {
			return kind
		}
	}
	return datatype.KindString
}

func buildColumn(name string, kind datatype.Kind, cells []string, valid []bool) (series.Series, error) {
	s, err := series.NewEmpty(name, kind)
	if err != nil {
		return nil, err
	}
	for i, cell := range cells {
		if !valid[i] {
			s.AppendNull()
			continue
		}
		v, err := parseCell(cell, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d: %v", ErrParse, name, i, err)
		}
		if err := s.AppendValue(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func parseCell(cell string, kind datatype.Kind) (series.Value, error) {
	switch {
	case kind == datatype.KindString:
		return series.StringValue(cell), nil
	case kind == datatype.KindBool:
		switch strings.ToLower(cell) {
		case "true", "t", "yes", "y", "1":
			return series.BoolValue(true), nil
		case "false", "f", "no", "n", "0":
			return series.BoolValue(false), nil
		}
		return series.NullValue(), fmt.Errorf("%q is not a bool", cell)
	case kind.IsSigned():
		n, err := strconv.ParseInt(cell, 10, kind.Bits())
		if err != nil {
			return series.NullValue(), fmt.Errorf("%q is not a %s", cell, kind)
		}
		return series.IntValue(kind, n), nil
	case kind.IsUnsigned():
		n, err := strconv.ParseUint(cell, 10, kind.Bits())
		if err != nil {
			return series.NullValue(), fmt.Errorf("%q is not a %s", cell, kind)
		}
		return series.UintValue(kind, n), nil
	case kind.IsFloat():
		n, err := strconv.ParseFloat(cell, kind.Bits())
		if err != nil {
			return series.NullValue(), fmt.Errorf("%q is not a %s", cell, kind)
		}
		return series.FloatValue(kind, n), nil
	}
	return series.NullValue(), fmt.Errorf("cannot parse into %s column", kind)
}
