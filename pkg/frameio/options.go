// Package frameio holds the text-format adapters around frame.Frame: a
// configurable CSV reader and CSV/JSON/YAML writers. The core packages do
// no I/O; every adapter here produces or consumes a fully materialized
// frame.
package frameio

import "github.com/tablekit/tablekit/pkg/datatype"

// ReadOptions configures CSV reading. Use DefaultReadOptions as the
// starting point; the zero value disables the header row.
type ReadOptions struct {
	// Header treats the first non-skipped record as column names. Without
	// it columns are named column_0, column_1, and so on.
	Header bool `yaml:"header"`

	// Delimiter is the field separator. 0 means ','.
	Delimiter rune `yaml:"delimiter"`

	// SkipRows drops this many records before the header.
	SkipRows int `yaml:"skip_rows"`

	// UseColumns restricts and orders the output columns by name. Empty
	// keeps every column in file order.
	UseColumns []string `yaml:"use_columns"`

	// NAValues are the cell strings read as null. nil means the default
	// set: "", "NA", "null".
	NAValues []string `yaml:"na_values"`

	// TypeOverrides pins a column to a kind instead of inferring it.
	TypeOverrides map[string]datatype.Kind `yaml:"type_overrides"`

	// InferSchemaLength bounds how many non-null cells per column are
	// sampled for kind inference. 0 samples the whole file.
	InferSchemaLength int `yaml:"infer_schema_length"`
}

// DefaultReadOptions returns the documented defaults: header on, comma
// delimited, the standard NA set, and a 100 cell inference sample.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		Header:            true,
		Delimiter:         ',',
		NAValues:          []string{"", "NA", "null"},
		InferSchemaLength: 100,
	}
}

// WriteOptions configures the CSV writer.
type WriteOptions struct {
	// Header emits the column names as the first record.
	Header bool `yaml:"header"`

	// Delimiter is the field separator. 0 means ','.
	Delimiter rune `yaml:"delimiter"`

	// NARep is the string written for null cells.
	NARep string `yaml:"na_rep"`
}

// DefaultWriteOptions returns the documented defaults: header on, comma
// delimited, nulls written as the empty string.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Header: true, Delimiter: ','}
}

func (o *ReadOptions) normalize() {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.NAValues == nil {
		o.NAValues = []string{"", "NA", "null"}
	}
}

func (o *WriteOptions) normalize() {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
}
