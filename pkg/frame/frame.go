// Package frame provides Frame, an ordered collection of equal-length named
// columns, together with the relational operations that act on whole rows:
// filtering, sorting, grouping, and joining.
//
// A Frame owns its columns exclusively. Constructors and row operations clone
// incoming columns so that no caller can alias a frame's storage, and every
// operation that returns a Frame returns a new one; a Frame is never mutated
// through a value another Frame can see.
package frame

import (
	"context"
	"fmt"

	"github.com/grafana/dskit/concurrency"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/series"
)

// Frame is an ordered mapping of unique column names to equal-length columns.
type Frame struct {
	columns []series.Series
	index   map[string]int
}

// New builds a frame from the given columns. All columns must carry unique
// names and identical lengths. The columns are cloned; the caller keeps
// ownership of its arguments.
func New(columns ...series.Series) (*Frame, error) {
	f := NewEmpty()
	for _, c := range columns {
		if err := f.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// NewEmpty returns a frame with no columns and no rows.
func NewEmpty() *Frame {
	return &Frame{index: make(map[string]int)}
}

// Height returns the number of rows.
func (f *Frame) Height() int {
	if len(f.columns) == 0 {
		return 0
	}
	return f.columns[0].Len()
}

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.columns) }

// Shape returns (rows, columns).
func (f *Frame) Shape() (int, int) { return f.Height(), f.Width() }

// Names returns the column names in frame order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name()
	}
	return names
}

// Kinds returns the column kinds in frame order.
func (f *Frame) Kinds() []datatype.Kind {
	kinds := make([]datatype.Kind, len(f.columns))
	for i, c := range f.columns {
		kinds[i] = c.Kind()
	}
	return kinds
}

// AddColumn appends a clone of s as the last column. An empty frame adopts
// the length of its first column; afterwards every added column must match.
func (f *Frame) AddColumn(s series.Series) error {
	if _, ok := f.index[s.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, s.Name())
	}
	if len(f.columns) > 0 && s.Len() != f.Height() {
		return fmt.Errorf("%w: column %q has %d rows, frame has %d", ErrLengthMismatch, s.Name(), s.Len(), f.Height())
	}
	f.index[s.Name()] = len(f.columns)
	f.columns = append(f.columns, s.Clone())
	return nil
}

// Column returns the named column. The returned series is borrowed from the
// frame; callers that want to mutate it must Clone it first.
func (f *Frame) Column(name string) (series.Series, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return f.columns[i], nil
}

// ColumnAt returns the column at position i in frame order.
func (f *Frame) ColumnAt(i int) (series.Series, error) {
	if i < 0 || i >= len(f.columns) {
		return nil, fmt.Errorf("%w: column %d of %d", series.ErrIndexOutOfRange, i, len(f.columns))
	}
	return f.columns[i], nil
}

// Columns returns the frame's columns in order. The slice is fresh but the
// columns themselves are borrowed from the frame.
func (f *Frame) Columns() []series.Series {
	out := make([]series.Series, len(f.columns))
	copy(out, f.columns)
	return out
}

// ColumnAs returns the named column downcast to its concrete element type.
func ColumnAs[T series.Element](f *Frame, name string) (*series.Column[T], error) {
	s, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	return series.As[T](s)
}

// DropColumn removes the named column in place.
func (f *Frame) DropColumn(name string) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	f.columns = append(f.columns[:i], f.columns[i+1:]...)
	delete(f.index, name)
	for j := i; j < len(f.columns); j++ {
		f.index[f.columns[j].Name()] = j
	}
	return nil
}

// RenameColumn changes the name of an existing column in place.
func (f *Frame) RenameColumn(old, new string) error {
	i, ok := f.index[old]
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, old)
	}
	if old == new {
		return nil
	}
	if _, ok := f.index[new]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, new)
	}
	delete(f.index, old)
	f.index[new] = i
	f.columns[i].Rename(new)
	return nil
}

// Select returns a new frame holding clones of the named columns, in the
// order given.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := NewEmpty()
	for _, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Drop returns a new frame without the named columns. Every name must exist.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	dropped := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := f.index[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		dropped[name] = struct{}{}
	}
	out := NewEmpty()
	for _, c := range f.columns {
		if _, ok := dropped[c.Name()]; ok {
			continue
		}
		if err := out.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Filter returns a new frame retaining the rows where mask is true. Null
// mask entries exclude their row. The mask length must equal the frame
// height.
func (f *Frame) Filter(mask series.Mask) (*Frame, error) {
	if mask.Len() != f.Height() {
		return nil, fmt.Errorf("%w: mask has %d rows, frame has %d", ErrLengthMismatch, mask.Len(), f.Height())
	}
	out := NewEmpty()
	for _, c := range f.columns {
		filtered, err := c.Filter(mask)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(filtered); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParFilter is Filter with columns materialized concurrently across a
// fixed-size worker pool. Each worker owns whole columns and writes its
// output slot exactly once, so the result is identical to Filter regardless
// of scheduling. All workers complete before ParFilter returns.
func (f *Frame) ParFilter(ctx context.Context, workers int, mask series.Mask) (*Frame, error) {
	if mask.Len() != f.Height() {
		return nil, fmt.Errorf("%w: mask has %d rows, frame has %d", ErrLengthMismatch, mask.Len(), f.Height())
	}
	if workers < 1 {
		workers = 1
	}

	filtered := make([]series.Series, len(f.columns))
	err := concurrency.ForEachJob(ctx, len(f.columns), workers, func(_ context.Context, i int) error {
		s, err := f.columns[i].Filter(mask)
		if err != nil {
			return err
		}
		filtered[i] = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := NewEmpty()
	for _, s := range filtered {
		if err := out.AddColumn(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Head returns the first min(n, height) rows as a new frame.
func (f *Frame) Head(n int) *Frame {
	return f.slice(0, n)
}

// Tail returns the last min(n, height) rows as a new frame.
func (f *Frame) Tail(n int) *Frame {
	if n > f.Height() {
		n = f.Height()
	}
	if n < 0 {
		n = 0
	}
	return f.slice(f.Height()-n, n)
}

func (f *Frame) slice(offset, length int) *Frame {
	out := NewEmpty()
	for _, c := range f.columns {
		// Column lengths agree, so AddColumn cannot fail here.
		_ = out.AddColumn(c.Slice(offset, length))
	}
	return out
}

// take builds a new frame from the given row indices, applied to every
// column identically.
func (f *Frame) take(indices []int) (*Frame, error) {
	out := NewEmpty()
	for _, c := range f.columns {
		taken, err := c.Take(indices)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(taken); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Row returns the values of row i in frame order.
func (f *Frame) Row(i int) ([]series.Value, error) {
	if i < 0 || i >= f.Height() {
		return nil, fmt.Errorf("%w: row %d of %d", series.ErrIndexOutOfRange, i, f.Height())
	}
	row := make([]series.Value, len(f.columns))
	for j, c := range f.columns {
		v, err := c.Value(i)
		if err != nil {
			return nil, err
		}
		row[j] = v
	}
	return row, nil
}

// Equal reports whether two frames hold the same columns in the same order,
// comparing names, kinds, and every cell including null positions.
func (f *Frame) Equal(other *Frame) bool {
	if len(f.columns) != len(other.columns) {
		return false
	}
	for i, c := range f.columns {
		if !c.Equal(other.columns[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := NewEmpty()
	for _, c := range f.columns {
		_ = out.AddColumn(c)
	}
	return out
}
