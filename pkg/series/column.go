package series

import (
	"fmt"
	"iter"
	"sort"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/memory"
)

// A Column is typed columnar storage: a contiguous value buffer paired with
// a validity bitmap of identical length. The buffer content of a null slot
// is undefined and must never be read through the public surface.
//
// Columns own their storage exclusively. Every deriving operation (Filter,
// Take, Head, arithmetic, ...) copies into fresh storage; no Column aliases
// another live Column.
type Column[T Element] struct {
	name     string
	kind     datatype.Kind
	values   []T
	validity memory.Bitmap
}

var _ Series = (*Column[int64])(nil)

// New constructs a column from values, all marked valid.
func New[T Element](name string, values []T) *Column[T] {
	c := NewEmptyOf[T](name)
	c.values = append(c.values, values...)
	c.validity.AppendCount(true, len(values))
	return c
}

// NewNullable constructs a column from parallel value and validity slices. A
// false validity entry marks the corresponding slot null; its value is
// ignored. Fails with ErrShape if the slices differ in length.
func NewNullable[T Element](name string, values []T, valid []bool) (*Column[T], error) {
	if len(values) != len(valid) {
		return nil, fmt.Errorf("%w: column %q has %d values but %d validity entries",
			ErrShape, name, len(values), len(valid))
	}
	c := NewEmptyOf[T](name)
	c.values = append(c.values, values...)
	c.validity.AppendValues(valid...)
	return c, nil
}

// NewFromPointers constructs a column from optional values, treating nil
// entries as nulls.
func NewFromPointers[T Element](name string, values []*T) *Column[T] {
	c := NewEmptyOf[T](name)
	for _, v := range values {
		if v == nil {
			c.AppendNull()
		} else {
			c.Append(*v)
		}
	}
	return c
}

// NewEmptyOf constructs an empty column of a statically known element type.
func NewEmptyOf[T Element](name string) *Column[T] {
	return &Column[T]{name: name, kind: kindOf[T]()}
}

// checkInvariant verifies the value buffer and validity bitmap agree in
// length. Divergence means internal corruption, not a usage error, so it
// panics rather than returning an error.
func (c *Column[T]) checkInvariant() {
	if len(c.values) != c.validity.Len() {
		panic(fmt.Sprintf("series: column %q corrupted: %d values, %d validity bits",
			c.name, len(c.values), c.validity.Len()))
	}
}

// Name returns the column name.
func (c *Column[T]) Name() string { return c.name }

// Rename changes the column name in place.
func (c *Column[T]) Rename(name string) { c.name = name }

// WithName returns a copy of the column carrying a new name.
func (c *Column[T]) WithName(name string) *Column[T] {
	out := c.clone()
	out.name = name
	return out
}

// Kind returns the runtime type tag of the column.
func (c *Column[T]) Kind() datatype.Kind { return c.kind }

// Len returns the number of rows, nulls included.
func (c *Column[T]) Len() int { return len(c.values) }

// Append adds a valid cell to the end of the column.
func (c *Column[T]) Append(v T) {
	c.values = append(c.values, v)
	c.validity.Append(true)
}

// AppendNull adds a null cell to the end of the column.
func (c *Column[T]) AppendNull() {
	var zero T
	c.values = append(c.values, zero)
	c.validity.Append(false)
}

// AppendValue adds a tagged scalar to the end of the column. A nil Value
// appends a null; otherwise the value kind must match the column kind.
func (c *Column[T]) AppendValue(v Value) error {
	if v.IsNil() {
		c.AppendNull()
		return nil
	}
	elem, err := elementOf[T](v)
	if err != nil {
		return fmt.Errorf("column %q: %w", c.name, err)
	}
	c.Append(elem)
	return nil
}

// IsNull returns whether row i is null. It panics if i is out of range.
func (c *Column[T]) IsNull(i int) bool {
	return !c.validity.Get(i)
}

// NullCount returns the number of null rows.
func (c *Column[T]) NullCount() int {
	return c.validity.Count(false)
}

// Get returns the element at row i and whether it is valid, or
// ErrIndexOutOfRange.
func (c *Column[T]) Get(i int) (v T, ok bool, err error) {
	var zero T
	if i < 0 || i >= len(c.values) {
		return zero, false, fmt.Errorf("%w: row %d of column %q (length %d)",
			ErrIndexOutOfRange, i, c.name, len(c.values))
	}
	if !c.validity.Get(i) {
		return zero, false, nil
	}
	return c.values[i], true, nil
}

// Value returns the cell at row i as a tagged scalar, or ErrIndexOutOfRange.
func (c *Column[T]) Value(i int) (Value, error) {
	v, ok, err := c.Get(i)
	if err != nil {
		return NullValue(), err
	}
	if !ok {
		return NullValue(), nil
	}
	return valueOf(v), nil
}

// ValueString renders the cell at row i for display, using "null" for null
// cells. It panics if i is out of range.
func (c *Column[T]) ValueString(i int) string {
	if !c.validity.Get(i) {
		return "null"
	}
	return valueOf(c.values[i]).String()
}

// NullMask returns a boolean column that is true at null positions.
func (c *Column[T]) NullMask() *Column[bool] {
	out := NewEmptyOf[bool](c.name + "_is_null")
	for i := range c.values {
		out.Append(!c.validity.Get(i))
	}
	return out
}

// NotNullMask returns a boolean column that is true at valid positions.
func (c *Column[T]) NotNullMask() *Column[bool] {
	out := NewEmptyOf[bool](c.name + "_not_null")
	for i := range c.values {
		out.Append(c.validity.Get(i))
	}
	return out
}

// FillNull returns a new column with every null cell replaced by value. The
// receiver is unchanged.
func (c *Column[T]) FillNull(value T) *Column[T] {
	out := NewEmptyOf[T](c.name)
	for i, v := range c.values {
		if c.validity.Get(i) {
			out.Append(v)
		} else {
			out.Append(value)
		}
	}
	return out
}

// IterValid iterates over the non-null elements in row order. The iterator
// is restartable and does not observe appends made after the call.
func (c *Column[T]) IterValid() iter.Seq[T] {
	n := len(c.values)
	return func(yield func(T) bool) {
		for i := range n {
			if c.validity.Get(i) && !yield(c.values[i]) {
				return
			}
		}
	}
}

// Filter returns a new column retaining rows where mask is true. A null
// mask cell excludes the row.
func (c *Column[T]) Filter(mask Mask) (Series, error) {
	out, err := c.FilterTyped(mask)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FilterTyped is Filter preserving the concrete column type.
func (c *Column[T]) FilterTyped(mask Mask) (*Column[T], error) {
	c.checkInvariant()
	if mask.Len() != c.Len() {
		return nil, fmt.Errorf("%w: mask length %d does not match column %q length %d",
			ErrShape, mask.Len(), c.name, c.Len())
	}
	out := NewEmptyOf[T](c.name)
	for i := range c.values {
		if !mask.validity.Get(i) || !mask.values[i] {
			continue
		}
		if c.validity.Get(i) {
			out.Append(c.values[i])
		} else {
			out.AppendNull()
		}
	}
	return out, nil
}

// Take returns a new column with rows reordered by indices. Every index must
// be in range.
func (c *Column[T]) Take(indices []int) (Series, error) {
	return c.TakeTyped(indices)
}

// TakeTyped is Take preserving the concrete column type.
func (c *Column[T]) TakeTyped(indices []int) (*Column[T], error) {
	c.checkInvariant()
	out := NewEmptyOf[T](c.name)
	for _, idx := range indices {
		if idx < 0 || idx >= len(c.values) {
			return nil, fmt.Errorf("%w: row %d of column %q (length %d)",
				ErrIndexOutOfRange, idx, c.name, len(c.values))
		}
		if c.validity.Get(idx) {
			out.Append(c.values[idx])
		} else {
			out.AppendNull()
		}
	}
	return out, nil
}

// TakeNullable is Take for index sets that may introduce nulls: an index of
// -1 emits a null cell. Any other out-of-range index is an error.
func (c *Column[T]) TakeNullable(indices []int) (Series, error) {
	c.checkInvariant()
	out := NewEmptyOf[T](c.name)
	for _, idx := range indices {
		if idx == -1 {
			out.AppendNull()
			continue
		}
		if idx < 0 || idx >= len(c.values) {
			return nil, fmt.Errorf("%w: row %d of column %q (length %d)",
				ErrIndexOutOfRange, idx, c.name, len(c.values))
		}
		if c.validity.Get(idx) {
			out.Append(c.values[idx])
		} else {
			out.AppendNull()
		}
	}
	return out, nil
}

// CompareRows orders rows i and j. Nulls order after all non-null values
// regardless of direction; descending reverses the value order only.
func (c *Column[T]) CompareRows(i, j int, descending bool) int {
	iNull, jNull := !c.validity.Get(i), !c.validity.Get(j)
	switch {
	case iNull && jNull:
		return 0
	case iNull:
		return 1
	case jNull:
		return -1
	}
	cmp := valueOf(c.values[i]).Compare(valueOf(c.values[j]))
	if descending {
		return -cmp
	}
	return cmp
}

// Sort reorders the column in place: stable, nulls collected at the end
// regardless of direction.
func (c *Column[T]) Sort(descending bool) {
	c.checkInvariant()
	perm := make([]int, len(c.values))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return c.CompareRows(perm[a], perm[b], descending) < 0
	})

	values := make([]T, len(c.values))
	validity := memory.NewBitmap(nil, len(c.values))
	for pos, idx := range perm {
		values[pos] = c.values[idx]
		validity.Append(c.validity.Get(idx))
	}
	c.values = values
	c.validity = validity
}

// IsSorted reports whether the column is currently monotone in the given
// direction with nulls last. Advisory only: a linear scan that no other
// operation invokes implicitly.
func (c *Column[T]) IsSorted(descending bool) bool {
	for i := 1; i < len(c.values); i++ {
		if c.CompareRows(i-1, i, descending) > 0 {
			return false
		}
	}
	return true
}

// Head returns a new column with the first min(n, Len) rows.
func (c *Column[T]) Head(n int) Series {
	return c.Slice(0, n)
}

// Slice returns a new column over rows [offset, offset+length), clamped to
// the column bounds.
func (c *Column[T]) Slice(offset, length int) Series {
	start := min(max(offset, 0), len(c.values))
	end := min(start+length, len(c.values))

	out := NewEmptyOf[T](c.name)
	for i := start; i < end; i++ {
		if c.validity.Get(i) {
			out.Append(c.values[i])
		} else {
			out.AppendNull()
		}
	}
	return out
}

// Equal reports whether two columns have identical name, kind, length and
// cells, null positions included. Float cells follow IEEE equality, so any
// NaN cell makes columns unequal.
func (c *Column[T]) Equal(other Series) bool {
	oc, ok := other.(*Column[T])
	if !ok {
		return false
	}
	if c.name != oc.name || c.Len() != oc.Len() {
		return false
	}
	for i := range c.values {
		iNull, jNull := !c.validity.Get(i), !oc.validity.Get(i)
		if iNull != jNull {
			return false
		}
		if iNull {
			continue
		}
		if !valueOf(c.values[i]).Equal(valueOf(oc.values[i])) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no storage with the receiver.
func (c *Column[T]) Clone() Series {
	return c.clone()
}

func (c *Column[T]) clone() *Column[T] {
	values := make([]T, len(c.values))
	copy(values, c.values)
	return &Column[T]{
		name:     c.name,
		kind:     c.kind,
		values:   values,
		validity: c.validity.Clone(),
	}
}
