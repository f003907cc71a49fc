// Package series implements the typed, nullable column that tables are built
// from: a contiguous value buffer paired with a validity bitmap, tagged by a
// runtime [datatype.Kind].
//
// Storage is closed over a fixed set of element types. A column is always a
// *Column[T] for one of those types; the Series interface is the uniform
// capability surface tables and engines program against.
package series

import (
	"fmt"

	"github.com/tablekit/tablekit/pkg/datatype"
)

// Element is the closed set of types a column can store.
type Element interface {
	bool | int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | string
}

// Number is the subset of Element supporting arithmetic.
type Number interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Ordered is the subset of Element with a total order.
type Ordered interface {
	Number | string
}

// A Mask is a boolean column used to select rows. A null mask cell excludes
// the row, same as false.
type Mask = *Column[bool]

// Series is the uniform surface of a typed column. Every implementation is a
// *Column[T]; use [As] to recover the concrete type.
type Series interface {
	// Name returns the column name.
	Name() string

	// Rename changes the column name in place.
	Rename(name string)

	// Kind returns the runtime type tag of the column.
	Kind() datatype.Kind

	// Len returns the number of rows, nulls included.
	Len() int

	// IsNull returns whether row i is null. It panics if i is out of range.
	IsNull(i int) bool

	// NullCount returns the number of null rows.
	NullCount() int

	// Value returns the cell at row i as a tagged scalar, or
	// ErrIndexOutOfRange. A null cell yields a nil Value and no error.
	Value(i int) (Value, error)

	// ValueString renders the cell at row i for display, using "null" for
	// null cells. It panics if i is out of range.
	ValueString(i int) string

	// AppendValue adds a cell to the end of the column. The value kind must
	// match the column kind; a nil Value appends a null.
	AppendValue(v Value) error

	// AppendNull adds a null cell to the end of the column.
	AppendNull()

	// NullMask returns a boolean column that is true at null positions.
	NullMask() *Column[bool]

	// Filter returns a new column retaining rows where mask is true. A null
	// mask cell excludes the row. Fails with ErrShape if mask length differs.
	Filter(mask Mask) (Series, error)

	// Take returns a new column with rows reordered by indices. Every index
	// must be in range.
	Take(indices []int) (Series, error)

	// TakeNullable is Take for index sets that may introduce nulls: an index
	// of -1 emits a null cell.
	TakeNullable(indices []int) (Series, error)

	// CompareRows orders rows i and j with nulls after all values
	// regardless of direction; descending reverses the value order only.
	CompareRows(i, j int, descending bool) int

	// Sort reorders the column in place: stable, nulls last regardless of
	// direction.
	Sort(descending bool)

	// IsSorted reports whether the column is currently monotone in the given
	// direction with nulls last. Advisory: a linear scan, never invoked
	// implicitly by other operations.
	IsSorted(descending bool) bool

	// Head returns a new column with the first min(n, Len) rows.
	Head(n int) Series

	// Slice returns a new column over rows [offset, offset+length), clamped
	// to the column bounds.
	Slice(offset, length int) Series

	// Equal reports whether two columns have identical name, kind, length
	// and cells (null positions included).
	Equal(other Series) bool

	// Clone returns a deep copy sharing no storage with the receiver.
	Clone() Series
}

// NewEmpty constructs an empty column of the given kind for incremental
// population via AppendValue/AppendNull.
func NewEmpty(name string, kind datatype.Kind) (Series, error) {
	switch kind {
	case datatype.KindBool:
		return NewEmptyOf[bool](name), nil
	case datatype.KindInt8:
		return NewEmptyOf[int8](name), nil
	case datatype.KindInt16:
		return NewEmptyOf[int16](name), nil
	case datatype.KindInt32:
		return NewEmptyOf[int32](name), nil
	case datatype.KindInt64:
		return NewEmptyOf[int64](name), nil
	case datatype.KindUint8:
		return NewEmptyOf[uint8](name), nil
	case datatype.KindUint16:
		return NewEmptyOf[uint16](name), nil
	case datatype.KindUint32:
		return NewEmptyOf[uint32](name), nil
	case datatype.KindUint64:
		return NewEmptyOf[uint64](name), nil
	case datatype.KindFloat32:
		return NewEmptyOf[float32](name), nil
	case datatype.KindFloat64:
		return NewEmptyOf[float64](name), nil
	case datatype.KindString:
		return NewEmptyOf[string](name), nil
	}
	return nil, fmt.Errorf("%w: cannot construct column of kind %s", ErrTypeMismatch, kind)
}

// As recovers the concrete typed column behind a Series. It fails with
// ErrTypeMismatch if the column stores a different element type.
func As[T Element](s Series) (*Column[T], error) {
	col, ok := s.(*Column[T])
	if !ok {
		return nil, fmt.Errorf("%w: column %q is %s, not %s",
			ErrTypeMismatch, s.Name(), s.Kind(), kindOf[T]())
	}
	return col, nil
}

// kindOf maps an element type parameter to its runtime kind.
func kindOf[T Element]() datatype.Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return datatype.KindBool
	case int8:
		return datatype.KindInt8
	case int16:
		return datatype.KindInt16
	case int32:
		return datatype.KindInt32
	case int64:
		return datatype.KindInt64
	case uint8:
		return datatype.KindUint8
	case uint16:
		return datatype.KindUint16
	case uint32:
		return datatype.KindUint32
	case uint64:
		return datatype.KindUint64
	case float32:
		return datatype.KindFloat32
	case float64:
		return datatype.KindFloat64
	case string:
		return datatype.KindString
	}
	panic("series: unreachable element type")
}

// valueOf wraps a typed element in a tagged Value.
func valueOf[T Element](v T) Value {
	switch tv := any(v).(type) {
	case bool:
		return BoolValue(tv)
	case int8:
		return IntValue(datatype.KindInt8, int64(tv))
	case int16:
		return IntValue(datatype.KindInt16, int64(tv))
	case int32:
		return IntValue(datatype.KindInt32, int64(tv))
	case int64:
		return IntValue(datatype.KindInt64, tv)
	case uint8:
		return UintValue(datatype.KindUint8, uint64(tv))
	case uint16:
		return UintValue(datatype.KindUint16, uint64(tv))
	case uint32:
		return UintValue(datatype.KindUint32, uint64(tv))
	case uint64:
		return UintValue(datatype.KindUint64, tv)
	case float32:
		return FloatValue(datatype.KindFloat32, float64(tv))
	case float64:
		return FloatValue(datatype.KindFloat64, tv)
	case string:
		return StringValue(tv)
	}
	panic("series: unreachable element type")
}

// elementOf unwraps a Value into a typed element. The value must be non-null
// and of the matching kind.
func elementOf[T Element](v Value) (T, error) {
	var zero T
	if v.Kind() != kindOf[T]() {
		return zero, fmt.Errorf("%w: %s value cannot populate %s column",
			ErrTypeMismatch, v.Kind(), kindOf[T]())
	}
	switch any(zero).(type) {
	case bool:
		return any(v.Bool()).(T), nil
	case int8:
		return any(int8(v.Int64())).(T), nil
	case int16:
		return any(int16(v.Int64())).(T), nil
	case int32:
		return any(int32(v.Int64())).(T), nil
	case int64:
		return any(v.Int64()).(T), nil
	case uint8:
		return any(uint8(v.Uint64())).(T), nil
	case uint16:
		return any(uint16(v.Uint64())).(T), nil
	case uint32:
		return any(uint32(v.Uint64())).(T), nil
	case uint64:
		return any(v.Uint64()).(T), nil
	case float32:
		return any(float32(v.Float64())).(T), nil
	case float64:
		return any(v.Float64()).(T), nil
	case string:
		return any(v.Str()).(T), nil
	}
	panic("series: unreachable element type")
}
