package series

import (
	"fmt"
	"strings"

	"github.com/tablekit/tablekit/pkg/datatype"
)

// StringOps exposes string-specific operations over a string-kinded column.
// Obtain one with [Str]; every operation returns a new column and propagates
// nulls.
type StringOps struct {
	col *Column[string]
}

// Str returns the string accessor for s. It fails with ErrTypeMismatch if s
// is not a string column.
func Str(s Series) (*StringOps, error) {
	if s.Kind() != datatype.KindString {
		return nil, fmt.Errorf("%w: string operations on %s column %q",
			ErrTypeMismatch, s.Kind(), s.Name())
	}
	col, err := As[string](s)
	if err != nil {
		return nil, err
	}
	return &StringOps{col: col}, nil
}

// Lengths returns the byte length of every cell.
func (s *StringOps) Lengths() *Column[uint32] {
	return Map(s.col, func(v string, ok bool) (uint32, bool) {
		return uint32(len(v)), ok
	})
}

// Contains returns a mask that is true where the cell contains substr.
// Null cells yield false.
func (s *StringOps) Contains(substr string) *Column[bool] {
	return s.boolOp(func(v string) bool { return strings.Contains(v, substr) })
}

// HasPrefix returns a mask that is true where the cell starts with prefix.
func (s *StringOps) HasPrefix(prefix string) *Column[bool] {
	return s.boolOp(func(v string) bool { return strings.HasPrefix(v, prefix) })
}

// HasSuffix returns a mask that is true where the cell ends with suffix.
func (s *StringOps) HasSuffix(suffix string) *Column[bool] {
	return s.boolOp(func(v string) bool { return strings.HasSuffix(v, suffix) })
}

// ToUpper returns a column with every cell upper-cased.
func (s *StringOps) ToUpper() *Column[string] {
	return s.col.Apply(func(v string, ok bool) (string, bool) {
		return strings.ToUpper(v), ok
	})
}

// ToLower returns a column with every cell lower-cased.
func (s *StringOps) ToLower() *Column[string] {
	return s.col.Apply(func(v string, ok bool) (string, bool) {
		return strings.ToLower(v), ok
	})
}

// Strip returns a column with surrounding whitespace removed from every
// cell.
func (s *StringOps) Strip() *Column[string] {
	return s.col.Apply(func(v string, ok bool) (string, bool) {
		return strings.TrimSpace(v), ok
	})
}

// Replace returns a column with all occurrences of old replaced by new in
// every cell.
func (s *StringOps) Replace(old, new string) *Column[string] {
	return s.col.Apply(func(v string, ok bool) (string, bool) {
		return strings.ReplaceAll(v, old, new), ok
	})
}

func (s *StringOps) boolOp(pred func(v string) bool) *Column[bool] {
	out := NewEmptyOf[bool](s.col.name)
	for i := range s.col.values {
		out.Append(s.col.validity.Get(i) && pred(s.col.values[i]))
	}
	return out
}
