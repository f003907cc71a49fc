package series

import (
	"fmt"

	"github.com/tablekit/tablekit/pkg/datatype"
)

// Typed whole-column aggregates. Nulls are excluded; an all-null column
// yields ok=false rather than an error.

// Sum returns the sum of all non-null elements.
func Sum[T Number](c *Column[T]) (T, bool) {
	var total T
	var seen bool
	for v := range c.IterValid() {
		total += v
		seen = true
	}
	return total, seen
}

// Min returns the smallest non-null element.
func Min[T Ordered](c *Column[T]) (T, bool) {
	var best T
	var seen bool
	for v := range c.IterValid() {
		if !seen || v < best {
			best = v
			seen = true
		}
	}
	return best, seen
}

// Max returns the largest non-null element.
func Max[T Ordered](c *Column[T]) (T, bool) {
	var best T
	var seen bool
	for v := range c.IterValid() {
		if !seen || v > best {
			best = v
			seen = true
		}
	}
	return best, seen
}

// Mean returns the arithmetic mean of all non-null elements as float64.
func Mean[T Number](c *Column[T]) (float64, bool) {
	var sum float64
	var count int
	for v := range c.IterValid() {
		sum += float64(v)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// Indexed aggregates over a dynamically typed column, used by the group
// engine to reduce one group's member rows at a time. All of them skip null
// cells and return the null Value when every addressed cell is null.

// SumKind returns the kind of the column a sum over kind accumulates into:
// signed integers widen to int64, unsigned to uint64, floats to float64.
func SumKind(kind datatype.Kind) (datatype.Kind, error) {
	switch {
	case kind.IsSigned():
		return datatype.KindInt64, nil
	case kind.IsUnsigned():
		return datatype.KindUint64, nil
	case kind.IsFloat():
		return datatype.KindFloat64, nil
	}
	return datatype.KindNull, fmt.Errorf("%w: sum over %s column", ErrUnsupportedAggregation, kind)
}

// SumIndices sums the cells of s addressed by indices.
func SumIndices(s Series, indices []int) (Value, error) {
	kind := s.Kind()
	sumKind, err := SumKind(kind)
	if err != nil {
		return NullValue(), fmt.Errorf("column %q: %w", s.Name(), err)
	}

	var (
		sumInt   int64
		sumUint  uint64
		sumFloat float64
		seen     bool
	)
	for _, idx := range indices {
		v, err := s.Value(idx)
		if err != nil {
			return NullValue(), err
		}
		if v.IsNil() {
			continue
		}
		seen = true
		switch {
		case kind.IsSigned():
			sumInt += v.Int64()
		case kind.IsUnsigned():
			sumUint += v.Uint64()
		default:
			sumFloat += v.Float64()
		}
	}
	if !seen {
		return NullValue(), nil
	}
	switch sumKind {
	case datatype.KindInt64:
		return Int64Value(sumInt), nil
	case datatype.KindUint64:
		return Uint64Value(sumUint), nil
	default:
		return Float64Value(sumFloat), nil
	}
}

// MeanIndices averages the cells of s addressed by indices as float64.
func MeanIndices(s Series, indices []int) (Value, error) {
	if !s.Kind().IsNumeric() {
		return NullValue(), fmt.Errorf("column %q: %w: mean over %s column",
			s.Name(), ErrUnsupportedAggregation, s.Kind())
	}
	var (
		sum   float64
		count int
	)
	for _, idx := range indices {
		v, err := s.Value(idx)
		if err != nil {
			return NullValue(), err
		}
		if v.IsNil() {
			continue
		}
		f, _ := v.AsFloat64()
		sum += f
		count++
	}
	if count == 0 {
		return NullValue(), nil
	}
	return Float64Value(sum / float64(count)), nil
}

// MinIndices returns the smallest cell of s addressed by indices, keeping
// the column kind.
func MinIndices(s Series, indices []int) (Value, error) {
	return extremeIndices(s, indices, true)
}

// MaxIndices returns the largest cell of s addressed by indices, keeping
// the column kind.
func MaxIndices(s Series, indices []int) (Value, error) {
	return extremeIndices(s, indices, false)
}

func extremeIndices(s Series, indices []int, findMin bool) (Value, error) {
	if !s.Kind().IsNumeric() {
		op := "max"
		if findMin {
			op = "min"
		}
		return NullValue(), fmt.Errorf("column %q: %w: %s over %s column",
			s.Name(), ErrUnsupportedAggregation, op, s.Kind())
	}
	best := NullValue()
	for _, idx := range indices {
		v, err := s.Value(idx)
		if err != nil {
			return NullValue(), err
		}
		if v.IsNil() {
			continue
		}
		if best.IsNil() {
			best = v
			continue
		}
		cmp := v.Compare(best)
		if (findMin && cmp < 0) || (!findMin && cmp > 0) {
			best = v
		}
	}
	return best, nil
}

// CountIndices counts the non-null cells of s addressed by indices. Count
// is defined for every column kind.
func CountIndices(s Series, indices []int) (Value, error) {
	var n uint64
	for _, idx := range indices {
		v, err := s.Value(idx)
		if err != nil {
			return NullValue(), err
		}
		if !v.IsNil() {
			n++
		}
	}
	return UintValue(datatype.KindUint32, n), nil
}
