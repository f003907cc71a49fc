package series

import (
	"fmt"
	"math"

	"github.com/tablekit/tablekit/pkg/datatype"
)

// Cast converts every cell of s to the target kind. It fails with ErrCast if
// any non-null value is not exactly representable in the target kind; nulls
// remain null. Casting to the column's own kind returns a copy.
//
// Supported conversions are between numeric kinds. In-range values
// round-trip exactly: Cast(Cast(c, to), c.Kind()) reproduces c cell for
// cell.
func Cast(s Series, to datatype.Kind) (Series, error) {
	from := s.Kind()
	if from == to {
		return s.Clone(), nil
	}
	if !from.IsNumeric() || !to.IsNumeric() {
		return nil, fmt.Errorf("%w: cannot cast column %q from %s to %s",
			ErrCast, s.Name(), from, to)
	}

	out, err := NewEmpty(s.Name(), to)
	if err != nil {
		return nil, err
	}
	for i := range s.Len() {
		v, err := s.Value(i)
		if err != nil {
			return nil, err
		}
		if v.IsNil() {
			out.AppendNull()
			continue
		}
		converted, err := convertValue(v, to)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", s.Name(), i, err)
		}
		if err := out.AppendValue(converted); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// convertValue converts a non-null numeric Value to the target kind,
// requiring exact representability.
func convertValue(v Value, to datatype.Kind) (Value, error) {
	switch {
	case to.IsSigned():
		i, err := toInt64(v)
		if err != nil {
			return NullValue(), err
		}
		lo, hi := signedRange(to)
		if i < lo || i > hi {
			return NullValue(), fmt.Errorf("%w: value %s out of range for %s", ErrCast, v, to)
		}
		return IntValue(to, i), nil

	case to.IsUnsigned():
		u, err := toUint64(v)
		if err != nil {
			return NullValue(), err
		}
		if hi := unsignedMax(to); u > hi {
			return NullValue(), fmt.Errorf("%w: value %s out of range for %s", ErrCast, v, to)
		}
		return UintValue(to, u), nil

	case to.IsFloat():
		f, err := toFloat(v)
		if err != nil {
			return NullValue(), err
		}
		if to == datatype.KindFloat32 && !math.IsNaN(f) && float64(float32(f)) != f {
			return NullValue(), fmt.Errorf("%w: value %s not representable as float32", ErrCast, v)
		}
		return FloatValue(to, f), nil
	}
	return NullValue(), fmt.Errorf("%w: unsupported target kind %s", ErrCast, to)
}

func toInt64(v Value) (int64, error) {
	switch {
	case v.Kind().IsSigned():
		return v.Int64(), nil
	case v.Kind().IsUnsigned():
		u := v.Uint64()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: value %s overflows int64", ErrCast, v)
		}
		return int64(u), nil
	case v.Kind().IsFloat():
		f := v.Float64()
		if math.Trunc(f) != f || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, fmt.Errorf("%w: value %s is not an integer", ErrCast, v)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: value %s overflows int64", ErrCast, v)
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("%w: value %s is not numeric", ErrCast, v)
}

func toUint64(v Value) (uint64, error) {
	switch {
	case v.Kind().IsUnsigned():
		return v.Uint64(), nil
	case v.Kind().IsSigned():
		i := v.Int64()
		if i < 0 {
			return 0, fmt.Errorf("%w: negative value %s for unsigned kind", ErrCast, v)
		}
		return uint64(i), nil
	case v.Kind().IsFloat():
		f := v.Float64()
		if math.Trunc(f) != f || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, fmt.Errorf("%w: value %s is not an integer", ErrCast, v)
		}
		if f < 0 || f >= math.MaxUint64 {
			return 0, fmt.Errorf("%w: value %s overflows uint64", ErrCast, v)
		}
		return uint64(f), nil
	}
	return 0, fmt.Errorf("%w: value %s is not numeric", ErrCast, v)
}

func toFloat(v Value) (float64, error) {
	switch {
	case v.Kind().IsFloat():
		return v.Float64(), nil
	case v.Kind().IsSigned():
		i := v.Int64()
		f := float64(i)
		if int64(f) != i {
			return 0, fmt.Errorf("%w: value %s not exactly representable as float64", ErrCast, v)
		}
		return f, nil
	case v.Kind().IsUnsigned():
		u := v.Uint64()
		f := float64(u)
		if f >= math.MaxUint64 || uint64(f) != u {
			return 0, fmt.Errorf("%w: value %s not exactly representable as float64", ErrCast, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: value %s is not numeric", ErrCast, v)
}

func signedRange(k datatype.Kind) (int64, int64) {
	switch k {
	case datatype.KindInt8:
		return math.MinInt8, math.MaxInt8
	case datatype.KindInt16:
		return math.MinInt16, math.MaxInt16
	case datatype.KindInt32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func unsignedMax(k datatype.Kind) uint64 {
	switch k {
	case datatype.KindUint8:
		return math.MaxUint8
	case datatype.KindUint16:
		return math.MaxUint16
	case datatype.KindUint32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}
