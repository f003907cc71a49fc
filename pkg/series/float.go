package series

import "math"

// Float is the subset of Element with IEEE 754 semantics.
type Float interface {
	float32 | float64
}

// IsNaN returns a mask that is true where the cell is NaN. Null cells yield
// false, same as the comparison kernels.
func IsNaN[T Float](c *Column[T]) *Column[bool] {
	return floatPredicate(c, func(v float64) bool { return math.IsNaN(v) })
}

// IsNotNaN returns a mask that is true where the cell is a valid non-NaN
// value.
func IsNotNaN[T Float](c *Column[T]) *Column[bool] {
	return floatPredicate(c, func(v float64) bool { return !math.IsNaN(v) })
}

// IsInfinite returns a mask that is true where the cell is +Inf or -Inf.
func IsInfinite[T Float](c *Column[T]) *Column[bool] {
	return floatPredicate(c, func(v float64) bool { return math.IsInf(v, 0) })
}

func floatPredicate[T Float](c *Column[T], pred func(v float64) bool) *Column[bool] {
	out := NewEmptyOf[bool](c.name)
	for i := range c.values {
		out.Append(c.validity.Get(i) && pred(float64(c.values[i])))
	}
	return out
}
