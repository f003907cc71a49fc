package series

import "fmt"

// Elementwise kernels. Binary column-column forms require equal lengths and
// propagate nulls: the result is null at position i iff either operand is
// null at i. Scalar forms treat the scalar as valid at every position.

func checkShapes[T Element](a, b *Column[T]) error {
	a.checkInvariant()
	b.checkInvariant()
	if a.Len() != b.Len() {
		return fmt.Errorf("%w: column %q has length %d, column %q has length %d",
			ErrShape, a.name, a.Len(), b.name, b.Len())
	}
	return nil
}

func binaryOp[T Number](a, b *Column[T], op func(x, y T) T) (*Column[T], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}
	out := NewEmptyOf[T](a.name)
	for i := range a.values {
		if !a.validity.Get(i) || !b.validity.Get(i) {
			out.AppendNull()
			continue
		}
		out.Append(op(a.values[i], b.values[i]))
	}
	return out, nil
}

func scalarOp[T Number](a *Column[T], s T, op func(x, y T) T) *Column[T] {
	out := NewEmptyOf[T](a.name)
	for i := range a.values {
		if !a.validity.Get(i) {
			out.AppendNull()
			continue
		}
		out.Append(op(a.values[i], s))
	}
	return out
}

// Add returns the elementwise sum of two equal-length numeric columns.
func Add[T Number](a, b *Column[T]) (*Column[T], error) {
	return binaryOp(a, b, func(x, y T) T { return x + y })
}

// AddScalar returns a column with s added to every valid element of a.
func AddScalar[T Number](a *Column[T], s T) *Column[T] {
	return scalarOp(a, s, func(x, y T) T { return x + y })
}

// Sub returns the elementwise difference of two equal-length numeric columns.
func Sub[T Number](a, b *Column[T]) (*Column[T], error) {
	return binaryOp(a, b, func(x, y T) T { return x - y })
}

// SubScalar returns a column with s subtracted from every valid element of a.
func SubScalar[T Number](a *Column[T], s T) *Column[T] {
	return scalarOp(a, s, func(x, y T) T { return x - y })
}

// Mul returns the elementwise product of two equal-length numeric columns.
func Mul[T Number](a, b *Column[T]) (*Column[T], error) {
	return binaryOp(a, b, func(x, y T) T { return x * y })
}

// MulScalar returns a column with every valid element of a multiplied by s.
func MulScalar[T Number](a *Column[T], s T) *Column[T] {
	return scalarOp(a, s, func(x, y T) T { return x * y })
}

// Div returns the elementwise quotient of two equal-length numeric columns.
// Division follows the element kind's native convention: floating kinds
// produce ±Inf or NaN for zero divisors, integer kinds fail with
// ErrDivisionByZero on the first valid zero divisor.
func Div[T Number](a, b *Column[T]) (*Column[T], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}
	integral := a.kind.IsInteger()
	out := NewEmptyOf[T](a.name)
	for i := range a.values {
		if !a.validity.Get(i) || !b.validity.Get(i) {
			out.AppendNull()
			continue
		}
		var zero T
		if integral && b.values[i] == zero {
			return nil, fmt.Errorf("%w: column %q row %d", ErrDivisionByZero, b.name, i)
		}
		out.Append(a.values[i] / b.values[i])
	}
	return out, nil
}

// DivScalar returns a column with every valid element of a divided by s,
// under the same zero-divisor convention as Div.
func DivScalar[T Number](a *Column[T], s T) (*Column[T], error) {
	var zero T
	if a.kind.IsInteger() && s == zero {
		return nil, fmt.Errorf("%w: scalar divisor for column %q", ErrDivisionByZero, a.name)
	}
	return scalarOp(a, s, func(x, y T) T { return x / y }), nil
}

// Comparisons produce a boolean mask. A null operand at position i yields
// false at i, never an error, so the row is excluded when the mask filters.

func compareColumns[T Element](a, b *Column[T], op func(c int) bool) (*Column[bool], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}
	out := NewEmptyOf[bool](a.name)
	for i := range a.values {
		if !a.validity.Get(i) || !b.validity.Get(i) {
			out.Append(false)
			continue
		}
		out.Append(op(valueOf(a.values[i]).Compare(valueOf(b.values[i]))))
	}
	return out, nil
}

func compareScalar[T Element](a *Column[T], s T, op func(c int) bool) *Column[bool] {
	sv := valueOf(s)
	out := NewEmptyOf[bool](a.name)
	for i := range a.values {
		if !a.validity.Get(i) {
			out.Append(false)
			continue
		}
		out.Append(op(valueOf(a.values[i]).Compare(sv)))
	}
	return out
}

// Gt returns a mask that is true where a > b.
func Gt[T Ordered](a, b *Column[T]) (*Column[bool], error) {
	return compareColumns(a, b, func(c int) bool { return c > 0 })
}

// GtScalar returns a mask that is true where a > s.
func GtScalar[T Ordered](a *Column[T], s T) *Column[bool] {
	return compareScalar(a, s, func(c int) bool { return c > 0 })
}

// Lt returns a mask that is true where a < b.
func Lt[T Ordered](a, b *Column[T]) (*Column[bool], error) {
	return compareColumns(a, b, func(c int) bool { return c < 0 })
}

// LtScalar returns a mask that is true where a < s.
func LtScalar[T Ordered](a *Column[T], s T) *Column[bool] {
	return compareScalar(a, s, func(c int) bool { return c < 0 })
}

// Ge returns a mask that is true where a >= b.
func Ge[T Ordered](a, b *Column[T]) (*Column[bool], error) {
	return compareColumns(a, b, func(c int) bool { return c >= 0 })
}

// GeScalar returns a mask that is true where a >= s.
func GeScalar[T Ordered](a *Column[T], s T) *Column[bool] {
	return compareScalar(a, s, func(c int) bool { return c >= 0 })
}

// Le returns a mask that is true where a <= b.
func Le[T Ordered](a, b *Column[T]) (*Column[bool], error) {
	return compareColumns(a, b, func(c int) bool { return c <= 0 })
}

// LeScalar returns a mask that is true where a <= s.
func LeScalar[T Ordered](a *Column[T], s T) *Column[bool] {
	return compareScalar(a, s, func(c int) bool { return c <= 0 })
}

// Eq returns a mask that is true where a == b.
func Eq[T Element](a, b *Column[T]) (*Column[bool], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}
	out := NewEmptyOf[bool](a.name)
	for i := range a.values {
		if !a.validity.Get(i) || !b.validity.Get(i) {
			out.Append(false)
			continue
		}
		out.Append(valueOf(a.values[i]).Equal(valueOf(b.values[i])))
	}
	return out, nil
}

// EqScalar returns a mask that is true where a == s.
func EqScalar[T Element](a *Column[T], s T) *Column[bool] {
	sv := valueOf(s)
	out := NewEmptyOf[bool](a.name)
	for i := range a.values {
		if !a.validity.Get(i) {
			out.Append(false)
			continue
		}
		out.Append(valueOf(a.values[i]).Equal(sv))
	}
	return out
}

// Ne returns a mask that is true where a != b. Null operands still yield
// false: a null never compares unequal, it is simply excluded.
func Ne[T Element](a, b *Column[T]) (*Column[bool], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}
	out := NewEmptyOf[bool](a.name)
	for i := range a.values {
		if !a.validity.Get(i) || !b.validity.Get(i) {
			out.Append(false)
			continue
		}
		out.Append(!valueOf(a.values[i]).Equal(valueOf(b.values[i])))
	}
	return out, nil
}

// NeScalar returns a mask that is true where a != s.
func NeScalar[T Element](a *Column[T], s T) *Column[bool] {
	sv := valueOf(s)
	out := NewEmptyOf[bool](a.name)
	for i := range a.values {
		if !a.validity.Get(i) {
			out.Append(false)
			continue
		}
		out.Append(!valueOf(a.values[i]).Equal(sv))
	}
	return out
}

// Boolean mask helpers.

// All reports whether every cell of the mask is valid and true.
func All(m Mask) bool {
	for i := range m.values {
		if !m.validity.Get(i) || !m.values[i] {
			return false
		}
	}
	return true
}

// Any reports whether at least one cell of the mask is valid and true.
func Any(m Mask) bool {
	for i := range m.values {
		if m.validity.Get(i) && m.values[i] {
			return true
		}
	}
	return false
}

// CountTrue returns the number of valid true cells in the mask, which is the
// row count of any frame filtered by it.
func CountTrue(m Mask) int {
	var n int
	for i := range m.values {
		if m.validity.Get(i) && m.values[i] {
			n++
		}
	}
	return n
}
