package series

import "errors"

// Sentinel errors returned by column operations. Callers match them with
// [errors.Is]; messages wrapped around them add column names and positions.
var (
	// ErrShape indicates two columns of differing lengths were combined.
	ErrShape = errors.New("shape mismatch")

	// ErrTypeMismatch indicates an operation was applied to a column whose
	// runtime kind does not support it, or a downcast to the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCast indicates a value was not exactly representable in the cast
	// target kind.
	ErrCast = errors.New("cast error")

	// ErrDivisionByZero indicates integer division by a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrIndexOutOfRange indicates a row index beyond the column length.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupportedAggregation indicates an aggregation was requested for a
	// column kind that does not support it.
	ErrUnsupportedAggregation = errors.New("unsupported aggregation")
)
