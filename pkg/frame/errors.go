package frame

import "errors"

var (
	// ErrLengthMismatch indicates a column or mask whose length disagrees
	// with the frame's row count.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrDuplicateColumn indicates a column name that already exists in the
	// frame.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrColumnNotFound indicates a column name that does not exist in the
	// frame.
	ErrColumnNotFound = errors.New("column not found")
)
