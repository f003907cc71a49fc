package frameio

import "errors"

// ErrParse indicates CSV input that does not fit the expected shape or the
// resolved column kind.
var ErrParse = errors.New("parse error")
