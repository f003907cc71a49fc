package series

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/tablekit/tablekit/pkg/datatype"
)

// A Value is a single cell taken from a column: a runtime-tagged scalar that
// may be null. The zero Value is null.
//
// Numeric payloads are packed into a single uint64 regardless of kind so that
// a Value never allocates for fixed-width types.
type Value struct {
	kind datatype.Kind

	// num holds the payload for numeric and bool kinds: signed integers as
	// their two's complement bits, floats as their IEEE 754 bits, bool as 0
	// or 1.
	num uint64

	// str holds the payload for string kinds.
	str string
}

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// BoolValue returns a Value holding a bool.
func BoolValue(v bool) Value {
	var num uint64
	if v {
		num = 1
	}
	return Value{kind: datatype.KindBool, num: num}
}

// IntValue returns a Value holding a signed integer of the given kind.
func IntValue(kind datatype.Kind, v int64) Value {
	return Value{kind: kind, num: uint64(v)}
}

// UintValue returns a Value holding an unsigned integer of the given kind.
func UintValue(kind datatype.Kind, v uint64) Value {
	return Value{kind: kind, num: v}
}

// FloatValue returns a Value holding a float of the given kind.
func FloatValue(kind datatype.Kind, v float64) Value {
	return Value{kind: kind, num: math.Float64bits(v)}
}

// Int64Value returns a Value holding an int64.
func Int64Value(v int64) Value { return IntValue(datatype.KindInt64, v) }

// Uint64Value returns a Value holding a uint64.
func Uint64Value(v uint64) Value { return UintValue(datatype.KindUint64, v) }

// Float64Value returns a Value holding a float64.
func Float64Value(v float64) Value { return FloatValue(datatype.KindFloat64, v) }

// StringValue returns a Value holding a string.
func StringValue(v string) Value {
	return Value{kind: datatype.KindString, str: v}
}

// IsNil returns whether v is null.
func (v Value) IsNil() bool { return v.kind == datatype.KindNull }

// Kind returns the kind of v, or [datatype.KindNull] if v is null.
func (v Value) Kind() datatype.Kind { return v.kind }

// Bool returns the bool payload of v. It panics if v is not a bool.
func (v Value) Bool() bool {
	if v.kind != datatype.KindBool {
		panic(fmt.Sprintf("series: Bool called on %s value", v.kind))
	}
	return v.num != 0
}

// Int64 returns the signed integer payload of v widened to int64. It panics
// if v is not a signed integer.
func (v Value) Int64() int64 {
	if !v.kind.IsSigned() {
		panic(fmt.Sprintf("series: Int64 called on %s value", v.kind))
	}
	return int64(v.num)
}

// Uint64 returns the unsigned integer payload of v widened to uint64. It
// panics if v is not an unsigned integer.
func (v Value) Uint64() uint64 {
	if !v.kind.IsUnsigned() {
		panic(fmt.Sprintf("series: Uint64 called on %s value", v.kind))
	}
	return v.num
}

// Float64 returns the float payload of v widened to float64. It panics if v
// is not a float.
func (v Value) Float64() float64 {
	if !v.kind.IsFloat() {
		panic(fmt.Sprintf("series: Float64 called on %s value", v.kind))
	}
	return math.Float64frombits(v.num)
}

// Str returns the string payload of v. It panics if v is not a string.
func (v Value) Str() string {
	if v.kind != datatype.KindString {
		panic(fmt.Sprintf("series: Str called on %s value", v.kind))
	}
	return v.str
}

// AsFloat64 converts any numeric Value to float64. The second return is
// false for null and non-numeric Values.
func (v Value) AsFloat64() (float64, bool) {
	switch {
	case v.kind.IsSigned():
		return float64(int64(v.num)), true
	case v.kind.IsUnsigned():
		return float64(v.num), true
	case v.kind.IsFloat():
		return math.Float64frombits(v.num), true
	}
	return 0, false
}

// Equal reports whether two Values have the same kind and payload. Two null
// Values are equal. NaN does not equal NaN, following IEEE semantics.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch {
	case v.kind == datatype.KindNull:
		return true
	case v.kind == datatype.KindString:
		return v.str == other.str
	case v.kind.IsFloat():
		return math.Float64frombits(v.num) == math.Float64frombits(other.num)
	}
	return v.num == other.num
}

// Compare orders two Values of the same kind: -1 if v < other, 0 if equal,
// +1 if v > other. Nulls order after all non-null Values. Incomparable float
// pairs (NaN involved) compare equal. Compare panics if both Values are
// non-null with differing kinds.
func (v Value) Compare(other Value) int {
	switch {
	case v.IsNil() && other.IsNil():
		return 0
	case v.IsNil():
		return 1
	case other.IsNil():
		return -1
	}
	if v.kind != other.kind {
		panic(fmt.Sprintf("series: comparing %s value against %s value", v.kind, other.kind))
	}

	switch {
	case v.kind == datatype.KindBool:
		return compareOrdered(v.num&1, other.num&1)
	case v.kind == datatype.KindString:
		return compareOrdered(v.str, other.str)
	case v.kind.IsSigned():
		return compareOrdered(int64(v.num), int64(other.num))
	case v.kind.IsUnsigned():
		return compareOrdered(v.num, other.num)
	case v.kind.IsFloat():
		a, b := math.Float64frombits(v.num), math.Float64frombits(other.num)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	return 0
}

func compareOrdered[T interface {
	~int64 | ~uint64 | ~string
}](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AppendHash writes a canonical representation of v into digest. The
// representation is prefixed by the kind tag so that equal payload bits of
// different kinds never alias, and nulls hash as a distinguished tag with no
// payload.
func (v Value) AppendHash(digest *xxhash.Digest) {
	_, _ = digest.Write([]byte{byte(v.kind)})
	if v.IsNil() {
		return
	}
	if v.kind == datatype.KindString {
		// Length prefix keeps adjacent string keys from aliasing when
		// several Values feed one digest: the payload boundary is explicit,
		// so no byte content can imitate the next key's tag.
		var length [4]byte
		binary.LittleEndian.PutUint32(length[:], uint32(len(v.str)))
		_, _ = digest.Write(length[:])
		_, _ = digest.WriteString(v.str)
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v.num)
	_, _ = digest.Write(buf[:])
}

// AppendKey appends the canonical key bytes of v to dst, mirroring
// AppendHash. Callers use it to verify hash bucket membership on collisions.
func (v Value) AppendKey(dst []byte) []byte {
	dst = append(dst, byte(v.kind))
	if v.IsNil() {
		return dst
	}
	if v.kind == datatype.KindString {
		var length [4]byte
		binary.LittleEndian.PutUint32(length[:], uint32(len(v.str)))
		dst = append(dst, length[:]...)
		return append(dst, v.str...)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v.num)
	return append(dst, buf[:]...)
}

// String renders v for display. Null renders as "null".
func (v Value) String() string {
	switch {
	case v.IsNil():
		return "null"
	case v.kind == datatype.KindBool:
		return strconv.FormatBool(v.num != 0)
	case v.kind == datatype.KindString:
		return v.str
	case v.kind.IsSigned():
		return strconv.FormatInt(int64(v.num), 10)
	case v.kind.IsUnsigned():
		return strconv.FormatUint(v.num, 10)
	case v.kind.IsFloat():
		return strconv.FormatFloat(math.Float64frombits(v.num), 'g', -1, 64)
	}
	return fmt.Sprintf("Value(%s)", v.kind)
}
