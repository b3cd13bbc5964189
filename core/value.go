package core

import (
	"math"
	"strconv"
)

// Kind identifies which member of a Value is meaningful.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindFloat64
	KindString
)

// String returns the kind name, mostly for error messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the attribute value kinds. Numeric
// kinds share the num slot so a Value stays one numeric word, one
// string header and the tag; only strings carry a pointer.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

// Nil returns the null value.
func Nil() Value {
	return Value{kind: KindNil}
}

// Bool returns a boolean value.
func Bool(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// Int64 returns a signed integer value.
func Int64(v int64) Value {
	return Value{kind: KindInt64, num: uint64(v)}
}

// Uint64 returns an unsigned integer value.
func Uint64(v uint64) Value {
	return Value{kind: KindUint64, num: v}
}

// Float64 returns a floating point value.
func Float64(v float64) Value {
	return Value{kind: KindFloat64, num: math.Float64bits(v)}
}

// String returns a string value.
func String(v string) Value {
	return Value{kind: KindString, str: v}
}

// Kind reports which kind the value holds.
func (v Value) Kind() Kind { return v.kind }

// BoolValue returns the boolean member. Valid only for KindBool.
func (v Value) BoolValue() bool { return v.num == 1 }

// Int64Value returns the signed integer member. Valid only for KindInt64.
func (v Value) Int64Value() int64 { return int64(v.num) }

// Uint64Value returns the unsigned integer member. Valid only for KindUint64.
func (v Value) Uint64Value() uint64 { return v.num }

// Float64Value returns the floating point member. Valid only for KindFloat64.
func (v Value) Float64Value() float64 { return math.Float64frombits(v.num) }

// StringValue returns the string member. Valid only for KindString.
func (v Value) StringValue() string { return v.str }

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.num == o.num && v.str == o.str
}

// AppendText appends the default textual rendering of the value,
// the one used when no format spec narrows it down.
func (v Value) AppendText(b []byte) []byte {
	switch v.kind {
	case KindNil:
		return append(b, "none"...)
	case KindBool:
		return strconv.AppendBool(b, v.num == 1)
	case KindInt64:
		return strconv.AppendInt(b, int64(v.num), 10)
	case KindUint64:
		return strconv.AppendUint(b, v.num, 10)
	case KindFloat64:
		return strconv.AppendFloat(b, v.Float64Value(), 'f', -1, 64)
	case KindString:
		return append(b, v.str...)
	default:
		return b
	}
}

// Text returns the default textual rendering as a string.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	return string(v.AppendText(nil))
}
