package dataset

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"
)

type kind uint8

const (
	kindNull kind = iota
	kindInt
	kindUint
	kindFloat
	kindBool
	kindString
	kindBytes
	kindTime
)

// Value is a single cell. The zero Value is null.
type Value struct {
	kind kind
	i    int64
	u    uint64
	f    float64
	s    string
	b    []byte
	t    time.Time
}

func Null() Value { return Value{} }

func Int(v int64) Value { return Value{kind: kindInt, i: v} }

func Uint(v uint64) Value { return Value{kind: kindUint, u: v} }

func Float(v float64) Value { return Value{kind: kindFloat, f: v} }

func Str(v string) Value { return Value{kind: kindString, s: v} }

func Bytes(v []byte) Value { return Value{kind: kindBytes, b: v} }

func Time(v time.Time) Value { return Value{kind: kindTime, t: v} }

func Boolean(v bool) Value { return Value{kind: kindBool, i: boolToInt(v)} }

func (v Value) isNumeric() bool {
	return v.kind == kindInt || v.kind == kindUint || v.kind == kindFloat || v.kind == kindBool
}

func (v Value) isText() bool { return v.kind == kindString || v.kind == kindBytes }

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// IsNull reports whether v is missing. NaN counts as missing.
func (v Value) IsNull() bool {
	return v.kind == kindNull || (v.kind == kindFloat && math.IsNaN(v.f))
}

// Equal implements null-aware equality: two missing values are equal, a
// missing value never equals a present one, and present values compare by
// content across dtypes of the same family.
func Equal(a, b Value) bool {
	an, bn := a.IsNull(), b.IsNull()
	if an || bn {
		return an && bn
	}
	switch {
	case a.isNumeric() && b.isNumeric():
		return numericEqual(a, b)
	case a.isText() && b.isText():
		return bytes.Equal(a.textBytes(), b.textBytes())
	case a.kind == kindTime && b.kind == kindTime:
		return a.t.Equal(b.t)
	default:
		return false
	}
}

func (v Value) textBytes() []byte {
	if v.kind == kindBytes {
		return v.b
	}
	return []byte(v.s)
}

// numericEqual compares exactly: an integer equals a float only when the
// float is integral and converts to that very integer.
func numericEqual(a, b Value) bool {
	if a.kind == kindFloat && b.kind == kindFloat {
		return a.f == b.f
	}
	if a.kind == kindFloat {
		return floatEqualsInteger(a.f, b)
	}
	if b.kind == kindFloat {
		return floatEqualsInteger(b.f, a)
	}
	if a.kind == kindUint && b.kind == kindUint {
		return a.u == b.u
	}
	ai, aOK := a.asInt()
	bi, bOK := b.asInt()
	// A uint above MaxInt64 never equals a signed integer.
	return aOK && bOK && ai == bi
}

func floatEqualsInteger(f float64, v Value) bool {
	if i, ok := floatAsInt(f); ok {
		vi, vOK := v.asInt()
		return vOK && vi == i
	}
	if u, ok := floatAsUint(f); ok {
		return v.kind == kindUint && v.u == u
	}
	return false
}

const (
	twoTo63 = 9223372036854775808.0
	twoTo64 = 18446744073709551616.0
)

// floatAsInt converts f when it is integral and within the int64 range.
func floatAsInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < -twoTo63 || f >= twoTo63 {
		return 0, false
	}
	return int64(f), true
}

// floatAsUint converts f when it is integral and within [2^63, 2^64).
func floatAsUint(f float64) (uint64, bool) {
	if f != math.Trunc(f) || f < twoTo63 || f >= twoTo64 {
		return 0, false
	}
	return uint64(f), true
}

// asInt returns v as int64 when it is an integer kind that fits.
func (v Value) asInt() (int64, bool) {
	switch v.kind {
	case kindInt, kindBool:
		return v.i, true
	case kindUint:
		if v.u <= math.MaxInt64 {
			return int64(v.u), true
		}
	}
	return 0, false
}

// Key returns a canonical encoding of v used to align rows by primary key.
// Values that are Equal produce the same key; integral floats share the
// encoding of the matching integer.
func (v Value) Key() string {
	if v.IsNull() {
		return "\x00"
	}
	switch v.kind {
	case kindInt, kindBool:
		return "n" + strconv.FormatInt(v.i, 10)
	case kindUint:
		if v.u <= math.MaxInt64 {
			return "n" + strconv.FormatInt(int64(v.u), 10)
		}
		return "n" + strconv.FormatUint(v.u, 10)
	case kindFloat:
		if i, ok := floatAsInt(v.f); ok {
			return "n" + strconv.FormatInt(i, 10)
		}
		if u, ok := floatAsUint(v.f); ok {
			return "n" + strconv.FormatUint(u, 10)
		}
		return "n" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindString:
		return "s" + v.s
	case kindBytes:
		return "s" + string(v.b)
	case kindTime:
		return "t" + strconv.FormatInt(v.t.UnixNano(), 10)
	}
	return "?"
}

func (v Value) String() string {
	if v.IsNull() {
		return "null"
	}
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindUint:
		return strconv.FormatUint(v.u, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.i == 1)
	case kindString:
		return v.s
	case kindBytes:
		return fmt.Sprintf("%x", v.b)
	case kindTime:
		return v.t.Format(time.RFC3339Nano)
	}
	return "?"
}
