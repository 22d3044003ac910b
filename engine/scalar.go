package engine

import (
	"bytes"
	"fmt"

	"github.com/meldlab/meld/item"
)

// Scalar is a storable document value: the leaf of the object tree. The
// zero value is the null scalar.
type Scalar struct {
	kind item.Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	raw  []byte
}

// Scalar constructors.

func Null() Scalar             { return Scalar{kind: item.KindNull} }
func Bool(v bool) Scalar       { return Scalar{kind: item.KindBool, b: v} }
func Int(v int64) Scalar       { return Scalar{kind: item.KindInt, i: v} }
func Uint(v uint64) Scalar     { return Scalar{kind: item.KindUint, u: v} }
func F64(v float64) Scalar     { return Scalar{kind: item.KindF64, f: v} }
func Str(v string) Scalar      { return Scalar{kind: item.KindStr, s: v} }
func Counter(v int64) Scalar   { return Scalar{kind: item.KindCounter, i: v} }
func Timestamp(v int64) Scalar { return Scalar{kind: item.KindTimestamp, i: v} }

// Bytes copies v into a bytes scalar.
func Bytes(v []byte) Scalar {
	raw := make([]byte, len(v))
	copy(raw, v)
	return Scalar{kind: item.KindBytes, raw: raw}
}

// Kind returns the scalar's type tag. The zero Scalar reports KindNull.
func (s Scalar) Kind() item.Kind {
	if s.kind == 0 {
		return item.KindNull
	}
	return s.kind
}

// Item converts the scalar into a boundary value descriptor.
func (s Scalar) Item() item.Item {
	switch s.Kind() {
	case item.KindBool:
		return item.Bool(s.b)
	case item.KindInt:
		return item.Int(s.i)
	case item.KindUint:
		return item.Uint(s.u)
	case item.KindF64:
		return item.F64(s.f)
	case item.KindStr:
		return item.Str(s.s)
	case item.KindBytes:
		return item.Bytes(s.raw)
	case item.KindCounter:
		return item.Counter(s.i)
	case item.KindTimestamp:
		return item.Timestamp(s.i)
	}
	return item.Null()
}

// FromItem converts a boundary value descriptor into a scalar. It reports
// false for descriptor kinds that are not storable values.
func FromItem(it item.Item) (Scalar, bool) {
	switch it.Kind() {
	case item.KindNull:
		return Null(), true
	case item.KindBool:
		v, _ := it.Bool()
		return Bool(v), true
	case item.KindInt:
		v, _ := it.Int()
		return Int(v), true
	case item.KindUint:
		v, _ := it.Uint()
		return Uint(v), true
	case item.KindF64:
		v, _ := it.F64()
		return F64(v), true
	case item.KindStr:
		v, _ := it.Str()
		return Str(v), true
	case item.KindBytes:
		v, _ := it.Bytes()
		return Scalar{kind: item.KindBytes, raw: v}, true
	case item.KindCounter:
		v, _ := it.Counter()
		return Counter(v), true
	case item.KindTimestamp:
		v, _ := it.Timestamp()
		return Timestamp(v), true
	}
	return Scalar{}, false
}

// Equal reports whether two scalars hold the same kind and value.
func (s Scalar) Equal(other Scalar) bool {
	if s.Kind() != other.Kind() {
		return false
	}
	switch s.Kind() {
	case item.KindNull:
		return true
	case item.KindBool:
		return s.b == other.b
	case item.KindInt, item.KindCounter, item.KindTimestamp:
		return s.i == other.i
	case item.KindUint:
		return s.u == other.u
	case item.KindF64:
		return s.f == other.f
	case item.KindStr:
		return s.s == other.s
	case item.KindBytes:
		return bytes.Equal(s.raw, other.raw)
	}
	return false
}

// String renders the scalar for diagnostics.
func (s Scalar) String() string {
	switch s.Kind() {
	case item.KindNull:
		return "null"
	case item.KindBool:
		return fmt.Sprintf("%v", s.b)
	case item.KindInt:
		return fmt.Sprintf("%d", s.i)
	case item.KindUint:
		return fmt.Sprintf("%du", s.u)
	case item.KindF64:
		return fmt.Sprintf("%g", s.f)
	case item.KindStr:
		return fmt.Sprintf("%q", s.s)
	case item.KindBytes:
		return fmt.Sprintf("bytes(%d)", len(s.raw))
	case item.KindCounter:
		return fmt.Sprintf("counter(%d)", s.i)
	case item.KindTimestamp:
		return fmt.Sprintf("timestamp(%d)", s.i)
	}
	return "unknown"
}
