package item

import (
	"encoding/hex"
	"fmt"

	"github.com/meldlab/meld/actor"
)

// Hash is a change hash digest.
type Hash [32]byte

// String returns the hexadecimal form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is all zeroes.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Item is a tagged descriptor of one typed value crossing the boundary.
// Items are immutable values; copying one is cheap and safe.
type Item struct {
	kind  Kind
	str   string
	bytes []byte
	i64   int64
	u64   uint64
	f64   float64
	b     bool
	obj   ObjID
	hash  Hash
	act   actor.ID
}

// Kind returns the item's type tag.
func (it Item) Kind() Kind { return it.kind }

// Constructors, one per kind.

func Null() Item              { return Item{kind: KindNull} }
func Bool(v bool) Item        { return Item{kind: KindBool, b: v} }
func Int(v int64) Item        { return Item{kind: KindInt, i64: v} }
func Uint(v uint64) Item      { return Item{kind: KindUint, u64: v} }
func F64(v float64) Item      { return Item{kind: KindF64, f64: v} }
func Str(v string) Item       { return Item{kind: KindStr, str: v} }
func Counter(v int64) Item    { return Item{kind: KindCounter, i64: v} }
func Timestamp(v int64) Item  { return Item{kind: KindTimestamp, i64: v} }
func ActorID(a actor.ID) Item { return Item{kind: KindActorID, act: a} }
func ChangeHash(h Hash) Item  { return Item{kind: KindChangeHash, hash: h} }
func Obj(id ObjID) Item       { return Item{kind: KindObjID, obj: id} }
func Doc(handle uint32) Item  { return Item{kind: KindDoc, u64: uint64(handle)} }

// Bytes copies v into a new bytes item.
func Bytes(v []byte) Item {
	b := make([]byte, len(v))
	copy(b, v)
	return Item{kind: KindBytes, bytes: b}
}

// Typed accessors. Each returns the value and true when the item carries the
// matching kind, the zero value and false otherwise.

func (it Item) Bool() (bool, bool) {
	return it.b, it.kind == KindBool
}

func (it Item) Int() (int64, bool) {
	return it.i64, it.kind == KindInt
}

func (it Item) Uint() (uint64, bool) {
	return it.u64, it.kind == KindUint
}

func (it Item) F64() (float64, bool) {
	return it.f64, it.kind == KindF64
}

func (it Item) Str() (string, bool) {
	return it.str, it.kind == KindStr
}

func (it Item) Counter() (int64, bool) {
	return it.i64, it.kind == KindCounter
}

func (it Item) Timestamp() (int64, bool) {
	return it.i64, it.kind == KindTimestamp
}

func (it Item) ActorID() (actor.ID, bool) {
	return it.act, it.kind == KindActorID
}

func (it Item) ChangeHash() (Hash, bool) {
	return it.hash, it.kind == KindChangeHash
}

func (it Item) Obj() (ObjID, bool) {
	return it.obj, it.kind == KindObjID
}

// Doc returns the document handle the item carries.
func (it Item) Doc() (uint32, bool) {
	return uint32(it.u64), it.kind == KindDoc
}

// Bytes returns a copy of the byte payload.
func (it Item) Bytes() ([]byte, bool) {
	if it.kind != KindBytes {
		return nil, false
	}
	b := make([]byte, len(it.bytes))
	copy(b, it.bytes)
	return b, true
}

// String renders the item for diagnostics.
func (it Item) String() string {
	switch it.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", it.b)
	case KindInt, KindCounter, KindTimestamp:
		return fmt.Sprintf("%s(%d)", it.kind, it.i64)
	case KindUint:
		return fmt.Sprintf("uint(%d)", it.u64)
	case KindF64:
		return fmt.Sprintf("f64(%g)", it.f64)
	case KindStr:
		return fmt.Sprintf("str(%q)", it.str)
	case KindBytes:
		return fmt.Sprintf("bytes(%d)", len(it.bytes))
	case KindActorID:
		return "actor-id(" + it.act.String() + ")"
	case KindChangeHash:
		return "change-hash(" + it.hash.String() + ")"
	case KindObjID:
		return "obj-id(" + it.obj.String() + ")"
	case KindDoc:
		return fmt.Sprintf("doc(%d)", it.u64)
	}
	return "unknown"
}
