package item

import (
	"testing"

	"github.com/meldlab/meld/actor"
)

func TestItem_Accessors(t *testing.T) {
	a := actor.Random()

	tests := []struct {
		name string
		it   Item
		kind Kind
	}{
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"int", Int(-42), KindInt},
		{"uint", Uint(42), KindUint},
		{"f64", F64(3.5), KindF64},
		{"str", Str("hello"), KindStr},
		{"bytes", Bytes([]byte{1, 2}), KindBytes},
		{"counter", Counter(7), KindCounter},
		{"timestamp", Timestamp(1234), KindTimestamp},
		{"actor-id", ActorID(a), KindActorID},
		{"change-hash", ChangeHash(Hash{1}), KindChangeHash},
		{"obj-id", Obj(NewObjID(1, a)), KindObjID},
		{"doc", Doc(3), KindDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.it.Kind() != tt.kind {
				t.Fatalf("kind = %s, want %s", tt.it.Kind(), tt.kind)
			}
		})
	}
}

func TestItem_TypedValues(t *testing.T) {
	if v, ok := Str("hello").Str(); !ok || v != "hello" {
		t.Errorf("Str accessor = (%q, %v)", v, ok)
	}
	if v, ok := Int(-42).Int(); !ok || v != -42 {
		t.Errorf("Int accessor = (%d, %v)", v, ok)
	}
	if v, ok := Bool(true).Bool(); !ok || !v {
		t.Errorf("Bool accessor = (%v, %v)", v, ok)
	}
	if h, ok := Doc(9).Doc(); !ok || h != 9 {
		t.Errorf("Doc accessor = (%d, %v)", h, ok)
	}

	// Mismatched accessor reports !ok, never panics.
	if _, ok := Str("x").Int(); ok {
		t.Error("Int accessor on str item should report !ok")
	}
	if _, ok := Null().Bytes(); ok {
		t.Error("Bytes accessor on null item should report !ok")
	}
}

func TestItem_BytesCopied(t *testing.T) {
	src := []byte{1, 2, 3}
	it := Bytes(src)
	src[0] = 9

	got, ok := it.Bytes()
	if !ok || got[0] != 1 {
		t.Errorf("bytes item shares storage with caller: %v", got)
	}

	got[1] = 9
	again, _ := it.Bytes()
	if again[1] != 2 {
		t.Error("bytes accessor shares storage with caller")
	}
}

func TestObjID(t *testing.T) {
	if !Root.IsRoot() {
		t.Error("Root should report IsRoot")
	}
	if Root.String() != "_root" {
		t.Errorf("Root.String() = %q", Root.String())
	}

	a, _ := actor.FromHex("aabb")
	id := NewObjID(5, a)
	if id.IsRoot() {
		t.Error("non-root id reports IsRoot")
	}
	if id.String() != "5@aabb" {
		t.Errorf("id.String() = %q", id.String())
	}
	if !id.Equal(NewObjID(5, a)) {
		t.Error("identical ids should be equal")
	}
	if id.Equal(Root) {
		t.Error("id should not equal root")
	}
}
