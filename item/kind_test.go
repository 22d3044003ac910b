package item

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindVoid, "void"},
		{KindStr, "str"},
		{KindChangeHash, "change-hash"},
		{KindStr | KindBytes, "str|bytes"},
		{Kind(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%#x).String() = %q, want %q", uint32(tt.kind), got, tt.want)
		}
	}
}

func TestKind_Contains(t *testing.T) {
	accepted := KindStr | KindBytes

	if !accepted.Contains(KindStr) {
		t.Error("expected str to be accepted")
	}
	if !accepted.Contains(KindBytes) {
		t.Error("expected bytes to be accepted")
	}
	if accepted.Contains(KindInt) {
		t.Error("int should not be accepted")
	}
	if accepted.Contains(0) {
		t.Error("zero kind should never be accepted")
	}
}

func TestKindAny_CoversAll(t *testing.T) {
	for bit := KindVoid; bit < kindEnd; bit <<= 1 {
		if !KindAny.Contains(bit) {
			t.Errorf("KindAny misses %s", bit)
		}
	}
}

func TestKind_IsScalar(t *testing.T) {
	for _, k := range []Kind{KindNull, KindBool, KindInt, KindUint, KindF64, KindStr, KindBytes, KindCounter, KindTimestamp} {
		if !k.IsScalar() {
			t.Errorf("%s should be scalar", k)
		}
	}
	for _, k := range []Kind{KindVoid, KindActorID, KindChangeHash, KindObjID, KindDoc} {
		if k.IsScalar() {
			t.Errorf("%s should not be scalar", k)
		}
	}
}
