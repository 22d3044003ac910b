package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseMutate,
				Kind:   KindInvalidValue,
				Obj:    "_root",
				Key:    "title",
				Detail: "value kind doc is not storable",
			},
			contains: []string{"[mutate]", "invalid_value", "_root.title", "not storable"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRead,
				Kind:  KindObjNotFound,
			},
			contains: []string{"[read]", "obj_not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindCorrupt,
				Detail: "change 3",
				Cause:  errors.New("hash mismatch"),
			},
			contains: []string{"[load]", "corrupt", "change 3", "caused by", "hash mismatch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Corrupt(PhaseLoad, "truncated input", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := ObjNotFound(PhaseRead, "1@aabb")
	b := ObjNotFound(PhaseRead, "2@ccdd")
	c := ObjNotFound(PhaseMutate, "1@aabb")

	if !errors.Is(a, b) {
		t.Error("same phase and kind should match")
	}
	if errors.Is(a, c) {
		t.Error("different phase should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseStore, KindNotFound).
		Key("mydoc").
		Detail("document %q missing", "mydoc").
		Cause(cause).
		Build()

	if err.Phase != PhaseStore || err.Kind != KindNotFound {
		t.Errorf("builder lost phase/kind: %v", err)
	}
	if err.Key != "mydoc" {
		t.Errorf("builder lost key: %q", err.Key)
	}
	if !strings.Contains(err.Detail, `"mydoc"`) {
		t.Errorf("detail not formatted: %q", err.Detail)
	}
	if err.Cause != cause {
		t.Error("builder lost cause")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"invalid actor", InvalidActor(PhaseConfig, "empty"), KindInvalidActor},
		{"invalid key", InvalidKey(PhaseMutate, "_root", "", "empty key"), KindInvalidKey},
		{"doc not found", DocNotFound(PhaseMutate, 7), KindDocNotFound},
		{"type mismatch", TypeMismatch(PhaseRead, "_root", "k", "list", "map"), KindTypeMismatch},
		{"out of bounds", OutOfBounds(PhaseRead, "1@aa", 5, 2), KindOutOfBounds},
		{"closed", Closed(PhaseStore, "store"), KindClosed},
		{"operation failed", OperationFailed(PhaseCombine, "bad"), KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}
