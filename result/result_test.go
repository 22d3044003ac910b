package result

import (
	"strings"
	"testing"

	"github.com/meldlab/meld/item"
)

func TestResult_Status(t *testing.T) {
	tests := []struct {
		name   string
		r      *Result
		status Status
	}{
		{"void", Void(), StatusOK},
		{"ok with payload", Ok(item.Str("a")), StatusOK},
		{"error", Err("boom"), StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.r.Release()
			if got := tt.r.Status(); got != tt.status {
				t.Errorf("Status() = %s, want %s", got, tt.status)
			}
			// Status is repeatable.
			if got := tt.r.Status(); got != tt.status {
				t.Errorf("second Status() = %s, want %s", got, tt.status)
			}
		})
	}
}

func TestResult_ErrorMessage(t *testing.T) {
	r := Err("invalid key %q", "x")
	defer r.Release()
	if msg := r.ErrorMessage(); !strings.Contains(msg, `"x"`) {
		t.Errorf("ErrorMessage() = %q", msg)
	}

	ok := Ok(item.Int(1))
	defer ok.Release()
	if msg := ok.ErrorMessage(); msg != "" {
		t.Errorf("ErrorMessage on OK result = %q, want empty", msg)
	}
}

func TestResult_Payload(t *testing.T) {
	r := Ok(item.Str("a"), item.Int(2))
	defer r.Release()

	if r.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", r.Size())
	}

	first, ok := r.Item()
	if !ok {
		t.Fatal("Item() reported no payload")
	}
	if s, _ := first.Str(); s != "a" {
		t.Errorf("first item = %v", first)
	}

	items := r.Items()
	if len(items) != 2 {
		t.Fatalf("Items() returned %d items", len(items))
	}
	if v, _ := items[1].Int(); v != 2 {
		t.Errorf("second item = %v", items[1])
	}
}

func TestResult_Item_Empty(t *testing.T) {
	r := Void()
	defer r.Release()
	if _, ok := r.Item(); ok {
		t.Error("Item() on empty payload should report !ok")
	}
}

func TestResult_DoubleReleasePanics(t *testing.T) {
	r := Ok(item.Str("a"))
	r.Release()

	defer func() {
		if recover() == nil {
			t.Error("second Release should panic")
		}
	}()
	r.Release()
}

func TestResult_UseAfterReleasePanics(t *testing.T) {
	r := Ok(item.Str("a"))
	r.Release()

	defer func() {
		if recover() == nil {
			t.Error("Status after Release should panic")
		}
	}()
	_ = r.Status()
}

func TestResult_FromError(t *testing.T) {
	r := FromError(errForTest("bad actor"))
	defer r.Release()
	if r.Status() != StatusError {
		t.Fatalf("Status() = %s", r.Status())
	}
	if r.ErrorMessage() != "bad actor" {
		t.Errorf("ErrorMessage() = %q", r.ErrorMessage())
	}
}

type errForTest string

func (e errForTest) Error() string { return string(e) }
