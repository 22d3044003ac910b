package result

import (
	"testing"

	"github.com/meldlab/meld/item"
)

func TestStack_TracksAndFrees(t *testing.T) {
	var stack Stack

	a := stack.Result(Ok(item.Str("a")), nil)
	b := stack.Result(Ok(item.Str("b")), nil)
	if stack.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", stack.Size())
	}

	stack.Free()
	if stack.Size() != 0 {
		t.Errorf("Size() after Free = %d", stack.Size())
	}
	if !a.Released() || !b.Released() {
		t.Error("Free did not release tracked results")
	}
}

func TestStack_Item(t *testing.T) {
	var stack Stack
	defer stack.Free()

	it, ok := stack.Item(Ok(item.Str("hello")), Expect(item.KindStr).Check)
	if !ok {
		t.Fatal("Item() reported no payload")
	}
	if s, _ := it.Str(); s != "hello" {
		t.Errorf("item = %v", it)
	}
}

func TestStack_Item_FailedCheck(t *testing.T) {
	var stack Stack
	defer stack.Free()

	_, ok := stack.Item(Ok(item.Int(1)), Expect(item.KindStr).Check)
	if ok {
		t.Error("Item() should report !ok after a failed check")
	}

	// The downgraded result is still tracked so Free releases it.
	if stack.Size() != 1 {
		t.Errorf("Size() = %d, want 1", stack.Size())
	}
}

func TestStack_Items(t *testing.T) {
	var stack Stack
	defer stack.Free()

	items := stack.Items(Ok(item.Int(1), item.Int(2)), Expect(item.KindInt).Check)
	if len(items) != 2 {
		t.Fatalf("Items() returned %d items", len(items))
	}

	if got := stack.Items(Err("nope"), nil); got != nil {
		t.Errorf("Items() on error result = %v, want nil", got)
	}
}

func TestStack_Pop(t *testing.T) {
	var stack Stack
	defer stack.Free()

	stack.Result(Ok(item.Str("a")), nil)
	top := stack.Result(Ok(item.Str("b")), nil)

	popped := stack.Pop()
	if popped != top {
		t.Error("Pop should return the most recent result")
	}
	if stack.Size() != 1 {
		t.Errorf("Size() = %d after Pop", stack.Size())
	}

	// Ownership transferred back; release manually.
	popped.Release()
}

func TestStack_Pop_Empty(t *testing.T) {
	var stack Stack
	if stack.Pop() != nil {
		t.Error("Pop on empty stack should return nil")
	}
}

func TestStack_NilReceiver(t *testing.T) {
	var stack *Stack

	r := Ok(item.Str("a"))
	if got := stack.Result(r, Expect(item.KindStr).Check); got != nil {
		t.Error("nil stack should return nil")
	}
	if !r.Released() {
		t.Error("nil stack should release the result")
	}

	if _, ok := stack.Item(Ok(item.Str("b")), nil); ok {
		t.Error("nil stack Item should report !ok")
	}
	if stack.Size() != 0 {
		t.Error("nil stack Size should be 0")
	}
	stack.Free() // must not panic
}
