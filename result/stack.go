package result

import (
	"github.com/meldlab/meld/item"
)

// Stack tracks the results produced during one call frame so they can be
// validated on arrival and released together on every exit path. The zero
// value is ready to use:
//
//	var stack result.Stack
//	defer stack.Free()
//
// A nil *Stack is also usable: it validates the result, releases it
// immediately and keeps nothing, for calls whose payload is not needed
// past the check.
//
// A Stack is not safe for concurrent use; each call frame owns its own.
type Stack struct {
	results []*Result
}

// Result pushes r onto the stack, runs the check, and returns the (possibly
// downgraded) result. The stack owns r afterwards. With a nil receiver the
// result is checked, released and nil is returned.
func (s *Stack) Result(r *Result, check Check) *Result {
	if check != nil {
		r = check(r)
	}
	if s == nil {
		if r != nil {
			r.Release()
		}
		return nil
	}
	if r != nil {
		s.results = append(s.results, r)
	}
	return r
}

// Item pushes and checks r, then returns its first payload item. The second
// return is false when the result failed the check, carries no payload, or
// the receiver is nil.
func (s *Stack) Item(r *Result, check Check) (item.Item, bool) {
	items := s.Items(r, check)
	if len(items) == 0 {
		return item.Item{}, false
	}
	return items[0], true
}

// Items pushes and checks r, then returns its payload. Nil when the result
// failed the check or the receiver is nil.
func (s *Stack) Items(r *Result, check Check) []item.Item {
	r = s.Result(r, check)
	if r == nil || r.Status() != StatusOK {
		return nil
	}
	return r.Items()
}

// Pop removes and returns the most recently pushed result, transferring
// ownership back to the caller. Returns nil on an empty or nil stack.
func (s *Stack) Pop() *Result {
	if s == nil || len(s.results) == 0 {
		return nil
	}
	r := s.results[len(s.results)-1]
	s.results = s.results[:len(s.results)-1]
	return r
}

// Size returns the number of tracked results.
func (s *Stack) Size() int {
	if s == nil {
		return 0
	}
	return len(s.results)
}

// Free releases every tracked result and empties the stack.
func (s *Stack) Free() {
	if s == nil {
		return
	}
	for _, r := range s.results {
		r.Release()
	}
	s.results = nil
}
