package result

import (
	"fmt"

	"github.com/meldlab/meld/item"
)

// Status is the outcome tag of a boundary call.
type Status uint8

const (
	// StatusOK means the call succeeded and the payload is well-formed.
	StatusOK Status = iota
	// StatusError means the engine rejected the operation; an error
	// message is attached.
	StatusError
	// StatusInvalid means the boundary contract was violated: the payload
	// did not match what the call site declared it accepts. This is a
	// binding bug, not a document-level failure.
	StatusInvalid
)

var statusNames = [...]string{
	StatusOK:      "ok",
	StatusError:   "error",
	StatusInvalid: "invalid",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is the tagged container every boundary call returns. It owns its
// payload; the holder must Release it exactly once unless it is consumed by
// Combine.
type Result struct {
	items    []item.Item
	msg      string
	status   Status
	released bool
}

// Ok builds a success result owning the given payload in order.
func Ok(items ...item.Item) *Result {
	return &Result{items: items}
}

// Void builds an empty success result.
func Void() *Result {
	return &Result{}
}

// Err builds an error result carrying the given message.
func Err(format string, args ...any) *Result {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Result{status: StatusError, msg: msg}
}

// FromError builds an error result from a Go error.
func FromError(err error) *Result {
	return &Result{status: StatusError, msg: err.Error()}
}

func (r *Result) guard() {
	if r.released {
		panic("result: use after release")
	}
}

// Status returns the outcome tag. Callable any number of times while the
// result is alive.
func (r *Result) Status() Status {
	r.guard()
	return r.status
}

// ErrorMessage returns the stored diagnostic text. It is defined only for
// StatusError results and returns "" otherwise.
func (r *Result) ErrorMessage() string {
	r.guard()
	if r.status != StatusError {
		return ""
	}
	return r.msg
}

// Diagnostic returns the attached message for error and invalid results
// alike. Empty for StatusOK.
func (r *Result) Diagnostic() string {
	r.guard()
	return r.msg
}

// Items returns the payload sequence. Valid only while the result is alive;
// the slice is owned by the result.
func (r *Result) Items() []item.Item {
	r.guard()
	return r.items
}

// Item returns the first payload item, if any.
func (r *Result) Item() (item.Item, bool) {
	r.guard()
	if len(r.items) == 0 {
		return item.Item{}, false
	}
	return r.items[0], true
}

// Size returns the number of payload items.
func (r *Result) Size() int {
	r.guard()
	return len(r.items)
}

// Release frees the result's payload. Releasing twice, or releasing a result
// already consumed by Combine, is a contract violation and panics.
func (r *Result) Release() {
	if r.released {
		panic("result: double release")
	}
	r.released = true
	r.items = nil
	r.msg = ""
}

// Released reports whether the result has been released or consumed.
func (r *Result) Released() bool {
	return r.released
}

// invalidate downgrades the result to StatusInvalid, dropping any payload
// and attaching a diagnostic.
func (r *Result) invalidate(msg string) {
	r.guard()
	r.status = StatusInvalid
	r.items = nil
	r.msg = msg
}

// String renders the result for diagnostics.
func (r *Result) String() string {
	if r.released {
		return "result(released)"
	}
	switch r.status {
	case StatusError:
		return fmt.Sprintf("result(error: %s)", r.msg)
	case StatusInvalid:
		return fmt.Sprintf("result(invalid: %s)", r.msg)
	}
	return fmt.Sprintf("result(ok, %d items)", len(r.items))
}
