package result

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/meldlab/meld/item"
)

// Check examines a freshly produced result and returns it, possibly
// downgraded. Expectation.Check is the usual implementation.
type Check func(*Result) *Result

// Expectation records which payload kinds a call site accepts and where that
// call site is, for diagnostics. It is created immediately before the
// result-producing call and never outlives the call frame.
type Expectation struct {
	kinds  item.Kind
	origin string
}

// Expect captures the accepted kind set and the caller's source location.
// Use item.KindVoid for calls whose payload must be empty.
func Expect(kinds item.Kind) Expectation {
	origin := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		origin = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return Expectation{kinds: kinds, origin: origin}
}

// Kinds returns the accepted kind set.
func (e Expectation) Kinds() item.Kind { return e.kinds }

// Origin returns the recorded call site.
func (e Expectation) Origin() string { return e.origin }

// Check validates the result's payload against the expectation. Error and
// invalid results pass through untouched. An OK payload containing a kind
// the call site did not declare, or a non-empty payload where KindVoid was
// expected, downgrades the result to StatusInvalid with a diagnostic that
// names the origin.
func (e Expectation) Check(r *Result) *Result {
	if r == nil {
		return nil
	}
	if r.Status() != StatusOK {
		return r
	}

	if len(r.items) == 0 {
		if e.kinds&item.KindVoid == 0 {
			r.invalidate(fmt.Sprintf("empty payload where %s expected at %s", e.kinds, e.origin))
		}
		return r
	}

	for i, it := range r.items {
		if e.kinds&it.Kind() == 0 {
			r.invalidate(fmt.Sprintf("payload[%d] has kind %s, %s accepts %s",
				i, it.Kind(), e.origin, e.kinds))
			return r
		}
	}
	return r
}
