// Package result implements the result protocol every meld boundary call
// flows through: the tagged success/error container, the aggregation of
// multi-step constructions, and the call-scoped bookkeeping that validates
// and releases results produced during nested calls.
//
// # Result
//
// A Result owns either an ordered payload of value descriptors (StatusOK) or
// a single error message (StatusError), never both. Whoever holds the
// reference owns it and must release it exactly once:
//
//	r := session.MapPutStr(doc, item.Root, "title", "hello")
//	defer r.Release()
//	if r.Status() != result.StatusOK { ... }
//
// Releasing twice, or touching a result after release, is a contract
// violation and panics. Results consumed by Combine must not be released
// again by the caller.
//
// # Aggregation
//
// Combine folds several results into one, left to right, first-error-wins.
// Every input is consumed whether or not the fold short-circuits:
//
//	agg, err := result.Combine(r1, r2, r3)
//	if err != nil {
//	    // first error in argument order; all payloads already released
//	}
//	defer agg.Release()
//
// # Expectations and stacks
//
// An Expectation is created immediately before a result-producing call and
// records which payload kinds the call site accepts, plus the site itself.
// A kind the site did not declare downgrades the result to StatusInvalid,
// a binding bug, reported distinctly from engine-level errors:
//
//	var stack result.Stack
//	defer stack.Free()
//
//	it, ok := stack.Item(session.Create(), result.Expect(item.KindDoc).Check)
//
// The Stack tracks every result produced in a call frame and releases them
// together on every exit path.
package result
