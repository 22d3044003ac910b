// Package item provides tagged value descriptors for the meld boundary.
//
// Every value that crosses the boundary between a caller and the document
// engine is wrapped in an Item: a fixed-shape, type-tagged descriptor that
// can be inspected without knowing the engine's internal representation.
//
// # Kinds
//
// Kind is a bit-set, not a plain enum. A single Item always carries exactly
// one kind, but call sites declare the set of kinds they are willing to
// accept by OR-ing flags together:
//
//	accepted := item.KindStr | item.KindBytes
//	if accepted.Contains(it.Kind()) { ... }
//
// KindVoid is special: it tags no item, it marks a call site that expects an
// empty payload.
//
// # Accessors
//
// Typed accessors return (value, ok) and never panic on a kind mismatch:
//
//	if s, ok := it.Str(); ok {
//	    fmt.Println(s)
//	}
package item
