// Package actor provides replica identities for meld documents.
//
// An actor identity is an opaque byte string that tags every operation a
// replica records, so concurrent edits can be attributed and ordered
// deterministically. Identities are usually random:
//
//	id := actor.Random()
//
// or parsed from their hexadecimal form:
//
//	id, err := actor.FromHex("aabbcc")
//
// An identity must be non-empty; the zero ID is only valid as a sentinel
// (for example inside the root object reference).
package actor
