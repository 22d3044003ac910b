// Package boundary exposes document operations through a uniform
// result-carrying call surface.
//
// Every operation on a Session returns a *result.Result that is either a
// payload of items or an error message, never both. Callers release each
// result exactly once, or park it on a result.Stack and free the whole
// stack when the call sequence ends:
//
//	s := boundary.NewSession()
//	defer s.Close()
//
//	var stack result.Stack
//	defer stack.Free()
//
//	doc, _ := stack.Item(s.Create(), result.Expect(item.KindDoc).Check)
//	h, _ := doc.Doc()
//	stack.Result(s.MapPutStr(h, item.Root, "greeting", "hello"), nil)
//
// Documents are addressed by Handle. A handle stays valid until Destroy
// or Close; operations on a stale handle report an error result rather
// than panicking.
package boundary
