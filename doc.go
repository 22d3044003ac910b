// Package meld is a conflict-free replicated document library with a
// uniform result-carrying call surface.
//
// A document is a tree of map and list objects holding scalar values.
// Replicas edit independently and merge deterministically: concurrent
// writes to the same slot resolve last-writer-wins, and merging the same
// histories in any order converges to the same state.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	meld/            Root package with convenience re-exports
//	├── boundary/    Session and handle surface; every call returns a Result
//	├── engine/      Document tree, operation log, change history, codec
//	├── result/      Tagged results, aggregation, expectations, stacks
//	├── item/        Value descriptors crossing the boundary
//	├── actor/       Replica identities
//	├── errors/      Structured error types
//	├── store/       Pebble-backed persistent document store
//	└── cmd/meld/    Command line and interactive TUI front end
//
// # Quick Start
//
// Open a session, edit a document, read it back:
//
//	s := meld.NewSession()
//	defer s.Close()
//
//	var stack result.Stack
//	defer stack.Free()
//
//	it, _ := stack.Item(s.Create(), result.Expect(item.KindDoc).Check)
//	handle, _ := it.Doc()
//	h := boundary.Handle(handle)
//
//	stack.Result(s.MapPutStr(h, item.Root, "greeting", "hello"), nil)
//	got, _ := stack.Item(s.MapGet(h, item.Root, "greeting"),
//		result.Expect(item.KindStr).Check)
//
// Every boundary call yields a Result that is either a payload or an
// error, never both. Park results on a Stack and Free it once, or Release
// each result exactly once.
package meld
