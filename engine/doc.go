// Package engine implements the meld document engine: the conflict-free
// replicated document that the boundary package drives.
//
// A Doc is a tree of map and list objects rooted at item.Root. Every
// mutation is recorded as an operation tagged with an operation ID
// (counter, actor); committed operations are folded into hashed changes
// that form the document's causal history.
//
// # Conflict resolution
//
// Concurrent writes to the same map key or list slot resolve
// last-writer-wins by operation ID: higher counter wins, ties broken by
// actor identity. Merging applies the other document's unseen changes in
// their recorded order. List merging is positional, not a sequence CRDT.
//
// # Lifecycle
//
//	doc := engine.New()                  // random actor
//	doc.PutMap(item.Root, "k", engine.Str("v"))
//	change := doc.Commit("initial", time.Now())
//	data := doc.Save()
//	replica, err := engine.Load(data)
//
// A Doc is not safe for concurrent use; callers serialize access per
// document.
package engine
