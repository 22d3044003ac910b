package boundary

import (
	"sync"

	"github.com/meldlab/meld/engine"
)

// Handle identifies an open document within a session. Handle 0 is never
// issued.
type Handle uint32

// docTable maps handles to documents. Freed handles are recycled.
type docTable struct {
	entries  []docEntry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type docEntry struct {
	doc   *engine.Doc
	valid bool
}

func newDocTable() *docTable {
	return &docTable{
		entries:  make([]docEntry, 0, 8),
		freeList: make([]Handle, 0, 4),
	}
}

// add stores a document and returns its handle.
func (t *docTable) add(d *engine.Doc) (Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, false
	}

	e := docEntry{doc: d, valid: true}
	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
		return h, true
	}
	t.entries = append(t.entries, e)
	return Handle(len(t.entries)), true
}

// get retrieves a document by handle.
func (t *docTable) get(h Handle) (*engine.Doc, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(h) - 1
	if t.closed || idx >= len(t.entries) {
		return nil, false
	}
	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.doc, true
}

// drop removes a document and recycles its handle.
func (t *docTable) drop(h Handle) bool {
	if h == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(h) - 1
	if t.closed || idx >= len(t.entries) {
		return false
	}
	e := &t.entries[idx]
	if !e.valid {
		return false
	}
	e.valid = false
	e.doc = nil
	t.freeList = append(t.freeList, h)
	return true
}

// close invalidates every handle.
func (t *docTable) close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	for i := range t.entries {
		t.entries[i].valid = false
		t.entries[i].doc = nil
	}
	t.entries = nil
	t.freeList = nil
}
