package engine

import (
	"github.com/meldlab/meld/item"
)

// ObjKind tags the shape of a container object.
type ObjKind uint8

const (
	ObjMap ObjKind = iota + 1
	ObjList
)

func (k ObjKind) String() string {
	switch k {
	case ObjMap:
		return "map"
	case ObjList:
		return "list"
	}
	return "unknown"
}

// Entry is the resolved value of one map key or list position: either a
// scalar or a reference to a nested object.
type Entry struct {
	Value Scalar
	Obj   item.ObjID
	IsObj bool
}

// slot holds one stored value together with the operation that last wrote
// it, for last-writer-wins resolution.
type slot struct {
	val     Scalar
	child   item.ObjID
	isChild bool
	id      opID
}

func (s *slot) entry() Entry {
	if s.isChild {
		return Entry{Obj: s.child, IsObj: true}
	}
	return Entry{Value: s.val}
}

// object is one container in the document tree.
type object struct {
	kind    ObjKind
	entries map[string]*slot
	list    []*slot
}

func newObject(kind ObjKind) *object {
	o := &object{kind: kind}
	if kind == ObjMap {
		o.entries = make(map[string]*slot)
	}
	return o
}
