package engine

import (
	"github.com/meldlab/meld/actor"
	"github.com/meldlab/meld/item"
)

// opID orders operations across replicas: higher counter wins, ties broken
// by actor identity.
type opID struct {
	counter uint64
	actor   actor.ID
}

func (o opID) isZero() bool {
	return o.counter == 0 && o.actor.IsZero()
}

// after reports whether o supersedes p under last-writer-wins.
func (o opID) after(p opID) bool {
	if o.counter != p.counter {
		return o.counter > p.counter
	}
	return o.actor.Cmp(p.actor) > 0
}

type opAction uint8

const (
	opSet opAction = iota + 1
	opMake
	opInsert
	opDel
)

var opActionNames = [...]string{
	opSet:    "set",
	opMake:   "make",
	opInsert: "insert",
	opDel:    "del",
}

func (a opAction) String() string {
	if int(a) < len(opActionNames) && opActionNames[a] != "" {
		return opActionNames[a]
	}
	return "unknown"
}

// op is one recorded mutation. Map operations address by key, list
// operations by position (pos >= 0).
type op struct {
	action  opAction
	obj     item.ObjID
	key     string
	pos     int
	objKind ObjKind
	val     Scalar
	id      opID
}

func (o op) isListOp() bool {
	return o.pos >= 0
}
