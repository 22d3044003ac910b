package item

import (
	"strconv"

	"github.com/meldlab/meld/actor"
)

// ObjID references an object inside a document. The zero value references
// the root map.
type ObjID struct {
	counter uint64
	actor   actor.ID
}

// Root references the document's root map.
var Root = ObjID{}

// NewObjID builds an object reference from the operation that created the
// object.
func NewObjID(counter uint64, a actor.ID) ObjID {
	return ObjID{counter: counter, actor: a}
}

// Counter returns the creating operation's counter.
func (o ObjID) Counter() uint64 { return o.counter }

// Actor returns the creating operation's actor identity.
func (o ObjID) Actor() actor.ID { return o.actor }

// IsRoot reports whether the reference names the root map.
func (o ObjID) IsRoot() bool {
	return o.counter == 0 && o.actor.IsZero()
}

// Equal reports whether two references name the same object.
func (o ObjID) Equal(other ObjID) bool {
	return o.counter == other.counter && o.actor.Equal(other.actor)
}

// String renders the reference as "_root" or "counter@actor".
func (o ObjID) String() string {
	if o.IsRoot() {
		return "_root"
	}
	return strconv.FormatUint(o.counter, 10) + "@" + o.actor.String()
}
