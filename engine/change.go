package engine

import (
	"bytes"
	"sort"
	"time"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/meldlab/meld/errors"
	"github.com/meldlab/meld/item"
)

// Change is a committed group of operations. Deps lists the heads the
// change was built on; Hash covers every other field.
type Change struct {
	Actor   []byte
	Seq     uint64
	StartOp uint64
	Time    int64
	Message string
	Deps    []item.Hash
	Hash    item.Hash
	ops     []op
}

// Ops returns the number of operations in the change.
func (c *Change) Ops() int {
	return len(c.ops)
}

// hashChange computes the change hash over its canonical encoding.
func hashChange(c *Change) item.Hash {
	return item.Hash(blake3.Sum256(encodeChangeBody(c)))
}

// Commit groups the pending operations into a change and appends it to the
// history. It returns nil when there is nothing to commit.
func (d *Doc) Commit(message string, at time.Time) *Change {
	if len(d.pending) == 0 {
		return nil
	}
	d.seq++
	c := &Change{
		Actor:   d.actor.Bytes(),
		Seq:     d.seq,
		StartOp: d.pending[0].id.counter,
		Time:    at.Unix(),
		Message: message,
		Deps:    sortedHashes(d.heads),
		ops:     d.pending,
	}
	c.Hash = hashChange(c)
	d.pending = nil
	d.appendChange(c)
	Logger().Debug("committed change",
		zap.String("hash", c.Hash.String()),
		zap.Int("ops", len(c.ops)))
	return c
}

// appendChange records an already applied change and advances the heads:
// the change's deps stop being heads and its own hash becomes one.
func (d *Doc) appendChange(c *Change) {
	d.applied[c.Hash] = struct{}{}
	d.changes = append(d.changes, c)

	dep := make(map[item.Hash]struct{}, len(c.Deps))
	for _, h := range c.Deps {
		dep[h] = struct{}{}
	}
	heads := d.heads[:0]
	for _, h := range d.heads {
		if _, covered := dep[h]; !covered {
			heads = append(heads, h)
		}
	}
	d.heads = append(heads, c.Hash)
}

// Heads returns the hashes of the changes no other change depends on.
func (d *Doc) Heads() []item.Hash {
	return sortedHashes(d.heads)
}

// Changes returns the committed history in application order.
func (d *Doc) Changes() []*Change {
	out := make([]*Change, len(d.changes))
	copy(out, d.changes)
	return out
}

// Merge applies the changes of other that d has not seen, committing
// pending operations on both sides first. It returns the number of
// changes applied.
func (d *Doc) Merge(other *Doc) (int, error) {
	if other == nil {
		return 0, errors.InvalidInput(errors.PhaseMerge, "source document is nil")
	}
	d.Commit("", time.Now())
	other.Commit("", time.Now())

	applied := 0
	for {
		progress := false
		for _, c := range other.changes {
			if _, seen := d.applied[c.Hash]; seen {
				continue
			}
			if !d.depsSatisfied(c) {
				continue
			}
			if err := d.applyChange(c); err != nil {
				return applied, err
			}
			applied++
			progress = true
		}
		if !progress {
			break
		}
	}
	for _, c := range other.changes {
		if _, seen := d.applied[c.Hash]; !seen {
			return applied, errors.New(errors.PhaseMerge, errors.KindInvalidData).
				Detail("change %s has unresolved dependencies", c.Hash).
				Build()
		}
	}
	return applied, nil
}

// Fork commits pending operations and returns an independent copy of the
// document under a fresh actor identity.
func (d *Doc) Fork() (*Doc, error) {
	d.Commit("", time.Now())
	n := New()
	if _, err := n.Merge(d); err != nil {
		return nil, err
	}
	return n, nil
}

func (d *Doc) depsSatisfied(c *Change) bool {
	for _, h := range c.Deps {
		if _, ok := d.applied[h]; !ok {
			return false
		}
	}
	return true
}

// applyChange replays a foreign change into the object tree and history.
// The change is checked as a whole first so a rejected change leaves the
// document untouched.
func (d *Doc) applyChange(c *Change) error {
	if err := d.checkChange(c); err != nil {
		return err
	}
	for _, o := range c.ops {
		if err := d.applyOp(o); err != nil {
			return err
		}
	}
	d.appendChange(c)
	return nil
}

// checkChange verifies every op targets a known object, counting objects
// the change itself creates, before anything mutates.
func (d *Doc) checkChange(c *Change) error {
	created := make(map[string]struct{})
	for _, o := range c.ops {
		if o.action < opSet || o.action > opDel {
			return errors.Unsupported(errors.PhaseMerge, "op action "+o.action.String())
		}
		key := o.obj.String()
		if _, known := d.objs[key]; !known {
			if _, made := created[key]; !made {
				return errors.ObjNotFound(errors.PhaseMerge, key)
			}
		}
		if o.action == opMake {
			created[item.NewObjID(o.id.counter, o.id.actor).String()] = struct{}{}
		}
	}
	return nil
}

func sortedHashes(hs []item.Hash) []item.Hash {
	out := make([]item.Hash, len(hs))
	copy(out, hs)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
