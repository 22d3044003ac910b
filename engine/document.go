package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/meldlab/meld/actor"
	"github.com/meldlab/meld/errors"
	"github.com/meldlab/meld/item"
)

// Doc is a single replicated document: a tree of map and list objects plus
// the change history that produced it. Not safe for concurrent use.
type Doc struct {
	actor   actor.ID
	seq     uint64
	maxOp   uint64
	objs    map[string]*object
	changes []*Change
	applied map[item.Hash]struct{}
	heads   []item.Hash
	pending []op
}

// New creates an empty document with a random actor identity.
func New() *Doc {
	d, _ := NewWithActor(actor.Random())
	return d
}

// NewWithActor creates an empty document with the given actor identity.
func NewWithActor(id actor.ID) (*Doc, error) {
	if id.IsZero() {
		return nil, errors.InvalidActor(errors.PhaseCreate, "identity must be non-empty")
	}
	return &Doc{
		actor:   id,
		objs:    map[string]*object{item.Root.String(): newObject(ObjMap)},
		applied: make(map[item.Hash]struct{}),
	}, nil
}

// Actor returns the document's actor identity.
func (d *Doc) Actor() actor.ID {
	return d.actor
}

// SetActor replaces the actor identity used for subsequent operations.
// Last write wins; an empty identity is rejected.
func (d *Doc) SetActor(id actor.ID) error {
	if id.IsZero() {
		return errors.InvalidActor(errors.PhaseConfig, "identity must be non-empty")
	}
	d.actor = id
	return nil
}

func (d *Doc) object(phase errors.Phase, id item.ObjID, want ObjKind) (*object, error) {
	obj, ok := d.objs[id.String()]
	if !ok {
		return nil, errors.ObjNotFound(phase, id.String())
	}
	if obj.kind != want {
		return nil, errors.TypeMismatch(phase, id.String(), "", obj.kind.String(), want.String())
	}
	return obj, nil
}

func (d *Doc) nextOp() opID {
	d.maxOp++
	return opID{counter: d.maxOp, actor: d.actor}
}

// record applies a locally produced op and queues it for the next commit.
func (d *Doc) record(o op) {
	if err := d.applyOp(o); err != nil {
		// Local ops are validated before recording; a failure here is a
		// bug in the caller path.
		panic("engine: recorded op failed to apply: " + err.Error())
	}
	d.pending = append(d.pending, o)
}

// PutMap sets key in the map object obj to the scalar v.
func (d *Doc) PutMap(obj item.ObjID, key string, v Scalar) error {
	if _, err := d.object(errors.PhaseMutate, obj, ObjMap); err != nil {
		return err
	}
	if key == "" {
		return errors.InvalidKey(errors.PhaseMutate, obj.String(), key, "key must be non-empty")
	}
	d.record(op{action: opSet, obj: obj, key: key, pos: -1, val: v, id: d.nextOp()})
	return nil
}

// PutMapObject creates a nested object under key and returns its reference.
func (d *Doc) PutMapObject(obj item.ObjID, key string, kind ObjKind) (item.ObjID, error) {
	if _, err := d.object(errors.PhaseMutate, obj, ObjMap); err != nil {
		return item.ObjID{}, err
	}
	if key == "" {
		return item.ObjID{}, errors.InvalidKey(errors.PhaseMutate, obj.String(), key, "key must be non-empty")
	}
	if kind != ObjMap && kind != ObjList {
		return item.ObjID{}, errors.InvalidValue(errors.PhaseMutate, obj.String(), key, kind, "unknown object kind")
	}
	id := d.nextOp()
	d.record(op{action: opMake, obj: obj, key: key, pos: -1, objKind: kind, id: id})
	return item.NewObjID(id.counter, id.actor), nil
}

// GetMap resolves key in the map object obj. The second return is false
// when the key is absent.
func (d *Doc) GetMap(obj item.ObjID, key string) (Entry, bool, error) {
	o, err := d.object(errors.PhaseRead, obj, ObjMap)
	if err != nil {
		return Entry{}, false, err
	}
	s, ok := o.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	return s.entry(), true, nil
}

// DeleteMap removes key from the map object obj. Deleting an absent key is
// an error.
func (d *Doc) DeleteMap(obj item.ObjID, key string) error {
	o, err := d.object(errors.PhaseMutate, obj, ObjMap)
	if err != nil {
		return err
	}
	if _, ok := o.entries[key]; !ok {
		return errors.NotFound(errors.PhaseMutate, "key", key)
	}
	d.record(op{action: opDel, obj: obj, key: key, pos: -1, id: d.nextOp()})
	return nil
}

// MapKeys returns the sorted keys of the map object obj.
func (d *Doc) MapKeys(obj item.ObjID) ([]string, error) {
	o, err := d.object(errors.PhaseRead, obj, ObjMap)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(o.entries))
	for k := range o.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// InsertList inserts v at pos in the list object obj. pos may equal the
// current length to append.
func (d *Doc) InsertList(obj item.ObjID, pos int, v Scalar) error {
	o, err := d.object(errors.PhaseMutate, obj, ObjList)
	if err != nil {
		return err
	}
	if pos < 0 || pos > len(o.list) {
		return errors.OutOfBounds(errors.PhaseMutate, obj.String(), pos, len(o.list))
	}
	d.record(op{action: opInsert, obj: obj, pos: pos, val: v, id: d.nextOp()})
	return nil
}

// InsertListObject inserts a new nested object at pos and returns its
// reference.
func (d *Doc) InsertListObject(obj item.ObjID, pos int, kind ObjKind) (item.ObjID, error) {
	o, err := d.object(errors.PhaseMutate, obj, ObjList)
	if err != nil {
		return item.ObjID{}, err
	}
	if pos < 0 || pos > len(o.list) {
		return item.ObjID{}, errors.OutOfBounds(errors.PhaseMutate, obj.String(), pos, len(o.list))
	}
	if kind != ObjMap && kind != ObjList {
		return item.ObjID{}, errors.InvalidValue(errors.PhaseMutate, obj.String(), "", kind, "unknown object kind")
	}
	id := d.nextOp()
	d.record(op{action: opMake, obj: obj, pos: pos, objKind: kind, id: id})
	return item.NewObjID(id.counter, id.actor), nil
}

// PutList replaces the value at pos in the list object obj.
func (d *Doc) PutList(obj item.ObjID, pos int, v Scalar) error {
	o, err := d.object(errors.PhaseMutate, obj, ObjList)
	if err != nil {
		return err
	}
	if pos < 0 || pos >= len(o.list) {
		return errors.OutOfBounds(errors.PhaseMutate, obj.String(), pos, len(o.list))
	}
	d.record(op{action: opSet, obj: obj, pos: pos, val: v, id: d.nextOp()})
	return nil
}

// GetList resolves the value at pos in the list object obj.
func (d *Doc) GetList(obj item.ObjID, pos int) (Entry, error) {
	o, err := d.object(errors.PhaseRead, obj, ObjList)
	if err != nil {
		return Entry{}, err
	}
	if pos < 0 || pos >= len(o.list) {
		return Entry{}, errors.OutOfBounds(errors.PhaseRead, obj.String(), pos, len(o.list))
	}
	return o.list[pos].entry(), nil
}

// DeleteList removes the value at pos in the list object obj.
func (d *Doc) DeleteList(obj item.ObjID, pos int) error {
	o, err := d.object(errors.PhaseMutate, obj, ObjList)
	if err != nil {
		return err
	}
	if pos < 0 || pos >= len(o.list) {
		return errors.OutOfBounds(errors.PhaseMutate, obj.String(), pos, len(o.list))
	}
	d.record(op{action: opDel, obj: obj, pos: pos, id: d.nextOp()})
	return nil
}

// Length returns the number of entries in the object (map keys or list
// elements).
func (d *Doc) Length(obj item.ObjID) (int, error) {
	o, ok := d.objs[obj.String()]
	if !ok {
		return 0, errors.ObjNotFound(errors.PhaseRead, obj.String())
	}
	if o.kind == ObjMap {
		return len(o.entries), nil
	}
	return len(o.list), nil
}

// ObjKindOf returns the container kind of the referenced object.
func (d *Doc) ObjKindOf(obj item.ObjID) (ObjKind, error) {
	o, ok := d.objs[obj.String()]
	if !ok {
		return 0, errors.ObjNotFound(errors.PhaseRead, obj.String())
	}
	return o.kind, nil
}

// applyOp mutates the object tree. It is shared between locally recorded
// ops and ops replayed from merged or loaded changes; remote list positions
// that no longer exist are clamped or skipped rather than rejected.
func (d *Doc) applyOp(o op) error {
	target, ok := d.objs[o.obj.String()]
	if !ok {
		return errors.ObjNotFound(errors.PhaseMerge, o.obj.String())
	}
	if o.id.counter > d.maxOp {
		d.maxOp = o.id.counter
	}

	switch o.action {
	case opMake:
		child := newObject(o.objKind)
		childID := item.NewObjID(o.id.counter, o.id.actor)
		d.objs[childID.String()] = child
		s := &slot{child: childID, isChild: true, id: o.id}
		if o.isListOp() {
			pos := o.pos
			if pos > len(target.list) {
				pos = len(target.list)
			}
			d.listInsert(target, pos, s)
		} else {
			d.mapSet(target, o.key, s)
		}

	case opSet:
		s := &slot{val: o.val, id: o.id}
		if o.isListOp() {
			if o.pos >= len(target.list) {
				Logger().Debug("dropping out-of-range list set",
					zap.String("obj", o.obj.String()), zap.Int("pos", o.pos))
				return nil
			}
			existing := target.list[o.pos]
			if existing.id.isZero() || o.id.after(existing.id) {
				target.list[o.pos] = s
			}
		} else {
			d.mapSet(target, o.key, s)
		}

	case opInsert:
		pos := o.pos
		if pos > len(target.list) {
			pos = len(target.list)
		}
		d.listInsert(target, pos, &slot{val: o.val, id: o.id})

	case opDel:
		if o.isListOp() {
			if o.pos >= len(target.list) {
				Logger().Debug("dropping out-of-range list delete",
					zap.String("obj", o.obj.String()), zap.Int("pos", o.pos))
				return nil
			}
			target.list = append(target.list[:o.pos], target.list[o.pos+1:]...)
		} else {
			delete(target.entries, o.key)
		}

	default:
		return errors.Unsupported(errors.PhaseMerge, "op action "+o.action.String())
	}
	return nil
}

// mapSet applies last-writer-wins on a map slot.
func (d *Doc) mapSet(target *object, key string, s *slot) {
	existing, ok := target.entries[key]
	if !ok || s.id.after(existing.id) {
		target.entries[key] = s
	}
}

func (d *Doc) listInsert(target *object, pos int, s *slot) {
	target.list = append(target.list, nil)
	copy(target.list[pos+1:], target.list[pos:])
	target.list[pos] = s
}
