package boundary

import (
	"sort"
	"time"

	"github.com/meldlab/meld/engine"
	"github.com/meldlab/meld/errors"
	"github.com/meldlab/meld/item"
	"github.com/meldlab/meld/result"
)

// scalarOf converts a boundary item into a storable value.
func scalarOf(phase errors.Phase, obj item.ObjID, key string, it item.Item) (engine.Scalar, *errors.Error) {
	v, ok := engine.FromItem(it)
	if !ok {
		return engine.Scalar{}, errors.InvalidValue(phase, obj.String(), key, it.Kind().String(),
			"value is not a storable scalar")
	}
	return v, nil
}

// MapPut sets key in the map object obj to the scalar carried by it.
func (s *Session) MapPut(h Handle, obj item.ObjID, key string, it item.Item) *result.Result {
	d, derr := s.doc(errors.PhaseMutate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	v, verr := scalarOf(errors.PhaseMutate, obj, key, it)
	if verr != nil {
		return result.FromError(verr)
	}
	if err := d.PutMap(obj, key, v); err != nil {
		return result.FromError(err)
	}
	return result.Void()
}

// Typed wrappers over MapPut.

func (s *Session) MapPutNull(h Handle, obj item.ObjID, key string) *result.Result {
	return s.MapPut(h, obj, key, item.Null())
}

func (s *Session) MapPutBool(h Handle, obj item.ObjID, key string, v bool) *result.Result {
	return s.MapPut(h, obj, key, item.Bool(v))
}

func (s *Session) MapPutInt(h Handle, obj item.ObjID, key string, v int64) *result.Result {
	return s.MapPut(h, obj, key, item.Int(v))
}

func (s *Session) MapPutUint(h Handle, obj item.ObjID, key string, v uint64) *result.Result {
	return s.MapPut(h, obj, key, item.Uint(v))
}

func (s *Session) MapPutF64(h Handle, obj item.ObjID, key string, v float64) *result.Result {
	return s.MapPut(h, obj, key, item.F64(v))
}

func (s *Session) MapPutStr(h Handle, obj item.ObjID, key, v string) *result.Result {
	return s.MapPut(h, obj, key, item.Str(v))
}

func (s *Session) MapPutBytes(h Handle, obj item.ObjID, key string, v []byte) *result.Result {
	return s.MapPut(h, obj, key, item.Bytes(v))
}

func (s *Session) MapPutCounter(h Handle, obj item.ObjID, key string, v int64) *result.Result {
	return s.MapPut(h, obj, key, item.Counter(v))
}

func (s *Session) MapPutTimestamp(h Handle, obj item.ObjID, key string, v int64) *result.Result {
	return s.MapPut(h, obj, key, item.Timestamp(v))
}

// MapPutObject creates a nested object under key and yields its reference.
func (s *Session) MapPutObject(h Handle, obj item.ObjID, key string, kind engine.ObjKind) *result.Result {
	d, derr := s.doc(errors.PhaseMutate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	id, err := d.PutMapObject(obj, key, kind)
	if err != nil {
		return result.FromError(err)
	}
	return result.Ok(item.Obj(id))
}

// MapGet yields the value under key, or an empty payload when the key is
// absent.
func (s *Session) MapGet(h Handle, obj item.ObjID, key string) *result.Result {
	d, derr := s.doc(errors.PhaseRead, h)
	if derr != nil {
		return result.FromError(derr)
	}
	e, ok, err := d.GetMap(obj, key)
	if err != nil {
		return result.FromError(err)
	}
	if !ok {
		return result.Void()
	}
	return result.Ok(entryItem(e))
}

// MapDelete removes key from the map object obj.
func (s *Session) MapDelete(h Handle, obj item.ObjID, key string) *result.Result {
	d, derr := s.doc(errors.PhaseMutate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	if err := d.DeleteMap(obj, key); err != nil {
		return result.FromError(err)
	}
	return result.Void()
}

// MapKeys yields the sorted keys of the map object obj, one string item
// per key.
func (s *Session) MapKeys(h Handle, obj item.ObjID) *result.Result {
	d, derr := s.doc(errors.PhaseRead, h)
	if derr != nil {
		return result.FromError(derr)
	}
	keys, err := d.MapKeys(obj)
	if err != nil {
		return result.FromError(err)
	}
	items := make([]item.Item, len(keys))
	for i, k := range keys {
		items[i] = item.Str(k)
	}
	return result.Ok(items...)
}

// MapPutMany sets several keys in one call, aggregating the per-key
// results. The first failing key reports; later keys are still attempted.
func (s *Session) MapPutMany(h Handle, obj item.ObjID, entries map[string]item.Item) *result.Result {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]*result.Result, len(keys))
	for i, k := range keys {
		results[i] = s.MapPut(h, obj, k, entries[k])
	}
	combined, err := result.Combine(results...)
	if err != nil {
		return result.FromError(err)
	}
	return combined
}

// ListInsert inserts the scalar carried by it at pos in the list object
// obj.
func (s *Session) ListInsert(h Handle, obj item.ObjID, pos int, it item.Item) *result.Result {
	d, derr := s.doc(errors.PhaseMutate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	v, verr := scalarOf(errors.PhaseMutate, obj, "", it)
	if verr != nil {
		return result.FromError(verr)
	}
	if err := d.InsertList(obj, pos, v); err != nil {
		return result.FromError(err)
	}
	return result.Void()
}

// ListInsertObject inserts a new nested object at pos and yields its
// reference.
func (s *Session) ListInsertObject(h Handle, obj item.ObjID, pos int, kind engine.ObjKind) *result.Result {
	d, derr := s.doc(errors.PhaseMutate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	id, err := d.InsertListObject(obj, pos, kind)
	if err != nil {
		return result.FromError(err)
	}
	return result.Ok(item.Obj(id))
}

// ListPut replaces the value at pos in the list object obj.
func (s *Session) ListPut(h Handle, obj item.ObjID, pos int, it item.Item) *result.Result {
	d, derr := s.doc(errors.PhaseMutate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	v, verr := scalarOf(errors.PhaseMutate, obj, "", it)
	if verr != nil {
		return result.FromError(verr)
	}
	if err := d.PutList(obj, pos, v); err != nil {
		return result.FromError(err)
	}
	return result.Void()
}

// ListGet yields the value at pos in the list object obj.
func (s *Session) ListGet(h Handle, obj item.ObjID, pos int) *result.Result {
	d, derr := s.doc(errors.PhaseRead, h)
	if derr != nil {
		return result.FromError(derr)
	}
	e, err := d.GetList(obj, pos)
	if err != nil {
		return result.FromError(err)
	}
	return result.Ok(entryItem(e))
}

// ListDelete removes the value at pos in the list object obj.
func (s *Session) ListDelete(h Handle, obj item.ObjID, pos int) *result.Result {
	d, derr := s.doc(errors.PhaseMutate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	if err := d.DeleteList(obj, pos); err != nil {
		return result.FromError(err)
	}
	return result.Void()
}

// Length yields the number of entries in the object behind obj.
func (s *Session) Length(h Handle, obj item.ObjID) *result.Result {
	d, derr := s.doc(errors.PhaseRead, h)
	if derr != nil {
		return result.FromError(derr)
	}
	n, err := d.Length(obj)
	if err != nil {
		return result.FromError(err)
	}
	return result.Ok(item.Uint(uint64(n)))
}

// Commit groups pending operations into a change and yields its hash, or
// an empty payload when there was nothing to commit.
func (s *Session) Commit(h Handle, message string, at time.Time) *result.Result {
	d, derr := s.doc(errors.PhaseCommit, h)
	if derr != nil {
		return result.FromError(derr)
	}
	c := d.Commit(message, at)
	if c == nil {
		return result.Void()
	}
	return result.Ok(item.ChangeHash(c.Hash))
}

// Heads yields the document's current heads, one change-hash item each.
func (s *Session) Heads(h Handle) *result.Result {
	d, derr := s.doc(errors.PhaseRead, h)
	if derr != nil {
		return result.FromError(derr)
	}
	return hashItems(d.Heads())
}

// Changes yields the hashes of the committed history in application
// order.
func (s *Session) Changes(h Handle) *result.Result {
	d, derr := s.doc(errors.PhaseRead, h)
	if derr != nil {
		return result.FromError(derr)
	}
	changes := d.Changes()
	hashes := make([]item.Hash, len(changes))
	for i, c := range changes {
		hashes[i] = c.Hash
	}
	return hashItems(hashes)
}

// Save yields the binary encoding of the document, committing pending
// operations first.
func (s *Session) Save(h Handle) *result.Result {
	d, derr := s.doc(errors.PhaseSave, h)
	if derr != nil {
		return result.FromError(derr)
	}
	return result.Ok(item.Bytes(d.Save()))
}

// Load opens a document from data produced by Save and yields its handle.
func (s *Session) Load(data []byte) *result.Result {
	if s.isClosed() {
		return result.FromError(errors.Closed(errors.PhaseLoad, "session"))
	}
	d, err := engine.Load(data)
	if err != nil {
		return result.FromError(err)
	}
	return s.admit(errors.PhaseLoad, d)
}

// Merge applies the changes of src that dst has not seen, then yields
// dst's resulting heads.
func (s *Session) Merge(dst, src Handle) *result.Result {
	d, derr := s.doc(errors.PhaseMerge, dst)
	if derr != nil {
		return result.FromError(derr)
	}
	o, oerr := s.doc(errors.PhaseMerge, src)
	if oerr != nil {
		return result.FromError(oerr)
	}
	if _, err := d.Merge(o); err != nil {
		return result.FromError(err)
	}
	return hashItems(d.Heads())
}

// Fork opens an independent copy of the document under a fresh actor
// identity and yields the new handle.
func (s *Session) Fork(h Handle) *result.Result {
	d, derr := s.doc(errors.PhaseCreate, h)
	if derr != nil {
		return result.FromError(derr)
	}
	f, err := d.Fork()
	if err != nil {
		return result.FromError(err)
	}
	return s.admit(errors.PhaseCreate, f)
}

func entryItem(e engine.Entry) item.Item {
	if e.IsObj {
		return item.Obj(e.Obj)
	}
	return e.Value.Item()
}

func hashItems(hs []item.Hash) *result.Result {
	items := make([]item.Item, len(hs))
	for i, h := range hs {
		items[i] = item.ChangeHash(h)
	}
	return result.Ok(items...)
}
