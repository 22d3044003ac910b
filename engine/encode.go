package engine

import (
	"bytes"
	"time"

	"github.com/meldlab/meld/actor"
	"github.com/meldlab/meld/engine/internal/binenc"
	"github.com/meldlab/meld/errors"
	"github.com/meldlab/meld/item"
)

// Binary format: magic, format version, change count, then each change as
// its canonical body. Change hashes are not stored; Load recomputes them
// from the bodies and the dependency links bind the history together.
var magic = []byte("MELD")

const formatVersion = 1

// Scalar type codes in the binary format.
const (
	codeNull byte = iota + 1
	codeBool
	codeInt
	codeUint
	codeF64
	codeStr
	codeBytes
	codeCounter
	codeTimestamp
)

// Save commits any pending operations and encodes the full change history.
func (d *Doc) Save() []byte {
	d.Commit("", time.Now())

	w := binenc.NewWriter()
	w.Raw(magic)
	w.Byte(formatVersion)
	w.U64(uint64(len(d.changes)))
	for _, c := range d.changes {
		w.Bytes8(encodeChangeBody(c))
	}
	return w.Bytes()
}

// Load reconstructs a document from data produced by Save. The loaded
// document is given a fresh actor identity. Change hashes are recomputed
// from the decoded bodies, so a modified change takes a new identity and
// anything depending on the original fails the dependency check.
func Load(data []byte) (*Doc, error) {
	r := binenc.NewReader(data)

	head, err := r.Raw(len(magic))
	if err != nil {
		return nil, errors.Corrupt(errors.PhaseLoad, "truncated header", err)
	}
	if !bytes.Equal(head, magic) {
		return nil, errors.Corrupt(errors.PhaseLoad, "bad magic", nil)
	}
	version, err := r.Byte()
	if err != nil {
		return nil, errors.Corrupt(errors.PhaseLoad, "truncated header", err)
	}
	if version != formatVersion {
		return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
			Detail("format version %d", version).
			Build()
	}

	count, err := r.U64()
	if err != nil {
		return nil, errors.Corrupt(errors.PhaseLoad, "truncated change count", err)
	}

	d := New()
	for i := uint64(0); i < count; i++ {
		body, err := r.Bytes8()
		if err != nil {
			return nil, errors.Corrupt(errors.PhaseLoad, "truncated change", err)
		}
		c, err := decodeChangeBody(body)
		if err != nil {
			return nil, err
		}
		if !d.depsSatisfied(c) {
			return nil, errors.Corrupt(errors.PhaseLoad, "change out of dependency order", nil)
		}
		if err := d.applyChange(c); err != nil {
			return nil, err
		}
	}
	if r.Remaining() != 0 {
		return nil, errors.Corrupt(errors.PhaseLoad, "trailing data after change history", nil)
	}
	return d, nil
}

func encodeChangeBody(c *Change) []byte {
	w := binenc.NewWriter()
	w.Bytes8(c.Actor)
	w.U64(c.Seq)
	w.U64(c.StartOp)
	w.S64(c.Time)
	w.String(c.Message)
	w.U64(uint64(len(c.Deps)))
	for _, dep := range c.Deps {
		w.Raw(dep[:])
	}
	w.U64(uint64(len(c.ops)))
	for _, o := range c.ops {
		encodeOp(w, o)
	}
	return w.Bytes()
}

func decodeChangeBody(body []byte) (*Change, error) {
	r := binenc.NewReader(body)
	corrupt := func(what string, err error) error {
		return errors.Corrupt(errors.PhaseLoad, "invalid change: "+what, err)
	}

	c := &Change{}
	var err error
	if c.Actor, err = r.Bytes8(); err != nil {
		return nil, corrupt("actor", err)
	}
	if c.Seq, err = r.U64(); err != nil {
		return nil, corrupt("seq", err)
	}
	if c.StartOp, err = r.U64(); err != nil {
		return nil, corrupt("start op", err)
	}
	if c.Time, err = r.S64(); err != nil {
		return nil, corrupt("time", err)
	}
	if c.Message, err = r.String(); err != nil {
		return nil, corrupt("message", err)
	}
	depCount, err := r.U64()
	if err != nil {
		return nil, corrupt("dep count", err)
	}
	c.Deps = make([]item.Hash, 0, depCount)
	for i := uint64(0); i < depCount; i++ {
		raw, err := r.Raw(len(item.Hash{}))
		if err != nil {
			return nil, corrupt("dep hash", err)
		}
		var h item.Hash
		copy(h[:], raw)
		c.Deps = append(c.Deps, h)
	}
	opCount, err := r.U64()
	if err != nil {
		return nil, corrupt("op count", err)
	}
	c.ops = make([]op, 0, opCount)
	for i := uint64(0); i < opCount; i++ {
		o, err := decodeOp(r)
		if err != nil {
			return nil, err
		}
		c.ops = append(c.ops, o)
	}
	if r.Remaining() != 0 {
		return nil, corrupt("trailing bytes", nil)
	}

	c.Hash = hashChange(c)
	return c, nil
}

func encodeOp(w *binenc.Writer, o op) {
	w.Byte(byte(o.action))
	encodeObjID(w, o.obj)
	w.String(o.key)
	w.S64(int64(o.pos))
	w.Byte(byte(o.objKind))
	encodeScalar(w, o.val)
	w.U64(o.id.counter)
	w.Bytes8(o.id.actor.Bytes())
}

func decodeOp(r *binenc.Reader) (op, error) {
	corrupt := func(what string, err error) (op, error) {
		return op{}, errors.Corrupt(errors.PhaseLoad, "invalid op: "+what, err)
	}

	action, err := r.Byte()
	if err != nil {
		return corrupt("action", err)
	}
	o := op{action: opAction(action)}
	if o.action < opSet || o.action > opDel {
		return corrupt("unknown action", nil)
	}
	if o.obj, err = decodeObjID(r); err != nil {
		return corrupt("object id", err)
	}
	if o.key, err = r.String(); err != nil {
		return corrupt("key", err)
	}
	pos, err := r.S64()
	if err != nil {
		return corrupt("position", err)
	}
	o.pos = int(pos)
	kind, err := r.Byte()
	if err != nil {
		return corrupt("object kind", err)
	}
	o.objKind = ObjKind(kind)
	if o.action == opMake {
		if o.objKind != ObjMap && o.objKind != ObjList {
			return corrupt("unknown object kind", nil)
		}
	} else if kind != 0 {
		return corrupt("unexpected object kind", nil)
	}
	if o.val, err = decodeScalar(r); err != nil {
		return op{}, err
	}
	if o.id.counter, err = r.U64(); err != nil {
		return corrupt("op counter", err)
	}
	raw, err := r.Bytes8()
	if err != nil {
		return corrupt("op actor", err)
	}
	if o.id.actor, err = actor.FromBytes(raw); err != nil {
		return corrupt("op actor", err)
	}
	return o, nil
}

func encodeObjID(w *binenc.Writer, id item.ObjID) {
	w.U64(id.Counter())
	w.Bytes8(id.Actor().Bytes())
}

func decodeObjID(r *binenc.Reader) (item.ObjID, error) {
	counter, err := r.U64()
	if err != nil {
		return item.ObjID{}, err
	}
	raw, err := r.Bytes8()
	if err != nil {
		return item.ObjID{}, err
	}
	if counter == 0 && len(raw) == 0 {
		return item.Root, nil
	}
	a, err := actor.FromBytes(raw)
	if err != nil {
		return item.ObjID{}, err
	}
	return item.NewObjID(counter, a), nil
}

func encodeScalar(w *binenc.Writer, s Scalar) {
	switch s.Kind() {
	case item.KindBool:
		w.Byte(codeBool)
		w.Bool(s.b)
	case item.KindInt:
		w.Byte(codeInt)
		w.S64(s.i)
	case item.KindUint:
		w.Byte(codeUint)
		w.U64(s.u)
	case item.KindF64:
		w.Byte(codeF64)
		w.F64(s.f)
	case item.KindStr:
		w.Byte(codeStr)
		w.String(s.s)
	case item.KindBytes:
		w.Byte(codeBytes)
		w.Bytes8(s.raw)
	case item.KindCounter:
		w.Byte(codeCounter)
		w.S64(s.i)
	case item.KindTimestamp:
		w.Byte(codeTimestamp)
		w.S64(s.i)
	default:
		w.Byte(codeNull)
	}
}

func decodeScalar(r *binenc.Reader) (Scalar, error) {
	corrupt := func(what string, err error) (Scalar, error) {
		return Scalar{}, errors.Corrupt(errors.PhaseLoad, "invalid scalar: "+what, err)
	}

	code, err := r.Byte()
	if err != nil {
		return corrupt("type code", err)
	}
	switch code {
	case codeNull:
		return Null(), nil
	case codeBool:
		v, err := r.Bool()
		if err != nil {
			return corrupt("bool", err)
		}
		return Bool(v), nil
	case codeInt:
		v, err := r.S64()
		if err != nil {
			return corrupt("int", err)
		}
		return Int(v), nil
	case codeUint:
		v, err := r.U64()
		if err != nil {
			return corrupt("uint", err)
		}
		return Uint(v), nil
	case codeF64:
		v, err := r.F64()
		if err != nil {
			return corrupt("float", err)
		}
		return F64(v), nil
	case codeStr:
		v, err := r.String()
		if err != nil {
			return corrupt("string", err)
		}
		return Str(v), nil
	case codeBytes:
		v, err := r.Bytes8()
		if err != nil {
			return corrupt("bytes", err)
		}
		return Bytes(v), nil
	case codeCounter:
		v, err := r.S64()
		if err != nil {
			return corrupt("counter", err)
		}
		return Counter(v), nil
	case codeTimestamp:
		v, err := r.S64()
		if err != nil {
			return corrupt("timestamp", err)
		}
		return Timestamp(v), nil
	}
	return corrupt("unknown type code", nil)
}
