package engine

import (
	"testing"
	"time"

	"github.com/meldlab/meld/engine/internal/binenc"
	"github.com/meldlab/meld/errors"
	"github.com/meldlab/meld/item"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	d := New()
	if err := d.PutMap(item.Root, "title", Str("notes")); err != nil {
		t.Fatal(err)
	}
	lst, err := d.PutMapObject(item.Root, "items", ObjList)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.InsertList(lst, 0, Int(42)); err != nil {
		t.Fatal(err)
	}
	d.Commit("setup", time.Unix(5000, 0))
	if err := d.PutMap(item.Root, "draft", Bool(true)); err != nil {
		t.Fatal(err)
	}

	// Save commits the pending write before encoding.
	data := d.Save()
	if len(d.pending) != 0 {
		t.Fatal("pending ops survived Save")
	}

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	e, ok, err := loaded.GetMap(item.Root, "title")
	if err != nil || !ok {
		t.Fatalf("title: ok=%v err=%v", ok, err)
	}
	if s, _ := e.Value.Item().Str(); s != "notes" {
		t.Fatalf("title = %q", s)
	}
	if _, ok, _ := loaded.GetMap(item.Root, "draft"); !ok {
		t.Fatal("pending write lost across save/load")
	}

	le, _, err := loaded.GetMap(item.Root, "items")
	if err != nil {
		t.Fatal(err)
	}
	el, err := loaded.GetList(le.Obj, 0)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if n, _ := el.Value.Item().Int(); n != 42 {
		t.Fatalf("items[0] = %d, want 42", n)
	}

	// History carries over, heads match.
	dh, lh := d.Heads(), loaded.Heads()
	if len(dh) != len(lh) {
		t.Fatalf("heads differ: %v vs %v", dh, lh)
	}
	for i := range dh {
		if dh[i] != lh[i] {
			t.Fatalf("heads differ: %v vs %v", dh, lh)
		}
	}
}

func TestSaveLoadAllScalarKinds(t *testing.T) {
	d := New()
	puts := map[string]Scalar{
		"null":  Null(),
		"bool":  Bool(true),
		"int":   Int(-7),
		"uint":  Uint(7),
		"f64":   F64(3.5),
		"str":   Str("s"),
		"bytes": Bytes([]byte{1, 2, 3}),
		"ctr":   Counter(10),
		"ts":    Timestamp(1700000000),
	}
	for k, v := range puts {
		if err := d.PutMap(item.Root, k, v); err != nil {
			t.Fatal(err)
		}
	}

	loaded, err := Load(d.Save())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for k, want := range puts {
		e, ok, err := loaded.GetMap(item.Root, k)
		if err != nil || !ok {
			t.Fatalf("%s: ok=%v err=%v", k, ok, err)
		}
		if !e.Value.Equal(want) {
			t.Fatalf("%s = %v, want %v", k, e.Value, want)
		}
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	d := New()
	if err := d.PutMap(item.Root, "k", Int(1)); err != nil {
		t.Fatal(err)
	}
	good := d.Save()

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("NOPE\x01\x00")},
		{"truncated", good[:len(good)-3]},
		{"trailing garbage", append(append([]byte{}, good...), 0xff)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.data)
			if err == nil {
				t.Fatal("expected error")
			}
			var e *errors.Error
			if !errors.As(err, &e) {
				t.Fatalf("err = %T, want *errors.Error", err)
			}
			if e.Phase != errors.PhaseLoad {
				t.Fatalf("phase = %v, want load", e.Phase)
			}
		})
	}
}

func TestLoadRejectsUnknownObjectKind(t *testing.T) {
	// Hand-encode a change whose make op carries an object kind the
	// format does not define. A follow-up op against that child would
	// otherwise hit a container with no storage.
	actorBytes := []byte{0xaa}
	body := binenc.NewWriter()
	body.Bytes8(actorBytes) // actor
	body.U64(1)             // seq
	body.U64(1)             // start op
	body.S64(0)             // time
	body.String("")         // message
	body.U64(0)             // deps
	body.U64(1)             // ops
	body.Byte(byte(opMake)) // action
	body.U64(0)             // obj counter (root)
	body.Bytes8(nil)        // obj actor (root)
	body.String("child")    // key
	body.S64(-1)            // pos
	body.Byte(9)            // object kind: not map, not list
	body.Byte(1)            // scalar: null
	body.U64(1)             // op counter
	body.Bytes8(actorBytes) // op actor

	blob := binenc.NewWriter()
	blob.Raw([]byte("MELD"))
	blob.Byte(1)
	blob.U64(1)
	blob.Bytes8(body.Bytes())

	_, err := Load(blob.Bytes())
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindCorrupt {
		t.Fatalf("err = %v, want corrupt", err)
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	d := New()
	if err := d.PutMap(item.Root, "k", Int(1)); err != nil {
		t.Fatal(err)
	}
	data := d.Save()
	data[len(magic)] = 99

	_, err := Load(data)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindUnsupported {
		t.Fatalf("err = %v, want unsupported", err)
	}
}

func TestLoadedDocGetsFreshActor(t *testing.T) {
	d := New()
	if err := d.PutMap(item.Root, "k", Int(1)); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(d.Save())
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Actor().Equal(d.Actor()) {
		t.Fatal("loaded document reuses source actor identity")
	}
	// The loaded copy is writable under its own identity.
	if err := loaded.PutMap(item.Root, "k2", Int(2)); err != nil {
		t.Fatalf("write after load: %v", err)
	}
}
