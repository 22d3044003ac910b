package engine

import (
	"testing"

	"github.com/meldlab/meld/actor"
	"github.com/meldlab/meld/errors"
	"github.com/meldlab/meld/item"
)

func TestNewWithActorRejectsEmpty(t *testing.T) {
	if _, err := NewWithActor(actor.ID{}); err == nil {
		t.Fatal("expected error for empty actor identity")
	}
}

func TestSetActor(t *testing.T) {
	d := New()
	id, err := actor.FromHex("aabbcc")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if err := d.SetActor(id); err != nil {
		t.Fatalf("SetActor: %v", err)
	}
	if got := d.Actor().String(); got != "aabbcc" {
		t.Fatalf("actor = %q, want aabbcc", got)
	}
	if err := d.SetActor(actor.ID{}); err == nil {
		t.Fatal("expected error for empty actor identity")
	}
}

func TestMapPutGet(t *testing.T) {
	d := New()
	if err := d.PutMap(item.Root, "greeting", Str("hello world")); err != nil {
		t.Fatalf("PutMap: %v", err)
	}
	e, ok, err := d.GetMap(item.Root, "greeting")
	if err != nil {
		t.Fatalf("GetMap: %v", err)
	}
	if !ok {
		t.Fatal("key not found")
	}
	s, _ := e.Value.Item().Str()
	if s != "hello world" {
		t.Fatalf("value = %q, want %q", s, "hello world")
	}
}

func TestMapGetMissing(t *testing.T) {
	d := New()
	_, ok, err := d.GetMap(item.Root, "absent")
	if err != nil {
		t.Fatalf("GetMap: %v", err)
	}
	if ok {
		t.Fatal("expected absent key")
	}
}

func TestMapOverwrite(t *testing.T) {
	d := New()
	if err := d.PutMap(item.Root, "n", Int(1)); err != nil {
		t.Fatal(err)
	}
	if err := d.PutMap(item.Root, "n", Int(2)); err != nil {
		t.Fatal(err)
	}
	e, _, err := d.GetMap(item.Root, "n")
	if err != nil {
		t.Fatal(err)
	}
	n, _ := e.Value.Item().Int()
	if n != 2 {
		t.Fatalf("value = %d, want 2", n)
	}
}

func TestMapRejectsEmptyKey(t *testing.T) {
	d := New()
	err := d.PutMap(item.Root, "", Int(1))
	if err == nil {
		t.Fatal("expected error for empty key")
	}
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindInvalidKey {
		t.Fatalf("kind = %v, want invalid_key", err)
	}
}

func TestMapDelete(t *testing.T) {
	d := New()
	if err := d.PutMap(item.Root, "k", Bool(true)); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteMap(item.Root, "k"); err != nil {
		t.Fatalf("DeleteMap: %v", err)
	}
	if _, ok, _ := d.GetMap(item.Root, "k"); ok {
		t.Fatal("key still present after delete")
	}
	if err := d.DeleteMap(item.Root, "k"); err == nil {
		t.Fatal("expected error deleting absent key")
	}
}

func TestMapKeysSorted(t *testing.T) {
	d := New()
	for _, k := range []string{"zebra", "apple", "mango"} {
		if err := d.PutMap(item.Root, k, Null()); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := d.MapKeys(item.Root)
	if err != nil {
		t.Fatalf("MapKeys: %v", err)
	}
	want := []string{"apple", "mango", "zebra"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestNestedObjects(t *testing.T) {
	d := New()
	cfg, err := d.PutMapObject(item.Root, "config", ObjMap)
	if err != nil {
		t.Fatalf("PutMapObject: %v", err)
	}
	if err := d.PutMap(cfg, "debug", Bool(true)); err != nil {
		t.Fatalf("PutMap nested: %v", err)
	}
	e, ok, err := d.GetMap(item.Root, "config")
	if err != nil || !ok {
		t.Fatalf("GetMap config: ok=%v err=%v", ok, err)
	}
	if !e.IsObj {
		t.Fatal("expected object entry")
	}
	if !e.Obj.Equal(cfg) {
		t.Fatalf("object id = %v, want %v", e.Obj, cfg)
	}
	kind, err := d.ObjKindOf(cfg)
	if err != nil || kind != ObjMap {
		t.Fatalf("ObjKindOf = %v, %v", kind, err)
	}
}

func TestListOperations(t *testing.T) {
	d := New()
	lst, err := d.PutMapObject(item.Root, "items", ObjList)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range []string{"a", "b", "c"} {
		if err := d.InsertList(lst, i, Str(v)); err != nil {
			t.Fatalf("InsertList %d: %v", i, err)
		}
	}
	n, err := d.Length(lst)
	if err != nil || n != 3 {
		t.Fatalf("Length = %d, %v", n, err)
	}

	if err := d.PutList(lst, 1, Str("B")); err != nil {
		t.Fatalf("PutList: %v", err)
	}
	e, err := d.GetList(lst, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := e.Value.Item().Str(); s != "B" {
		t.Fatalf("list[1] = %q, want B", s)
	}

	if err := d.DeleteList(lst, 0); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	e, err = d.GetList(lst, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := e.Value.Item().Str(); s != "B" {
		t.Fatalf("list[0] after delete = %q, want B", s)
	}
}

func TestListOutOfBounds(t *testing.T) {
	d := New()
	lst, err := d.PutMapObject(item.Root, "items", ObjList)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		call func() error
	}{
		{"insert past end", func() error { return d.InsertList(lst, 1, Null()) }},
		{"insert negative", func() error { return d.InsertList(lst, -1, Null()) }},
		{"put empty", func() error { return d.PutList(lst, 0, Null()) }},
		{"delete empty", func() error { return d.DeleteList(lst, 0) }},
		{"get empty", func() error { _, err := d.GetList(lst, 0); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var e *errors.Error
			if !errors.As(err, &e) || e.Kind != errors.KindOutOfBounds {
				t.Fatalf("err = %v, want out_of_bounds", err)
			}
		})
	}
}

func TestTypeMismatch(t *testing.T) {
	d := New()
	lst, err := d.PutMapObject(item.Root, "items", ObjList)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.PutMap(lst, "k", Null()); err == nil {
		t.Fatal("expected type mismatch putting map key on list")
	}
	if err := d.InsertList(item.Root, 0, Null()); err == nil {
		t.Fatal("expected type mismatch inserting into root map")
	}
}

func TestUnknownObject(t *testing.T) {
	d := New()
	ghost := item.NewObjID(99, actor.Random())
	if _, _, err := d.GetMap(ghost, "k"); err == nil {
		t.Fatal("expected error for unknown object")
	}
	var e *errors.Error
	_, _, err := d.GetMap(ghost, "k")
	if !errors.As(err, &e) || e.Kind != errors.KindObjNotFound {
		t.Fatalf("err = %v, want obj_not_found", err)
	}
}
