package silo

import "testing"

func TestEntityManagerAndId(t *testing.T) {
	em := NewManager()
	e := em.NewEntity()
	if e.Manager() != em {
		t.Fatal("Manager() did not return the owning EntityManager")
	}
	if e.Id().IsNull() {
		t.Fatal("a freshly created entity's Id should not be NULL")
	}
}

func TestHandleConvenienceFunctions(t *testing.T) {
	em := NewManager()
	h := mustRegister[tagComp](t, em)
	e := em.NewEntity()

	AssignTo(e, h, tagComp{V: 3})
	if !HasIn(e, h) {
		t.Fatal("HasIn() = false after AssignTo")
	}
	got := GetFrom(e, h)
	if got == nil || got.V != 3 {
		t.Fatalf("GetFrom() = %v, want {3}", got)
	}
	if err := RemoveFrom(e, h); err != nil {
		t.Fatalf("RemoveFrom() error = %v", err)
	}
	if HasIn(e, h) {
		t.Fatal("HasIn() = true after RemoveFrom")
	}
}
