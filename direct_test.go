package silo

import (
	"errors"
	"testing"
)

type tagComp struct{ V int }

func TestAssignImplicitlyRegisters(t *testing.T) {
	em := NewManager()
	e := em.NewEntity()

	ptr := Assign(em, e.Id(), tagComp{V: 5})
	if ptr.V != 5 {
		t.Fatalf("Assign() returned %v, want {5}", ptr)
	}

	has, err := Has[tagComp](em, e.Id())
	if err != nil {
		t.Fatalf("Has() error = %v after implicit registration", err)
	}
	if !has {
		t.Fatal("Has() = false after Assign")
	}
}

func TestUnregisteredTypeErrors(t *testing.T) {
	em := NewManager()
	e := em.NewEntity()

	if _, err := Has[tagComp](em, e.Id()); !errors.As(err, new(UnrecognizedComponentTypeError)) {
		t.Fatalf("Has() on unregistered type error = %v, want UnrecognizedComponentTypeError", err)
	}
	if _, err := Get[tagComp](em, e.Id()); !errors.As(err, new(UnrecognizedComponentTypeError)) {
		t.Fatalf("Get() on unregistered type error = %v, want UnrecognizedComponentTypeError", err)
	}
	if err := Remove[tagComp](em, e.Id()); !errors.As(err, new(UnrecognizedComponentTypeError)) {
		t.Fatalf("Remove() on unregistered type error = %v, want UnrecognizedComponentTypeError", err)
	}
	if _, err := TypeMask[tagComp](em); !errors.As(err, new(UnrecognizedComponentTypeError)) {
		t.Fatalf("TypeMask() on unregistered type error = %v, want UnrecognizedComponentTypeError", err)
	}
}

func TestGetAbsentComponentErrors(t *testing.T) {
	em := NewManager()
	e := em.NewEntity()
	mustRegister[tagComp](t, em)

	if _, err := Get[tagComp](em, e.Id()); !errors.As(err, new(ComponentAbsentError)) {
		t.Fatalf("Get() on absent component error = %v, want ComponentAbsentError", err)
	}
	if err := Remove[tagComp](em, e.Id()); !errors.As(err, new(ComponentAbsentError)) {
		t.Fatalf("Remove() on absent component error = %v, want ComponentAbsentError", err)
	}
}

func TestEntityByTypeConvenience(t *testing.T) {
	em := NewManager()
	e := em.NewEntity()

	EntityAssign(e, tagComp{V: 9})
	has, err := EntityHas[tagComp](e)
	if err != nil || !has {
		t.Fatalf("EntityHas() = (%v, %v), want (true, nil)", has, err)
	}
	got, err := EntityGet[tagComp](e)
	if err != nil || got.V != 9 {
		t.Fatalf("EntityGet() = (%v, %v), want ({9}, nil)", got, err)
	}
	if err := EntityRemove[tagComp](e); err != nil {
		t.Fatalf("EntityRemove() error = %v", err)
	}
	e.RemoveAllComponents() // must not panic with nothing left to remove
}
