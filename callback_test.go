package silo

import "testing"

// Hierarchical destroy callback (SPEC_FULL.md §8), grounded on the
// teacher's entity.go SetDestroyCallback/relationships.onDestroy shape,
// adapted so the callback actually fires (the teacher stores it on
// relationships.onDestroy but storage.DestroyEntities never invokes it).
func TestDestroyCallbackFiresOnDestroy(t *testing.T) {
	em := NewManager()
	e := em.NewEntity()

	var gotID Id
	calls := 0
	if err := e.SetDestroyCallback(func(id Id) {
		calls++
		gotID = id
	}); err != nil {
		t.Fatalf("SetDestroyCallback() error = %v", err)
	}

	if err := e.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("destroy callback fired %d times, want 1", calls)
	}
	if gotID != e.Id() {
		t.Fatalf("destroy callback saw id %v, want %v", gotID, e.Id())
	}
}

// Only the entity that registered a callback should see it fire; an
// unrelated entity's destruction must not trigger it.
func TestDestroyCallbackScopedToOwnEntity(t *testing.T) {
	em := NewManager()
	e1 := em.NewEntity()
	e2 := em.NewEntity()

	calls := 0
	if err := e1.SetDestroyCallback(func(Id) { calls++ }); err != nil {
		t.Fatalf("SetDestroyCallback() error = %v", err)
	}

	if err := e2.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if calls != 0 {
		t.Fatalf("callback fired for an unrelated entity's destruction, calls = %d", calls)
	}

	if err := e1.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("callback fired %d times for its own entity, want 1", calls)
	}
}

// Fires after EntityDestroyed and before components are torn down
// (SPEC_FULL.md §8).
func TestDestroyCallbackOrderingVsEntityDestroyedAndComponents(t *testing.T) {
	em := NewManager()
	h, err := RegisterComponentType[tagComp](em)
	if err != nil {
		t.Fatalf("RegisterComponentType() error = %v", err)
	}
	e := em.NewEntity()
	h.Assign(e.Id(), tagComp{V: 1})

	var order []string
	Subscribe(em, func(target Entity, ev *EntityDestroyed) {
		order = append(order, "EntityDestroyed")
	})
	var sawComponent bool
	if err := e.SetDestroyCallback(func(id Id) {
		order = append(order, "callback")
		sawComponent = h.Has(id)
	}); err != nil {
		t.Fatalf("SetDestroyCallback() error = %v", err)
	}

	if err := e.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	if len(order) != 2 || order[0] != "EntityDestroyed" || order[1] != "callback" {
		t.Fatalf("fire order = %v, want [EntityDestroyed callback]", order)
	}
	if !sawComponent {
		t.Fatal("destroy callback ran after components were already torn down")
	}
}

func TestSetDestroyCallbackOnInvalidEntityErrors(t *testing.T) {
	em := NewManager()
	e := em.NewEntity()
	if err := e.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if err := e.SetDestroyCallback(func(Id) {}); err == nil {
		t.Fatal("SetDestroyCallback() on a destroyed entity should error")
	}
}

// A recycled index must not inherit a stale destroy callback from the
// entity that previously held it.
func TestDestroyCallbackNotInheritedByRecycledIndex(t *testing.T) {
	const r = 4
	em := NewManager(WithRecycleThreshold(r))
	entities := make([]Entity, r)
	for i := range entities {
		entities[i] = em.NewEntity()
	}
	calls := 0
	if err := entities[0].SetDestroyCallback(func(Id) { calls++ }); err != nil {
		t.Fatalf("SetDestroyCallback() error = %v", err)
	}
	for _, e := range entities {
		if err := e.Destroy(); err != nil {
			t.Fatalf("Destroy() error = %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("callback fired %d times on first destroy, want 1", calls)
	}

	next := em.NewEntity()
	if err := next.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("callback fired for the recycled index's new occupant, calls = %d", calls)
	}
}
