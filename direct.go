package silo

import "reflect"

// This file adds spec.md §4.3's literal by-type operation surface
// (assign<T>/has<T>/get<T>/remove<T>) directly on EntityManager, callable
// without a caller ever obtaining a Handle[T] first. RegisterComponentType/
// Handle[T] remain the preferred path when a caller is going to touch the
// same type repeatedly; these free functions exist for callers that only
// touch T once, or that need the UnrecognizedComponentType error path
// spec.md requires for has/get/remove on a type nobody has registered yet.
// Assign implicitly registers T on first use, idempotently; this is
// distinct from RegisterComponentType itself, which errors on a type
// that's already registered (spec.md §4.3's register_type<T>()).

// lookupHandle returns T's Handle if it has been registered, without
// registering it.
func lookupHandle[T any](em *EntityManager) (Handle[T], bool) {
	var zero T
	typ := reflect.TypeOf(zero)
	idx, ok := em.registry.typeToIndex[typ]
	if !ok {
		return Handle[T]{}, false
	}
	return Handle[T]{reg: em.registry, index: idx}, true
}

// Assign attaches a T component to id, registering T first if this is the
// first time T has been seen on em (spec.md §4.3's "implicit registration
// happens on first assign<T>").
func Assign[T any](em *EntityManager, id Id, val T) *T {
	h := registerComponentType[T](em)
	return h.Assign(id, val)
}

// Has reports whether id owns a T component. Returns
// UnrecognizedComponentTypeError if T was never registered.
func Has[T any](em *EntityManager, id Id) (bool, error) {
	h, ok := lookupHandle[T](em)
	if !ok {
		var zero T
		return false, UnrecognizedComponentTypeError{Type: reflect.TypeOf(zero)}
	}
	return h.Has(id), nil
}

// Get returns id's T component. Returns UnrecognizedComponentTypeError if T
// was never registered, or ComponentAbsentError if id has no T.
func Get[T any](em *EntityManager, id Id) (*T, error) {
	h, ok := lookupHandle[T](em)
	if !ok {
		var zero T
		return nil, UnrecognizedComponentTypeError{Type: reflect.TypeOf(zero)}
	}
	ptr := h.Get(id)
	if ptr == nil {
		var zero T
		return nil, ComponentAbsentError{Id: id, Type: reflect.TypeOf(zero)}
	}
	return ptr, nil
}

// Remove deletes id's T component. Returns UnrecognizedComponentTypeError if
// T was never registered, or ComponentAbsentError if id has no T.
func Remove[T any](em *EntityManager, id Id) error {
	h, ok := lookupHandle[T](em)
	if !ok {
		var zero T
		return UnrecognizedComponentTypeError{Type: reflect.TypeOf(zero)}
	}
	return h.Remove(id)
}

// TypeMask returns the single-bit ComponentMask for T. Returns
// UnrecognizedComponentTypeError if T was never registered; callers that
// want implicit registration should Assign[T] first.
func TypeMask[T any](em *EntityManager) (ComponentMask, error) {
	h, ok := lookupHandle[T](em)
	if !ok {
		var zero T
		return ComponentMask{}, UnrecognizedComponentTypeError{Type: reflect.TypeOf(zero)}
	}
	return h.Bit(), nil
}

// RemoveAllComponents strips every component id owns, without destroying
// the entity itself (spec.md §4.3's remove_all(e), distinct from
// EntityManager.Destroy which also invalidates id).
func RemoveAllComponents(em *EntityManager, id Id) {
	em.registry.removeAll(id)
}
