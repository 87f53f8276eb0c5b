package silo

import (
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// UnrecognizedComponentTypeError is raised when has/get/remove/mask
// operations reference a component type that was never registered.
type UnrecognizedComponentTypeError struct {
	Type reflect.Type
}

func (e UnrecognizedComponentTypeError) Error() string {
	return fmt.Sprintf("silo: component type %v is not registered", e.Type)
}

// InvalidEntityError is raised when an operation targets an Id that is not
// currently valid (destroyed, stale generation, or unknown index).
type InvalidEntityError struct {
	Id Id
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("silo: entity %v is not valid; it may have already been destroyed", e.Id)
}

// ComponentAbsentError is raised when Get/Remove targets an entity that
// does not currently own a component of the requested type.
type ComponentAbsentError struct {
	Id   Id
	Type reflect.Type
}

func (e ComponentAbsentError) Error() string {
	return fmt.Sprintf("silo: entity %v has no component of type %v", e.Id, e.Type)
}

// IteratorOverrunError is returned by Cursor.CurrentEntity when the cursor
// is not positioned on an entity: before a Next that returned true, or
// after Next has returned false.
type IteratorOverrunError struct{}

func (e IteratorOverrunError) Error() string {
	return "silo: cannot advance an entity collection iterator past its end"
}

// LockStateError is raised when a pool's iterate-lock is engaged or
// released while already in that state.
type LockStateError struct {
	Enabling bool
}

func (e LockStateError) Error() string {
	if e.Enabling {
		return "silo: iterate-lock is already active on this pool"
	}
	return "silo: iterate-lock is already inactive on this pool"
}

// NullHandleDerefError is raised when a zero-value Handle is dereferenced.
type NullHandleDerefError struct {
	Type reflect.Type
}

func (e NullHandleDerefError) Error() string {
	return fmt.Sprintf("silo: dereferencing a null Handle[%v]", e.Type)
}

// DuplicateRegistrationError is raised when RegisterComponentType is called
// twice for the same type, or when RegisterComponentTypeNamed finds the name
// or the type already bound to a different registration.
type DuplicateRegistrationError struct {
	Type reflect.Type
}

func (e DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("silo: type %v is already registered", e.Type)
}

// ComponentCapacityError is raised when registering a component type would
// exceed MaxComponentTypes.
type ComponentCapacityError struct {
	Max int
}

func (e ComponentCapacityError) Error() string {
	return fmt.Sprintf("silo: component type capacity (%d) exceeded", e.Max)
}

// AssertionFailureError wraps an internal invariant violation. Conditions
// that raise this indicate a bug in silo itself or a caller violating a
// documented contract (e.g. mutating a mask array out from under a live
// manager), not an ordinary data-dependent failure.
type AssertionFailureError struct {
	Message string
}

func (e AssertionFailureError) Error() string {
	return "silo: assertion failed: " + e.Message
}

// assert panics with a trace-wrapped AssertionFailureError if cond is
// false. Mirrors the teacher's panic(bark.AddTrace(err)) idiom.
func assert(cond bool, message string) {
	if !cond {
		panic(bark.AddTrace(AssertionFailureError{Message: message}))
	}
}

// assertf is assert with a formatted message.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(bark.AddTrace(AssertionFailureError{Message: fmt.Sprintf(format, args...)}))
	}
}
