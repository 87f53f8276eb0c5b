package silo

import "testing"

// mustRegister registers T on em for tests that only ever register a type
// once and don't care about the DuplicateRegistration path itself.
func mustRegister[T any](t *testing.T, em *EntityManager) Handle[T] {
	t.Helper()
	h, err := RegisterComponentType[T](em)
	if err != nil {
		t.Fatalf("RegisterComponentType() error = %v", err)
	}
	return h
}
