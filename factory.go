package silo

// factory implements the factory pattern for silo's top-level
// constructors, adapted from the teacher's factory.go.
type factory struct{}

// Factory is the global factory instance for creating silo primitives.
var Factory factory

// NewManager creates a new EntityManager.
func (f factory) NewManager(opts ...ManagerOption) *EntityManager {
	return NewManager(opts...)
}

// NewQuery creates a new Query against em.
func (f factory) NewQuery(em *EntityManager) *Query {
	return NewQuery(em)
}

// NewCursor creates a new Cursor over query.
func (f factory) NewCursor(em *EntityManager, query *Query) *Cursor {
	return NewCursor(em, query)
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return NewSimpleCacheWithCapacity[T](cap)
}
