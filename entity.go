package silo

// Entity is a convenience wrapper pairing an Id with the EntityManager
// that issued it, letting callers chain operations without threading a
// manager reference through every call, mirroring the teacher's
// entity/Entity split (a thin handle over manager-owned state) while
// carrying the REDESIGN FLAGS decision to make the manager reference
// non-owning and the zero value meaningful (an Entity{} is the null
// entity, comparable and usable as a map key component once its Id is
// extracted).
type Entity struct {
	mgr *EntityManager
	id  Id
}

// Id returns the bare identifier this Entity wraps.
func (e Entity) Id() Id {
	return e.id
}

// Manager returns the EntityManager that owns e.
func (e Entity) Manager() *EntityManager {
	return e.mgr
}

// Valid reports whether e's Id is currently alive.
func (e Entity) Valid() bool {
	return e.mgr != nil && e.mgr.Valid(e.id)
}

// Destroy destroys e. See EntityManager.Destroy.
func (e Entity) Destroy() error {
	return e.mgr.Destroy(e.id)
}

// AssignTo assigns val as e's component via h. Kept as a free function
// (not a generic Entity method, which Go forbids) alongside the
// equivalent Handle[T].Assign(id, val) call; this form reads better at
// call sites that already have an Entity in hand.
func AssignTo[T any](e Entity, h Handle[T], val T) *T {
	return h.Assign(e.id, val)
}

// GetFrom returns e's T component via h, or nil if e has none.
func GetFrom[T any](e Entity, h Handle[T]) *T {
	return h.Get(e.id)
}

// HasIn reports whether e owns a T component per h.
func HasIn[T any](e Entity, h Handle[T]) bool {
	return h.Has(e.id)
}

// RemoveFrom removes e's T component via h.
func RemoveFrom[T any](e Entity, h Handle[T]) error {
	return h.Remove(e.id)
}

// RemoveAllComponents strips every component e owns, without destroying e
// itself. Mirrors original_source's Entity::RemoveAllComponents.
func (e Entity) RemoveAllComponents() {
	RemoveAllComponents(e.mgr, e.id)
}

// EntityAssign assigns val as e's T component, registering T on e's
// manager first if this is the first time T has been seen. Mirrors
// original_source's Entity::Assign<CompType>(args...) forwarding to
// EntityManager::Assign<CompType>.
func EntityAssign[T any](e Entity, val T) *T {
	return Assign(e.mgr, e.id, val)
}

// EntityHas reports whether e owns a T component. Returns
// UnrecognizedComponentTypeError if T was never registered on e's
// manager.
func EntityHas[T any](e Entity) (bool, error) {
	return Has[T](e.mgr, e.id)
}

// EntityGet returns e's T component. Returns UnrecognizedComponentTypeError
// or ComponentAbsentError per Get[T].
func EntityGet[T any](e Entity) (*T, error) {
	return Get[T](e.mgr, e.id)
}

// EntityRemove removes e's T component. Returns
// UnrecognizedComponentTypeError or ComponentAbsentError per Remove[T].
func EntityRemove[T any](e Entity) error {
	return Remove[T](e.mgr, e.id)
}
