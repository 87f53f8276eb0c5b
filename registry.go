package silo

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// ComponentMask identifies a set of registered component types, used to
// drive EntitiesWith queries (spec.md §4.4). It is a thin alias over
// mask.Mask, TheBitDrifter/mask's 64-bit bitset, which bounds
// MaxComponentTypes at 64.
type ComponentMask = mask.Mask

// Handle[T] is a typed capability for assigning, fetching, and removing
// components of type T, obtained via RegisterComponentType[T] (or
// implicitly via Assign[T]) and reused across calls. A zero-value Handle
// is "null" and panics on use, matching original_source's
// Handle<CompType>/HandleImpl.hh contract.
type Handle[T any] struct {
	reg   *registry
	index int
}

// IsNull reports whether h was never assigned by RegisterComponentType.
func (h Handle[T]) IsNull() bool {
	return h.reg == nil
}

func (h Handle[T]) pool() *pool[T] {
	if h.IsNull() {
		var zero T
		panic(NullHandleDerefError{Type: reflect.TypeOf(zero)})
	}
	return h.reg.pools[h.index].(*pool[T])
}

// Bit returns the single-type mask bit associated with this handle's
// component type, for composing into EntitiesWith query masks.
func (h Handle[T]) Bit() ComponentMask {
	return h.reg.masks[h.index]
}

// queryBit satisfies queryItem, letting a Handle[T] be passed directly to
// Query.And/Or/Not as a leaf.
func (h Handle[T]) queryBit() uint32 {
	return uint32(h.index)
}

// MaskOf composes the mask bits of several handles into one
// ComponentMask, for building EntitiesWith arguments directly (without a
// Query) when every type must be present.
func MaskOf(handles ...queryItem) ComponentMask {
	var m ComponentMask
	for _, h := range handles {
		m.Mark(h.queryBit())
	}
	return m
}

// Assign attaches a T component to id, overwriting any existing value.
// Returns a pointer valid until the next mutation of this pool.
func (h Handle[T]) Assign(id Id, val T) *T {
	ptr := h.pool().newComponent(id, val)
	h.reg.markComponent(id, h.index)
	return ptr
}

// Get returns id's T component, or nil if it has none.
func (h Handle[T]) Get(id Id) *T {
	return h.pool().get(id)
}

// Has reports whether id owns a T component.
func (h Handle[T]) Has(id Id) bool {
	return h.pool().has(id)
}

// Remove deletes id's T component. Returns ComponentAbsentError if id has
// none.
func (h Handle[T]) Remove(id Id) error {
	if err := h.pool().remove(id); err != nil {
		return err
	}
	h.reg.unmarkComponent(id, h.index)
	return nil
}

// registry holds every registered component pool, its type index, and its
// mask bit, grounded on original_source's ComponentManager /
// ComponentManagerImpl.hh.
type registry struct {
	pools       []basePool
	typeToIndex map[reflect.Type]int
	masks       []ComponentMask
	nameCache   *SimpleCache[int]

	// entMasks caches each entity index's current component signature, so
	// query containment tests are O(1) instead of scanning every pool.
	entMasks []ComponentMask
}

func newRegistry() *registry {
	return &registry{
		typeToIndex: make(map[reflect.Type]int),
		nameCache:   NewSimpleCache[int](),
		entMasks:    make([]ComponentMask, 1), // index 0 reserved for NullID
	}
}

// growTo ensures entMasks has room for entity index i.
func (r *registry) growTo(i uint32) {
	for uint32(len(r.entMasks)) <= i {
		r.entMasks = append(r.entMasks, ComponentMask{})
	}
}

// resetMask clears a recycled entity index's cached signature.
func (r *registry) resetMask(i uint32) {
	r.entMasks[i] = ComponentMask{}
}

func (r *registry) markComponent(id Id, poolIndex int) {
	m := r.entMasks[id.Index()]
	m.Mark(uint32(poolIndex))
	r.entMasks[id.Index()] = m
}

func (r *registry) unmarkComponent(id Id, poolIndex int) {
	m := r.entMasks[id.Index()]
	m.Unmark(uint32(poolIndex))
	r.entMasks[id.Index()] = m
}

// registerComponentType is the idempotent internal registration path:
// returns T's existing Handle if already registered, otherwise registers
// it fresh. This backs Assign[T]'s implicit first-use registration
// (spec.md §4.3: "implicit registration happens on first assign<T>") and
// RegisterComponentTypeNamed's first-time path, neither of which is the
// spec's register_type<T>() entry point and so neither is subject to its
// DuplicateRegistration rule.
func registerComponentType[T any](m *EntityManager) Handle[T] {
	var zero T
	typ := reflect.TypeOf(zero)
	r := m.registry
	if idx, ok := r.typeToIndex[typ]; ok {
		return Handle[T]{reg: r, index: idx}
	}
	idx := len(r.pools)
	if idx >= MaxComponentTypes {
		panic(bark.AddTrace(ComponentCapacityError{Max: MaxComponentTypes}))
	}
	p := newPool[T]()
	r.pools = append(r.pools, p)
	r.typeToIndex[typ] = idx
	var bit ComponentMask
	bit.Mark(uint32(idx))
	r.masks = append(r.masks, bit)
	return Handle[T]{reg: r, index: idx}
}

// RegisterComponentType is spec.md §4.3's register_type<T>() entry point:
// it registers T and returns a reusable Handle[T]. Unlike the implicit
// registration Assign[T] performs on first use, calling this twice for the
// same T is an error: original_source's ComponentManagerImpl::
// RegisterComponentType throws in that case, and spec.md §7 lists
// DuplicateRegistration as the error this operation raises "on an
// already-registered type."
func RegisterComponentType[T any](m *EntityManager) (Handle[T], error) {
	var zero T
	typ := reflect.TypeOf(zero)
	if _, ok := m.registry.typeToIndex[typ]; ok {
		return Handle[T]{}, DuplicateRegistrationError{Type: typ}
	}
	return registerComponentType[T](m), nil
}

// RegisterComponentTypeNamed is a supplemental registration path for
// callers that need a process-independent, string-stable type identity
// (e.g. replay logs, cross-process tooling) rather than reflect.Type
// identity alone. It registers T under name the first time it's seen and
// caches the resulting pool index via a SimpleCache, erroring on reuse
// with a different name for the same type or vice versa.
func RegisterComponentTypeNamed[T any](m *EntityManager, name string) (Handle[T], error) {
	var zero T
	typ := reflect.TypeOf(zero)
	r := m.registry
	if idx, ok := r.nameCache.Get(name); ok {
		if existing, ok := r.typeToIndex[typ]; !ok || existing != idx {
			return Handle[T]{}, DuplicateRegistrationError{Type: typ}
		}
		return Handle[T]{reg: r, index: idx}, nil
	}
	if idx, ok := r.typeToIndex[typ]; ok {
		for _, named := range r.nameCache.items {
			if named == idx {
				return Handle[T]{}, DuplicateRegistrationError{Type: typ}
			}
		}
	}
	h := registerComponentType[T](m)
	r.nameCache.Set(name, h.index)
	return h, nil
}

// removeAll strips every registered component from id, used by
// EntityManager.Destroy. Absent-component errors are expected (most types
// won't be present) and are ignored.
func (r *registry) removeAll(id Id) {
	for _, p := range r.pools {
		_ = p.remove(id)
	}
	r.resetMask(id.Index())
}

// maskFor returns the cached mask of every component type id currently
// owns, used by queries that need an entity's full signature.
func (r *registry) maskFor(id Id) ComponentMask {
	return r.entMasks[id.Index()]
}
