package silo

import "github.com/TheBitDrifter/mask"

// EntityManager owns entity lifecycle (index/generation allocation,
// recycling, validity) plus the component registry and event bus attached
// to it. It is the silo equivalent of original_source's EntityManager /
// EntityManagerImpl.hh, restructured around Go's generics instead of C++
// templates.
type EntityManager struct {
	genByIndex   []uint32
	aliveByIndex []bool
	freeQueue    []uint32
	nextIndex    uint32

	recycleThreshold int

	registry *registry
	events   *eventBus

	// poolLocks tracks which of the registry's pools currently have an
	// active iterate-lock, mirroring the teacher's storage.locks
	// mask.Mask256 used to gate the deferred operation queue.
	poolLocks mask.Mask256
	queue     operationQueue

	// destroyCallbacks holds at most one SPEC_FULL.md "hierarchical
	// destroy callback" per entity index, keyed like freeQueue by index
	// rather than Id since it's cleared outright on destroy.
	destroyCallbacks map[uint32]func(Id)
}

// NewManager builds a ready-to-use EntityManager. Options override
// package-level Config defaults for this instance only.
func NewManager(opts ...ManagerOption) *EntityManager {
	em := &EntityManager{
		genByIndex:       []uint32{0}, // index 0 reserved for NULL
		aliveByIndex:     []bool{false},
		nextIndex:        1,
		recycleThreshold: Config.DefaultRecycleThreshold,
		registry:         newRegistry(),
	}
	em.events = newEventBus(em)
	for _, opt := range opts {
		opt(em)
	}
	return em
}

// NewEntity allocates a fresh Id, recycling a previously-destroyed index
// once the free queue reaches recycleThreshold entries deep (spec.md's
// RECYCLE_ENTITY_COUNT / R). Recycled indices come back with their
// generation bumped by Destroy.
func (em *EntityManager) NewEntity() Entity {
	var index uint32
	var gen uint32

	if len(em.freeQueue) >= em.recycleThreshold {
		index = em.freeQueue[0]
		em.freeQueue = em.freeQueue[1:]
		gen = em.genByIndex[index]
		assertf(!em.aliveByIndex[index], "silo: recycled index %d is still marked alive", index)
	} else {
		index = em.nextIndex
		em.nextIndex++
		gen = 0
		em.genByIndex = append(em.genByIndex, gen)
		em.aliveByIndex = append(em.aliveByIndex, false)
		em.registry.growTo(index)
	}

	em.aliveByIndex[index] = true
	id := packID(index, gen)
	return Entity{mgr: em, id: id}
}

// Valid reports whether id refers to a currently-alive entity: its
// generation must match the live generation on record for its index.
func (em *EntityManager) Valid(id Id) bool {
	idx := id.Index()
	if idx == 0 || int(idx) >= len(em.genByIndex) {
		return false
	}
	return em.aliveByIndex[idx] && em.genByIndex[idx] == id.Generation()
}

// Destroy removes id and every component it owns, emits EntityDestroyed to
// any subscribers, fires id's destroy callback (if any), detaches id's
// entity-scoped subscriptions, and queues its index for recycling. Returns
// InvalidEntityError if id is not valid.
func (em *EntityManager) Destroy(id Id) error {
	if !em.Valid(id) {
		return InvalidEntityError{Id: id}
	}

	emitEntity(em.events, Entity{mgr: em, id: id}, EntityDestroyed{Id: id})
	em.fireDestroyCallback(id)
	em.events.detachEntity(id)
	em.registry.removeAll(id)

	idx := id.Index()
	em.aliveByIndex[idx] = false
	// The generation wraps within the bits Id reserves for it, so the stored
	// value always matches what a packed Id can carry.
	em.genByIndex[idx] = packID(idx, em.genByIndex[idx]+1).Generation()
	em.freeQueue = append(em.freeQueue, idx)
	return nil
}

// DestroyAll destroys every currently-alive entity, in index order. This
// is a supplemental bulk operation (not present verbatim in
// original_source) useful for scene/level teardown.
func (em *EntityManager) DestroyAll() {
	for idx := uint32(1); idx < uint32(len(em.aliveByIndex)); idx++ {
		if !em.aliveByIndex[idx] {
			continue
		}
		id := packID(idx, em.genByIndex[idx])
		_ = em.Destroy(id)
	}
}

// EntitiesWith returns the collection of currently-alive entities whose
// component signature contains every bit set in compMask, driven by the
// smallest qualifying pool (spec.md §4.4's "driver" selection). A mask
// that is empty, or that names no registered type, yields an empty
// EntityCollection rather than an error (spec.md's resolution of the
// original's componentPools.at(-1) out-of-bounds read).
func (em *EntityManager) EntitiesWith(compMask ComponentMask) (EntityCollection, error) {
	driver := em.smallestPool(compMask)
	if driver == nil {
		return EntityCollection{em: em, mask: compMask}, nil
	}
	lock, err := driver.lock()
	if err != nil {
		return EntityCollection{}, err
	}
	em.poolLocks.Mark(uint32(em.poolIndexOf(driver)))
	return EntityCollection{
		em:       em,
		mask:     compMask,
		snapshot: driver.entities(),
		lock:     lock,
	}, nil
}

// smallestPool returns the smallest-by-size registered pool whose bit is
// set in compMask, or nil if compMask selects no registered type.
func (em *EntityManager) smallestPool(compMask ComponentMask) basePool {
	var driver basePool
	minSize := -1
	for i, p := range em.registry.pools {
		if !compMask.ContainsAny(em.registry.masks[i]) {
			continue
		}
		if minSize == -1 || p.size() < minSize {
			minSize = p.size()
			driver = p
		}
	}
	return driver
}

func (em *EntityManager) poolIndexOf(p basePool) int {
	for i, candidate := range em.registry.pools {
		if candidate == p {
			return i
		}
	}
	return -1
}

// releasePoolLock is invoked by EntityCollection iterators on exhaustion
// (or explicit Release) to clear the manager-level lock bit and flush the
// deferred operation queue once no pool remains locked.
func (em *EntityManager) releasePoolLock(p basePool) {
	em.poolLocks.Unmark(uint32(em.poolIndexOf(p)))
	if em.poolLocks.IsEmpty() {
		em.queue.flush(em)
	}
}

// locked reports whether any pool currently has an active iterate-lock,
// gating whether mutations must be deferred onto the operation queue.
func (em *EntityManager) locked() bool {
	return !em.poolLocks.IsEmpty()
}
