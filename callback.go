package silo

// SetDestroyCallback registers cb to run on id immediately after id's
// EntityDestroyed event fires and before its components are torn down
// (SPEC_FULL.md's hierarchical destroy callback). Grounded on
// original_source's tests/integration/Events.cc and the teacher's
// entity.go SetDestroyCallback/relationships.onDestroy, but wired up where
// the teacher's own version is not: warehouse sets relationships.onDestroy
// but storage.DestroyEntities never invokes it. A later call for the same
// id replaces the earlier callback, matching the teacher's single-field
// (not a list) storage. Returns InvalidEntityError if id is not valid.
func (em *EntityManager) SetDestroyCallback(id Id, cb func(Id)) error {
	if !em.Valid(id) {
		return InvalidEntityError{Id: id}
	}
	if em.destroyCallbacks == nil {
		em.destroyCallbacks = make(map[uint32]func(Id))
	}
	em.destroyCallbacks[id.Index()] = cb
	return nil
}

// fireDestroyCallback invokes and forgets id's destroy callback, if any.
// Called by Destroy after EntityDestroyed has fired, before components are
// torn down.
func (em *EntityManager) fireDestroyCallback(id Id) {
	cb, ok := em.destroyCallbacks[id.Index()]
	if !ok {
		return
	}
	delete(em.destroyCallbacks, id.Index())
	cb(id)
}

// SetDestroyCallback registers cb on e. See EntityManager.SetDestroyCallback.
func (e Entity) SetDestroyCallback(cb func(Id)) error {
	return e.mgr.SetDestroyCallback(e.id, cb)
}
