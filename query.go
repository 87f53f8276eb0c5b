package silo

import "iter"

// EntityCollection is the result of EntitiesWith: a snapshot-bounded view
// over the smallest qualifying pool's entries, filtered by full mask
// containment, holding that pool's iterate-lock for its lifetime. This is
// the Go shape of original_source's EntityManager::EntityCollection.
type EntityCollection struct {
	em       *EntityManager
	mask     ComponentMask
	snapshot poolSnapshot
	lock     *IterateLock
	released bool
}

// Release ends the collection's iterate-lock early. All() calls this
// automatically once exhausted or once the consumer stops ranging, so
// most callers never need it directly.
func (c *EntityCollection) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.lock == nil {
		return
	}
	driver := c.lock.pool
	c.lock.Release()
	c.em.releasePoolLock(driver)
}

// All returns a range-over-func sequence of every entity in the
// collection. Stopping the range early (a `break`) releases the
// underlying lock just as reaching the end does.
func (c *EntityCollection) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		defer c.Release()
		for i := 0; i < c.snapshot.len(); i++ {
			id, ok := c.snapshot.at(i)
			if !ok {
				break
			}
			if id.IsNull() {
				continue // soft-removed since the snapshot was taken
			}
			if !c.em.registry.maskFor(id).ContainsAll(c.mask) {
				continue
			}
			if !yield(Entity{mgr: c.em, id: id}) {
				return
			}
		}
	}
}

// Len returns the snapshot's slot count, an upper bound on the number of
// entities All() will yield (soft-removed and mask-mismatched slots are
// skipped during iteration).
func (c *EntityCollection) Len() int {
	return c.snapshot.len()
}

// QueryOperation names the boolean combinator a query node applies to its
// mask and children.
type QueryOperation int

const (
	OpAnd QueryOperation = iota
	OpOr
	OpNot
)

// QueryNode is one node of a composable query tree, evaluated against a
// candidate entity's cached component mask.
type QueryNode interface {
	evaluate(m ComponentMask) bool
	usesOrNot() bool
}

// Query builds a QueryNode tree from Handle[T] values (for a leaf AND of
// component types) or nested QueryNode values (for And/Or/Not
// combinators), adapted from the teacher's query.go.
type Query struct {
	em   *EntityManager
	root QueryNode
}

// NewQuery starts a new, empty query against em.
func NewQuery(em *EntityManager) *Query {
	return &Query{em: em}
}

// queryItem is satisfied by Handle[T] (a single component-type leaf); And/
// Or/Not accept a mix of these and nested QueryNode values.
type queryItem interface {
	queryBit() uint32
}

type compositeNode struct {
	op       QueryOperation
	mask     ComponentMask
	children []QueryNode
}

func (n *compositeNode) usesOrNot() bool {
	if n.op != OpAnd {
		return true
	}
	for _, c := range n.children {
		if c.usesOrNot() {
			return true
		}
	}
	return false
}

func (n *compositeNode) evaluate(m ComponentMask) bool {
	switch n.op {
	case OpAnd:
		if !m.ContainsAll(n.mask) {
			return false
		}
		for _, c := range n.children {
			if !c.evaluate(m) {
				return false
			}
		}
		return true
	case OpOr:
		if n.mask.ContainsAny(m) {
			return true
		}
		for _, c := range n.children {
			if c.evaluate(m) {
				return true
			}
		}
		return false
	case OpNot:
		if !m.ContainsNone(n.mask) {
			return false
		}
		for _, c := range n.children {
			if c.evaluate(m) {
				return false
			}
		}
		return true
	}
	return false
}

// And combines items (Handle[T] leaves or nested QueryNode values) with
// AND semantics. The first call on a fresh Query also becomes its root.
func (q *Query) And(items ...any) QueryNode {
	return q.compose(OpAnd, items)
}

// Or combines items with OR semantics.
func (q *Query) Or(items ...any) QueryNode {
	return q.compose(OpOr, items)
}

// Not negates items: none of them may be present.
func (q *Query) Not(items ...any) QueryNode {
	return q.compose(OpNot, items)
}

func (q *Query) compose(op QueryOperation, items []any) QueryNode {
	var leafMask ComponentMask
	var children []QueryNode
	for _, it := range items {
		switch v := it.(type) {
		case QueryNode:
			children = append(children, v)
		case queryItem:
			leafMask.Mark(v.queryBit())
		default:
			panic(AssertionFailureError{Message: "silo: query item must be a Handle[T] or a QueryNode"})
		}
	}
	node := &compositeNode{op: op, mask: leafMask, children: children}
	if q.root == nil {
		q.root = node
	}
	return node
}

// Run evaluates the query against every currently-alive entity, using the
// spec-mandated smallest-pool fast path when the tree is a pure AND of
// leaves, and falling back to a full scan otherwise. Either path is
// snapshot-bounded at call time: entities created afterward are not
// visited.
func (q *Query) Run() iter.Seq[Entity] {
	if q.root == nil {
		return func(yield func(Entity) bool) {}
	}
	if !q.root.usesOrNot() {
		leaf := q.root.(*compositeNode)
		coll, err := q.em.EntitiesWith(leaf.mask)
		if err != nil {
			return func(yield func(Entity) bool) {}
		}
		return coll.All()
	}
	return q.fallbackScan()
}

// fallbackScan walks every alive entity index once, snapshotted at call
// time, testing each against the tree. Used whenever the tree contains an
// Or or Not, which the single smallest-pool driver can't serve directly.
func (q *Query) fallbackScan() iter.Seq[Entity] {
	em := q.em
	bound := uint32(len(em.aliveByIndex))
	root := q.root
	return func(yield func(Entity) bool) {
		for idx := uint32(1); idx < bound; idx++ {
			if !em.aliveByIndex[idx] {
				continue
			}
			id := packID(idx, em.genByIndex[idx])
			if !root.evaluate(em.registry.maskFor(id)) {
				continue
			}
			if !yield(Entity{mgr: em, id: id}) {
				return
			}
		}
	}
}

// Cursor is an imperative alternative to Query.Run/EntityCollection.All,
// for callers that need to pause iteration across calls (e.g. a system
// processing a fixed budget of entities per tick), adapted from the
// teacher's cursor.go but built on iter.Pull instead of a hand-rolled
// archetype/row state machine.
type Cursor struct {
	query      *Query
	pull       func() (Entity, bool)
	stop       func()
	current    Entity
	started    bool
	positioned bool
	exhausted  bool
}

// NewCursor builds a Cursor over query.
func NewCursor(em *EntityManager, query *Query) *Cursor {
	return &Cursor{query: query}
}

// Next advances the cursor, returning false once no entities remain. The
// first call initializes the underlying query, acquiring whatever
// iterate-lock it needs; the lock is released once the cursor is
// exhausted or Stop is called.
func (c *Cursor) Next() bool {
	if !c.started {
		c.started = true
		c.pull, c.stop = iter.Pull(c.query.Run())
	}
	e, ok := c.pull()
	if !ok {
		c.stop()
		c.exhausted = true
		c.positioned = false
		return false
	}
	c.current = e
	c.positioned = true
	return true
}

// CurrentEntity returns the entity the cursor is presently positioned at.
// Returns IteratorOverrunError if called before a Next() that returned
// true, or after Next() has returned false (spec.md's "advancing past end
// is an error").
func (c *Cursor) CurrentEntity() (Entity, error) {
	if !c.positioned {
		return Entity{}, IteratorOverrunError{}
	}
	return c.current, nil
}

// Stop ends iteration early, releasing any held iterate-lock. Safe to
// call even if the cursor was never advanced or is already exhausted.
func (c *Cursor) Stop() {
	if c.started && c.stop != nil {
		c.stop()
	}
}

// Exhausted reports whether Next has returned false at least once.
func (c *Cursor) Exhausted() bool {
	return c.exhausted
}
