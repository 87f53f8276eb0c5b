package silo

import "reflect"

// EntityDestroyed is the built-in event emitted by EntityManager.Destroy
// before an entity's components are torn down, per spec.md §4.6.
type EntityDestroyed struct {
	Id Id
}

// subscriberRecord is one registered callback within a topic. fn is
// boxed as `any` because Go has no generic slice-of-heterogeneous-
// closures; each topic only ever holds callbacks for one concrete event
// type, so the type assertion at dispatch time always succeeds.
type subscriberRecord struct {
	id     uint64
	active bool
	fn     any
}

// topic holds every subscriber for one (event type, scope) pair. While
// dispatching is true, Unsubscribe soft-removes (marks inactive, queues
// for purge) instead of permuting subs, exactly mirroring pool.go's
// iterate-lock discipline applied to handler slices instead of component
// slots, so a handler unsubscribing itself or a peer mid-dispatch never
// skips or misfires a sibling callback.
type topic struct {
	subs        []subscriberRecord
	dispatching bool
	dirty       bool
}

func (t *topic) add(bus *eventBus, fn any) Subscription {
	id := bus.nextSubID
	bus.nextSubID++
	t.subs = append(t.subs, subscriberRecord{id: id, active: true, fn: fn})
	return Subscription{topic: t, id: id}
}

func (t *topic) drain() {
	if !t.dirty {
		return
	}
	live := t.subs[:0]
	for _, s := range t.subs {
		if s.active {
			live = append(live, s)
		}
	}
	t.subs = live
	t.dirty = false
}

// Subscription is the cancellable handle returned by every Subscribe
// variant. The zero Subscription is valid and inert: IsActive reports
// false, Unsubscribe is a no-op.
type Subscription struct {
	topic *topic
	id    uint64
}

// IsActive reports whether this subscription is still registered.
func (s Subscription) IsActive() bool {
	if s.topic == nil {
		return false
	}
	for i := range s.topic.subs {
		if s.topic.subs[i].id == s.id {
			return s.topic.subs[i].active
		}
	}
	return false
}

// Unsubscribe cancels the subscription. A no-op if it is already
// inactive or was never registered, matching spec.md's "unsubscribing an
// already-inactive subscription is a no-op."
func (s Subscription) Unsubscribe() {
	if s.topic == nil {
		return
	}
	for i := range s.topic.subs {
		if s.topic.subs[i].id != s.id {
			continue
		}
		if !s.topic.subs[i].active {
			return
		}
		if s.topic.dispatching {
			s.topic.subs[i].active = false
			s.topic.dirty = true
			return
		}
		s.topic.subs = append(s.topic.subs[:i], s.topic.subs[i+1:]...)
		return
	}
}

// eventBus holds every topic an EntityManager dispatches through,
// grounded on original_source's eventSignals/nonEntityEventSignals/
// entityEventSignals tables and on lazyecs's reflect.Type keying scheme.
type eventBus struct {
	em           *EntityManager
	nextSubID    uint64
	entityScoped map[reflect.Type]*topic
	plain        map[reflect.Type]*topic
	perEntity    map[uint32]map[reflect.Type]*topic
}

func newEventBus(em *EntityManager) *eventBus {
	return &eventBus{
		em:           em,
		entityScoped: make(map[reflect.Type]*topic),
		plain:        make(map[reflect.Type]*topic),
		perEntity:    make(map[uint32]map[reflect.Type]*topic),
	}
}

func (b *eventBus) entityScopedTopic(typ reflect.Type) *topic {
	t, ok := b.entityScoped[typ]
	if !ok {
		t = &topic{}
		b.entityScoped[typ] = t
	}
	return t
}

func (b *eventBus) plainTopic(typ reflect.Type) *topic {
	t, ok := b.plain[typ]
	if !ok {
		t = &topic{}
		b.plain[typ] = t
	}
	return t
}

func (b *eventBus) perEntityTopic(index uint32, typ reflect.Type) *topic {
	m, ok := b.perEntity[index]
	if !ok {
		m = make(map[reflect.Type]*topic)
		b.perEntity[index] = m
	}
	t, ok := m[typ]
	if !ok {
		t = &topic{}
		m[typ] = t
	}
	return t
}

// detachEntity disconnects every per-entity subscription registered
// against index, used by EntityManager.Destroy. Subscriptions are simply
// dropped; no soft-removal is needed since detachEntity never runs
// during one of these topics' own dispatch (Destroy emits
// EntityDestroyed, which fully unwinds, before detaching).
func (b *eventBus) detachEntity(id Id) {
	delete(b.perEntity, id.Index())
}

func dispatchEntityScoped[E any](t *topic, entity Entity, event *E) {
	if t == nil || len(t.subs) == 0 {
		return
	}
	nested := t.dispatching
	t.dispatching = true
	n := len(t.subs)
	for i := 0; i < n; i++ {
		sub := t.subs[i]
		if !sub.active {
			continue
		}
		sub.fn.(func(Entity, *E))(entity, event)
	}
	if !nested {
		t.dispatching = false
		t.drain()
	}
}

func dispatchPlain[E any](t *topic, event *E) {
	if t == nil || len(t.subs) == 0 {
		return
	}
	nested := t.dispatching
	t.dispatching = true
	n := len(t.subs)
	for i := 0; i < n; i++ {
		sub := t.subs[i]
		if !sub.active {
			continue
		}
		sub.fn.(func(*E))(event)
	}
	if !nested {
		t.dispatching = false
		t.drain()
	}
}

// subscribe registers a global, entity-scoped handler for E: called with
// (Entity, *E) whenever Emit[E] fires on any entity.
func subscribe[E any](bus *eventBus, cb func(Entity, *E)) Subscription {
	typ := reflect.TypeOf((*E)(nil)).Elem()
	return bus.entityScopedTopic(typ).add(bus, cb)
}

// subscribePlain registers a global, entity-free handler for E: called
// with *E whenever EmitGlobal[E] fires.
func subscribePlain[E any](bus *eventBus, cb func(*E)) Subscription {
	typ := reflect.TypeOf((*E)(nil)).Elem()
	return bus.plainTopic(typ).add(bus, cb)
}

// subscribeEntity registers a handler scoped to one entity: called with
// (Entity, *E) only when Emit[E] fires on that specific id. Detached
// automatically when the entity is destroyed.
func subscribeEntity[E any](bus *eventBus, id Id, cb func(Entity, *E)) Subscription {
	typ := reflect.TypeOf((*E)(nil)).Elem()
	return bus.perEntityTopic(id.Index(), typ).add(bus, cb)
}

// emitEntity fires E on entity: first its global entity-scoped
// subscribers, then its per-entity subscribers, in registration order
// within each topic (spec.md §4.6).
func emitEntity[E any](bus *eventBus, entity Entity, event E) {
	typ := reflect.TypeOf(event)
	dispatchEntityScoped(bus.entityScoped[typ], entity, &event)
	if m, ok := bus.perEntity[entity.id.Index()]; ok {
		dispatchEntityScoped(m[typ], entity, &event)
	}
}

// emitPlain fires E on every plain global subscriber, in registration
// order.
func emitPlain[E any](bus *eventBus, event E) {
	typ := reflect.TypeOf(event)
	dispatchPlain(bus.plain[typ], &event)
}

// Subscribe registers cb as a global, entity-scoped handler for E.
func Subscribe[E any](em *EntityManager, cb func(Entity, *E)) Subscription {
	return subscribe(em.events, cb)
}

// SubscribeGlobal registers cb as a global, entity-free handler for E.
func SubscribeGlobal[E any](em *EntityManager, cb func(*E)) Subscription {
	return subscribePlain(em.events, cb)
}

// SubscribeEntity registers cb as a handler scoped to a single entity.
func SubscribeEntity[E any](em *EntityManager, id Id, cb func(Entity, *E)) Subscription {
	return subscribeEntity(em.events, id, cb)
}

// Emit fires E on e: its global entity-scoped subscribers, then its
// per-entity subscribers.
func Emit[E any](e Entity, event E) {
	emitEntity(e.mgr.events, e, event)
}

// EmitGlobal fires E on every plain global subscriber.
func EmitGlobal[E any](em *EntityManager, event E) {
	emitPlain(em.events, event)
}
