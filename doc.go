/*
Package silo provides an Entity-Component-System (ECS) runtime built
around dense, per-type component pools and generational entity ids.

Silo favors a sparse-set storage model over archetype/table storage: each
registered component type gets its own densely packed pool, entities are
opaque generational ids, and multi-component queries pick the smallest
qualifying pool to drive iteration rather than walking per-archetype
tables.

Core Concepts:

  - Id: a packed (index, generation) entity identifier.
  - Handle[T]: a typed capability for assigning, fetching, and removing
    a component type, obtained once via RegisterComponentType[T].
  - EntityManager: owns entity lifecycle, the component registry, and
    the event bus.
  - EntityCollection / Query: ways to find entities with a given
    component signature.
  - Subscription: a cancellable event-bus registration.

Basic Usage:

	em := silo.NewManager()
	position, _ := silo.RegisterComponentType[Position](em)
	velocity, _ := silo.RegisterComponentType[Velocity](em)

	e := em.NewEntity()
	position.Assign(e.Id(), Position{})
	velocity.Assign(e.Id(), Velocity{X: 1})

	coll, _ := em.EntitiesWith(silo.MaskOf(position, velocity))
	for e := range coll.All() {
		pos := position.Get(e.Id())
		vel := velocity.Get(e.Id())
		pos.X += vel.X
		pos.Y += vel.Y
	}

Silo also exposes a typed event bus (Subscribe/SubscribeEntity/Emit) for
global and per-entity publish/subscribe delivery.
*/
package silo
