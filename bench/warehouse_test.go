package bench

import (
	"testing"

	"github.com/TheBitDrifter/silo"
)

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

// BenchmarkIterSiloGet times the sparse-pool-driven EntitiesWith path
// against the same nPos/nPosVel shape arche_test.go uses, adapted from the
// teacher's BenchmarkIterWarehouseGet (itself table-driven) onto silo's
// EntityManager/Handle[T] API.
func BenchmarkIterSiloGet(b *testing.B) {
	b.StopTimer()

	em := silo.NewManager()
	position, err := silo.RegisterComponentType[Position](em)
	if err != nil {
		b.Fatal(err)
	}
	velocity, err := silo.RegisterComponentType[Velocity](em)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < nPosVel; i++ {
		e := em.NewEntity()
		position.Assign(e.Id(), Position{})
		velocity.Assign(e.Id(), Velocity{X: 1})
	}
	for i := 0; i < nPos; i++ {
		e := em.NewEntity()
		position.Assign(e.Id(), Position{})
	}

	mask := silo.MaskOf(position, velocity)

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		coll, err := em.EntitiesWith(mask)
		if err != nil {
			b.Fatal(err)
		}
		for e := range coll.All() {
			pos := position.Get(e.Id())
			vel := velocity.Get(e.Id())
			pos.X += vel.X
			pos.Y += vel.Y
		}
	}
}
