package world_test

import (
	"testing"

	"pkg.world.dev/world-engine/lifecycle/assert"
	"pkg.world.dev/world-engine/lifecycle/component"
	"pkg.world.dev/world-engine/lifecycle/filter"
	"pkg.world.dev/world-engine/lifecycle/query"
	"pkg.world.dev/world-engine/lifecycle/types"
	"pkg.world.dev/world-engine/lifecycle/world"
)

func TestRegisterQuerySeedsFromTheCurrentPopulation(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))

	var withFoo []types.EntityID
	for i := 0; i < 3; i++ {
		id, err := w.AddEntity()
		assert.NilError(t, err)
		if i != 1 {
			assert.NilError(t, world.AddComponentTo[Foo](w, id))
			withFoo = append(withFoo, id)
		}
	}

	q, err := w.RegisterQuery(filter.Contains(Foo{}))
	assert.NilError(t, err)
	assert.Equal(t, w.QueryCount(), 1)
	assert.Equal(t, q.Count(), 2)

	var got []types.EntityID
	q.Each(func(id types.EntityID) bool {
		got = append(got, id)
		return true
	})
	assert.ElementsMatch(t, got, withFoo)
}

func TestQueryFollowsComponentChanges(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))

	q, err := w.RegisterQuery(filter.Contains(Foo{}))
	assert.NilError(t, err)

	id, err := w.AddEntity()
	assert.NilError(t, err)
	assert.Equal(t, q.Count(), 0)

	assert.NilError(t, world.AddComponentTo[Foo](w, id))
	assert.Equal(t, q.Count(), 1)

	first, err := q.First()
	assert.NilError(t, err)
	assert.Equal(t, first, id)

	assert.NilError(t, world.RemoveComponentFrom[Foo](w, id))
	assert.Equal(t, q.Count(), 0)
}

func TestQueryCompilesWhenItsComponentsAreRegistered(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))
	assert.NilError(t, world.RegisterComponent[Bar](w))

	q, err := w.RegisterQuery(filter.And(
		filter.Contains(Foo{}),
		filter.Not(filter.Contains(Bar{})),
	))
	assert.NilError(t, err)
	assert.True(t, q.Compiled())
}

func TestQueryRegisteredBeforeItsComponentFallsBack(t *testing.T) {
	w := newTestWorld(t)

	// Baz is not registered yet, so the filter cannot compile down to a
	// bitmask predicate. The query matches attached components by name
	// instead and still tracks entities correctly.
	q, err := w.RegisterQuery(filter.Contains(Baz{}))
	assert.NilError(t, err)
	assert.False(t, q.Compiled())

	assert.NilError(t, world.RegisterComponent[Baz](w))
	id, err := w.AddEntity()
	assert.NilError(t, err)
	assert.NilError(t, world.AddComponentTo[Baz](w, id))
	assert.Equal(t, q.Count(), 1)

	assert.NilError(t, world.RemoveComponentFrom[Baz](w, id))
	assert.Equal(t, q.Count(), 0)
}

func TestAbsenceQueryMatchesBrandNewEntities(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))

	q, err := w.RegisterQuery(filter.Not(filter.Contains(Foo{})))
	assert.NilError(t, err)

	// A fresh entity carries no components and matches the absence filter
	// the moment it is created.
	id, err := w.AddEntity()
	assert.NilError(t, err)
	assert.Equal(t, q.Count(), 1)

	assert.NilError(t, world.AddComponentTo[Foo](w, id))
	assert.Equal(t, q.Count(), 0)

	assert.NilError(t, world.RemoveComponentFrom[Foo](w, id))
	assert.Equal(t, q.Count(), 1)
}

func TestPresenceQueryIgnoresBrandNewEntities(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))

	q, err := w.RegisterQuery(filter.Contains(Foo{}))
	assert.NilError(t, err)

	_, err = w.AddEntity()
	assert.NilError(t, err)
	assert.Equal(t, q.Count(), 0)
}

func TestRemoveEntityEvictsFromEveryQuery(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))
	assert.NilError(t, world.RegisterComponent[Bar](w))

	hasFoo, err := w.RegisterQuery(filter.Contains(Foo{}))
	assert.NilError(t, err)
	noBar, err := w.RegisterQuery(filter.Not(filter.Contains(Bar{})))
	assert.NilError(t, err)

	id, err := w.AddEntity()
	assert.NilError(t, err)
	assert.NilError(t, world.AddComponentTo[Foo](w, id))
	assert.Equal(t, hasFoo.Count(), 1)
	assert.Equal(t, noBar.Count(), 1)

	w.RemoveEntity(id)
	assert.Equal(t, hasFoo.Count(), 0)
	assert.Equal(t, noBar.Count(), 0)

	_, err = hasFoo.First()
	assert.ErrorIs(t, err, query.ErrNoEntitiesFound)
}

func TestCompositeFilterQuery(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))
	assert.NilError(t, world.RegisterComponent[Bar](w))

	q, err := w.RegisterQuery(filter.And(
		filter.Contains(Foo{}),
		filter.Not(filter.Contains(Bar{})),
	))
	assert.NilError(t, err)

	onlyFoo, err := w.AddEntity()
	assert.NilError(t, err)
	assert.NilError(t, world.AddComponentTo[Foo](w, onlyFoo))

	both, err := w.AddEntity()
	assert.NilError(t, err)
	assert.NilError(t, world.AddComponentTo[Foo](w, both))
	assert.NilError(t, world.AddComponentTo[Bar](w, both))

	assert.Equal(t, q.Count(), 1)
	first, err := q.First()
	assert.NilError(t, err)
	assert.Equal(t, first, onlyFoo)
}

func TestQueryResultsSurviveCapacityGrowth(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))

	q, err := w.RegisterQuery(filter.Contains(Foo{}))
	assert.NilError(t, err)

	for i := 0; i < 120; i++ {
		id, err := w.AddEntity()
		assert.NilError(t, err)
		assert.NilError(t, world.AddComponentTo[Foo](w, id))
	}

	assert.True(t, w.Allocator().Capacity() > 100)
	assert.Equal(t, q.Count(), 120)
}

func TestRegisterQueryRequiresAFilter(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.RegisterQuery(nil)
	assert.IsError(t, err)
}

func TestRegisterQueryFromCQL(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))
	assert.NilError(t, world.RegisterComponent[Bar](w))

	q, err := w.RegisterQueryFromCQL("CONTAINS(foo) & !CONTAINS(bar)")
	assert.NilError(t, err)

	onlyFoo, err := w.AddEntity()
	assert.NilError(t, err)
	assert.NilError(t, world.AddComponentTo[Foo](w, onlyFoo))

	both, err := w.AddEntity()
	assert.NilError(t, err)
	assert.NilError(t, world.AddComponentTo[Foo](w, both))
	assert.NilError(t, world.AddComponentTo[Bar](w, both))

	assert.Equal(t, q.Count(), 1)
	first, err := q.First()
	assert.NilError(t, err)
	assert.Equal(t, first, onlyFoo)
}

func TestRegisterQueryFromCQLRejectsUnknownComponents(t *testing.T) {
	w := newTestWorld(t)
	assert.NilError(t, world.RegisterComponent[Foo](w))

	_, err := w.RegisterQueryFromCQL("CONTAINS(missing)")
	assert.ErrorIs(t, err, component.ErrComponentNotRegistered)
	assert.Equal(t, w.QueryCount(), 0)
}
