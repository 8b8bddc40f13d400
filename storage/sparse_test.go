package storage_test

import (
	"testing"

	"pkg.world.dev/world-engine/lifecycle/assert"
	"pkg.world.dev/world-engine/lifecycle/storage"
	"pkg.world.dev/world-engine/lifecycle/types"
)

func TestSparseSetAddRemoveHas(t *testing.T) {
	s := storage.NewSparseSet(8)

	assert.True(t, s.Add(3))
	assert.True(t, s.Add(5))
	assert.True(t, s.Add(1))
	assert.Equal(t, s.Len(), 3)

	// A second add of the same id is a no-op.
	assert.False(t, s.Add(3))
	assert.Equal(t, s.Len(), 3)

	assert.True(t, s.Has(3))
	assert.True(t, s.Has(5))
	assert.False(t, s.Has(0))

	assert.True(t, s.Remove(5))
	assert.False(t, s.Has(5))
	assert.Equal(t, s.Len(), 2)

	// Removing an absent id reports false.
	assert.False(t, s.Remove(5))
	assert.False(t, s.Remove(7))
}

func TestSparseSetSwapRemoveKeepsMembership(t *testing.T) {
	s := storage.NewSparseSet(8)
	for _, id := range []types.EntityID{0, 1, 2, 3} {
		assert.True(t, s.Add(id))
	}

	// Removing from the middle swaps the last member into the hole.
	assert.True(t, s.Remove(1))
	assert.Equal(t, s.Len(), 3)
	assert.True(t, s.Has(0))
	assert.True(t, s.Has(2))
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(1))
	assert.ElementsMatch(t, s.Values(), []types.EntityID{0, 2, 3})
}

func TestSparseSetHasIsBoundsChecked(t *testing.T) {
	s := storage.NewSparseSet(4)
	assert.False(t, s.Has(100))
	assert.False(t, s.Remove(100))
}

func TestSparseSetAddBeyondCapacity(t *testing.T) {
	s := storage.NewSparseSet(2)
	assert.True(t, s.Add(10))
	assert.True(t, s.Has(10))
}

func TestSparseSetGrowPreservesMembers(t *testing.T) {
	s := storage.NewSparseSet(4)
	assert.True(t, s.Add(0))
	assert.True(t, s.Add(3))

	s.Grow(16)
	assert.True(t, s.Has(0))
	assert.True(t, s.Has(3))
	assert.True(t, s.Add(15))

	// Growing to a smaller capacity changes nothing.
	s.Grow(2)
	assert.True(t, s.Has(15))
}

func TestSparseSetEachStopsWhenToldTo(t *testing.T) {
	s := storage.NewSparseSet(8)
	for id := types.EntityID(0); id < 5; id++ {
		assert.True(t, s.Add(id))
	}

	seen := 0
	s.Each(func(types.EntityID) bool {
		seen++
		return seen < 2
	})
	assert.Equal(t, seen, 2)
}

func TestSparseSetClear(t *testing.T) {
	s := storage.NewSparseSet(8)
	assert.True(t, s.Add(2))
	assert.True(t, s.Add(4))

	s.Clear()
	assert.Equal(t, s.Len(), 0)
	assert.False(t, s.Has(2))
	assert.False(t, s.Has(4))

	// The set remains usable after a clear.
	assert.True(t, s.Add(2))
	assert.Equal(t, s.Len(), 1)
}
