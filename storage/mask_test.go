package storage_test

import (
	"testing"

	"pkg.world.dev/world-engine/lifecycle/assert"
	"pkg.world.dev/world-engine/lifecycle/storage"
)

func TestMaskSetHas(t *testing.T) {
	var m storage.Mask

	m.Set(0)
	m.Set(63)
	m.Set(64)
	m.Set(200)

	assert.True(t, m.Has(0))
	assert.True(t, m.Has(63))
	assert.True(t, m.Has(64))
	assert.True(t, m.Has(200))
	assert.False(t, m.Has(1))
}

func TestMaskContainsAll(t *testing.T) {
	var have, want storage.Mask
	have.Set(1)
	have.Set(70)
	have.Set(130)

	want.Set(1)
	want.Set(70)
	assert.True(t, have.ContainsAll(want))

	want.Set(129)
	assert.False(t, have.ContainsAll(want))

	// Every mask contains the zero mask.
	assert.True(t, have.ContainsAll(storage.Mask{}))
}

func TestMasksAreComparable(t *testing.T) {
	var a, b storage.Mask
	a.Set(5)
	a.Set(150)
	b.Set(150)
	b.Set(5)
	assert.True(t, a == b)

	b.Set(6)
	assert.True(t, a != b)
}
