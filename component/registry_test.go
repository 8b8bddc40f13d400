package component_test

import (
	"fmt"
	"testing"

	"pkg.world.dev/world-engine/lifecycle/assert"
	"pkg.world.dev/world-engine/lifecycle/component"
	"pkg.world.dev/world-engine/lifecycle/types"
)

type Health struct {
	HP int
}

func (Health) Name() string { return "health" }

// fakeMetadata is a minimal metadata implementation used to drive the
// registry through many registrations without declaring a type per name.
type fakeMetadata struct {
	name string
	id   types.ComponentID
}

func (f *fakeMetadata) Name() string { return f.name }

func (f *fakeMetadata) SetID(id types.ComponentID) error {
	f.id = id
	return nil
}

func (f *fakeMetadata) ID() types.ComponentID { return f.id }

func (f *fakeMetadata) New() ([]byte, error) { return nil, nil }

func (f *fakeMetadata) Encode(any) ([]byte, error) { return nil, nil }

func (f *fakeMetadata) Decode([]byte) (types.Component, error) { return nil, nil }

func (f *fakeMetadata) GetSchema() []byte { return nil }

func (f *fakeMetadata) ValidateAgainstSchema([]byte) error { return nil }

func TestRegistryAssignsSequentialIDs(t *testing.T) {
	r := component.NewRegistry()

	energy, err := component.NewComponentMetadata[Energy]()
	assert.NilError(t, err)
	health, err := component.NewComponentMetadata[Health]()
	assert.NilError(t, err)

	id, err := r.Register(energy)
	assert.NilError(t, err)
	assert.Equal(t, id, types.ComponentID(0))

	id, err = r.Register(health)
	assert.NilError(t, err)
	assert.Equal(t, id, types.ComponentID(1))

	assert.Equal(t, r.Len(), 2)

	got, err := r.ByName("energy")
	assert.NilError(t, err)
	assert.Equal(t, got.ID(), types.ComponentID(0))

	got, err = r.ByID(1)
	assert.NilError(t, err)
	assert.Equal(t, got.Name(), "health")

	ordered := r.Components()
	assert.Len(t, ordered, 2)
	assert.Equal(t, ordered[0].Name(), "energy")
	assert.Equal(t, ordered[1].Name(), "health")
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	r := component.NewRegistry()

	first, err := component.NewComponentMetadata[Energy]()
	assert.NilError(t, err)
	_, err = r.Register(first)
	assert.NilError(t, err)

	second, err := component.NewComponentMetadata[Energy]()
	assert.NilError(t, err)
	_, err = r.Register(second)
	assert.ErrorContains(t, err, "already registered")
	assert.Equal(t, r.Len(), 1)
}

func TestRegistryUnknownLookups(t *testing.T) {
	r := component.NewRegistry()

	_, err := r.ByName("missing")
	assert.ErrorIs(t, err, component.ErrComponentNotRegistered)

	_, err = r.ByID(0)
	assert.ErrorIs(t, err, component.ErrComponentNotRegistered)

	_, err = r.ByID(-1)
	assert.ErrorIs(t, err, component.ErrComponentNotRegistered)
}

func TestRegistryComponentLimit(t *testing.T) {
	r := component.NewRegistry()
	for i := 0; i < component.MaxComponentTypes; i++ {
		_, err := r.Register(&fakeMetadata{name: fmt.Sprintf("component-%d", i)})
		assert.NilError(t, err)
	}
	assert.Equal(t, r.Len(), component.MaxComponentTypes)

	_, err := r.Register(&fakeMetadata{name: "one-too-many"})
	assert.ErrorIs(t, err, component.ErrComponentLimitReached)
}

func TestBitLocation(t *testing.T) {
	testCases := []struct {
		id        types.ComponentID
		wantGroup int
		wantBit   uint64
	}{
		{0, 0, 1 << 0},
		{5, 0, 1 << 5},
		{63, 0, 1 << 63},
		{64, 1, 1 << 0},
		{130, 2, 1 << 2},
		{255, 3, 1 << 63},
	}
	for _, tc := range testCases {
		group, bit := component.BitLocation(tc.id)
		assert.Equal(t, group, tc.wantGroup)
		assert.Equal(t, bit, tc.wantBit)
	}
}
