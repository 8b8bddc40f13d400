package snapshot_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pkg.world.dev/world-engine/lifecycle/assert"
	"pkg.world.dev/world-engine/lifecycle/snapshot"
	"pkg.world.dev/world-engine/lifecycle/world"
)

func newTestStore(t *testing.T) *snapshot.Store {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:     s.Addr(),
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	return snapshot.NewStore(client)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.NilError(t, store.Save(ctx, "alpha", []byte("first")))
	bz, err := store.Load(ctx, "alpha")
	assert.NilError(t, err)
	assert.DeepEqual(t, bz, []byte("first"))

	// Saving again replaces the previous state.
	assert.NilError(t, store.Save(ctx, "alpha", []byte("second")))
	bz, err = store.Load(ctx, "alpha")
	assert.NilError(t, err)
	assert.DeepEqual(t, bz, []byte("second"))
}

func TestLoadMissingNamespace(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load(context.Background(), "never-saved")
	assert.ErrorIs(t, err, snapshot.ErrNoSavedState)
}

func TestDeleteRemovesTheSavedState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.NilError(t, store.Save(ctx, "alpha", []byte("state")))
	assert.NilError(t, store.Delete(ctx, "alpha"))
	_, err := store.Load(ctx, "alpha")
	assert.ErrorIs(t, err, snapshot.ErrNoSavedState)

	// Deleting a namespace with nothing saved is a no-op.
	assert.NilError(t, store.Delete(ctx, "alpha"))
}

func TestNamespacesListsOnlySavedStates(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:     s.Addr(),
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	store := snapshot.NewStore(client)

	namespaces, err := store.Namespaces(ctx)
	assert.NilError(t, err)
	assert.Len(t, namespaces, 0)

	assert.NilError(t, store.Save(ctx, "alpha", []byte("a")))
	assert.NilError(t, store.Save(ctx, "beta", []byte("b")))
	// Keys that are not snapshots must not show up.
	assert.NilError(t, client.Set(ctx, "unrelated", "x", 0).Err())

	namespaces, err = store.Namespaces(ctx)
	assert.NilError(t, err)
	assert.ElementsMatch(t, namespaces, []string{"alpha", "beta"})
}

func TestNewRedisStoreConnects(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	store := snapshot.NewRedisStore(s.Addr(), "")

	assert.NilError(t, store.Save(ctx, "alpha", []byte("state")))
	bz, err := store.Load(ctx, "alpha")
	assert.NilError(t, err)
	assert.DeepEqual(t, bz, []byte("state"))
	assert.NilError(t, store.Close())
}

func TestSaveAndRestoreThroughRedis(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	src := newTestWorld(t, world.WithNamespace("shard-1"))
	assert.NilError(t, world.RegisterComponent[Foo](src))
	id, err := src.AddEntity()
	assert.NilError(t, err)
	assert.NilError(t, world.AddComponentTo[Foo](src, id))

	bz, err := newTestSerializer(t, src).Serialize(ctx)
	assert.NilError(t, err)
	assert.NilError(t, store.Save(ctx, src.Namespace(), bz))

	loaded, err := store.Load(ctx, "shard-1")
	assert.NilError(t, err)

	dst := newTestWorld(t, world.WithNamespace("shard-1"))
	assert.NilError(t, world.RegisterComponent[Foo](dst))
	assert.NilError(t, newTestSerializer(t, dst).Deserialize(ctx, loaded))

	global, ok := dst.GlobalID(id)
	assert.True(t, ok)
	has, err := world.HasComponent[Foo](dst, global)
	assert.NilError(t, err)
	assert.True(t, has)
}
