package world

import (
	"strconv"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/lifecycle/storage"
	"pkg.world.dev/world-engine/lifecycle/types"
)

// AddEntity creates a new entity in this world and returns its ID. The ID is
// either recycled from the shared pool or freshly cut from the cursor; the
// allocator grows every attached store first if the cursor is near capacity.
// The entity starts with no components, so it is added to the result set of
// every registered query with an absence criterion that it matches.
func (w *World) AddEntity() (types.EntityID, error) {
	id, err := w.alloc.Allocate(w)
	if err != nil {
		return types.BadID, err
	}

	w.entities.Add(id)
	w.tags[id] = nil
	for _, q := range w.notQueries {
		if q.Compiled() {
			q.UpdateMask(id, storage.Mask{})
		} else {
			q.Update(id, nil)
		}
	}

	w.Logger.Debug().
		Str("entity_id", strconv.FormatUint(uint64(id), 10)).
		Msg("entity created")
	return id, nil
}

// RemoveEntity removes the entity from this world and hands its ID to the
// allocator's recycle pool. The ID disappears from every query result set,
// its tag set and ID-map entries are dropped, and its bit is cleared in every
// bitmask row. Removing an ID that is not live in this world is a no-op, so
// removal is idempotent.
func (w *World) RemoveEntity(id types.EntityID) {
	if !w.Exists(id) {
		return
	}

	for _, q := range w.queries {
		q.Evict(id)
	}

	w.alloc.Release(id)
	w.entities.Remove(id)
	delete(w.tags, id)
	if local, ok := w.globalToLocal[id]; ok {
		delete(w.globalToLocal, id)
		delete(w.localToGlobal, local)
	}
	w.masks.ClearEntity(id)

	w.Logger.Debug().
		Str("entity_id", strconv.FormatUint(uint64(id), 10)).
		Msg("entity removed")
}

// Exists reports whether id is live in this world.
func (w *World) Exists(id types.EntityID) bool {
	return w.entities.Has(id)
}

// GetEntityComponents returns the metadata of the components attached to the
// entity, in attach order. BadID yields ErrInvalidEntityID; an ID that is not
// live in this world yields ErrEntityDoesNotExist.
func (w *World) GetEntityComponents(id types.EntityID) ([]types.ComponentMetadata, error) {
	if id == types.BadID {
		return nil, eris.Wrap(ErrInvalidEntityID, "")
	}
	if !w.entities.Has(id) {
		return nil, eris.Wrap(ErrEntityDoesNotExist, "")
	}

	tagIDs := w.tags[id]
	out := make([]types.ComponentMetadata, 0, len(tagIDs))
	for _, cid := range tagIDs {
		md, err := w.registry.ByID(cid)
		if err != nil {
			return nil, err
		}
		out = append(out, md)
	}
	return out, nil
}

// Entities returns the IDs live in this world. The order is not meaningful.
func (w *World) Entities() []types.EntityID {
	return w.entities.Values()
}

// ImportEntity creates an entity for an ID that came from another allocator
// (a deserialized snapshot) and records the pairing in the world's ID maps.
// The returned ID is the live one; the foreign ID is only a lookup key.
func (w *World) ImportEntity(local types.EntityID) (types.EntityID, error) {
	if local == types.BadID {
		return types.BadID, eris.Wrap(ErrInvalidEntityID, "")
	}
	if _, ok := w.localToGlobal[local]; ok {
		return types.BadID, eris.Wrap(ErrAlreadyImported, strconv.FormatUint(uint64(local), 10))
	}

	global, err := w.AddEntity()
	if err != nil {
		return types.BadID, err
	}
	w.localToGlobal[local] = global
	w.globalToLocal[global] = local
	return global, nil
}

// GlobalID resolves a foreign snapshot ID to the live ID it was imported as.
func (w *World) GlobalID(local types.EntityID) (types.EntityID, bool) {
	global, ok := w.localToGlobal[local]
	return global, ok
}

// LocalID resolves a live ID back to the foreign snapshot ID it was imported
// from.
func (w *World) LocalID(global types.EntityID) (types.EntityID, bool) {
	local, ok := w.globalToLocal[global]
	return local, ok
}

// componentsOf returns the entity's attached components for filter
// evaluation, in attach order.
func (w *World) componentsOf(id types.EntityID) []types.Component {
	tagIDs := w.tags[id]
	comps := make([]types.Component, 0, len(tagIDs))
	for _, cid := range tagIDs {
		md, err := w.registry.ByID(cid)
		if err != nil {
			continue
		}
		comps = append(comps, md)
	}
	return comps
}
