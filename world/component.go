package world

import (
	"strconv"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/lifecycle/component"
	"pkg.world.dev/world-engine/lifecycle/types"
)

// RegisterComponent registers the component type T with the world. All
// component types must be registered before they can be attached to an
// entity. Each registration that crosses a multiple of 64 component types
// opens a new generation group in the world's bitmask table.
func RegisterComponent[T types.Component](w *World) error {
	compMetadata, err := component.NewComponentMetadata[T]()
	if err != nil {
		return err
	}
	id, err := w.registry.Register(compMetadata)
	if err != nil {
		return err
	}

	group, _ := component.BitLocation(id)
	for w.masks.Groups() <= group {
		w.masks.AddGroup()
	}

	w.Logger.Debug().
		Str("component_name", compMetadata.Name()).
		Int("component_id", int(id)).
		Msg("component registered")
	return nil
}

// AddComponentTo adds the component of type T to the given entity.
func AddComponentTo[T types.Component](w *World, id types.EntityID) error {
	var t T
	return w.AddComponentToEntity(t, id)
}

// RemoveComponentFrom removes the component of type T from the given entity.
func RemoveComponentFrom[T types.Component](w *World, id types.EntityID) error {
	var t T
	return w.RemoveComponentFromEntity(t, id)
}

// HasComponent reports whether the given entity carries the component of
// type T.
func HasComponent[T types.Component](w *World, id types.EntityID) (bool, error) {
	var t T
	return w.EntityHasComponent(t, id)
}

// AddComponentToEntity sets the component's bit on the entity, appends the
// component to the entity's tag set and re-evaluates every registered query
// for the entity. Adding a component the entity already carries is a no-op.
func (w *World) AddComponentToEntity(comp types.Component, id types.EntityID) error {
	c, err := w.checkedMetadata(comp, id)
	if err != nil {
		return err
	}

	group, bit := component.BitLocation(c.ID())
	if w.masks.Test(id, group, bit) {
		return nil
	}
	w.masks.Set(id, group, bit)
	w.tags[id] = append(w.tags[id], c.ID())
	w.updateQueries(id)

	w.Logger.Debug().
		Str("entity_id", strconv.FormatUint(uint64(id), 10)).
		Str("component_name", c.Name()).
		Int("component_id", int(c.ID())).
		Msg("component added to entity")
	return nil
}

// RemoveComponentFromEntity clears the component's bit on the entity, drops
// the component from the entity's tag set and re-evaluates every registered
// query for the entity. Removing a component the entity does not carry is a
// no-op.
func (w *World) RemoveComponentFromEntity(comp types.Component, id types.EntityID) error {
	c, err := w.checkedMetadata(comp, id)
	if err != nil {
		return err
	}

	group, bit := component.BitLocation(c.ID())
	if !w.masks.Test(id, group, bit) {
		return nil
	}
	w.masks.Clear(id, group, bit)
	w.tags[id] = dropTag(w.tags[id], c.ID())
	w.updateQueries(id)

	w.Logger.Debug().
		Str("entity_id", strconv.FormatUint(uint64(id), 10)).
		Str("component_name", c.Name()).
		Int("component_id", int(c.ID())).
		Msg("component removed from entity")
	return nil
}

// EntityHasComponent tests the component's bit on the entity.
func (w *World) EntityHasComponent(comp types.Component, id types.EntityID) (bool, error) {
	c, err := w.checkedMetadata(comp, id)
	if err != nil {
		return false, err
	}
	group, bit := component.BitLocation(c.ID())
	return w.masks.Test(id, group, bit), nil
}

// checkedMetadata validates the entity ID and resolves the component through
// this world's registry, so metadata registered with another world can't
// smuggle in a foreign component ID.
func (w *World) checkedMetadata(comp types.Component, id types.EntityID) (types.ComponentMetadata, error) {
	if id == types.BadID {
		return nil, eris.Wrap(ErrInvalidEntityID, "")
	}
	if !w.entities.Has(id) {
		return nil, eris.Wrap(ErrEntityDoesNotExist, "")
	}
	return w.registry.ByName(comp.Name())
}

// updateQueries re-evaluates every registered query against the entity.
// Compiled queries test the entity's bitmask row; the rest match the
// attached components by name, resolved at most once.
func (w *World) updateQueries(id types.EntityID) {
	mask := w.masks.MaskOf(id)
	var comps []types.Component
	for _, q := range w.queries {
		if q.Compiled() {
			q.UpdateMask(id, mask)
			continue
		}
		if comps == nil {
			comps = w.componentsOf(id)
		}
		q.Update(id, comps)
	}
}

// dropTag removes the first occurrence of cid, preserving attach order.
func dropTag(tags []types.ComponentID, cid types.ComponentID) []types.ComponentID {
	for i, tag := range tags {
		if tag == cid {
			return append(tags[:i], tags[i+1:]...)
		}
	}
	return tags
}
