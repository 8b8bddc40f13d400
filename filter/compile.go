package filter

import (
	"pkg.world.dev/world-engine/lifecycle/storage"
	"pkg.world.dev/world-engine/lifecycle/types"
)

// MaskResolver maps a component name to the bit position assigned to it by a
// world's registry. The second return is false for names that are not
// registered.
type MaskResolver func(name string) (types.ComponentID, bool)

// MaskPredicate evaluates a filter against an entity's component bitmask.
type MaskPredicate func(storage.Mask) bool

// CompileMask lowers a filter tree to word tests against an entity's bitmask
// snapshot, resolving component names to bit positions up front. Compilation
// fails when a referenced component is not registered yet (its bit position
// is unknown until registration) or when the tree contains a filter
// implementation this package does not know; the caller then keeps evaluating
// the filter against component lists, which matches by name and needs no
// resolution.
func CompileMask(f ComponentFilter, resolve MaskResolver) (MaskPredicate, bool) {
	switch v := f.(type) {
	case *all:
		return func(storage.Mask) bool { return true }, true
	case *contains:
		required, ok := maskOf(v.components, resolve)
		if !ok {
			return nil, false
		}
		return func(m storage.Mask) bool { return m.ContainsAll(required) }, true
	case *exact:
		want, ok := maskOf(v.components, resolve)
		if !ok {
			return nil, false
		}
		return func(m storage.Mask) bool { return m == want }, true
	case *not:
		sub, ok := CompileMask(v.filter, resolve)
		if !ok {
			return nil, false
		}
		return func(m storage.Mask) bool { return !sub(m) }, true
	case *and:
		subs, ok := compileEvery(v.filters, resolve)
		if !ok {
			return nil, false
		}
		return func(m storage.Mask) bool {
			for _, sub := range subs {
				if !sub(m) {
					return false
				}
			}
			return true
		}, true
	case *or:
		subs, ok := compileEvery(v.filters, resolve)
		if !ok {
			return nil, false
		}
		return func(m storage.Mask) bool {
			for _, sub := range subs {
				if sub(m) {
					return true
				}
			}
			return false
		}, true
	}
	return nil, false
}

func compileEvery(filters []ComponentFilter, resolve MaskResolver) ([]MaskPredicate, bool) {
	subs := make([]MaskPredicate, 0, len(filters))
	for _, f := range filters {
		sub, ok := CompileMask(f, resolve)
		if !ok {
			return nil, false
		}
		subs = append(subs, sub)
	}
	return subs, true
}

func maskOf(components []types.Component, resolve MaskResolver) (storage.Mask, bool) {
	var m storage.Mask
	for _, c := range components {
		id, ok := resolve(c.Name())
		if !ok {
			return m, false
		}
		m.Set(int(id))
	}
	return m, true
}
