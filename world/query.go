package world

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/lifecycle/cql"
	"pkg.world.dev/world-engine/lifecycle/filter"
	"pkg.world.dev/world-engine/lifecycle/query"
	"pkg.world.dev/world-engine/lifecycle/types"
)

// RegisterQuery registers a query for the given filter. The world seeds the
// query's result set from the current population and keeps it synchronized
// from then on: entity creation feeds queries with absence criteria,
// component changes re-evaluate the touched entity, and removal evicts the
// entity everywhere.
//
// When every component the filter names is already registered, the query is
// compiled down to a bitmask predicate and fed from the world's bit table.
// Otherwise it falls back to matching attached components by name, which
// also covers filters that mention components registered later.
func (w *World) RegisterQuery(f filter.ComponentFilter) (*query.Query, error) {
	if f == nil {
		return nil, eris.New("a component filter is required")
	}

	q := query.New(f, w.alloc.Capacity(), w.resolveComponentID)
	if q.Compiled() {
		w.entities.Each(func(id types.EntityID) bool {
			q.UpdateMask(id, w.masks.MaskOf(id))
			return true
		})
	} else {
		w.entities.Each(func(id types.EntityID) bool {
			q.Update(id, w.componentsOf(id))
			return true
		})
	}

	w.queries = append(w.queries, q)
	if q.HasAbsence() {
		w.notQueries = append(w.notQueries, q)
	}
	return q, nil
}

// resolveComponentID maps a component name to its registered ID for filter
// compilation.
func (w *World) resolveComponentID(name string) (types.ComponentID, bool) {
	md, err := w.registry.ByName(name)
	if err != nil {
		return 0, false
	}
	return md.ID(), true
}

// RegisterQueryFromCQL parses a CQL expression, resolving component names
// through this world's registry, and registers the resulting filter.
func (w *World) RegisterQueryFromCQL(cqlText string) (*query.Query, error) {
	f, err := cql.Parse(cqlText, w.registry.ByName)
	if err != nil {
		return nil, err
	}
	return w.RegisterQuery(f)
}
