package query

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/lifecycle/filter"
	"pkg.world.dev/world-engine/lifecycle/storage"
	"pkg.world.dev/world-engine/lifecycle/types"
)

var ErrNoEntitiesFound = eris.New("no entities match the query")

// Query pairs a component filter with a cached result set. The world that
// registered the query keeps the result set synchronized as entities are
// created, mutated and removed, so iteration never re-scans the entity space.
//
// When every component the filter names is registered at creation time, the
// filter is compiled to word tests against entity bitmasks and membership
// updates skip the component list entirely.
type Query struct {
	filter     filter.ComponentFilter
	pred       filter.MaskPredicate
	results    *storage.SparseSet
	hasAbsence bool
}

// New creates a query for the given filter with a result set sized for IDs in
// [0, capacity). A non-nil resolver enables mask compilation; when the filter
// does not compile (a component it names has no bit position yet) the query
// falls back to evaluating component lists.
func New(f filter.ComponentFilter, capacity int, resolve filter.MaskResolver) *Query {
	q := &Query{
		filter:     f,
		results:    storage.NewSparseSet(capacity),
		hasAbsence: filter.ContainsAbsence(f),
	}
	if resolve != nil {
		if pred, ok := filter.CompileMask(f, resolve); ok {
			q.pred = pred
		}
	}
	return q
}

// Filter returns the filter the query was registered with.
func (q *Query) Filter() filter.ComponentFilter {
	return q.filter
}

// HasAbsence reports whether the filter contains an absence criterion. Only
// these queries can match an entity the moment it is created, before any
// component is attached.
func (q *Query) HasAbsence() bool {
	return q.hasAbsence
}

// Compiled reports whether the filter was lowered to mask word tests.
// Compiled queries are kept up to date through UpdateMask, the rest through
// Update.
func (q *Query) Compiled() bool {
	return q.pred != nil
}

// Matches evaluates the filter against a component list.
func (q *Query) Matches(components []types.Component) bool {
	return q.filter.MatchesComponents(components)
}

// Update re-evaluates the filter for an entity carrying the given components
// and adds or removes the entity from the result set accordingly.
func (q *Query) Update(id types.EntityID, components []types.Component) {
	if q.filter.MatchesComponents(components) {
		q.results.Add(id)
	} else {
		q.results.Remove(id)
	}
}

// UpdateMask re-evaluates the compiled predicate against an entity's bitmask
// snapshot and adds or removes the entity from the result set accordingly.
// Only valid on compiled queries.
func (q *Query) UpdateMask(id types.EntityID, mask storage.Mask) {
	if q.pred(mask) {
		q.results.Add(id)
	} else {
		q.results.Remove(id)
	}
}

// Evict removes the entity from the result set, whether or not it was a
// member.
func (q *Query) Evict(id types.EntityID) {
	q.results.Remove(id)
}

// Each executes the given callback on every entity in the result set. If any
// call to the callback returns false, no more entities will be processed.
func (q *Query) Each(callback func(types.EntityID) bool) {
	q.results.Each(callback)
}

// Count returns the number of entities in the result set.
func (q *Query) Count() int {
	return q.results.Len()
}

// First returns an entity from the result set, or ErrNoEntitiesFound when the
// set is empty.
func (q *Query) First() (types.EntityID, error) {
	if q.results.Len() == 0 {
		return types.BadID, eris.Wrap(ErrNoEntitiesFound, "")
	}
	return q.results.At(0), nil
}

// Resize grows the result set's index to the allocator's new capacity.
func (q *Query) Resize(capacity int) {
	q.results.Grow(capacity)
}

// Clear empties the result set.
func (q *Query) Clear() {
	q.results.Clear()
}
