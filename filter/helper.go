package filter

import (
	"pkg.world.dev/world-engine/lifecycle/types"
)

// MatchComponentMetadata returns true if the given slice of components contains the given component.
// Components are the same if they have the same Name.
func MatchComponentMetadata(
	components []types.ComponentMetadata,
	cType types.ComponentMetadata,
) bool {
	for _, c := range components {
		if cType.Name() == c.Name() {
			return true
		}
	}
	return false
}

// MatchComponent returns true if the given slice of components contains the given component.
// Components are the same if they have the same Name.
func MatchComponent(
	components []types.Component,
	cType types.Component,
) bool {
	for _, c := range components {
		if cType.Name() == c.Name() {
			return true
		}
	}
	return false
}

// ContainsAbsence reports whether the filter, or any filter nested inside it,
// negates its criterion. A freshly created entity carries no components, so
// filters with an absence criterion are the only registered filters that can
// newly match it at creation time.
func ContainsAbsence(f ComponentFilter) bool {
	switch v := f.(type) {
	case *not:
		return true
	case *and:
		for _, sub := range v.filters {
			if ContainsAbsence(sub) {
				return true
			}
		}
	case *or:
		for _, sub := range v.filters {
			if ContainsAbsence(sub) {
				return true
			}
		}
	}
	return false
}
