package filter

import (
	"pkg.world.dev/world-engine/lifecycle/types"
)

// ComponentFilter is a filter that filters entities based on their components.
type ComponentFilter interface {
	// MatchesComponents returns true if an entity carrying exactly the given
	// components satisfies the filter.
	MatchesComponents(components []types.Component) bool
}

// Component returns the zero value of the component type T for use in filter
// construction. Filters only ever consult the component's Name.
func Component[T types.Component]() types.Component {
	var x T
	return x
}
