package filter

import (
	"pkg.world.dev/world-engine/lifecycle/types"
)

type all struct{}

// All matches every entity, whatever components it carries.
func All() ComponentFilter {
	return &all{}
}

func (f *all) MatchesComponents(_ []types.Component) bool {
	return true
}
