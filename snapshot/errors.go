package snapshot

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrComponentMismatchWithSavedState is an error that is returned when a component
	// named by a saved state is not registered with the world it is being restored into.
	ErrComponentMismatchWithSavedState = eris.New("registered components do not match with the saved state")

	// ErrNoSavedState is an error that is returned when a namespace has no saved state.
	ErrNoSavedState = eris.New("no saved state exists for the namespace")
)
