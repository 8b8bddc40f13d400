package types

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrComponentSchemaMismatch is returned when a component's schema does not match
	// the schema it is validated against (e.g. the schema found in a saved snapshot).
	ErrComponentSchemaMismatch = eris.New("component schema does not match target schema")
)
