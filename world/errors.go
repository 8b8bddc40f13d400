package world

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidEntityID is returned when an operation receives the reserved
	// BadID sentinel instead of an allocated ID.
	ErrInvalidEntityID = eris.New("invalid entity id")
	// ErrEntityDoesNotExist is returned when an operation references an ID
	// that is not live in this world.
	ErrEntityDoesNotExist = eris.New("entity does not exist")
	// ErrAlreadyImported is returned when a snapshot ID is imported twice.
	ErrAlreadyImported = eris.New("entity id already imported")
)
