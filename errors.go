package lifecycle

import (
	"github.com/rotisserie/eris"
)

var (
	ErrEntityLimitReached      = eris.New("entity id space exhausted")
	ErrInvalidRecycleThreshold = eris.New("recycle threshold must be between 0 and 1")
	ErrInvalidDefaultSize      = eris.New("default capacity must be positive")
)
