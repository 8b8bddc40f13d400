package types

import "math"

// EntityID is the unique identifier of an entity. IDs are handed out by a
// single allocator and shared across every world attached to it, so a live ID
// refers to exactly one entity in exactly one world.
type EntityID uint64

// BadID is a reserved sentinel that is never allocated to an entity. Use it
// the way you would use nil for a pointer.
var BadID EntityID = math.MaxUint64
