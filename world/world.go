package world

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pkg.world.dev/world-engine/lifecycle"
	"pkg.world.dev/world-engine/lifecycle/component"
	ecslog "pkg.world.dev/world-engine/lifecycle/log"
	"pkg.world.dev/world-engine/lifecycle/query"
	"pkg.world.dev/world-engine/lifecycle/storage"
	"pkg.world.dev/world-engine/lifecycle/types"
)

// DefaultNamespace is the namespace a world gets when none is configured.
const DefaultNamespace = "world"

// Interface guards. A world follows the allocator's capacity and gives up its
// per-entity state when the ID space is reset.
var (
	_ lifecycle.Resizer     = (*World)(nil)
	_ lifecycle.Owner       = (*World)(nil)
	_ lifecycle.Invalidator = (*World)(nil)
)

// World is one entity space drawing IDs from a shared allocator. It tracks
// which of the allocator's IDs live here, which components each of them
// carries (as bitmask rows and as an attach-ordered tag set), and keeps every
// registered query's result set synchronized as entities change.
//
// Multiple worlds can share one allocator; an ID is live in at most one of
// them at a time.
type World struct {
	namespace  string
	instanceID string
	alloc      *lifecycle.Allocator

	registry *component.Registry
	entities *storage.SparseSet
	masks    *storage.BitTable
	tags     map[types.EntityID][]types.ComponentID

	queries    []*query.Query
	notQueries []*query.Query

	// ID pairings recorded when entities are imported from a snapshot whose
	// IDs came from another allocator. local is the foreign ID, global ours.
	localToGlobal map[types.EntityID]types.EntityID
	globalToLocal map[types.EntityID]types.EntityID

	Logger *zerolog.Logger
}

// New creates a world attached to the given allocator. The world registers
// itself with the allocator so its entity stores follow capacity changes.
func New(alloc *lifecycle.Allocator, opts ...Option) (*World, error) {
	if alloc == nil {
		return nil, eris.New("an entity allocator is required")
	}
	w := &World{
		namespace:     DefaultNamespace,
		instanceID:    uuid.New().String(),
		alloc:         alloc,
		registry:      component.NewRegistry(),
		entities:      storage.NewSparseSet(alloc.Capacity()),
		masks:         storage.NewBitTable(alloc.Capacity()),
		tags:          make(map[types.EntityID][]types.ComponentID),
		localToGlobal: make(map[types.EntityID]types.EntityID),
		globalToLocal: make(map[types.EntityID]types.EntityID),
		Logger:        &log.Logger,
	}
	for _, opt := range opts {
		opt(w)
	}

	subLogger := w.Logger.With().Str("namespace", w.namespace).Logger()
	w.Logger = &subLogger

	if err := alloc.RegisterResizer(w); err != nil {
		return nil, err
	}

	w.Logger.Info().
		Str("instance_id", w.instanceID).
		Msg("world created")
	return w, nil
}

// Namespace returns the world's namespace.
func (w *World) Namespace() string {
	return w.namespace
}

// InstanceID returns the unique ID assigned to this world instance at
// creation.
func (w *World) InstanceID() string {
	return w.instanceID
}

// Allocator returns the allocator this world draws its IDs from.
func (w *World) Allocator() *lifecycle.Allocator {
	return w.alloc
}

// Registry returns the world's component registry.
func (w *World) Registry() *component.Registry {
	return w.registry
}

// GetRegisteredComponents returns the metadata of every component type
// registered with this world, in registration order.
func (w *World) GetRegisteredComponents() []types.ComponentMetadata {
	return w.registry.Components()
}

// EntityCount returns the number of entities live in this world.
func (w *World) EntityCount() int {
	return w.entities.Len()
}

// QueryCount returns the number of queries registered with this world.
func (w *World) QueryCount() int {
	return len(w.queries)
}

// LogState emits a structured snapshot of the world at the given level:
// registered components, entity count and query count.
func (w *World) LogState(level zerolog.Level) {
	ecslog.World(w.Logger, w, level)
}

// Resize grows the world's per-entity stores to the allocator's new
// capacity. Called by the allocator; entity state is preserved.
func (w *World) Resize(newSize int) error {
	w.entities.Grow(newSize)
	w.masks.Grow(newSize)
	for _, q := range w.queries {
		q.Resize(newSize)
	}
	return nil
}

// Invalidate drops every entity from the world. Called by the allocator when
// the ID space is reset: every ID this world holds is invalid afterwards.
// Component and query registrations survive; only per-entity state goes.
func (w *World) Invalidate() {
	w.entities.Clear()
	w.masks.Reset(w.masks.Capacity())
	w.tags = make(map[types.EntityID][]types.ComponentID)
	w.localToGlobal = make(map[types.EntityID]types.EntityID)
	w.globalToLocal = make(map[types.EntityID]types.EntityID)
	for _, q := range w.queries {
		q.Clear()
	}
	w.Logger.Debug().Msg("world invalidated")
}
