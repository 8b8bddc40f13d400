package lifecycle

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	ecslog "pkg.world.dev/world-engine/lifecycle/log"
	"pkg.world.dev/world-engine/lifecycle/statsd"
	"pkg.world.dev/world-engine/lifecycle/types"
)

// Resizer is implemented by collaborators that keep per-entity storage sized
// to the allocator's capacity: worlds, component stores, serializers. Resize
// is called synchronously while no entity operation is in flight.
type Resizer interface {
	Resize(newSize int) error
}

// Owner identifies the world a live entity ID belongs to.
type Owner interface {
	Namespace() string
}

// Invalidator is implemented by resizers that hold per-entity state. When the
// allocator's ID space is reset, every ID they ever saw becomes invalid and
// Invalidate is called before the subsequent Resize.
type Invalidator interface {
	Invalidate()
}

// Allocator hands out entity IDs from a single ID space shared by every world
// attached to it. Removed IDs land in a FIFO pool and are reused only after
// the pool has grown past a configurable fraction of the default capacity,
// which keeps freshly dead IDs out of circulation. Capacity grows ahead of
// the cursor so an allocation never runs out of room mid-operation.
//
// The allocator is not safe for concurrent use. Like the rest of the module
// it assumes a single-threaded, run-to-completion caller.
type Allocator struct {
	defaultSize         int
	size                int
	cursor              int
	reuseThreshold      float64
	configuredThreshold float64
	removed             *recyclePool
	owners              map[types.EntityID]Owner
	resizers            []Resizer

	Logger *zerolog.Logger
}

// NewAllocator creates an allocator with the default capacity of 100000 IDs,
// augmented by the given options.
func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		defaultSize:    DefaultSize,
		reuseThreshold: DefaultRecycleThreshold,
		removed:        newRecyclePool(),
		owners:         make(map[types.EntityID]Owner),
		Logger:         &log.Logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.size = a.defaultSize
	a.configuredThreshold = a.reuseThreshold
	return a
}

// Allocate returns the next entity ID and records owner as the world holding
// it. The ID comes from the recycle pool once the pool has outgrown the reuse
// threshold, and from the cursor otherwise. Capacity is grown first when the
// cursor has entered the top fifth of the current capacity, so the returned
// ID always has storage behind it.
func (a *Allocator) Allocate(owner Owner) (types.EntityID, error) {
	if err := a.growIfNeeded(); err != nil {
		return types.BadID, err
	}

	var id types.EntityID
	if a.removed.len() > a.reuseLimit() {
		id = a.removed.take()
		statsd.EmitAllocStat("entity.recycled")
	} else {
		if a.cursor >= a.size {
			return types.BadID, eris.Wrap(ErrEntityLimitReached, "")
		}
		id = types.EntityID(a.cursor)
		a.cursor++
		statsd.EmitAllocStat("entity.created")
	}

	a.owners[id] = owner
	return id, nil
}

// Release returns a live ID to the recycle pool and forgets its owner. The
// owning world has already detached the ID from its own state. Releasing an
// ID that is not live is a no-op.
func (a *Allocator) Release(id types.EntityID) {
	if _, live := a.owners[id]; !live {
		return
	}
	delete(a.owners, id)
	a.removed.push(id)
	statsd.EmitAllocStat("entity.removed")
}

// OwnerOf returns the world holding id, or false if the ID is not live.
func (a *Allocator) OwnerOf(id types.EntityID) (Owner, bool) {
	owner, ok := a.owners[id]
	return owner, ok
}

// RegisterResizer attaches a collaborator whose per-entity storage must
// follow capacity changes. It is immediately sized to the current capacity.
func (a *Allocator) RegisterResizer(r Resizer) error {
	if err := r.Resize(a.size); err != nil {
		return eris.Wrap(err, "failed to size entity store")
	}
	a.resizers = append(a.resizers, r)
	return nil
}

// Capacity returns the current number of allocatable ID slots.
func (a *Allocator) Capacity() int {
	return a.size
}

// Cursor returns the next never-used ID the allocator will hand out.
func (a *Allocator) Cursor() int {
	return a.cursor
}

// DefaultSize returns the configured default capacity.
func (a *Allocator) DefaultSize() int {
	return a.defaultSize
}

// Recyclable returns the number of IDs waiting in the recycle pool.
func (a *Allocator) Recyclable() int {
	return a.removed.len()
}

// RecycleThreshold returns the fraction of the default capacity the recycle
// pool must exceed before IDs are reused.
func (a *Allocator) RecycleThreshold() float64 {
	return a.reuseThreshold
}

// LogState emits a structured snapshot of the ID space at the given level:
// capacity, cursor and recycle pool depth.
func (a *Allocator) LogState(level zerolog.Level) {
	ecslog.Allocator(a.Logger, a, level)
}

// SetRecycleThreshold changes the reuse gate. The threshold is a fraction of
// the default capacity, so it must be between 0 and 1.
func (a *Allocator) SetRecycleThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return eris.Wrap(ErrInvalidRecycleThreshold, "")
	}
	a.reuseThreshold = threshold
	return nil
}

// SetDefaultSize reconfigures the default capacity and resets the ID space:
// the cursor returns to zero, the recycle pool empties, the reuse threshold
// returns to its configured value and every registered resizer is invalidated
// and resized. Every previously allocated ID becomes invalid. Never call this
// while entity operations are in flight.
func (a *Allocator) SetDefaultSize(size int) error {
	if size <= 0 {
		return eris.Wrap(ErrInvalidDefaultSize, "")
	}
	a.defaultSize = size
	return a.reset()
}

// Reset restores the allocator to its configured defaults, invalidating every
// previously allocated ID. Intended for test isolation and reconfiguration.
func (a *Allocator) Reset() error {
	return a.reset()
}

func (a *Allocator) reset() error {
	a.cursor = 0
	a.removed.reset()
	a.reuseThreshold = a.configuredThreshold
	a.owners = make(map[types.EntityID]Owner)
	a.size = a.defaultSize

	for _, r := range a.resizers {
		if inv, ok := r.(Invalidator); ok {
			inv.Invalidate()
		}
	}
	for _, r := range a.resizers {
		if err := r.Resize(a.size); err != nil {
			return eris.Wrap(err, "failed to resize entity store after reset")
		}
	}

	a.Logger.Info().
		Int("default_size", a.defaultSize).
		Msg("entity id space reset")
	return nil
}

// growIfNeeded grows capacity by roughly half, rounded up to a multiple of 4,
// once the cursor crosses 80% of the current capacity. Growth happens before
// the triggering allocation is assigned its ID.
func (a *Allocator) growIfNeeded() error {
	if a.cursor < a.size-a.size/5 {
		return nil
	}
	half := (a.size + 1) / 2
	delta := (half + 3) / 4 * 4
	return a.setCapacity(a.size + delta)
}

// setCapacity is the single growth path. The cursor and the recycle pool are
// preserved; IDs stay unique across a grow.
func (a *Allocator) setCapacity(size int) error {
	start := time.Now()
	oldSize := a.size
	a.size = size
	for _, r := range a.resizers {
		if err := r.Resize(size); err != nil {
			return eris.Wrap(err, "failed to resize entity store")
		}
	}
	statsd.EmitResizeStat(start)

	a.Logger.Info().
		Int("old_size", oldSize).
		Int("new_size", size).
		Msg("entity capacity grown, resizing all entity stores")
	return nil
}

// reuseLimit returns the pool length the recycle pool must exceed before IDs
// are reused. The fraction applies to the default capacity, not the grown
// one, so recycling does not get rarer as the world grows.
func (a *Allocator) reuseLimit() int {
	return int(math.Round(float64(a.defaultSize) * a.reuseThreshold))
}
