package lifecycle

import (
	"pkg.world.dev/world-engine/lifecycle/types"
)

// compactAt is the head offset past which take compacts the backing slice
// instead of letting consumed slots accumulate.
const compactAt = 1024

// recyclePool is a FIFO queue of removed entity IDs. Oldest-removed IDs are
// reused first, which maximizes the time between an ID's death and its
// rebirth. Backed by a slice with a head index; consumed slots are compacted
// away once they dominate the slice.
type recyclePool struct {
	ids  []types.EntityID
	head int
}

func newRecyclePool() *recyclePool {
	return &recyclePool{}
}

func (p *recyclePool) push(id types.EntityID) {
	p.ids = append(p.ids, id)
}

// take pops the oldest ID. The pool must not be empty.
func (p *recyclePool) take() types.EntityID {
	id := p.ids[p.head]
	p.head++
	switch {
	case p.head == len(p.ids):
		p.ids = p.ids[:0]
		p.head = 0
	case p.head > compactAt && p.head*2 > len(p.ids):
		n := copy(p.ids, p.ids[p.head:])
		p.ids = p.ids[:n]
		p.head = 0
	}
	return id
}

func (p *recyclePool) len() int {
	return len(p.ids) - p.head
}

func (p *recyclePool) reset() {
	p.ids = p.ids[:0]
	p.head = 0
}
