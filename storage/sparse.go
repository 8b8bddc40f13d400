package storage

import (
	"pkg.world.dev/world-engine/lifecycle/types"
)

// SparseSet is an unordered set of entity IDs with O(1) insert, remove and
// membership tests. The dense slice packs the members contiguously for cheap
// iteration; the sparse slice maps an ID to its position in dense.
type SparseSet struct {
	dense  []types.EntityID
	sparse []int
}

// NewSparseSet returns an empty set with the sparse index sized for IDs in
// [0, capacity).
func NewSparseSet(capacity int) *SparseSet {
	s := &SparseSet{
		dense:  make([]types.EntityID, 0, capacity),
		sparse: make([]int, capacity),
	}
	for i := range s.sparse {
		s.sparse[i] = -1
	}
	return s
}

// Add inserts id into the set. It returns false if the id was already present.
func (s *SparseSet) Add(id types.EntityID) bool {
	if s.Has(id) {
		return false
	}
	s.ensure(id)
	s.sparse[id] = len(s.dense)
	s.dense = append(s.dense, id)
	return true
}

// Remove deletes id from the set by swapping the last dense element into its
// slot. It returns false if the id was not present.
func (s *SparseSet) Remove(id types.EntityID) bool {
	if !s.Has(id) {
		return false
	}
	idx := s.sparse[id]
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[idx] = moved
	s.sparse[moved] = idx
	s.dense = s.dense[:last]
	s.sparse[id] = -1
	return true
}

// Has returns true if id is in the set.
func (s *SparseSet) Has(id types.EntityID) bool {
	return id < types.EntityID(len(s.sparse)) && s.sparse[id] != -1
}

// Len returns the number of members.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// At returns the member at position i in the dense slice.
func (s *SparseSet) At(i int) types.EntityID {
	return s.dense[i]
}

// Each calls fn for every member until fn returns false. Members must not be
// added or removed during iteration.
func (s *SparseSet) Each(fn func(types.EntityID) bool) {
	for _, id := range s.dense {
		if !fn(id) {
			return
		}
	}
}

// Values returns a copy of the members in dense order.
func (s *SparseSet) Values() []types.EntityID {
	out := make([]types.EntityID, len(s.dense))
	copy(out, s.dense)
	return out
}

// Clear removes every member, keeping the sparse index's current size.
func (s *SparseSet) Clear() {
	for _, id := range s.dense {
		s.sparse[id] = -1
	}
	s.dense = s.dense[:0]
}

// Grow extends the sparse index to cover IDs in [0, capacity). Growing never
// drops members; a capacity smaller than the current one is ignored.
func (s *SparseSet) Grow(capacity int) {
	for len(s.sparse) < capacity {
		s.sparse = append(s.sparse, -1)
	}
}

func (s *SparseSet) ensure(id types.EntityID) {
	for types.EntityID(len(s.sparse)) <= id {
		s.sparse = append(s.sparse, -1)
	}
}
