package storage

import (
	"pkg.world.dev/world-engine/lifecycle/types"
)

// BitTable stores one bitmask word per entity per generation group. A group
// covers 64 component types; groups are appended as component registration
// crosses each multiple of 64. Row slots are indexed by entity ID, so every
// row is kept sized to the allocator's current capacity.
type BitTable struct {
	capacity int
	rows     [][]uint64
}

// NewBitTable returns a table with no groups whose future rows will cover IDs
// in [0, capacity).
func NewBitTable(capacity int) *BitTable {
	return &BitTable{capacity: capacity}
}

// AddGroup appends a zeroed row for the next generation group and returns the
// group's index.
func (t *BitTable) AddGroup() int {
	t.rows = append(t.rows, make([]uint64, t.capacity))
	return len(t.rows) - 1
}

// Groups returns the number of generation groups.
func (t *BitTable) Groups() int {
	return len(t.rows)
}

// Capacity returns the number of entity slots per row.
func (t *BitTable) Capacity() int {
	return t.capacity
}

// Set sets the given bit in id's word for the given group. The id must be
// inside the table's capacity.
func (t *BitTable) Set(id types.EntityID, group int, bit uint64) {
	t.rows[group][id] |= bit
}

// Clear clears the given bit in id's word for the given group.
func (t *BitTable) Clear(id types.EntityID, group int, bit uint64) {
	t.rows[group][id] &^= bit
}

// Test returns true if the given bit is set in id's word for the given group.
func (t *BitTable) Test(id types.EntityID, group int, bit uint64) bool {
	return t.rows[group][id]&bit != 0
}

// ClearEntity zeroes id's word in every group row.
func (t *BitTable) ClearEntity(id types.EntityID) {
	for group := range t.rows {
		t.rows[group][id] = 0
	}
}

// MaskOf returns a snapshot of id's bits across every group.
func (t *BitTable) MaskOf(id types.EntityID) Mask {
	var m Mask
	for group := range t.rows {
		m[group] = t.rows[group][id]
	}
	return m
}

// Grow extends every row to cover IDs in [0, capacity). Existing bits are
// preserved; a capacity smaller than the current one is ignored.
func (t *BitTable) Grow(capacity int) {
	if capacity <= t.capacity {
		return
	}
	for group, row := range t.rows {
		next := make([]uint64, capacity)
		copy(next, row)
		t.rows[group] = next
	}
	t.capacity = capacity
}

// Reset zeroes every row at the given capacity, keeping the registered
// groups.
func (t *BitTable) Reset(capacity int) {
	t.capacity = capacity
	for group := range t.rows {
		t.rows[group] = make([]uint64, capacity)
	}
}
