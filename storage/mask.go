package storage

// MaxGroups is the number of 64-bit generation groups a Mask can hold.
// It bounds the number of component types a single world can register.
const MaxGroups = 4

// Mask is a fixed-size snapshot of an entity's component bits across every
// generation group. Bit positions correspond to component IDs. Masks are
// comparable, so an exact-composition check is a plain ==.
type Mask [MaxGroups]uint64

// Set sets the bit at the given position.
func (m *Mask) Set(pos int) {
	m[pos/64] |= 1 << (uint(pos) % 64)
}

// Has returns true if the bit at the given position is set.
func (m Mask) Has(pos int) bool {
	return m[pos/64]&(1<<(uint(pos)%64)) != 0
}

// ContainsAll returns true if every bit set in other is also set in m.
func (m Mask) ContainsAll(other Mask) bool {
	for i := range m {
		if m[i]&other[i] != other[i] {
			return false
		}
	}
	return true
}
