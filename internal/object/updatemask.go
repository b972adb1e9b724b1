package object

// UpdateMask is a per-entity bitmap marking which field indices changed
// since the last flush. One bit per uint32 slot; 64-bit fields set two
// adjacent bits.
type UpdateMask struct {
	bits []uint32 // one bit per field, packed 32 per word
}

// NewUpdateMask allocates a mask sized for fieldCount fields.
func NewUpdateMask(fieldCount int) UpdateMask {
	words := (fieldCount + 31) / 32
	return UpdateMask{bits: make([]uint32, words)}
}

// Set marks field i dirty.
func (m *UpdateMask) Set(i int) {
	m.bits[i/32] |= 1 << uint(i%32)
}

// IsSet reports whether field i is marked dirty.
func (m UpdateMask) IsSet(i int) bool {
	return m.bits[i/32]&(1<<uint(i%32)) != 0
}

// Reset clears all dirty bits without touching any stored value — a
// reset clears the mask but preserves values on read.
func (m *UpdateMask) Reset() {
	for i := range m.bits {
		m.bits[i] = 0
	}
}

// SetAll marks every field in [0, fieldCount) dirty — used to build a
// full CREATE_OBJECT sync for a newly-visible entity.
func (m *UpdateMask) SetAll(fieldCount int) {
	for i := 0; i < fieldCount; i++ {
		m.Set(i)
	}
}

// BlockCount is the number of mask words the wire format carries.
func (m UpdateMask) BlockCount() int {
	return len(m.bits)
}

// Words returns the raw mask words, most-significant-field-last,
// matching the wire layout's blockCount-prefixed word list.
func (m UpdateMask) Words() []uint32 {
	return m.bits
}

// FieldCount is the number of individually-addressable field bits this
// mask covers (== words*32, including any padding past the entity's
// true field count — callers iterate i < fieldCount of the owning
// entity, not this value).
func (m UpdateMask) FieldCount() int {
	return len(m.bits) * 32
}
