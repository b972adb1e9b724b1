// Package guid implements the 64-bit entity guid format: a HighGuid tag
// in the high bits and an opaque low-bit identity, matching the
// HighGuid scheme in the original source's utils.constants.ObjectCodes.
package guid

// HighGuid tags the kind of entity a Guid's high bits encode.
type HighGuid uint64

const (
	HighGuidUnit      HighGuid = 0xF130_0000_0000_0000
	HighGuidPlayer    HighGuid = 0x0000_0000_0000_0000
	HighGuidGameObject HighGuid = 0xF110_0000_0000_0000
	HighGuidItem      HighGuid = 0xF120_0000_0000_0000
	HighGuidContainer HighGuid = 0xF121_0000_0000_0000
)

// mask covers the high 16 bits — the portion HighGuid occupies.
const mask = 0xFFFF_0000_0000_0000

// Guid is the wire-visible 64-bit entity identifier.
type Guid uint64

// New packs a HighGuid tag and a low-bit identity into one Guid.
func New(high HighGuid, low uint64) Guid {
	return Guid(uint64(high) | (low &^ mask))
}

// High extracts the HighGuid tag.
func (g Guid) High() HighGuid {
	return HighGuid(uint64(g) & mask)
}

// Low strips the HighGuid tag, returning the opaque low-bit identity.
// Storage operations use this; wire operations use the raw Guid.
func (g Guid) Low() uint64 {
	return uint64(g) &^ mask
}

// IsPlayer reports whether g is tagged as a player guid. Player guids
// carry no HighGuid tag (the original source leaves the high bits
// zero for players), so this is simply "low 48 bits equal the whole
// value and no other tag matches."
func (g Guid) IsPlayer() bool {
	return g.High() == HighGuidPlayer
}
