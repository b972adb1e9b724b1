package object

import "github.com/originrealm/worldcore/internal/guid"

// Unit is a creature or NPC: the Unit field range layered on Object
// (health, level, flags, display id, faction, attack timing).
type Unit struct {
	Base
}

// NewUnit constructs a Unit, seeding the fields every creature needs to
// present itself on a CREATE_OBJECT sync.
func NewUnit(g guid.Guid, entry uint32, level, maxHealth uint32, displayID, factionTemplate uint32) *Unit {
	u := &Unit{Base: Base{Guid: g, Entry: entry}}
	u.InitFields(KindUnit)
	u.SetUint32(UnitFieldLevel, level)
	u.SetUint32(UnitFieldMaxHealth, maxHealth)
	u.SetUint32(UnitFieldHealth, maxHealth)
	u.SetUint32(UnitFieldDisplayID, displayID)
	u.SetUint32(UnitFieldFactionTemplate, factionTemplate)
	return u
}

// Health returns the unit's current health field.
func (u *Unit) Health() uint32 { return u.GetUint32(UnitFieldHealth) }

// SetHealth clamps to [0, MaxHealth] and marks the field dirty.
func (u *Unit) SetHealth(v uint32) {
	max := u.GetUint32(UnitFieldMaxHealth)
	if v > max {
		v = max
	}
	u.SetUint32(UnitFieldHealth, v)
}

// IsAlive reports whether the unit's health field is nonzero.
func (u *Unit) IsAlive() bool { return u.Health() > 0 }
