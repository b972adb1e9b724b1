package object

import "github.com/originrealm/worldcore/internal/guid"

// Player is a player-controlled character: Unit fields plus the
// Player field range (xp, next-level xp, character points).
//
// Player guids carry no HighGuid tag — callers must construct the
// guid accordingly before passing it here.
type Player struct {
	Base

	AccountID uint64
	Name      string
}

func NewPlayer(g guid.Guid, entry uint32, name string, accountID uint64, level, maxHealth uint32) *Player {
	p := &Player{Base: Base{Guid: g, Entry: entry}, AccountID: accountID, Name: name}
	p.InitFields(KindPlayer)
	p.SetUint32(UnitFieldLevel, level)
	p.SetUint32(UnitFieldMaxHealth, maxHealth)
	p.SetUint32(UnitFieldHealth, maxHealth)
	return p
}

func (p *Player) Health() uint32 { return p.GetUint32(UnitFieldHealth) }

func (p *Player) SetHealth(v uint32) {
	max := p.GetUint32(UnitFieldMaxHealth)
	if v > max {
		v = max
	}
	p.SetUint32(UnitFieldHealth, v)
}

func (p *Player) XP() uint32 { return p.GetUint32(PlayerFieldXP) }

// GrantXP adds xp to the player's total, clamping nothing — level-up
// thresholds and other gameplay formulas are a handler concern.
func (p *Player) GrantXP(xp uint32) {
	p.SetUint32(PlayerFieldXP, p.XP()+xp)
}
