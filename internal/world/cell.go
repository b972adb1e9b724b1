// Package world implements the spatial runtime: Cell, GridManager, and
// MapRegistry — the map/grid/cell decomposition that performs
// area-of-interest filtering and drives the periodic tick.
//
// Grounded on the integer cellKey idiom used elsewhere in this
// codebase's spatial indexing, and on
// original_source/game/world/managers/maps/GridManager.py for the
// add/remove/broadcast contract this package generalizes.
package world

import (
	"github.com/originrealm/worldcore/internal/guid"
	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/vector"
)

// CellKey identifies a cell by integer grid coordinate — (ix, iy) =
// (floor(x/CELL_SIZE), floor(y/CELL_SIZE)) — rather than the original
// source's rounded-decimal string concatenation.
type CellKey struct {
	MapID  uint32
	IX, IY int32
}

// CellCoord floors v/cellSize, matching negative coordinates correctly.
func CellCoord(v float32, cellSize float32) int32 {
	q := v / cellSize
	i := int32(q)
	if q < 0 && float32(i) != q {
		i--
	}
	return i
}

// KeyOf derives the cell key owning world position (x, y) on mapID.
func KeyOf(mapID uint32, x, y, cellSize float32) CellKey {
	return CellKey{MapID: mapID, IX: CellCoord(x, cellSize), IY: CellCoord(y, cellSize)}
}

// ActivateFunc is invoked for the player each time a player is placed,
// and once per creature/gameobject whenever a cell they occupy becomes
// active — the trigger for terrain tile loading and AI wake-up.
type ActivateFunc func(ent *object.Base)

// Cell is a passive container bucketing entities by kind.
type Cell struct {
	Key CellKey

	players     map[guid.Guid]*object.Player
	units       map[guid.Guid]*object.Unit
	gameobjects map[guid.Guid]*object.GameObject
}

func newCell(key CellKey) *Cell {
	return &Cell{
		Key:         key,
		players:     make(map[guid.Guid]*object.Player),
		units:       make(map[guid.Guid]*object.Unit),
		gameobjects: make(map[guid.Guid]*object.GameObject),
	}
}

// addPlayer places a player into this cell's player bucket and records
// the back-pointer. Neighbour activation is the caller's
// responsibility (GridManager owns the owning-map context a Cell
// lacks).
func (c *Cell) addPlayer(p *object.Player) {
	c.players[p.Guid] = p
	p.CurrentCell = object.CellKey{MapID: c.Key.MapID, X: c.Key.IX, Y: c.Key.IY, Valid: true}
}

func (c *Cell) addUnit(u *object.Unit) {
	c.units[u.Guid] = u
	u.CurrentCell = object.CellKey{MapID: c.Key.MapID, X: c.Key.IX, Y: c.Key.IY, Valid: true}
}

func (c *Cell) addGameObject(g *object.GameObject) {
	c.gameobjects[g.Guid] = g
	g.CurrentCell = object.CellKey{MapID: c.Key.MapID, X: c.Key.IX, Y: c.Key.IY, Valid: true}
}

// RemovePlayer drops a player from this cell's bucket by guid. No
// neighbour bookkeeping: removal only drops the entity from its
// bucket.
func (c *Cell) RemovePlayer(g guid.Guid) { delete(c.players, g) }
func (c *Cell) RemoveUnit(g guid.Guid)       { delete(c.units, g) }
func (c *Cell) RemoveGameObject(g guid.Guid) { delete(c.gameobjects, g) }

// HasPlayers reports whether any player currently occupies this cell.
func (c *Cell) HasPlayers() bool { return len(c.players) > 0 }

// Contains reports whether v falls within this cell's bounds on mapID.
func (c *Cell) Contains(v vector.Vec3, mapID uint32, cellSize float32) bool {
	if mapID != c.Key.MapID {
		return false
	}
	return CellCoord(v.X, cellSize) == c.Key.IX && CellCoord(v.Y, cellSize) == c.Key.IY
}

// Players returns the live player bucket for iteration. Callers must
// not mutate the map directly; iteration order is Go's randomized map
// order, and insertion order is not recorded anywhere.
func (c *Cell) Players() map[guid.Guid]*object.Player { return c.players }
func (c *Cell) Units() map[guid.Guid]*object.Unit             { return c.units }
func (c *Cell) GameObjects() map[guid.Guid]*object.GameObject { return c.gameobjects }

// BroadcastFilter narrows recipients of a Cell broadcast. All three
// predicates are optional and checked in this order: exclude explicit
// source, exclude guid set, exclude by friends-list.
type BroadcastFilter struct {
	ExcludeSource guid.Guid
	HasSource     bool
	ExcludeGuids  map[guid.Guid]struct{}
	IgnoredBy     func(recipient guid.Guid) bool
}

func (f BroadcastFilter) excludes(g guid.Guid) bool {
	if f.HasSource && g == f.ExcludeSource {
		return true
	}
	if f.ExcludeGuids != nil {
		if _, ok := f.ExcludeGuids[g]; ok {
			return true
		}
	}
	if f.IgnoredBy != nil && f.IgnoredBy(g) {
		return true
	}
	return false
}

// Sender delivers a single framed packet to one player session.
// Implemented by the net/session layer; kept as an interface here so
// world never imports net — transport is an external collaborator.
type Sender interface {
	Enqueue(payload []byte)
	Online() bool
}

// Broadcast sends payload to every online player in this cell not
// excluded by filter. Only players with the online flag set receive
// packets.
func (c *Cell) Broadcast(payload []byte, filter BroadcastFilter, sessionOf func(guid.Guid) Sender) {
	for g := range c.players {
		if filter.excludes(g) {
			continue
		}
		s := sessionOf(g)
		if s == nil || !s.Online() {
			continue
		}
		s.Enqueue(payload)
	}
}

// BroadcastWithin is Broadcast additionally filtered by Euclidean
// distance from source in world coordinates. rng <= 0 degrades to an
// unconditional broadcast.
func (c *Cell) BroadcastWithin(payload []byte, rng float32, source vector.Vec3, filter BroadcastFilter, locationOf func(guid.Guid) vector.Vec3, sessionOf func(guid.Guid) Sender) {
	for g := range c.players {
		if filter.excludes(g) {
			continue
		}
		if rng > 0 && !source.Within(locationOf(g), rng) {
			continue
		}
		s := sessionOf(g)
		if s == nil || !s.Online() {
			continue
		}
		s.Enqueue(payload)
	}
}
