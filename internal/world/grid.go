package world

import (
	"go.uber.org/zap"

	"github.com/originrealm/worldcore/internal/guid"
	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/vector"
)

// GridManager owns one map's cellKey->Cell mapping and the set of
// currently active cells. One instance per map id.
type GridManager struct {
	mapID    uint32
	cellSize float32

	cells  map[CellKey]*Cell
	active map[CellKey]struct{}

	onActivate ActivateFunc
	log        *zap.Logger
}

func NewGridManager(mapID uint32, cellSize float32, onActivate ActivateFunc, log *zap.Logger) *GridManager {
	return &GridManager{
		mapID:      mapID,
		cellSize:   cellSize,
		cells:      make(map[CellKey]*Cell),
		active:     make(map[CellKey]struct{}),
		onActivate: onActivate,
		log:        log,
	}
}

func (g *GridManager) cellAt(key CellKey) *Cell {
	c, ok := g.cells[key]
	if !ok {
		c = newCell(key)
		g.cells[key] = c
	}
	return c
}

// neighbourKeys returns the up-to-9 keys stepping from center by
// ±k cells for k in [-r, r]. r=1 is the default 8-neighbour ring used
// by activation and broadcast.
func neighbourKeys(center CellKey, r int32) []CellKey {
	keys := make([]CellKey, 0, (2*r+1)*(2*r+1))
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			keys = append(keys, CellKey{MapID: center.MapID, IX: center.IX + dx, IY: center.IY + dy})
		}
	}
	return keys
}

func (g *GridManager) activateNeighbourhood(center CellKey) {
	for _, k := range neighbourKeys(center, 1) {
		if _, ok := g.active[k]; ok {
			continue
		}
		g.active[k] = struct{}{}
		if cell, ok := g.cells[k]; ok && g.onActivate != nil {
			for _, u := range cell.units {
				g.onActivate(&u.Base)
			}
			for _, gob := range cell.gameobjects {
				g.onActivate(&gob.Base)
			}
		}
	}
}

// AddOrGetPlayer resolves the cell owning loc, materialising it if
// needed, and — when store is true — places p into it. Adding a
// player additionally activates this cell and its 8 neighbours and
// fires onActivate for every creature/gameobject already resident
// there.
func (g *GridManager) AddOrGetPlayer(p *object.Player, loc vector.Vec3, store bool) *Cell {
	key := KeyOf(g.mapID, loc.X, loc.Y, g.cellSize)
	cell := g.cellAt(key)
	if !store {
		return cell
	}
	cell.addPlayer(p)
	g.activateNeighbourhood(key)
	if g.onActivate != nil {
		g.onActivate(&p.Base)
	}
	return cell
}

func (g *GridManager) AddOrGetUnit(u *object.Unit, loc vector.Vec3, store bool) *Cell {
	key := KeyOf(g.mapID, loc.X, loc.Y, g.cellSize)
	cell := g.cellAt(key)
	if store {
		cell.addUnit(u)
	}
	return cell
}

func (g *GridManager) AddOrGetGameObject(obj *object.GameObject, loc vector.Vec3, store bool) *Cell {
	key := KeyOf(g.mapID, loc.X, loc.Y, g.cellSize)
	cell := g.cellAt(key)
	if store {
		cell.addGameObject(obj)
	}
	return cell
}

// UpdatePlayer recomputes the cell key from the player's current
// location. If unchanged, no-op; if changed, moves cells and invokes
// onCellChange.
func (g *GridManager) UpdatePlayer(p *object.Player, newLoc vector.Vec3, onCellChange func()) {
	newKey := KeyOf(g.mapID, newLoc.X, newLoc.Y, g.cellSize)
	old := p.CurrentCell
	if old.Valid && old.MapID == newKey.MapID && old.X == newKey.IX && old.Y == newKey.IY {
		return
	}
	if old.Valid {
		if oc, ok := g.cells[CellKey{MapID: old.MapID, IX: old.X, IY: old.Y}]; ok {
			oc.RemovePlayer(p.Guid)
		}
	}
	g.AddOrGetPlayer(p, newLoc, true)
	if onCellChange != nil {
		onCellChange()
	}
}

// removeObject is the shared body of RemovePlayer/RemoveUnit/
// RemoveGameObject: drop the entity from its current cell's bucket and
// broadcast a destroy packet to everyone within cellSize of its last
// position, excluding itself. fromBucket is called against the owning
// cell, if it was materialised.
func (g *GridManager) removeObject(key object.CellKey, entityGuid guid.Guid, loc vector.Vec3, fromBucket func(*Cell), destroyPacket []byte, sessionOf func(guid.Guid) Sender) {
	if !key.Valid {
		return
	}
	ck := CellKey{MapID: key.MapID, IX: key.X, IY: key.Y}
	if cell, ok := g.cells[ck]; ok {
		fromBucket(cell)
	}
	filter := BroadcastFilter{ExcludeSource: entityGuid, HasSource: true}
	for _, nk := range neighbourKeys(ck, 1) {
		if cell, ok := g.cells[nk]; ok {
			cell.BroadcastWithin(destroyPacket, g.cellSize, loc, filter,
				func(rg guid.Guid) vector.Vec3 { return vec3Of(cell, rg) }, sessionOf)
		}
	}
}

// RemovePlayer removes p from its current cell and broadcasts a
// destroy packet to everyone within cellSize of its last position,
// excluding itself.
func (g *GridManager) RemovePlayer(p *object.Player, destroyPacket []byte, sessionOf func(guid.Guid) Sender) {
	g.removeObject(p.CurrentCell, p.Guid, p.Location, func(c *Cell) { c.RemovePlayer(p.Guid) }, destroyPacket, sessionOf)
}

// RemoveUnit removes a creature from its current cell and broadcasts a
// destroy packet to everyone within cellSize of its last position —
// destroy fan-out applies to any removed entity, not only players.
func (g *GridManager) RemoveUnit(u *object.Unit, destroyPacket []byte, sessionOf func(guid.Guid) Sender) {
	g.removeObject(u.CurrentCell, u.Guid, u.Location, func(c *Cell) { c.RemoveUnit(u.Guid) }, destroyPacket, sessionOf)
}

// RemoveGameObject removes a gameobject from its current cell and
// broadcasts a destroy packet to everyone within cellSize of its last
// position.
func (g *GridManager) RemoveGameObject(obj *object.GameObject, destroyPacket []byte, sessionOf func(guid.Guid) Sender) {
	g.removeObject(obj.CurrentCell, obj.Guid, obj.Location, func(c *Cell) { c.RemoveGameObject(obj.Guid) }, destroyPacket, sessionOf)
}

func vec3Of(cell *Cell, g guid.Guid) vector.Vec3 {
	if p, ok := cell.players[g]; ok {
		return p.Location
	}
	return vector.Vec3{}
}

// Neighbours returns the up-to-9 already-materialised cells around key.
func (g *GridManager) Neighbours(key CellKey, r int32) []*Cell {
	var out []*Cell
	for _, k := range neighbourKeys(key, r) {
		if c, ok := g.cells[k]; ok {
			out = append(out, c)
		}
	}
	return out
}

// SurroundingEntities unions the matching buckets over the 9
// neighbours of center.
type SurroundingEntities struct {
	Players     map[guid.Guid]*object.Player
	Units       map[guid.Guid]*object.Unit
	GameObjects map[guid.Guid]*object.GameObject
}

func (g *GridManager) SurroundingEntities(center CellKey) SurroundingEntities {
	out := SurroundingEntities{
		Players:     make(map[guid.Guid]*object.Player),
		Units:       make(map[guid.Guid]*object.Unit),
		GameObjects: make(map[guid.Guid]*object.GameObject),
	}
	for _, cell := range g.Neighbours(center, 1) {
		for k, v := range cell.players {
			out.Players[k] = v
		}
		for k, v := range cell.units {
			out.Units[k] = v
		}
		for k, v := range cell.gameobjects {
			out.GameObjects[k] = v
		}
	}
	return out
}

// SendSurrounding forwards a broadcast to every neighbour of center.
func (g *GridManager) SendSurrounding(center CellKey, payload []byte, filter BroadcastFilter, sessionOf func(guid.Guid) Sender) {
	for _, cell := range g.Neighbours(center, 1) {
		cell.Broadcast(payload, filter, sessionOf)
	}
}

// SendSurroundingInRange is SendSurrounding with an additional range filter.
func (g *GridManager) SendSurroundingInRange(center CellKey, payload []byte, rng float32, source vector.Vec3, filter BroadcastFilter, locationOf func(guid.Guid) vector.Vec3, sessionOf func(guid.Guid) Sender) {
	for _, cell := range g.Neighbours(center, 1) {
		cell.BroadcastWithin(payload, rng, source, filter, locationOf, sessionOf)
	}
}

// DeactivateCells drops any active cell that has no player in itself
// or any 8-neighbour. Tile unloading is deferred — tiles are never
// unloaded once loaded.
func (g *GridManager) DeactivateCells() {
	for key := range g.active {
		if g.anyPlayerNearby(key) {
			continue
		}
		delete(g.active, key)
	}
}

func (g *GridManager) anyPlayerNearby(key CellKey) bool {
	for _, k := range neighbourKeys(key, 1) {
		if c, ok := g.cells[k]; ok && c.HasPlayers() {
			return true
		}
	}
	return false
}

// TickCreatures invokes update for every creature in every active
// cell. Cells and the creatures within a cell are visited in Go map
// iteration order, which is neither insertion order nor stable between
// ticks; this core preserves only the "creatures before gameobjects
// within a tick" guarantee, not intra-bucket order.
func (g *GridManager) TickCreatures(update func(*object.Unit)) {
	for key := range g.active {
		if cell, ok := g.cells[key]; ok {
			for _, u := range cell.units {
				update(u)
			}
		}
	}
}

// TickGameObjects invokes update for every gameobject in every active
// cell. Always called after TickCreatures within one tick.
func (g *GridManager) TickGameObjects(update func(*object.GameObject)) {
	for key := range g.active {
		if cell, ok := g.cells[key]; ok {
			for _, gob := range cell.gameobjects {
				update(gob)
			}
		}
	}
}

// ActiveCellCount reports the number of currently active cells —
// exposed for metrics/logging, not used by the simulation itself.
func (g *GridManager) ActiveCellCount() int { return len(g.active) }
