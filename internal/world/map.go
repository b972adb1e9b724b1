package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/terrain"
)

// Map pairs one map id's GridManager with its terrain query surface.
type Map struct {
	ID   uint32
	Name string

	Grid    *GridManager
	Terrain *terrain.Query
}

// MapRegistry is the process-wide mapId->Map lookup, initialised once
// at startup from the static map catalogue.
type MapRegistry struct {
	maps map[uint32]*Map
	log  *zap.Logger
}

func NewMapRegistry(log *zap.Logger) *MapRegistry {
	return &MapRegistry{maps: make(map[uint32]*Map), log: log}
}

// Register adds a map, constructing its GridManager with the given
// cell size and activation hook.
func (r *MapRegistry) Register(id uint32, name string, cellSize float32, onActivate ActivateFunc, terrainQuery *terrain.Query) *Map {
	m := &Map{
		ID:      id,
		Name:    name,
		Grid:    NewGridManager(id, cellSize, onActivate, r.log),
		Terrain: terrainQuery,
	}
	r.maps[id] = m
	return m
}

// Maps returns every registered map for systems that tick them
// individually by phase.
func (r *MapRegistry) Maps() []*Map {
	maps := make([]*Map, 0, len(r.maps))
	for _, m := range r.maps {
		maps = append(maps, m)
	}
	return maps
}

func (r *MapRegistry) Get(id uint32) (*Map, error) {
	m, ok := r.maps[id]
	if !ok {
		return nil, fmt.Errorf("world: unknown map id %d", id)
	}
	return m, nil
}

// Height/Water/TerrainType/AreaFlag delegate to the owning map's
// terrain query surface by inspecting the map id.
func (r *MapRegistry) Height(mapID uint32, x, y, defaultZ float32) float32 {
	m, err := r.Get(mapID)
	if err != nil {
		return defaultZ
	}
	return m.Terrain.Height(mapID, x, y, defaultZ)
}

func (r *MapRegistry) Water(mapID uint32, x, y float32) float32 {
	m, err := r.Get(mapID)
	if err != nil {
		return 0
	}
	return m.Terrain.Water(mapID, x, y)
}

func (r *MapRegistry) TerrainType(mapID uint32, x, y float32) float32 {
	m, err := r.Get(mapID)
	if err != nil {
		return 0
	}
	return m.Terrain.TerrainType(mapID, x, y)
}

func (r *MapRegistry) AreaFlag(mapID uint32, x, y float32) float32 {
	m, err := r.Get(mapID)
	if err != nil {
		return 0
	}
	return m.Terrain.AreaFlag(mapID, x, y)
}

// Tick walks every registered map's active cells: creatures before
// gameobjects within a map, then deactivates idle cells. Within a cell
// entities are visited in Go map iteration order, not insertion order;
// between two cells no ordering is promised.
func (r *MapRegistry) Tick(updateCreature func(*object.Unit), updateGameObject func(*object.GameObject)) {
	for _, m := range r.maps {
		m.Grid.TickCreatures(updateCreature)
		m.Grid.TickGameObjects(updateGameObject)
		m.Grid.DeactivateCells()
	}
}
