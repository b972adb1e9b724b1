// Package terrain implements the abstract terrain query surface: height,
// water level, area flag, and terrain type sampling by world coordinate,
// with lazily-materialized 64x64 tile tables per map.
//
// Grounded on original_source/game/world/managers/maps/MapManager.py
// (calculate_tile / get_height / get_water_level / get_terrain_type /
// get_area_flag) and the SIZE/resolution constants it derives from.
package terrain

import (
	"go.uber.org/zap"

	"github.com/originrealm/worldcore/internal/vector"
)

// Resolution constants for the four sampled grids. Each tile covers
// SIZE world units on a side; a resolution of N means the tile is
// sampled on an NxN sub-grid.
const (
	ResolutionHeight  = 128
	ResolutionWater   = 32
	ResolutionTerrain = 32
	ResolutionFlags   = 16
)

// tileCount is the fixed 64x64 tile table every map holds.
const tileCount = 64

// Tile holds one map tile's sampled data. Tiles are loaded on demand
// and never unloaded.
type Tile struct {
	Height [ResolutionHeight + 1][ResolutionHeight + 1]float32
	Water  [ResolutionWater + 1][ResolutionWater + 1]float32
	// AreaTerrain backs both terrain-type and area-flag queries. The
	// original source's get_area_flag reads the same grid as
	// get_terrain_type rather than a dedicated flags grid — preserved
	// here rather than silently split into two grids.
	AreaTerrain [ResolutionTerrain + 1][ResolutionTerrain + 1]float32
}

// Loader materializes a single tile's data, typically from a packed
// terrain file. Abstracted so the core never parses terrain files
// directly.
type Loader interface {
	LoadTile(mapID uint32, tileX, tileY int) (*Tile, error)
}

// NullLoader is a Loader that returns a flat, featureless tile for
// every request — useful for maps whose packed terrain files aren't
// available yet; a real deployment supplies its own Loader at the
// same boundary.
type NullLoader struct{}

func (NullLoader) LoadTile(mapID uint32, tileX, tileY int) (*Tile, error) {
	return &Tile{}, nil
}

// Table is one map's lazily-materialized 64x64 tile grid.
type Table struct {
	mapID  uint32
	loader Loader
	used   [tileCount][tileCount]bool
	tiles  [tileCount][tileCount]*Tile
	log    *zap.Logger
}

func NewTable(mapID uint32, loader Loader, log *zap.Logger) *Table {
	return &Table{mapID: mapID, loader: loader, log: log}
}

// EnsureLoaded loads the tile at (tileX, tileY) if it has not already
// been requested. Out-of-range coordinates are ignored.
func (t *Table) EnsureLoaded(tileX, tileY int) {
	if tileX < 0 || tileX >= tileCount || tileY < 0 || tileY >= tileCount {
		return
	}
	if t.used[tileX][tileY] {
		return
	}
	t.used[tileX][tileY] = true
	tile, err := t.loader.LoadTile(t.mapID, tileX, tileY)
	if err != nil {
		t.log.Warn("terrain tile load failed",
			zap.Uint32("map", t.mapID), zap.Int("tileX", tileX), zap.Int("tileY", tileY), zap.Error(err))
		return
	}
	t.tiles[tileX][tileY] = tile
}

// calculateTile converts a world coordinate to (tileX, tileY, localX,
// localY) at the given sub-resolution, mirroring MapManager.calculate_tile.
func calculateTile(x, y float32, resolution int) (tileX, tileY, localX, localY int) {
	cx := vector.ClampCoord(x)
	cy := vector.ClampCoord(y)
	tileX = int(32.0 - float64(cx)/vector.SIZE)
	tileY = int(32.0 - float64(cy)/vector.SIZE)
	localX = int(float64(resolution) * (32.0 - float64(cx)/vector.SIZE - float64(tileX)))
	localY = int(float64(resolution) * (32.0 - float64(cy)/vector.SIZE - float64(tileY)))
	return
}

func lerp(a, b, amount float32) float32 {
	return a + (b-a)*amount
}

// Query is the terrain-query surface MapRegistry exposes.
type Query struct {
	tables map[uint32]*Table
	log    *zap.Logger
}

func NewQuery(log *zap.Logger) *Query {
	return &Query{tables: make(map[uint32]*Table), log: log}
}

// Register adds a map's tile table so queries against that map id can
// be served. Maps without a registered table always return defaults.
func (q *Query) Register(mapID uint32, table *Table) {
	q.tables[mapID] = table
}

func (q *Query) tileAt(mapID uint32, tileX, tileY int) *Tile {
	table, ok := q.tables[mapID]
	if !ok || tileX < 0 || tileX >= tileCount || tileY < 0 || tileY >= tileCount {
		return nil
	}
	table.EnsureLoaded(tileX, tileY)
	return table.tiles[tileX][tileY]
}

// Height samples bilinearly-interpolated ground height. On missing
// tile data, defaultZ is returned and a warning is logged.
func (q *Query) Height(mapID uint32, x, y, defaultZ float32) float32 {
	tileX, tileY, localX, localY := calculateTile(x, y, ResolutionHeight)
	tile := q.tileAt(mapID, tileX, tileY)
	if tile == nil {
		q.log.Warn("terrain height: tile not found", zap.Uint32("map", mapID), zap.Int("tileX", tileX), zap.Int("tileY", tileY))
		return defaultZ
	}

	xNorm := float32(ResolutionHeight)*(32.0-x/vector.SIZE-float32(tileX)) - float32(localX)
	yNorm := float32(ResolutionHeight)*(32.0-y/vector.SIZE-float32(tileY)) - float32(localY)

	h := func(lx, ly int) float32 {
		if lx < 0 || lx > ResolutionHeight || ly < 0 || ly > ResolutionHeight {
			return defaultZ
		}
		return tile.Height[lx][ly]
	}

	top := lerp(h(localX, localY), h(localX+1, localY), xNorm)
	bottom := lerp(h(localX, localY+1), h(localX+1, localY+1), xNorm)
	return lerp(top, bottom, yNorm)
}

// Water samples the water level grid. Missing tile data yields 0.
func (q *Query) Water(mapID uint32, x, y float32) float32 {
	tileX, tileY, localX, localY := calculateTile(x, y, ResolutionWater)
	tile := q.tileAt(mapID, tileX, tileY)
	if tile == nil {
		return 0
	}
	return tile.Water[localX][localY]
}

// TerrainType samples the area/terrain grid. Missing tile data yields 0.
func (q *Query) TerrainType(mapID uint32, x, y float32) float32 {
	tileX, tileY, localX, localY := calculateTile(x, y, ResolutionTerrain)
	tile := q.tileAt(mapID, tileX, tileY)
	if tile == nil {
		return 0
	}
	return tile.AreaTerrain[localX][localY]
}

// AreaFlag samples area flags. The original source reads this from the
// same area-terrain grid as TerrainType rather than a dedicated flags
// grid — ambiguous whether that's intentional; preserved as-is.
func (q *Query) AreaFlag(mapID uint32, x, y float32) float32 {
	return q.TerrainType(mapID, x, y)
}
