package world

import (
	"testing"

	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/terrain"
)

func TestMapRegistryRegisterAndGet(t *testing.T) {
	reg := NewMapRegistry(nopLogger())
	reg.Register(0, "Eastern Continent", testCellSize, nil, terrain.NewQuery(nopLogger()))

	m, err := reg.Get(0)
	if err != nil {
		t.Fatalf("Get(0) error: %v", err)
	}
	if m.Name != "Eastern Continent" {
		t.Errorf("Name = %q, want %q", m.Name, "Eastern Continent")
	}
	if _, err := reg.Get(999); err == nil {
		t.Fatalf("expected an error looking up an unregistered map id")
	}
}

func TestMapRegistryTerrainDelegation(t *testing.T) {
	reg := NewMapRegistry(nopLogger())
	reg.Register(0, "Map0", testCellSize, nil, terrain.NewQuery(nopLogger()))

	// No tile table registered on the terrain.Query for map 0, so every
	// query must fall back to its documented default.
	if got := reg.Height(0, 0, 0, 12.5); got != 12.5 {
		t.Errorf("Height() fallback = %v, want 12.5", got)
	}
	if got := reg.Water(0, 0, 0); got != 0 {
		t.Errorf("Water() fallback = %v, want 0", got)
	}
	if got := reg.Height(12345, 0, 0, 7); got != 7 {
		t.Errorf("Height() on unregistered map must also return the default, got %v", got)
	}
}

func TestMapRegistryTickOrdersCreaturesBeforeGameObjects(t *testing.T) {
	reg := NewMapRegistry(nopLogger())
	m := reg.Register(0, "Map0", testCellSize, nil, terrain.NewQuery(nopLogger()))

	p := newTestPlayer(1, 10, 10) // makes the cell active
	m.Grid.AddOrGetPlayer(p, p.Location, true)
	u := newTestCreature(2, 10, 10)
	m.Grid.AddOrGetUnit(u, u.Location, true)
	goEnt := object.NewGameObject(u.Guid+1000, 1, 1)
	goEnt.Location = u.Location
	m.Grid.AddOrGetGameObject(goEnt, goEnt.Location, true)

	var order []string
	reg.Tick(
		func(*object.Unit) { order = append(order, "unit") },
		func(*object.GameObject) { order = append(order, "gameobject") },
	)

	if len(order) != 2 || order[0] != "unit" || order[1] != "gameobject" {
		t.Fatalf("expected creatures ticked before gameobjects within one Tick(), got %v", order)
	}
}
