package catalogue

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadMapTable(t *testing.T) {
	path := writeTemp(t, "maps.yaml", `
maps:
  - id: 0
    name: Eastern Continent
    cell_size: 100
    use_tiles: true
  - id: 1
    name: Western Continent
`)
	table, err := LoadMapTable(path)
	if err != nil {
		t.Fatalf("LoadMapTable() error: %v", err)
	}
	if table.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", table.Count())
	}
	m, ok := table.Get(0)
	if !ok {
		t.Fatalf("expected map id 0 to be present")
	}
	if m.Name != "Eastern Continent" || m.CellSize != 100 || !m.UseTiles {
		t.Errorf("unexpected map descriptor: %+v", m)
	}
	if _, ok := table.Get(99); ok {
		t.Errorf("unregistered map id must not be found")
	}
}

func TestLoadMapTableMissingFile(t *testing.T) {
	if _, err := LoadMapTable("/no/such/map_list.yaml"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadCreatureTable(t *testing.T) {
	path := writeTemp(t, "creatures.yaml", `
creatures:
  - entry: 1
    name: Boar
    level: 3
    max_health: 40
    display_id: 620
    faction_template: 31
`)
	table, err := LoadCreatureTable(path)
	if err != nil {
		t.Fatalf("LoadCreatureTable() error: %v", err)
	}
	c, ok := table.Get(1)
	if !ok || c.Name != "Boar" || c.MaxHealth != 40 {
		t.Fatalf("unexpected creature template: %+v, ok=%v", c, ok)
	}
}

func TestLoadGameObjectTable(t *testing.T) {
	path := writeTemp(t, "gameobjects.yaml", `
gameobjects:
  - entry: 5
    name: Treasure Chest
    display_id: 1001
    on_activate: chest_open
`)
	table, err := LoadGameObjectTable(path)
	if err != nil {
		t.Fatalf("LoadGameObjectTable() error: %v", err)
	}
	g, ok := table.Get(5)
	if !ok || g.OnActivate != "chest_open" {
		t.Fatalf("unexpected gameobject template: %+v, ok=%v", g, ok)
	}
	if _, ok := table.Get(404); ok {
		t.Errorf("unregistered gameobject entry must not be found")
	}
}
