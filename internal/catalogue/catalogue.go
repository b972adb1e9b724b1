// Package catalogue loads the static content tables the world runtime
// consults at boot: the map catalogue MapRegistry is initialised from
// (maps are identified by a 32-bit id drawn from a static catalogue),
// and minimal creature/gameobject templates used to seed spawns.
// Gameplay-significant template fields (loot tables, AI scripts beyond
// the hook name) are out of scope; only the fields the core's entity
// constructors need are carried.
//
// Uses the same os.ReadFile + yaml.Unmarshal + indexed-table shape as
// this codebase's other static-content loaders, narrowed to this
// core's fields.
package catalogue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapDescriptor is one row of the static map catalogue.
type MapDescriptor struct {
	ID       uint32  `yaml:"id"`
	Name     string  `yaml:"name"`
	CellSize float64 `yaml:"cell_size"` // 0 means "use the world default"
	UseTiles bool    `yaml:"use_tiles"`
}

type mapListFile struct {
	Maps []MapDescriptor `yaml:"maps"`
}

// MapTable is the static map catalogue, id-indexed.
type MapTable struct {
	byID map[uint32]*MapDescriptor
	ids  []uint32
}

// LoadMapTable loads the map catalogue from a YAML file.
func LoadMapTable(path string) (*MapTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map catalogue: %w", err)
	}
	var f mapListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse map catalogue: %w", err)
	}
	t := &MapTable{byID: make(map[uint32]*MapDescriptor, len(f.Maps))}
	for i := range f.Maps {
		m := &f.Maps[i]
		t.byID[m.ID] = m
		t.ids = append(t.ids, m.ID)
	}
	return t, nil
}

func (t *MapTable) Get(id uint32) (*MapDescriptor, bool) {
	m, ok := t.byID[id]
	return m, ok
}

func (t *MapTable) IDs() []uint32 { return t.ids }

func (t *MapTable) Count() int { return len(t.byID) }

// CreatureTemplate is the minimal static shape a spawned Unit is
// constructed from. Static content loading is an external
// collaborator, specified only at the boundary the core's
// object.NewUnit constructor needs.
type CreatureTemplate struct {
	Entry           uint32  `yaml:"entry"`
	Name            string  `yaml:"name"`
	Level           uint32  `yaml:"level"`
	MaxHealth       uint32  `yaml:"max_health"`
	DisplayID       uint32  `yaml:"display_id"`
	FactionTemplate uint32  `yaml:"faction_template"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	RunSpeed        float64 `yaml:"run_speed"`
	BoundingRadius  float64 `yaml:"bounding_radius"`
}

type creatureListFile struct {
	Creatures []CreatureTemplate `yaml:"creatures"`
}

// CreatureTable is the static creature template table, entry-indexed.
type CreatureTable struct {
	byEntry map[uint32]*CreatureTemplate
}

func LoadCreatureTable(path string) (*CreatureTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read creature table: %w", err)
	}
	var f creatureListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse creature table: %w", err)
	}
	t := &CreatureTable{byEntry: make(map[uint32]*CreatureTemplate, len(f.Creatures))}
	for i := range f.Creatures {
		c := &f.Creatures[i]
		t.byEntry[c.Entry] = c
	}
	return t, nil
}

func (t *CreatureTable) Get(entry uint32) (*CreatureTemplate, bool) {
	c, ok := t.byEntry[entry]
	return c, ok
}

func (t *CreatureTable) Count() int { return len(t.byEntry) }

// GameObjectTemplate is the minimal static shape a spawned GameObject
// is constructed from, plus the scripting hook name invoked on
// activation.
type GameObjectTemplate struct {
	Entry     uint32 `yaml:"entry"`
	Name      string `yaml:"name"`
	DisplayID uint32 `yaml:"display_id"`
	OnActivate string `yaml:"on_activate"` // Lua function name, empty if none
}

type gameObjectListFile struct {
	GameObjects []GameObjectTemplate `yaml:"gameobjects"`
}

// GameObjectTable is the static gameobject template table, entry-indexed.
type GameObjectTable struct {
	byEntry map[uint32]*GameObjectTemplate
}

func LoadGameObjectTable(path string) (*GameObjectTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gameobject table: %w", err)
	}
	var f gameObjectListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse gameobject table: %w", err)
	}
	t := &GameObjectTable{byEntry: make(map[uint32]*GameObjectTemplate, len(f.GameObjects))}
	for i := range f.GameObjects {
		g := &f.GameObjects[i]
		t.byEntry[g.Entry] = g
	}
	return t, nil
}

func (t *GameObjectTable) Get(entry uint32) (*GameObjectTemplate, bool) {
	g, ok := t.byEntry[entry]
	return g, ok
}

func (t *GameObjectTable) Count() int { return len(t.byEntry) }
