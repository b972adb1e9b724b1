package system

import (
	"time"

	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/world"
)

// CreatureTickSystem runs creature AI/movement updates over every
// active cell of every registered map, during PhaseUpdate.
type CreatureTickSystem struct {
	Registry *world.MapRegistry
	Update   func(*object.Unit)
}

func (s *CreatureTickSystem) Phase() Phase { return PhaseUpdate }

func (s *CreatureTickSystem) Update(dt time.Duration) {
	for _, m := range s.Registry.Maps() {
		m.Grid.TickCreatures(s.Update)
	}
}

// GameObjectTickSystem runs gameobject updates and then deactivates
// idle cells, after creatures have ticked, during PhasePostUpdate.
type GameObjectTickSystem struct {
	Registry *world.MapRegistry
	Update   func(*object.GameObject)
}

func (s *GameObjectTickSystem) Phase() Phase { return PhasePostUpdate }

func (s *GameObjectTickSystem) Update(dt time.Duration) {
	for _, m := range s.Registry.Maps() {
		m.Grid.TickGameObjects(s.Update)
		m.Grid.DeactivateCells()
	}
}
