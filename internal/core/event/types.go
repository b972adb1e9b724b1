package event

import (
	"github.com/originrealm/worldcore/internal/core/ecs"
	"github.com/originrealm/worldcore/internal/guid"
)

// CellActivated fires once per entity the GridManager's activation hook
// is invoked for, carrying that entity's cell: the joining player's cell
// on every placement, and a newly activated cell once per creature or
// gameobject in it (again after a deactivated cell is re-activated) —
// the trigger a terrain loader or AI subsystem subscribes to for lazy
// tile loading and creature wake-up.
type CellActivated struct {
	MapID  uint32
	IX, IY int32
}

// EntityDestroyed fires once an entity transitions Placed -> Removed,
// after its destroy packet has been broadcast.
type EntityDestroyed struct {
	EntityID ecs.EntityID
	Guid     guid.Guid
}

// SessionDisconnected fires when the game loop handles a dead session
// that had a character in the world, so subsystems holding a back-pointer (group/guild presence,
// social lists) can react without polling.
type SessionDisconnected struct {
	EntityID  ecs.EntityID
	SessionID uint64
}

// PlayerLoggedIn fires once a character has been loaded and placed
// into its map's GridManager.
type PlayerLoggedIn struct {
	EntityID    ecs.EntityID
	AccountName string
}
