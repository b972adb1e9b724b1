package object

import "github.com/originrealm/worldcore/internal/guid"

// GameObjectState mirrors the original source's door/chest/lever state
// values exposed on GAMEOBJECT_FIELD_STATE.
type GameObjectState uint32

const (
	GameObjectStateReady    GameObjectState = 0
	GameObjectStateActive   GameObjectState = 1
	GameObjectStateDestroyed GameObjectState = 2
)

// GameObject is an interactive world object: chest, door, lever, quest
// trigger. Carries display id, flags and a tri-state activation value.
type GameObject struct {
	Base
}

func NewGameObject(g guid.Guid, entry uint32, displayID uint32) *GameObject {
	go_ := &GameObject{Base: Base{Guid: g, Entry: entry}}
	go_.InitFields(KindGameObject)
	go_.SetUint32(GameObjectFieldDisplayID, displayID)
	go_.SetUint32(GameObjectFieldState, uint32(GameObjectStateReady))
	return go_
}

func (g *GameObject) State() GameObjectState {
	return GameObjectState(g.GetUint32(GameObjectFieldState))
}

func (g *GameObject) SetState(s GameObjectState) {
	g.SetUint32(GameObjectFieldState, uint32(s))
}
