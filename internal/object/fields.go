// Package object implements the entity base type, its UpdateFieldArray,
// and the kind-tagged variants (object/unit/player/container/gameobject/
// item) that make up the update-field wire protocol.
//
// Grounded on original_source/game/world/managers/objects/ObjectManager.py
// and utils.constants.UpdateFields (field index layout), adapted into a
// single flat per-kind enumeration so encode/decode stay branchless.
package object

// Kind tags which field layout an entity uses. Each kind is a strict
// superset of its parent's range.
type Kind uint8

const (
	KindObject Kind = iota
	KindUnit
	KindPlayer
	KindItem
	KindContainer
	KindGameObject
)

// FieldType describes how a field's wire value is interpreted. It does
// not change storage (every field is 1 or 2 uint32 slots) — it only
// selects the encode/decode helper used against that slot.
type FieldType uint8

const (
	TypeInt32 FieldType = iota
	TypeUint32
	TypeFloat
	TypeInt64
	TypeUint64
)

// Object fields — the root layout shared by every entity kind.
const (
	ObjectFieldGUID    = 0 // uint64, slots 0-1
	ObjectFieldType    = 2 // uint32
	ObjectFieldEntry   = 3 // uint32
	ObjectFieldScaleX  = 4 // float
	objectFieldEnd     = 5
)

// Unit fields — extend Object.
const (
	UnitFieldHealth          = objectFieldEnd + 0 // uint32
	UnitFieldMaxHealth       = objectFieldEnd + 1 // uint32
	UnitFieldLevel           = objectFieldEnd + 2 // uint32
	UnitFieldFlags           = objectFieldEnd + 3 // uint32
	UnitFieldDisplayID       = objectFieldEnd + 4 // uint32
	UnitFieldFactionTemplate = objectFieldEnd + 5 // uint32
	UnitFieldBaseAttackTime  = objectFieldEnd + 6 // uint32
	unitFieldEnd             = objectFieldEnd + 7
)

// Player fields — extend Unit.
const (
	PlayerFieldXP              = unitFieldEnd + 0 // uint32
	PlayerFieldNextLevelXP     = unitFieldEnd + 1 // uint32
	PlayerFieldCharacterPoints = unitFieldEnd + 2 // uint32
	playerFieldEnd             = unitFieldEnd + 3
)

// Item fields — extend Object.
const (
	ItemFieldOwner      = objectFieldEnd + 0 // uint64, 2 slots
	ItemFieldContained  = objectFieldEnd + 2 // uint64, 2 slots
	ItemFieldStackCount = objectFieldEnd + 4 // uint32
	ItemFieldDuration   = objectFieldEnd + 5 // uint32
	itemFieldEnd        = objectFieldEnd + 6
)

// ContainerNumSlots bounds how many item slots a container's field
// layout reserves; each slot holds a uint64 item guid (2 slots).
const ContainerNumSlots = 20

// Container fields — extend Item.
const (
	ContainerFieldNumSlots = itemFieldEnd + 0                             // uint32
	containerFieldSlot1    = itemFieldEnd + 1                             // uint64[ContainerNumSlots], 2 slots each
	containerFieldEnd      = containerFieldSlot1 + ContainerNumSlots*2
)

// ContainerFieldSlot returns the field index of item slot i (0-based).
func ContainerFieldSlot(i int) int {
	return containerFieldSlot1 + i*2
}

// GameObject fields — extend Object.
const (
	GameObjectFieldDisplayID = objectFieldEnd + 0 // uint32
	GameObjectFieldFlags     = objectFieldEnd + 1 // uint32
	GameObjectFieldState     = objectFieldEnd + 2 // uint32
	gameObjectFieldEnd       = objectFieldEnd + 3
)

// FieldCount returns the number of uint32 slots a kind's layout
// occupies — the size its UpdateFieldArray and UpdateMask are
// allocated to. Writing outside this range is a programmer error.
func FieldCount(k Kind) int {
	switch k {
	case KindObject:
		return objectFieldEnd
	case KindUnit:
		return unitFieldEnd
	case KindPlayer:
		return playerFieldEnd
	case KindItem:
		return itemFieldEnd
	case KindContainer:
		return containerFieldEnd
	case KindGameObject:
		return gameObjectFieldEnd
	default:
		return objectFieldEnd
	}
}
