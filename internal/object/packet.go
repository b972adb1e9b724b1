package object

import (
	"encoding/binary"
	"math"

	"github.com/originrealm/worldcore/internal/guid"
)

// UpdateType tags which of the three wire update shapes a packet carries.
type UpdateType uint8

const (
	UpdateTypeCreateObject UpdateType = 0
	UpdateTypeMovement     UpdateType = 1
	UpdateTypePartial      UpdateType = 2
)

// header writes the shared {transactionCount=1, updateType, entityGuid}
// prefix every update packet starts with.
func appendHeader(buf []byte, t UpdateType, g guid.Guid) []byte {
	var tmp [13]byte
	binary.LittleEndian.PutUint32(tmp[0:4], 1)
	tmp[4] = byte(t)
	binary.LittleEndian.PutUint64(tmp[5:13], uint64(g))
	return append(buf, tmp[:]...)
}

// appendMovementBlock serializes the transport + location + speed block
// shared by CREATE_OBJECT and MOVEMENT.
func (b *Base) appendMovementBlock(buf []byte) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(b.TransportGuid))
	buf = append(buf, tmp[:]...)

	putF := func(v float32) {
		var w [4]byte
		binary.LittleEndian.PutUint32(w[:], math.Float32bits(v))
		buf = append(buf, w[:]...)
	}
	putU32 := func(v uint32) {
		var w [4]byte
		binary.LittleEndian.PutUint32(w[:], v)
		buf = append(buf, w[:]...)
	}

	putF(b.Transport.X)
	putF(b.Transport.Y)
	putF(b.Transport.Z)
	putF(b.Transport.O)
	putF(b.Location.X)
	putF(b.Location.Y)
	putF(b.Location.Z)
	putF(b.Location.O)
	putF(b.Pitch)
	putU32(b.MovementFlags)
	putU32(0) // fallTime — always 0
	putF(b.WalkSpeed)
	putF(b.RunSpeed)
	putF(b.SwimSpeed)
	putF(b.TurnRate)
	return buf
}

// MiscBlock is the fixed CREATE_OBJECT misc block.
type MiscBlock struct {
	IsSelf      bool
	AttackCycle uint32
	TimerID     uint32
	VictimGuid  guid.Guid
}

// BuildCreateObject assembles a CREATE_OBJECT packet: header, type-id
// byte, movement block, misc block, then a full field-delta (every
// populated field, regardless of dirty state).
func (b *Base) BuildCreateObject(misc MiscBlock) []byte {
	buf := appendHeader(nil, UpdateTypeCreateObject, b.Guid)
	buf = append(buf, byte(b.Kind))
	buf = b.appendMovementBlock(buf)

	var self byte
	if misc.IsSelf {
		self = 1
	}
	buf = append(buf, self)
	var tmp [16]byte
	binary.LittleEndian.PutUint32(tmp[0:4], misc.AttackCycle)
	binary.LittleEndian.PutUint32(tmp[4:8], misc.TimerID)
	binary.LittleEndian.PutUint64(tmp[8:16], uint64(misc.VictimGuid))
	buf = append(buf, tmp[:]...)

	buf = append(buf, b.fieldsUpdate(true)...)
	return buf
}

// BuildMovement assembles a MOVEMENT packet: header + movement block only.
func (b *Base) BuildMovement() []byte {
	buf := appendHeader(nil, UpdateTypeMovement, b.Guid)
	return b.appendMovementBlock(buf)
}

// BuildPartial assembles a PARTIAL packet: header + the current dirty
// field-delta only. Callers are expected to call Reset after the
// packet has been handed to the outbox.
func (b *Base) BuildPartial() []byte {
	buf := appendHeader(nil, UpdateTypePartial, b.Guid)
	return append(buf, b.fieldsUpdate(false)...)
}
