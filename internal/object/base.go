package object

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/originrealm/worldcore/internal/guid"
	"github.com/originrealm/worldcore/internal/vector"
)

// CellKey identifies the grid cell an entity currently belongs to.
// Zero value (Valid == false) means "unplaced" in the entity
// lifecycle: Unplaced -> Placed(cell) -> ... -> Removed.
type CellKey struct {
	MapID uint32
	X, Y  int32
	Valid bool
}

// Base is the entity header shared by every kind: guid, map id, world
// location + orientation, movement parameters, display parameters, and
// the UpdateFieldArray.
type Base struct {
	Guid  guid.Guid
	Entry uint32
	Kind  Kind
	MapID uint32

	Location vector.Vec3

	// Movement parameters.
	WalkSpeed      float32
	RunSpeed       float32
	SwimSpeed      float32
	TurnRate       float32
	MovementFlags  uint32
	Pitch          float32
	TransportGuid  guid.Guid
	Transport      vector.Vec3

	// Display parameters.
	NativeDisplayID  uint32
	CurrentDisplayID uint32
	NativeScale      float32
	CurrentScale     float32
	BoundingRadius   float32
	Faction          uint32

	// CurrentCell tracks which Cell owns this entity; empty for
	// unplaced entities.
	CurrentCell CellKey

	values []uint32
	mask   UpdateMask
}

// InitFields allocates the value/mask arrays sized for the entity's
// kind and seeds the fields every kind carries (guid, type, entry,
// scale). Must be called once by each kind constructor.
func (b *Base) InitFields(k Kind) {
	b.Kind = k
	n := FieldCount(k)
	b.values = make([]uint32, n)
	b.mask = NewUpdateMask(n)
	b.setUint32(ObjectFieldGUID, uint32(uint64(b.Guid)))
	b.setUint32(ObjectFieldGUID+1, uint32(uint64(b.Guid)>>32))
	b.setUint32(ObjectFieldType, uint32(k))
	b.setUint32(ObjectFieldEntry, b.Entry)
	b.CurrentScale = b.NativeScale
	b.setFloat(ObjectFieldScaleX, b.CurrentScale)
}

func (b *Base) checkRange(index int) {
	if index < 0 || index >= len(b.values) {
		panic(fmt.Sprintf("object: field index %d out of range for kind %d (fields 0..%d)", index, b.Kind, len(b.values)))
	}
}

// setUint32 writes without marking the mask dirty — used only for the
// initial seed fields in InitFields, which a fresh CREATE_OBJECT sync
// emits in full regardless of mask state.
func (b *Base) setUint32(index int, v uint32) {
	b.checkRange(index)
	b.values[index] = v
}

func (b *Base) setFloat(index int, v float32) {
	b.setUint32(index, math.Float32bits(v))
}

// SetInt32 encodes value little-endian into slot index and marks it dirty.
func (b *Base) SetInt32(index int, value int32) {
	b.checkRange(index)
	b.values[index] = uint32(value)
	b.mask.Set(index)
}

// GetInt32 reads the last value written at index, regardless of mask state.
func (b *Base) GetInt32(index int) int32 {
	b.checkRange(index)
	return int32(b.values[index])
}

func (b *Base) SetUint32(index int, value uint32) {
	b.checkRange(index)
	b.values[index] = value
	b.mask.Set(index)
}

func (b *Base) GetUint32(index int) uint32 {
	b.checkRange(index)
	return b.values[index]
}

func (b *Base) SetFloat(index int, value float32) {
	b.checkRange(index)
	b.values[index] = math.Float32bits(value)
	b.mask.Set(index)
}

func (b *Base) GetFloat(index int) float32 {
	b.checkRange(index)
	return math.Float32frombits(b.values[index])
}

// SetInt64 consumes two adjacent slots (index, index+1) and sets both
// mask bits — 64-bit fields consume two adjacent word slots and set
// two adjacent mask bits.
func (b *Base) SetInt64(index int, value int64) {
	b.checkRange(index + 1)
	u := uint64(value)
	b.values[index] = uint32(u)
	b.values[index+1] = uint32(u >> 32)
	b.mask.Set(index)
	b.mask.Set(index + 1)
}

func (b *Base) GetInt64(index int) int64 {
	b.checkRange(index + 1)
	u := uint64(b.values[index]) | uint64(b.values[index+1])<<32
	return int64(u)
}

func (b *Base) SetUint64(index int, value uint64) {
	b.checkRange(index + 1)
	b.values[index] = uint32(value)
	b.values[index+1] = uint32(value >> 32)
	b.mask.Set(index)
	b.mask.Set(index + 1)
}

func (b *Base) GetUint64(index int) uint64 {
	b.checkRange(index + 1)
	return uint64(b.values[index]) | uint64(b.values[index+1])<<32
}

// Reset clears the dirty mask without zeroing any stored value.
func (b *Base) Reset() {
	b.mask.Reset()
}

// Dirty reports whether any field has changed since the last Reset —
// the gate PhaseOutput uses to skip building a PARTIAL packet for an
// entity with nothing new to report.
func (b *Base) Dirty() bool {
	for _, w := range b.mask.Words() {
		if w != 0 {
			return true
		}
	}
	return false
}

// FieldCount is the number of addressable field slots for this entity's kind.
func (b *Base) FieldCount() int {
	return len(b.values)
}

// fieldsUpdate serializes the field-delta block: blockCount, mask
// words, then the set fields' value words in strictly ascending index
// order.
func (b *Base) fieldsUpdate(full bool) []byte {
	mask := b.mask
	if full {
		mask = NewUpdateMask(len(b.values))
		mask.SetAll(len(b.values))
	}

	buf := make([]byte, 0, 1+mask.BlockCount()*4+len(b.values)*4)
	buf = append(buf, byte(mask.BlockCount()))
	for _, w := range mask.Words() {
		var wb [4]byte
		binary.LittleEndian.PutUint32(wb[:], w)
		buf = append(buf, wb[:]...)
	}
	for i := 0; i < len(b.values); i++ {
		if mask.IsSet(i) {
			var vb [4]byte
			binary.LittleEndian.PutUint32(vb[:], b.values[i])
			buf = append(buf, vb[:]...)
		}
	}
	return buf
}

// DebugString mirrors ObjectManager.get_debug_messages from the
// original source — a human-readable one-liner for operational logs.
func (b *Base) DebugString() string {
	return fmt.Sprintf("guid=%d entry=%d map=%d pos=(%.2f,%.2f,%.2f,%.2f)",
		b.Guid.Low(), b.Entry, b.MapID, b.Location.X, b.Location.Y, b.Location.Z, b.Location.O)
}
