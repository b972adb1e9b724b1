package object

import (
	"testing"

	"github.com/originrealm/worldcore/internal/guid"
)

func newTestUnit() *Unit {
	return NewUnit(guid.New(guid.HighGuidUnit, 1), 100, 5, 200, 55, 1)
}

// TestFieldRoundTrip asserts get_T(set_T(i, v)) == v for every
// representable value and scalar type.
func TestFieldRoundTrip(t *testing.T) {
	u := newTestUnit()

	u.SetInt32(UnitFieldLevel, -12345)
	if got := u.GetInt32(UnitFieldLevel); got != -12345 {
		t.Errorf("int32 round-trip: got %d", got)
	}

	u.SetUint32(UnitFieldFlags, 0xDEADBEEF)
	if got := u.GetUint32(UnitFieldFlags); got != 0xDEADBEEF {
		t.Errorf("uint32 round-trip: got %#x", got)
	}

	u.SetFloat(ObjectFieldScaleX, 3.14159)
	if got := u.GetFloat(ObjectFieldScaleX); got != float32(3.14159) {
		t.Errorf("float round-trip: got %v", got)
	}

	u.SetInt64(UnitFieldHealth, -9223372036854775808)
	if got := u.GetInt64(UnitFieldHealth); got != -9223372036854775808 {
		t.Errorf("int64 round-trip: got %d", got)
	}

	u.SetUint64(UnitFieldHealth, 0xFFFFFFFFFFFFFFFF)
	if got := u.GetUint64(UnitFieldHealth); got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("uint64 round-trip: got %#x", got)
	}
}

func TestSixtyFourBitSetsTwoMaskBits(t *testing.T) {
	u := newTestUnit()
	u.Reset()
	u.SetUint64(UnitFieldHealth, 1)
	if !u.mask.IsSet(UnitFieldHealth) || !u.mask.IsSet(UnitFieldHealth+1) {
		t.Fatalf("64-bit write must set both adjacent mask bits")
	}
}

func TestResetPreservesValues(t *testing.T) {
	u := newTestUnit()
	u.SetUint32(UnitFieldFlags, 7)
	u.Reset()
	if u.Dirty() {
		t.Fatalf("Dirty() must be false right after Reset")
	}
	if got := u.GetUint32(UnitFieldFlags); got != 7 {
		t.Fatalf("Reset must preserve the stored value, got %d", got)
	}
}

func TestDirty(t *testing.T) {
	u := newTestUnit()
	u.Reset()
	if u.Dirty() {
		t.Fatalf("expected not dirty after Reset")
	}
	u.SetUint32(UnitFieldHealth, 1)
	if !u.Dirty() {
		t.Fatalf("expected dirty after a field write")
	}
}

func TestFieldOutOfRangePanics(t *testing.T) {
	u := newTestUnit()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range field index")
		}
	}()
	u.SetUint32(u.FieldCount(), 1)
}

func TestFieldCountPerKind(t *testing.T) {
	if FieldCount(KindUnit) <= FieldCount(KindObject) {
		t.Fatalf("Unit layout must strictly extend Object layout")
	}
	if FieldCount(KindPlayer) <= FieldCount(KindUnit) {
		t.Fatalf("Player layout must strictly extend Unit layout")
	}
	if FieldCount(KindContainer) <= FieldCount(KindItem) {
		t.Fatalf("Container layout must strictly extend Item layout")
	}
}
