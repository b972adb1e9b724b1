package object

import "testing"

func TestUpdateMaskSetIsSet(t *testing.T) {
	m := NewUpdateMask(40)
	if m.IsSet(0) || m.IsSet(39) {
		t.Fatalf("fresh mask must start clear")
	}
	m.Set(0)
	m.Set(39)
	if !m.IsSet(0) || !m.IsSet(39) {
		t.Fatalf("Set bits must read back set")
	}
	if m.IsSet(1) {
		t.Fatalf("unrelated bit must stay clear")
	}
}

func TestUpdateMaskReset(t *testing.T) {
	m := NewUpdateMask(64)
	m.Set(5)
	m.Set(40)
	m.Reset()
	for _, w := range m.Words() {
		if w != 0 {
			t.Fatalf("Reset() must clear every word, got %v", m.Words())
		}
	}
}

func TestUpdateMaskBlockCount(t *testing.T) {
	m := NewUpdateMask(33)
	if m.BlockCount() != 2 {
		t.Fatalf("BlockCount() = %d, want 2 for 33 fields", m.BlockCount())
	}
}

func TestUpdateMaskSetAll(t *testing.T) {
	m := NewUpdateMask(10)
	m.SetAll(10)
	for i := 0; i < 10; i++ {
		if !m.IsSet(i) {
			t.Errorf("SetAll must set bit %d", i)
		}
	}
}
