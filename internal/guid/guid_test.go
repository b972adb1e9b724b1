package guid

import "testing"

func TestPackStrip(t *testing.T) {
	cases := []struct {
		name string
		high HighGuid
		low  uint64
	}{
		{"unit", HighGuidUnit, 12345},
		{"gameobject", HighGuidGameObject, 999},
		{"item", HighGuidItem, 1},
		{"container", HighGuidContainer, 42},
		{"player", HighGuidPlayer, 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := New(c.high, c.low)
			if g.High() != c.high {
				t.Errorf("High() = %#x, want %#x", uint64(g.High()), uint64(c.high))
			}
			if g.Low() != c.low {
				t.Errorf("Low() = %d, want %d", g.Low(), c.low)
			}
		})
	}
}

// TestHighGuidTransparency asserts stripping the HighGuid high bits
// yields the same identity a persisted lookup by low guid would use,
// for every tagged kind.
func TestHighGuidTransparency(t *testing.T) {
	for _, high := range []HighGuid{HighGuidUnit, HighGuidGameObject, HighGuidItem, HighGuidContainer} {
		g := New(high, 555)
		if g.Low() != New(HighGuidPlayer, 555).Low() {
			t.Errorf("Low() not transparent across HighGuid tag for %#x", uint64(high))
		}
	}
}

func TestIsPlayer(t *testing.T) {
	p := New(HighGuidPlayer, 1)
	if !p.IsPlayer() {
		t.Fatalf("expected player guid to report IsPlayer")
	}
	u := New(HighGuidUnit, 1)
	if u.IsPlayer() {
		t.Fatalf("expected unit guid to not report IsPlayer")
	}
}
