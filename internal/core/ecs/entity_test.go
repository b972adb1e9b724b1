package ecs

import "testing"

func TestEntityPoolCreateAndAlive(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	b := p.Create()

	if a.Index() == b.Index() {
		t.Fatalf("distinct Create() calls must yield distinct indices")
	}
	if !p.Alive(a) || !p.Alive(b) {
		t.Fatalf("freshly created entities must be alive")
	}
}

func TestEntityPoolDestroyInvalidatesStaleHandle(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	p.Destroy(a)
	if p.Alive(a) {
		t.Fatalf("destroyed entity must report not alive")
	}
}

// TestEntityPoolGenerationGuardsReuse models cyclic references
// (player<->session<->account<->character) represented as generational
// handle indices — a stale handle into a reused slot must not alias
// the new occupant.
func TestEntityPoolGenerationGuardsReuse(t *testing.T) {
	p := NewEntityPool()
	first := p.Create()
	p.Destroy(first)

	second := p.Create()
	if second.Index() != first.Index() {
		t.Fatalf("expected the free-listed slot to be reused")
	}
	if second.Generation() == first.Generation() {
		t.Fatalf("reused slot must bump generation, got same generation %d", second.Generation())
	}
	if p.Alive(first) {
		t.Fatalf("the stale handle must not be considered alive after slot reuse")
	}
	if !p.Alive(second) {
		t.Fatalf("the new handle into the reused slot must be alive")
	}
}

func TestEntityIDPackUnpack(t *testing.T) {
	id := NewEntityID(7, 3)
	if id.Index() != 7 {
		t.Errorf("Index() = %d, want 7", id.Index())
	}
	if id.Generation() != 3 {
		t.Errorf("Generation() = %d, want 3", id.Generation())
	}
	if NewEntityID(0, 0).IsZero() == false {
		t.Errorf("zero index/generation must report IsZero() true")
	}
}
