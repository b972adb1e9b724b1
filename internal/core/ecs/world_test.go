package ecs

import "testing"

// TestWorldFlushDestroyQueueClearsRegisteredStores models the
// session<->account<->player cycle: a destroyed entity's components
// must disappear from every store registered against the world's
// Registry, not just the entity pool's own bookkeeping.
func TestWorldFlushDestroyQueueClearsRegisteredStores(t *testing.T) {
	w := NewWorld()
	sessions := NewPtrComponentStore[string]()
	players := NewPtrComponentStore[int]()
	w.Registry().Register(sessions)
	w.Registry().Register(players)

	id := w.CreateEntity()
	sess := "session-1"
	level := 5
	sessions.Set(id, &sess)
	players.Set(id, &level)

	w.MarkForDestruction(id)
	if !w.Alive(id) {
		t.Fatalf("entity must remain alive until FlushDestroyQueue runs")
	}

	w.FlushDestroyQueue()

	if w.Alive(id) {
		t.Fatalf("expected entity to be destroyed after FlushDestroyQueue")
	}
	if sessions.Has(id) {
		t.Fatalf("expected session component store to be cleared by RemoveAll")
	}
	if players.Has(id) {
		t.Fatalf("expected player component store to be cleared by RemoveAll")
	}
}

// TestWorldPendingDestroyIsSnapshotBeforeFlush exercises the pattern
// cleanupSystem uses: read component data for queued entities before
// FlushDestroyQueue wipes it out.
func TestWorldPendingDestroyIsSnapshotBeforeFlush(t *testing.T) {
	w := NewWorld()
	players := NewPtrComponentStore[int]()
	w.Registry().Register(players)

	a := w.CreateEntity()
	b := w.CreateEntity()
	va, vb := 1, 2
	players.Set(a, &va)
	players.Set(b, &vb)

	w.MarkForDestruction(a)
	w.MarkForDestruction(b)

	pending := w.PendingDestroy()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending entities, got %d", len(pending))
	}
	seen := make(map[EntityID]bool)
	for _, id := range pending {
		if _, ok := players.Get(id); !ok {
			t.Fatalf("component data must still be readable before FlushDestroyQueue")
		}
		seen[id] = true
	}
	if !seen[a] || !seen[b] {
		t.Fatalf("pending snapshot missing an entity: %v", pending)
	}

	w.FlushDestroyQueue()
	if len(w.PendingDestroy()) != 0 {
		t.Fatalf("expected destroy queue to be empty after flush")
	}
}
